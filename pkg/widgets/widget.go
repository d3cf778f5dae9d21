package widgets

import "github.com/goliatone/go-formflow/pkg/model"

// Kind identifies the control family a field is rendered with.
type Kind string

const (
	KindInput         Kind = "input"
	KindTextarea      Kind = "textarea"
	KindSelect        Kind = "select"
	KindRadioGroup    Kind = "radio-group"
	KindCheckboxGroup Kind = "checkbox-group"
)

// SelectPlaceholder is the leading, empty-valued choice of every dropdown.
const SelectPlaceholder = "Select…"

// Widget describes how a field is presented. InputType is only meaningful
// for KindInput and carries the HTML input type.
type Widget struct {
	Kind        Kind   `json:"kind"`
	InputType   string `json:"inputType,omitempty"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Multiple reports whether the widget collects a set of values.
func (w Widget) Multiple() bool {
	return w.Kind == KindCheckboxGroup
}

// For maps a field type to its widget. Types outside the known set fall
// back to a plain text input.
func For(t model.FieldType) Widget {
	switch t {
	case model.FieldTypeText:
		return Widget{Kind: KindInput, InputType: "text"}
	case model.FieldTypeTel:
		return Widget{Kind: KindInput, InputType: "tel"}
	case model.FieldTypeEmail:
		return Widget{Kind: KindInput, InputType: "email"}
	case model.FieldTypeDate:
		return Widget{Kind: KindInput, InputType: "date"}
	case model.FieldTypeTextarea:
		return Widget{Kind: KindTextarea}
	case model.FieldTypeDropdown:
		return Widget{Kind: KindSelect, Placeholder: SelectPlaceholder}
	case model.FieldTypeRadio:
		return Widget{Kind: KindRadioGroup}
	case model.FieldTypeCheckbox:
		return Widget{Kind: KindCheckboxGroup}
	default:
		return Widget{Kind: KindInput, InputType: "text"}
	}
}
