package model

// FieldType enumerates the input kinds the form service can declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeTel      FieldType = "tel"
	FieldTypeEmail    FieldType = "email"
	FieldTypeTextarea FieldType = "textarea"
	FieldTypeDate     FieldType = "date"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeRadio    FieldType = "radio"
	FieldTypeCheckbox FieldType = "checkbox"
)

// FieldTypes returns every known field type in declaration order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeTel,
		FieldTypeEmail,
		FieldTypeTextarea,
		FieldTypeDate,
		FieldTypeDropdown,
		FieldTypeRadio,
		FieldTypeCheckbox,
	}
}

// Known reports whether t is one of the declared field types.
func (t FieldType) Known() bool {
	switch t {
	case FieldTypeText, FieldTypeTel, FieldTypeEmail, FieldTypeTextarea,
		FieldTypeDate, FieldTypeDropdown, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// HasOptions reports whether fields of this type carry a list of choices.
func (t FieldType) HasOptions() bool {
	switch t {
	case FieldTypeDropdown, FieldTypeRadio, FieldTypeCheckbox:
		return true
	default:
		return false
	}
}

// ValueKind reports the kind of value collected for fields of this type.
func (t FieldType) ValueKind() ValueKind {
	if t == FieldTypeCheckbox {
		return KindSet
	}
	return KindScalar
}

// FieldOption is one selectable choice of a dropdown, radio or checkbox field.
type FieldOption struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	TestID string `json:"dataTestId,omitempty"`
}

// FieldValidation carries the service-provided override for validation
// failures.
type FieldValidation struct {
	Message string `json:"message"`
}

// FormField describes a single input. MinLength and MaxLength of zero mean the
// constraint is absent.
type FormField struct {
	FieldID     string           `json:"fieldId"`
	Type        FieldType        `json:"type"`
	Label       string           `json:"label"`
	Placeholder string           `json:"placeholder,omitempty"`
	Required    bool             `json:"required"`
	TestID      string           `json:"dataTestId"`
	Validation  *FieldValidation `json:"validation,omitempty"`
	Options     []FieldOption    `json:"options,omitempty"`
	MinLength   int              `json:"minLength,omitempty"`
	MaxLength   int              `json:"maxLength,omitempty"`
}

// ValidationMessage returns the custom failure message, if any.
func (f FormField) ValidationMessage() string {
	if f.Validation == nil {
		return ""
	}
	return f.Validation.Message
}

// Option looks up an option by value.
func (f FormField) Option(value string) (FieldOption, bool) {
	for _, opt := range f.Options {
		if opt.Value == value {
			return opt, true
		}
	}
	return FieldOption{}, false
}

// FormSection groups fields shown together on one step of the form.
type FormSection struct {
	SectionID   int         `json:"sectionId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []FormField `json:"fields"`
}

// FormStructure is the full schema returned by the form service.
type FormStructure struct {
	FormTitle string        `json:"formTitle"`
	FormID    string        `json:"formId"`
	Version   string        `json:"version"`
	Sections  []FormSection `json:"sections"`
}

// Field finds a field by id anywhere in the form.
func (f FormStructure) Field(fieldID string) (FormField, bool) {
	for _, section := range f.Sections {
		for _, field := range section.Fields {
			if field.FieldID == fieldID {
				return field, true
			}
		}
	}
	return FormField{}, false
}

// Section returns the section at index, reporting false when out of range.
func (f FormStructure) Section(index int) (FormSection, bool) {
	if index < 0 || index >= len(f.Sections) {
		return FormSection{}, false
	}
	return f.Sections[index], true
}

// LastIndex returns the index of the final section, or -1 for an empty form.
func (f FormStructure) LastIndex() int {
	return len(f.Sections) - 1
}

// FormResponse is the envelope returned by the fetch-form endpoint.
type FormResponse struct {
	Message string        `json:"message"`
	Form    FormStructure `json:"form"`
}
