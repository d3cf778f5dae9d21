package widgets

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/model"
)

func TestFor_CoversEveryFieldType(t *testing.T) {
	cases := []struct {
		fieldType model.FieldType
		expect    Widget
	}{
		{model.FieldTypeText, Widget{Kind: KindInput, InputType: "text"}},
		{model.FieldTypeTel, Widget{Kind: KindInput, InputType: "tel"}},
		{model.FieldTypeEmail, Widget{Kind: KindInput, InputType: "email"}},
		{model.FieldTypeDate, Widget{Kind: KindInput, InputType: "date"}},
		{model.FieldTypeTextarea, Widget{Kind: KindTextarea}},
		{model.FieldTypeDropdown, Widget{Kind: KindSelect, Placeholder: SelectPlaceholder}},
		{model.FieldTypeRadio, Widget{Kind: KindRadioGroup}},
		{model.FieldTypeCheckbox, Widget{Kind: KindCheckboxGroup}},
		{model.FieldType("color"), Widget{Kind: KindInput, InputType: "text"}},
	}

	if len(cases)-1 != len(model.FieldTypes()) {
		t.Fatalf("expected a case per known field type")
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.expect, For(tc.fieldType)); diff != "" {
			t.Fatalf("widget for %q mismatch (-want +got):\n%s", tc.fieldType, diff)
		}
	}
}

func TestWidgetMultiple(t *testing.T) {
	for _, ft := range model.FieldTypes() {
		w := For(ft)
		if w.Multiple() != (ft.ValueKind() == model.KindSet) {
			t.Fatalf("%s: widget multiplicity does not match value kind", ft)
		}
	}
}

func TestRegistry_FallsBackToType(t *testing.T) {
	reg := NewRegistry()
	got := reg.Resolve(model.FormField{Type: model.FieldTypeTextarea})
	if got.Kind != KindTextarea {
		t.Fatalf("expected textarea fallback, got %+v", got)
	}

	var nilReg *Registry
	if got := nilReg.Resolve(model.FormField{Type: model.FieldTypeRadio}); got.Kind != KindRadioGroup {
		t.Fatalf("nil registry should fall back, got %+v", got)
	}
}

func TestRegistry_PriorityOverride(t *testing.T) {
	reg := NewRegistry()
	isBio := func(field model.FormField) bool { return field.FieldID == "bio" }
	reg.Register(Widget{Kind: KindInput, InputType: "text"}, 10, isBio)
	reg.Register(Widget{Kind: KindTextarea}, 99, isBio)
	reg.Register(Widget{}, 1000, isBio)

	got := reg.Resolve(model.FormField{FieldID: "bio", Type: model.FieldTypeText})
	if got.Kind != KindTextarea {
		t.Fatalf("priority matcher should win, got %+v", got)
	}

	other := reg.Resolve(model.FormField{FieldID: "name", Type: model.FieldTypeText})
	if other.Kind != KindInput {
		t.Fatalf("unmatched field should use type mapping, got %+v", other)
	}
}
