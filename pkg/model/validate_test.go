package model

import (
	"errors"
	"strings"
	"testing"
)

func TestFormStructureValidate(t *testing.T) {
	valid := FormStructure{
		FormID: "student",
		Sections: []FormSection{
			{SectionID: 1, Fields: []FormField{
				{FieldID: "name", Type: FieldTypeText, MinLength: 2, MaxLength: 20},
				{FieldID: "gender", Type: FieldTypeRadio, Options: []FieldOption{{Value: "f"}, {Value: "m"}}},
				{FieldID: "custom", Type: FieldType("color")},
			}},
		},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid form, got %v", err)
	}

	cases := map[string]struct {
		form FormStructure
		want string
	}{
		"no sections": {
			form: FormStructure{},
			want: "no sections",
		},
		"duplicate id across sections": {
			form: FormStructure{Sections: []FormSection{
				{Fields: []FormField{{FieldID: "email", Type: FieldTypeEmail}}},
				{Fields: []FormField{{FieldID: "email", Type: FieldTypeEmail}}},
			}},
			want: `duplicate fieldId "email"`,
		},
		"choice without options": {
			form: FormStructure{Sections: []FormSection{
				{Fields: []FormField{{FieldID: "state", Type: FieldTypeDropdown}}},
			}},
			want: "requires options",
		},
		"options on text": {
			form: FormStructure{Sections: []FormSection{
				{Fields: []FormField{{FieldID: "name", Type: FieldTypeText, Options: []FieldOption{{Value: "x"}}}}},
			}},
			want: "does not accept options",
		},
		"inverted limits": {
			form: FormStructure{Sections: []FormSection{
				{Fields: []FormField{{FieldID: "name", Type: FieldTypeText, MinLength: 5, MaxLength: 2}}},
			}},
			want: "exceeds maxLength",
		},
		"missing id": {
			form: FormStructure{Sections: []FormSection{
				{Fields: []FormField{{Type: FieldTypeText}}},
			}},
			want: "fieldId is required",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := tc.form.Validate()
			if err == nil {
				t.Fatalf("expected error")
			}
			if !errors.Is(err, ErrInvalidForm) {
				t.Fatalf("expected ErrInvalidForm, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, err.Error())
			}
		})
	}
}

func TestNormalizeDecorator(t *testing.T) {
	form := FormStructure{
		FormTitle: "  Student Form ",
		Sections: []FormSection{{Fields: []FormField{
			{FieldID: " hobbies ", Type: FieldType(" Checkbox"), Options: []FieldOption{{Value: "chess"}}},
		}}},
	}
	if err := Decorate(&form, Normalize); err != nil {
		t.Fatalf("decorate: %v", err)
	}
	field := form.Sections[0].Fields[0]
	if form.FormTitle != "Student Form" || field.FieldID != "hobbies" || field.Type != FieldTypeCheckbox {
		t.Fatalf("unexpected normalised form: %+v", form)
	}
	if field.Options[0].Label != "chess" {
		t.Fatalf("expected label fallback to value, got %q", field.Options[0].Label)
	}
}
