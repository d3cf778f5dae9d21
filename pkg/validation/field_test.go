package validation

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/model"
)

func TestValidateFieldRequired(t *testing.T) {
	text := model.FormField{FieldID: "name", Type: model.FieldTypeText, Required: true}
	group := model.FormField{
		FieldID:  "hobbies",
		Type:     model.FieldTypeCheckbox,
		Required: true,
		Options:  []model.FieldOption{{Value: "chess"}, {Value: "go"}},
	}

	for _, blank := range []string{"", "   ", "\n\t"} {
		issue, failed := ValidateField(text, model.Scalar(blank))
		if !failed || issue.Rule != RuleRequired || issue.Message != MessageRequired {
			t.Fatalf("blank %q: expected required failure, got %+v (failed=%v)", blank, issue, failed)
		}
	}
	if _, failed := ValidateField(group, model.Set()); !failed {
		t.Fatalf("expected empty set to fail required")
	}
	if issue, failed := ValidateField(text, model.Scalar("Ada")); failed {
		t.Fatalf("expected value to pass, got %+v", issue)
	}
	if issue, failed := ValidateField(group, model.Set("go")); failed {
		t.Fatalf("expected non-empty set to pass, got %+v", issue)
	}
}

func TestValidateFieldCustomMessage(t *testing.T) {
	field := model.FormField{
		FieldID:    "roll",
		Type:       model.FieldTypeText,
		Required:   true,
		MinLength:  4,
		Validation: &model.FieldValidation{Message: "Enter your roll number"},
	}
	for _, value := range []string{"", "ab"} {
		issue, failed := ValidateField(field, model.Scalar(value))
		if !failed || issue.Message != "Enter your roll number" {
			t.Fatalf("value %q: expected override message, got %+v", value, issue)
		}
	}
}

func TestValidateFieldLengthBoundaries(t *testing.T) {
	field := model.FormField{FieldID: "code", Type: model.FieldTypeText, MinLength: 3, MaxLength: 5}

	cases := []struct {
		value string
		rule  string
	}{
		{"", RuleMinLength},
		{"ab", RuleMinLength},
		{"abc", ""},
		{"abcde", ""},
		{"abcdef", RuleMaxLength},
		{"äöü", ""},
	}
	for _, tc := range cases {
		issue, failed := ValidateField(field, model.Scalar(tc.value))
		if tc.rule == "" {
			if failed {
				t.Fatalf("%q: expected pass, got %+v", tc.value, issue)
			}
			continue
		}
		if !failed || issue.Rule != tc.rule {
			t.Fatalf("%q: expected %s failure, got %+v", tc.value, tc.rule, issue)
		}
	}

	issue, _ := ValidateField(field, model.Scalar("ab"))
	if issue.Message != "Minimum length is 3" {
		t.Fatalf("unexpected min message %q", issue.Message)
	}
	issue, _ = ValidateField(field, model.Scalar(strings.Repeat("x", 6)))
	if issue.Message != "Maximum length is 5" {
		t.Fatalf("unexpected max message %q", issue.Message)
	}
}

func TestValidateFieldRulePrecedence(t *testing.T) {
	field := model.FormField{FieldID: "email", Type: model.FieldTypeEmail, Required: true, MinLength: 10}

	if issue, _ := ValidateField(field, model.Scalar("")); issue.Rule != RuleRequired {
		t.Fatalf("expected required to win, got %s", issue.Rule)
	}
	if issue, _ := ValidateField(field, model.Scalar("a@b")); issue.Rule != RuleMinLength {
		t.Fatalf("expected minLength before email format, got %s", issue.Rule)
	}
	if issue, _ := ValidateField(field, model.Scalar("not-an-email")); issue.Rule != RuleEmail {
		t.Fatalf("expected email failure, got %s", issue.Rule)
	}
}

func TestValidateFieldEmail(t *testing.T) {
	field := model.FormField{FieldID: "email", Type: model.FieldTypeEmail}

	for _, ok := range []string{"a@b.co", "ada.lovelace@example.org", "ünï@dömain.de", ""} {
		if issue, failed := ValidateField(field, model.Scalar(ok)); failed {
			t.Fatalf("%q: expected pass, got %+v", ok, issue)
		}
	}
	for _, bad := range []string{"a@b", "a b@c.co", "@b.co", "ab.co", "a\u00a0b@c.co", "a@b\u2028c.co", "a@b.c\ufeff", "a\vb@c.co", "a@b\u3000c.co"} {
		issue, failed := ValidateField(field, model.Scalar(bad))
		if !failed || issue.Message != MessageEmail {
			t.Fatalf("%q: expected email failure, got %+v", bad, issue)
		}
	}
}

func TestValidateFieldPhone(t *testing.T) {
	optional := model.FormField{FieldID: "phone", Type: model.FieldTypeTel}
	required := optional
	required.Required = true

	if issue, failed := ValidateField(optional, model.Scalar("1234567")); failed {
		t.Fatalf("expected digits to pass, got %+v", issue)
	}
	if issue, failed := ValidateField(optional, model.Scalar("12a45")); !failed || issue.Rule != RulePhone {
		t.Fatalf("expected phone failure, got %+v", issue)
	}
	if issue, failed := ValidateField(optional, model.Scalar("")); failed {
		t.Fatalf("optional empty phone must pass, got %+v", issue)
	}
	if issue, failed := ValidateField(required, model.Scalar("")); !failed || issue.Rule != RuleRequired {
		t.Fatalf("required empty phone must fail as required, got %+v", issue)
	}
}

func TestValidateFieldIgnoresLengthOnSets(t *testing.T) {
	field := model.FormField{
		FieldID:   "tags",
		Type:      model.FieldTypeCheckbox,
		MinLength: 3,
		Options:   []model.FieldOption{{Value: "a"}},
	}
	if issue, failed := ValidateField(field, model.Set("a")); failed {
		t.Fatalf("length rules must not apply to sets, got %+v", issue)
	}
}
