package validation

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Rule identifiers reported in Issue.Rule.
const (
	RuleRequired  = "required"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RuleEmail     = "email"
	RulePhone     = "phone"
)

// Default messages used when a field carries no validation override.
const (
	MessageRequired = "This field is required"
	MessageEmail    = "Invalid email"
	MessagePhone    = "Invalid phone"
)

// nonSpace matches one character outside the Unicode white space set. RE2's
// \S only excludes ASCII spaces, so separators like U+00A0 are listed here.
const nonSpace = `[^\s\v\p{Z}\x{FEFF}]`

var (
	emailPattern = regexp.MustCompile(`^` + nonSpace + `+@` + nonSpace + `+\.` + nonSpace + `+$`)
	phonePattern = regexp.MustCompile(`^[0-9]+$`)
)

// Issue describes a failed rule for one field.
type Issue struct {
	FieldID string `json:"fieldId"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidateField returns the first failing rule for value, or false when the
// value satisfies every rule the field declares.
func ValidateField(field model.FormField, value model.Value) (Issue, bool) {
	if rule, fallback, failed := check(field, value); failed {
		msg := field.ValidationMessage()
		if msg == "" {
			msg = fallback
		}
		return Issue{FieldID: field.FieldID, Rule: rule, Message: msg}, true
	}
	return Issue{}, false
}

func check(field model.FormField, value model.Value) (rule, message string, failed bool) {
	if field.Required && value.Blank() {
		return RuleRequired, MessageRequired, true
	}

	// Length and format rules only apply to scalars.
	if value.Kind() != model.KindScalar {
		return "", "", false
	}
	text := value.String()
	length := utf8.RuneCountInString(text)

	if field.MinLength > 0 && length < field.MinLength {
		return RuleMinLength, fmt.Sprintf("Minimum length is %d", field.MinLength), true
	}
	if field.MaxLength > 0 && length > field.MaxLength {
		return RuleMaxLength, fmt.Sprintf("Maximum length is %d", field.MaxLength), true
	}
	if text == "" {
		return "", "", false
	}

	switch field.Type {
	case model.FieldTypeEmail:
		if !emailPattern.MatchString(text) {
			return RuleEmail, MessageEmail, true
		}
	case model.FieldTypeTel:
		if !phonePattern.MatchString(text) {
			return RulePhone, MessagePhone, true
		}
	}
	return "", "", false
}
