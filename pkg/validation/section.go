package validation

import (
	"sort"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Errors maps field ids to the message shown next to the field.
type Errors map[string]string

// FieldIDs returns the failing field ids in sorted order.
func (e Errors) FieldIDs() []string {
	ids := make([]string, 0, len(e))
	for id := range e {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns an independent copy; nil stays nil.
func (e Errors) Clone() Errors {
	if e == nil {
		return nil
	}
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ValidateSection checks every field of the section in order and returns a
// new Errors map holding one message per failing field. The section is valid
// when that map is empty.
func ValidateSection(section model.FormSection, values model.Values) (bool, Errors) {
	errs := make(Errors)
	for _, field := range section.Fields {
		if issue, failed := ValidateField(field, values.Get(field)); failed {
			errs[field.FieldID] = issue.Message
		}
	}
	return len(errs) == 0, errs
}

// Issues is the ordered variant of ValidateSection, used where the rule that
// failed matters (logs, terminal output).
func Issues(section model.FormSection, values model.Values) []Issue {
	var out []Issue
	for _, field := range section.Fields {
		if issue, failed := ValidateField(field, values.Get(field)); failed {
			out = append(out, issue)
		}
	}
	return out
}
