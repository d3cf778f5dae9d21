package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidForm wraps every structural problem reported by Validate.
var ErrInvalidForm = errors.New("model: invalid form structure")

var errNoSections = errors.New("form has no sections")

// Validate checks the structural invariants the controller relies on: at least
// one section, options present exactly for choice types, sane length limits and
// field ids unique across the whole form. All violations are reported together.
func (f FormStructure) Validate() error {
	var problems []error
	if len(f.Sections) == 0 {
		problems = append(problems, errNoSections)
	}

	seen := make(map[string]int)
	for si, section := range f.Sections {
		for fi, field := range section.Fields {
			where := fmt.Sprintf("section %d field %d", si, fi)
			id := strings.TrimSpace(field.FieldID)
			if id == "" {
				problems = append(problems, fmt.Errorf("%s: fieldId is required", where))
			} else if prev, dup := seen[id]; dup {
				problems = append(problems, fmt.Errorf("%s: duplicate fieldId %q (first declared in section %d)", where, id, prev))
			} else {
				seen[id] = si
			}

			// Unknown types are tolerated and fall back to a plain text input.
			switch {
			case field.Type.HasOptions() && len(field.Options) == 0:
				problems = append(problems, fmt.Errorf("%s: type %q requires options", where, field.Type))
			case !field.Type.HasOptions() && len(field.Options) > 0:
				problems = append(problems, fmt.Errorf("%s: type %q does not accept options", where, field.Type))
			}
			if field.MinLength < 0 || field.MaxLength < 0 {
				problems = append(problems, fmt.Errorf("%s: length limits must not be negative", where))
			}
			if field.MaxLength > 0 && field.MinLength > field.MaxLength {
				problems = append(problems, fmt.Errorf("%s: minLength %d exceeds maxLength %d", where, field.MinLength, field.MaxLength))
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidForm, errors.Join(problems...))
}
