package controller

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

var (
	// ErrNoNextSection is returned by Next on the last section.
	ErrNoNextSection = errors.New("controller: already on the last section")
	// ErrNotLastSection is returned by Submit before the last section.
	ErrNotLastSection = errors.New("controller: submit is only allowed on the last section")
	// ErrUnknownField reports an edit against a field the form does not declare.
	ErrUnknownField = errors.New("controller: unknown field")
	// ErrValueKind reports a scalar edit on a set field or the reverse.
	ErrValueKind = errors.New("controller: operation does not match field value kind")
	// ErrUnknownOption reports a toggle for a value outside the field options.
	ErrUnknownOption = errors.New("controller: unknown option")
	// ErrSubmitted is returned for any transition after a successful submit.
	ErrSubmitted = errors.New("controller: form already submitted")
	// ErrEmptyForm is returned by Init for a form without sections.
	ErrEmptyForm = errors.New("controller: form has no sections")
)

// State is the complete, explicit state of one form session.
type State struct {
	Index     int
	Values    model.Values
	Errors    validation.Errors
	Submitted bool
}

// Clone returns a deep copy so transitions never share maps.
func (s State) Clone() State {
	out := s
	out.Values = s.Values.Clone()
	out.Errors = s.Errors.Clone()
	if out.Errors == nil {
		out.Errors = validation.Errors{}
	}
	return out
}

// Init starts a session on the first section with every field at its zero
// value.
func Init(form model.FormStructure) (State, error) {
	if len(form.Sections) == 0 {
		return State{}, ErrEmptyForm
	}
	return State{
		Index:  0,
		Values: model.NewValues(form),
		Errors: validation.Errors{},
	}, nil
}

// Next validates the active section and advances when it passes. On failure
// the returned State stays on the same section and carries the errors; the
// error return is reserved for misuse.
func Next(form model.FormStructure, s State) (State, error) {
	if s.Submitted {
		return s, ErrSubmitted
	}
	if s.Index >= form.LastIndex() {
		return s, ErrNoNextSection
	}
	section, ok := form.Section(s.Index)
	if !ok {
		return s, fmt.Errorf("controller: section index %d out of range", s.Index)
	}

	out := s.Clone()
	valid, errs := validation.ValidateSection(section, out.Values)
	out.Errors = errs
	if valid {
		out.Index++
	}
	return out, nil
}

// Previous moves back one section without validating and clears errors. It is
// a no-op on the first section.
func Previous(form model.FormStructure, s State) (State, error) {
	if s.Submitted {
		return s, ErrSubmitted
	}
	out := s.Clone()
	if out.Index > 0 {
		out.Index--
	}
	if out.Index > form.LastIndex() {
		out.Index = form.LastIndex()
	}
	out.Errors = validation.Errors{}
	return out, nil
}

// Submit validates the last section and marks the state submitted when it
// passes.
func Submit(form model.FormStructure, s State) (State, error) {
	if s.Submitted {
		return s, ErrSubmitted
	}
	if s.Index != form.LastIndex() {
		return s, ErrNotLastSection
	}
	section, _ := form.Section(s.Index)

	out := s.Clone()
	valid, errs := validation.ValidateSection(section, out.Values)
	out.Errors = errs
	out.Submitted = valid
	return out, nil
}

// Change replaces the scalar value of a field. Nothing is validated.
func Change(form model.FormStructure, s State, fieldID, value string) (State, error) {
	if s.Submitted {
		return s, ErrSubmitted
	}
	field, ok := form.Field(fieldID)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	if field.Type.ValueKind() != model.KindScalar {
		return s, fmt.Errorf("%w: %q holds a set", ErrValueKind, fieldID)
	}
	out := s.Clone()
	if out.Values == nil {
		out.Values = model.Values{}
	}
	out.Values[fieldID] = model.Scalar(value)
	return out, nil
}

// Toggle adds or removes one option of a checkbox group, leaving the other
// members untouched. Members are kept in option order.
func Toggle(form model.FormStructure, s State, fieldID, option string, checked bool) (State, error) {
	if s.Submitted {
		return s, ErrSubmitted
	}
	field, ok := form.Field(fieldID)
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownField, fieldID)
	}
	if field.Type.ValueKind() != model.KindSet {
		return s, fmt.Errorf("%w: %q holds a scalar", ErrValueKind, fieldID)
	}
	if _, ok := field.Option(option); !ok {
		return s, fmt.Errorf("%w: %q for field %q", ErrUnknownOption, option, fieldID)
	}

	out := s.Clone()
	if out.Values == nil {
		out.Values = model.Values{}
	}
	current := out.Values.Get(field)
	members := make([]string, 0, len(field.Options))
	for _, opt := range field.Options {
		in := current.Contains(opt.Value)
		if opt.Value == option {
			in = checked
		}
		if in {
			members = append(members, opt.Value)
		}
	}
	out.Values[fieldID] = model.Set(members...)
	return out, nil
}

// Section returns the active section.
func (s State) Section(form model.FormStructure) (model.FormSection, bool) {
	return form.Section(s.Index)
}

// IsLast reports whether the active section is the final one.
func (s State) IsLast(form model.FormStructure) bool {
	return s.Index == form.LastIndex()
}
