package model

import "strings"

// Decorator adjusts a freshly fetched form before it is handed to a controller.
type Decorator interface {
	Decorate(*FormStructure) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormStructure) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormStructure) error {
	return fn(form)
}

// Normalize trims identifiers and fills empty option labels with their value.
// It never changes field order or the set of fields.
var Normalize Decorator = DecoratorFunc(normalize)

func normalize(form *FormStructure) error {
	if form == nil {
		return nil
	}
	form.FormTitle = strings.TrimSpace(form.FormTitle)
	for si := range form.Sections {
		section := &form.Sections[si]
		for fi := range section.Fields {
			field := &section.Fields[fi]
			field.FieldID = strings.TrimSpace(field.FieldID)
			field.Type = FieldType(strings.ToLower(strings.TrimSpace(string(field.Type))))
			for oi := range field.Options {
				opt := &field.Options[oi]
				if strings.TrimSpace(opt.Label) == "" {
					opt.Label = opt.Value
				}
			}
		}
	}
	return nil
}

// Decorate applies decorators in order, stopping at the first error.
func Decorate(form *FormStructure, decorators ...Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}
