package render

import (
	"fmt"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/widgets"
)

// View is the renderer-neutral description of one section: which controls to
// draw, with which values, errors and navigation buttons. Template based
// renderers receive it as their data context.
type View struct {
	FormTitle    string         `json:"form_title"`
	FormID       string         `json:"form_id"`
	Version      string         `json:"version"`
	Index        int            `json:"index"`
	Step         int            `json:"step"`
	Count        int            `json:"count"`
	Section      SectionView    `json:"section"`
	Fields       []FieldView    `json:"fields"`
	ShowPrevious bool           `json:"show_previous"`
	ShowNext     bool           `json:"show_next"`
	ShowSubmit   bool           `json:"show_submit"`
	Action       string         `json:"action"`
	Hidden       []HiddenField  `json:"hidden"`
	FormErrors   []string       `json:"form_errors"`
	Notices      []string       `json:"notices"`
	Theme        map[string]any `json:"theme,omitempty"`
}

// SectionView holds the section heading.
type SectionView struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FieldView is one labelled control.
type FieldView struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Kind        widgets.Kind `json:"kind"`
	InputType   string       `json:"input_type"`
	Label       string       `json:"label"`
	Placeholder string       `json:"placeholder"`
	Required    bool         `json:"required"`
	TestID      string       `json:"test_id"`
	Value       string       `json:"value"`
	Error       string       `json:"error"`
	MinLength   int          `json:"min_length"`
	MaxLength   int          `json:"max_length"`
	Options     []OptionView `json:"options"`
}

// OptionView is one choice of a select, radio or checkbox group.
type OptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	TestID   string `json:"test_id"`
	Selected bool   `json:"selected"`
}

// ViewOption customises BuildView.
type ViewOption func(*viewConfig)

type viewConfig struct {
	widgets  *widgets.Registry
	sanitize func(string) string
}

// WithWidgetRegistry routes widget resolution through reg.
func WithWidgetRegistry(reg *widgets.Registry) ViewOption {
	return func(cfg *viewConfig) {
		cfg.widgets = reg
	}
}

// WithSanitizer cleans every service-provided text before it reaches the
// view: titles, descriptions, labels and placeholders.
func WithSanitizer(fn func(string) string) ViewOption {
	return func(cfg *viewConfig) {
		if fn != nil {
			cfg.sanitize = fn
		}
	}
}

// BuildView resolves the active section into a View.
func BuildView(form model.FormStructure, opts RenderOptions, options ...ViewOption) (View, error) {
	cfg := viewConfig{sanitize: func(s string) string { return s }}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	section, ok := form.Section(opts.Index)
	if !ok {
		return View{}, fmt.Errorf("render: section index %d out of range (form has %d)", opts.Index, len(form.Sections))
	}
	clean := cfg.sanitize

	view := View{
		FormTitle: clean(form.FormTitle),
		FormID:    form.FormID,
		Version:   form.Version,
		Index:     opts.Index,
		Step:      opts.Index + 1,
		Count:     len(form.Sections),
		Section: SectionView{
			ID:          section.SectionID,
			Title:       clean(section.Title),
			Description: clean(section.Description),
		},
		Fields:       make([]FieldView, 0, len(section.Fields)),
		ShowPrevious: opts.Index > 0,
		ShowNext:     opts.Index < form.LastIndex(),
		ShowSubmit:   opts.Index == form.LastIndex(),
		Action:       opts.Action,
		Hidden:       SortedHiddenFields(opts.Hidden),
		FormErrors:   normalizeMessages(opts.FormErrors),
		Notices:      normalizeMessages(opts.Notices),
	}

	for _, field := range section.Fields {
		widget := cfg.widgets.Resolve(field)
		value := opts.Values.Get(field)

		fv := FieldView{
			ID:          field.FieldID,
			Type:        string(field.Type),
			Kind:        widget.Kind,
			InputType:   widget.InputType,
			Label:       clean(field.Label),
			Placeholder: clean(field.Placeholder),
			Required:    field.Required,
			TestID:      field.TestID,
			Error:       opts.Errors[field.FieldID],
			MinLength:   field.MinLength,
			MaxLength:   field.MaxLength,
		}
		if value.Kind() == model.KindScalar {
			fv.Value = value.String()
		}
		if widget.Kind == widgets.KindSelect {
			fv.Options = append(fv.Options, OptionView{
				Value:    "",
				Label:    widget.Placeholder,
				Selected: value.Blank(),
			})
		}
		for _, opt := range field.Options {
			fv.Options = append(fv.Options, OptionView{
				Value:    opt.Value,
				Label:    clean(opt.Label),
				TestID:   opt.TestID,
				Selected: value.Contains(opt.Value),
			})
		}
		view.Fields = append(view.Fields, fv)
	}

	if opts.Theme != nil {
		view.Theme = map[string]any{
			"name":    opts.Theme.Theme,
			"variant": opts.Theme.Variant,
			"tokens":  opts.Theme.Tokens,
			"css":     CSSVarsStyle(opts.Theme.CSSVars),
		}
	}
	return view, nil
}
