package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/widgets"
)

// Name is the registry name of this renderer.
const Name = "tui"

// Renderer prints sections as styled text and drives terminal prompts for
// login and form filling.
type Renderer struct {
	driver  PromptDriver
	out     io.Writer
	styles  Styles
	widgets *widgets.Registry
	logger  *zap.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, colored styles).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		styles: DefaultStyles(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the format produced by RenderSection.
func (r *Renderer) ContentType() string {
	return "text/plain; charset=utf-8"
}

// RenderSection prints the active section: heading, progress, every field
// with its current value and any validation error below it.
func (r *Renderer) RenderSection(_ context.Context, form model.FormStructure, options render.RenderOptions) ([]byte, error) {
	view, err := render.BuildView(form, options, render.WithWidgetRegistry(r.widgets))
	if err != nil {
		return nil, fmt.Errorf("tui: %w", err)
	}

	var b strings.Builder
	if view.FormTitle != "" {
		b.WriteString(r.styles.Title.Render(view.FormTitle))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Muted.Render(fmt.Sprintf("Section %d of %d", view.Step, view.Count)))
	b.WriteString("\n")
	if view.Section.Title != "" {
		b.WriteString(r.styles.Section.Render(view.Section.Title))
		b.WriteString("\n")
	}
	if view.Section.Description != "" {
		b.WriteString(r.styles.Muted.Render(view.Section.Description))
		b.WriteString("\n")
	}
	for _, message := range view.FormErrors {
		b.WriteString(r.styles.Error.Render(message))
		b.WriteString("\n")
	}
	for _, message := range view.Notices {
		b.WriteString(r.styles.Notice.Render(message))
		b.WriteString("\n")
	}

	for _, field := range view.Fields {
		b.WriteString("  ")
		b.WriteString(r.label(field))
		b.WriteString(": ")
		b.WriteString(displayValue(field))
		b.WriteString("\n")
		if field.Error != "" {
			b.WriteString("    ")
			b.WriteString(r.styles.Error.Render(field.Error))
			b.WriteString("\n")
		}
	}
	return []byte(b.String()), nil
}

func (r *Renderer) label(field render.FieldView) string {
	label := r.styles.Label.Render(field.Label)
	if field.Required {
		label += r.styles.Required.Render("*")
	}
	return label
}

func displayValue(field render.FieldView) string {
	if len(field.Options) == 0 {
		return field.Value
	}
	var selected []string
	for _, opt := range field.Options {
		if opt.Selected && opt.Value != "" {
			selected = append(selected, opt.Label)
		}
	}
	return strings.Join(selected, ", ")
}
