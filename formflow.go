// Package formflow renders and validates dynamic multi-section forms served
// by a remote form service. The root package re-exports the common types and
// offers one-call helpers; the building blocks live under pkg/.
package formflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formflow/pkg/controller"
	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/html"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/sink"
)

// FormStructure aliases model.FormStructure.
type FormStructure = model.FormStructure

// Values aliases model.Values.
type Values = model.Values

// RenderOptions aliases render.RenderOptions.
type RenderOptions = render.RenderOptions

// Submission aliases sink.Submission.
type Submission = sink.Submission

// RendererOptions groups the options of the built-in renderers.
type RendererOptions struct {
	HTML []html.Option
	TUI  []tui.Option
}

// NewRendererRegistry registers the html and tui renderers. html is the
// default.
func NewRendererRegistry(opts RendererOptions) (*render.Registry, error) {
	reg := render.NewRegistry()
	htmlRenderer, err := html.New(opts.HTML...)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(htmlRenderer); err != nil {
		return nil, err
	}
	tuiRenderer, err := tui.New(opts.TUI...)
	if err != nil {
		return nil, err
	}
	if err := reg.Register(tuiRenderer); err != nil {
		return nil, err
	}
	return reg, nil
}

// DecodeForm parses a form document, either the fetch-form envelope or a
// bare form, and checks it against the form contract.
func DecodeForm(body []byte) (FormStructure, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if _, ok := envelope["form"]; ok {
			resp, err := session.DecodeFormResponse(body)
			if err != nil {
				return FormStructure{}, err
			}
			return resp.Form, nil
		}
	}
	return session.DecodeFormStructure(body)
}

// RenderSection renders one section with the named built-in renderer. An
// empty name selects html.
func RenderSection(ctx context.Context, form FormStructure, rendererName string, opts RenderOptions) ([]byte, error) {
	reg, err := NewRendererRegistry(RendererOptions{})
	if err != nil {
		return nil, err
	}
	renderer, err := reg.Resolve(rendererName)
	if err != nil {
		return nil, err
	}
	if opts.Values == nil {
		opts.Values = model.NewValues(form)
	}
	out, err := renderer.RenderSection(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("formflow: %w", err)
	}
	return out, nil
}

// NewController starts a form session at its first section.
func NewController(form FormStructure, opts ...controller.Option) (*controller.Controller, error) {
	return controller.New(form, opts...)
}

// EmbeddedTemplates exposes the html renderer templates so callers can copy
// and extend them.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}

// AssetsFS exposes the default stylesheet.
//
// Typical mount:
//
//	mux.Handle("/assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(formflow.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return html.AssetsFS()
}
