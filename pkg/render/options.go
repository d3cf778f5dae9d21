package render

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formflow/pkg/model"
	"github.com/goliatone/go-formflow/pkg/validation"
)

// RenderOptions carry the per-request state a renderer needs to draw one
// section. The form itself stays read-only.
type RenderOptions struct {
	// Index selects the active section.
	Index int
	// Values holds the current value of every field. Missing entries render
	// as the field type's zero value.
	Values model.Values
	// Errors maps field ids to the message shown next to the control.
	Errors validation.Errors
	// FormErrors are shown above the section (remote failures, sink errors).
	FormErrors []string
	// Notices are non-error banners such as a submission confirmation.
	Notices []string
	// Hidden inputs emitted inside the form element.
	Hidden map[string]string
	// Action is the URL the form posts to.
	Action string
	// Theme supplies design tokens; renderers that support it expose them as
	// CSS custom properties.
	Theme *theme.RendererConfig
}
