package render

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Renderer turns the active section of a form into a byte representation
// (HTML, terminal text, ...).
type Renderer interface {
	Name() string
	ContentType() string
	RenderSection(ctx context.Context, form model.FormStructure, options RenderOptions) ([]byte, error)
}
