package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers depend on. Render loads a
// named template (the engine appends its extension); RenderString parses
// inline content. GlobalContext merges values every template can read.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
