package template

import (
	"io"
)

// TemplateRenderer is the engine contract renderers program against. The
// method set mirrors the github.com/goliatone/go-template engine so existing
// engines can satisfy it directly.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
