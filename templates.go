package formflow

import (
	"io/fs"

	"github.com/goliatone/go-formflow/pkg/render/template"
	"github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in vanilla renderer templates so
// callers can reuse or extend them without importing the renderer
// package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// NewTemplateEngine constructs the template renderer the vanilla
// renderer uses for page shells, ready for custom templates.
func NewTemplateEngine(options ...gotemplate.Option) (template.TemplateRenderer, error) {
	return gotemplate.New(options...)
}
