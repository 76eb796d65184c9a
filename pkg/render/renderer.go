package render

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
)

// Renderer converts a form definition plus its projected view into a
// byte representation (HTML, terminal output, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *formdef.Form, view formstate.View, options Options) ([]byte, error)
}
