package formflow

import (
	"context"

	internalLoader "github.com/goliatone/go-formflow/internal/openapi/loader"
	internalParser "github.com/goliatone/go-formflow/internal/openapi/parser"
	"github.com/goliatone/go-formflow/pkg/formdef"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

// NewLoader constructs an OpenAPI document loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewLoader(options ...pkgopenapi.LoaderOption) pkgopenapi.Loader {
	cfg := pkgopenapi.NewLoaderOptions(options...)
	return internalLoader.New(cfg)
}

// NewParser constructs a definition parser backed by the internal
// implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	cfg := pkgopenapi.NewParserOptions(options...)
	return internalParser.New(cfg)
}

// LoadForm resolves a definition by built-in name ("order",
// "registration") or by the path of a definition document.
func LoadForm(ctx context.Context, nameOrPath string) (*formdef.Form, error) {
	if form, ok := formdef.Builtin(nameOrPath); ok {
		return form, nil
	}
	return formdef.LoadFile(ctx, nameOrPath)
}

// FromOpenAPI loads an annotated OpenAPI document from the source and
// derives a form definition from it.
func FromOpenAPI(ctx context.Context, src pkgopenapi.Source, options ...pkgopenapi.ParserOption) (*formdef.Form, error) {
	doc, err := NewLoader().Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return NewParser(options...).Parse(ctx, doc)
}
