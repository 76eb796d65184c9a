package openapi

import (
	"context"

	"github.com/goliatone/go-formflow/pkg/formdef"
)

// Parser turns a raw OpenAPI document into a validated form definition.
// The parser locates the form schema, by default the request body of the
// document's single POST operation unless an operation id is pinned, and
// builds the definition from its properties and x-formflow annotations.
type Parser interface {
	Parse(ctx context.Context, doc *Document) (*formdef.Form, error)
}

// ParserOptions exposes the parsing toggles.
type ParserOptions struct {
	// OperationID pins the operation whose request body describes the
	// form. Empty requires the document to contain exactly one POST
	// operation with a request body.
	OperationID string

	// ValidateDocument runs kin-openapi document validation before the
	// schema is extracted. Defaults to true; example payloads are not
	// validated either way.
	ValidateDocument bool
}

// ParserOption mutates ParserOptions during construction.
type ParserOption func(*ParserOptions)

// WithOperationID pins the operation that describes the form.
func WithOperationID(id string) ParserOption {
	return func(opts *ParserOptions) {
		opts.OperationID = id
	}
}

// WithDocumentValidation toggles kin-openapi document validation.
func WithDocumentValidation(enabled bool) ParserOption {
	return func(opts *ParserOptions) {
		opts.ValidateDocument = enabled
	}
}

// NewParserOptions applies ParserOption functions and returns the
// resulting configuration. Implementations under internal/openapi call
// this helper to stay consistent.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{
		ValidateDocument: true,
	}
	for _, opt := range options {
		opt(&cfg)
	}
	return cfg
}

// Construction helpers live in the top-level formflow package to avoid import cycles.
