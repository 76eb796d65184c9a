package openapi

import (
	"context"
	"io/fs"
)

// DefaultMaxDocumentSize caps how many bytes a loader reads from any
// source. Annotated form specs are small; the cap guards against a
// mistyped path pointing at something huge.
const DefaultMaxDocumentSize int64 = 4 << 20

// DefaultExtensions lists the document extensions loaders accept.
var DefaultExtensions = []string{".json", ".yaml", ".yml"}

// Loader fetches OpenAPI documents from a Source. Implementations live
// under internal/openapi but satisfy this contract.
type Loader interface {
	Load(ctx context.Context, src Source) (*Document, error)
}

// LoaderOptions configures how a Loader resolves sources.
type LoaderOptions struct {
	// FileSystem enables loading from an abstract filesystem; file
	// sources fall back to the operating system when nil.
	FileSystem fs.FS

	// MaxDocumentSize caps the payload size in bytes. Zero applies
	// DefaultMaxDocumentSize.
	MaxDocumentSize int64

	// Extensions restricts file and fs sources to the listed document
	// extensions. Empty applies DefaultExtensions. Reader sources are
	// exempt since they carry no filename.
	Extensions []string
}

// LoaderOption mutates LoaderOptions prior to construction.
type LoaderOption func(*LoaderOptions)

// WithFileSystem injects an fs.FS implementation for fs sources.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.FileSystem = files
	}
}

// WithMaxDocumentSize overrides the payload size cap.
func WithMaxDocumentSize(limit int64) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.MaxDocumentSize = limit
	}
}

// WithExtensions overrides the accepted document extensions.
func WithExtensions(exts ...string) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Extensions = append([]string(nil), exts...)
	}
}

// NewLoaderOptions applies a set of LoaderOption values and returns the
// resulting configuration with defaults filled in.
func NewLoaderOptions(options ...LoaderOption) LoaderOptions {
	cfg := LoaderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.MaxDocumentSize <= 0 {
		cfg.MaxDocumentSize = DefaultMaxDocumentSize
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = append([]string(nil), DefaultExtensions...)
	}
	return cfg
}

// Construction helpers live in the top-level formflow package to prevent import cycles.
