package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

// Loader implements pkgopenapi.Loader by delegating to file, fs.FS, or
// reader strategies. Construction helpers live in the top-level formflow
// package.
type Loader struct {
	fs         fs.FS
	maxSize    int64
	extensions map[string]bool
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options pkgopenapi.LoaderOptions) pkgopenapi.Loader {
	extensions := make(map[string]bool, len(options.Extensions))
	for _, ext := range options.Extensions {
		extensions[strings.ToLower(ext)] = true
	}

	return &Loader{
		fs:         options.FileSystem,
		maxSize:    options.MaxDocumentSize,
		extensions: extensions,
	}
}

// Load fetches a document from the provided source and wraps it in a
// Document.
func (l *Loader) Load(ctx context.Context, src pkgopenapi.Source) (*pkgopenapi.Document, error) {
	if src == nil {
		return nil, errors.New("openapi loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case pkgopenapi.SourceKindFile:
		if err := l.checkExtension(src.Location()); err != nil {
			return nil, err
		}
		data, err = loadFile(ctx, src.Location(), l.maxSize)
	case pkgopenapi.SourceKindFS:
		if err := l.checkExtension(src.Location()); err != nil {
			return nil, err
		}
		data, err = loadFromFS(ctx, l.fs, src.Location(), l.maxSize)
	case pkgopenapi.SourceKindReader:
		data, err = loadFromReader(ctx, src, l.maxSize)
	default:
		err = errors.New("openapi loader: unsupported source kind")
	}
	if err != nil {
		return nil, err
	}

	return pkgopenapi.NewDocument(src, data)
}

func (l *Loader) checkExtension(name string) error {
	if len(l.extensions) == 0 {
		return nil
	}
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(name, "\\", "/")))
	if ext == "" || !l.extensions[ext] {
		return fmt.Errorf("openapi loader: %s is not an accepted document extension", name)
	}
	return nil
}
