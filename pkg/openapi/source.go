package openapi

import (
	"io"
	"path/filepath"
)

// fileSource identifies on-disk OpenAPI documents.
type fileSource struct {
	path string
}

func (s fileSource) Location() string {
	return s.path
}

func (s fileSource) Kind() SourceKind {
	return SourceKindFile
}

// SourceFromFile returns a Source pointing to a file path.
func SourceFromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

// fsSource references a path within an fs.FS.
type fsSource struct {
	name string
}

func (s fsSource) Location() string {
	return s.name
}

func (s fsSource) Kind() SourceKind {
	return SourceKindFS
}

// SourceFromFS returns a Source identifying a resource inside an fs.FS.
func SourceFromFS(name string) Source {
	return fsSource{name: name}
}

// ReaderSource is satisfied by sources that carry their own payload
// stream. Loaders type-assert it when handling SourceKindReader.
type ReaderSource interface {
	Source
	Reader() io.Reader
}

// readerSource wraps an in-memory or streamed document, such as stdin.
type readerSource struct {
	name   string
	reader io.Reader
}

func (s readerSource) Location() string {
	return s.name
}

func (s readerSource) Kind() SourceKind {
	return SourceKindReader
}

func (s readerSource) Reader() io.Reader {
	return s.reader
}

// SourceFromReader returns a Source streaming the document from r. The
// name only labels errors and has no filesystem meaning.
func SourceFromReader(name string, r io.Reader) Source {
	if name == "" {
		name = "reader"
	}
	return readerSource{name: name, reader: r}
}
