package openapi

import (
	"errors"
	"fmt"
	"sort"
)

// Source identifies where an OpenAPI document originated so loaders can
// operate on files, fs.FS entries, or in-memory readers without leaking
// implementation details.
type Source interface {
	Kind() SourceKind
	Location() string
}

// SourceKind enumerates the loader modalities.
type SourceKind string

const (
	SourceKindFile   SourceKind = "file"
	SourceKindFS     SourceKind = "fs"
	SourceKindReader SourceKind = "reader"
)

// Document wraps the raw OpenAPI payload and its origin. Exposing this
// type instead of kin-openapi structs keeps the public API decoupled
// from the parsing library.
type Document struct {
	source Source
	raw    []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (*Document, error) {
	if src == nil {
		return nil, errors.New("openapi: source is required")
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: raw document is empty")
	}

	clone := append([]byte(nil), raw...)
	return &Document{source: src, raw: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) *Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d *Document) Source() Source {
	if d == nil {
		return nil
	}
	return d.source
}

// Raw returns a defensive copy of the OpenAPI payload.
func (d *Document) Raw() []byte {
	if d == nil {
		return nil
	}
	return append([]byte(nil), d.raw...)
}

// Location returns the string identifier for the origin.
func (d *Document) Location() string {
	if d == nil || d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Schema is the neutral subset of an OpenAPI schema the form builder
// consumes. Order carries the property declaration order of the source
// document, which map-typed parsers discard.
type Schema struct {
	Ref         string
	Type        string
	Format      string
	Title       string
	Description string
	Required    []string
	Properties  map[string]Schema
	Order       []string
	Items       *Schema
	Enum        []any
	Default     any
	Minimum     *float64
	Maximum     *float64
	MinLength   *int
	MaxLength   *int
	Pattern     string
	Extensions  map[string]any
}

// PropertyNames returns the property names in declaration order when the
// parser recovered it, and in sorted order otherwise.
func (s Schema) PropertyNames() []string {
	if len(s.Order) > 0 {
		return append([]string(nil), s.Order...)
	}
	if len(s.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(s.Properties))
	for name := range s.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RequiredProperty reports whether the named property is listed as
// required by this schema.
func (s Schema) RequiredProperty(name string) bool {
	for _, required := range s.Required {
		if required == name {
			return true
		}
	}
	return false
}

// Clone creates a deep copy of the schema tree to avoid accidental mutation.
func (s Schema) Clone() Schema {
	cloned := s
	if len(s.Required) > 0 {
		cloned.Required = append([]string(nil), s.Required...)
	}
	if len(s.Order) > 0 {
		cloned.Order = append([]string(nil), s.Order...)
	}
	if len(s.Enum) > 0 {
		cloned.Enum = append([]any(nil), s.Enum...)
	}
	if len(s.Properties) > 0 {
		cloned.Properties = make(map[string]Schema, len(s.Properties))
		for k, v := range s.Properties {
			cloned.Properties[k] = v.Clone()
		}
	}
	if s.Items != nil {
		items := s.Items.Clone()
		cloned.Items = &items
	}
	if s.Minimum != nil {
		value := *s.Minimum
		cloned.Minimum = &value
	}
	if s.Maximum != nil {
		value := *s.Maximum
		cloned.Maximum = &value
	}
	if s.MinLength != nil {
		value := *s.MinLength
		cloned.MinLength = &value
	}
	if s.MaxLength != nil {
		value := *s.MaxLength
		cloned.MaxLength = &value
	}
	if len(s.Extensions) > 0 {
		cloned.Extensions = make(map[string]any, len(s.Extensions))
		for k, v := range s.Extensions {
			cloned.Extensions[k] = v
		}
	}
	return cloned
}

// Validate performs basic sanity checks useful before handing the schema
// to the form builder.
func (s Schema) Validate() error {
	if s.Type == "" && s.Ref == "" {
		return errors.New("openapi: schema requires either type or ref")
	}
	if s.Type == "array" && s.Items == nil {
		return errors.New("openapi: array schema must define items")
	}
	return nil
}

// DebugString renders a short summary of the schema for logging without
// dumping the full tree.
func (s Schema) DebugString() string {
	summary := fmt.Sprintf("type=%s", s.Type)
	if s.Ref != "" {
		summary += fmt.Sprintf(",ref=%s", s.Ref)
	}
	if len(s.Required) > 0 {
		summary += fmt.Sprintf(",required=%d", len(s.Required))
	}
	if len(s.Properties) > 0 {
		summary += fmt.Sprintf(",properties=%d", len(s.Properties))
	}
	if len(s.Extensions) > 0 {
		summary += fmt.Sprintf(",extensions=%d", len(s.Extensions))
	}
	if s.Items != nil {
		summary += ",items=true"
	}
	return summary
}
