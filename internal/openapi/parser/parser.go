package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	builder "github.com/goliatone/go-formflow/internal/formdef"
	pkgformdef "github.com/goliatone/go-formflow/pkg/formdef"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

// Parser implements pkgopenapi.Parser using kin-openapi. It locates the
// form schema (the request body of the document's single POST operation,
// unless an operation id is pinned) and hands it to the form builder.
type Parser struct {
	options pkgopenapi.ParserOptions
	builder *builder.Builder
}

// Ensure the implementation satisfies the public interface.
var _ pkgopenapi.Parser = (*Parser)(nil)

// New constructs a Parser with the given options.
func New(options pkgopenapi.ParserOptions) pkgopenapi.Parser {
	return &Parser{
		options: options,
		builder: builder.New(builder.Options{}),
	}
}

// Parse converts a raw OpenAPI document into a validated form definition.
func (p *Parser) Parse(ctx context.Context, doc *pkgopenapi.Document) (*pkgformdef.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("openapi parser: document is nil")
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return nil, errors.New("openapi parser: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: load document: %w", err)
	}
	if p.options.ValidateDocument {
		if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
			return nil, fmt.Errorf("openapi parser: validate: %w", err)
		}
	}

	located, err := p.locateOperation(spec)
	if err != nil {
		return nil, err
	}

	schemaRef, mediaType, err := requestSchema(located.op)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: operation %q: %w", located.id, err)
	}

	schema := convertSchema(schemaRef)
	schema.Extensions = mergeExtensions(extractExtensions(located.op.Extensions), schema.Extensions)
	if order := propertyOrder(raw, located.path, located.method, mediaType, schemaRef.Ref); len(order) > 0 {
		schema.Order = order
	}

	src := builder.Source{
		Name:   formName(located),
		Schema: schema,
	}
	if schema.Title == "" {
		src.Title = strings.TrimSpace(located.op.Summary)
	}

	form, err := p.builder.Build(src)
	if err != nil {
		return nil, fmt.Errorf("openapi parser: %w", err)
	}
	return form, nil
}

// locatedOperation pairs an operation with the routing metadata kin
// indexes it by.
type locatedOperation struct {
	id     string
	method string
	path   string
	op     *openapi3.Operation
}

func (p *Parser) locateOperation(spec *openapi3.T) (locatedOperation, error) {
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return locatedOperation{}, errors.New("openapi parser: document does not contain any paths")
	}

	if p.options.OperationID != "" {
		for path, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range pathOperations(item) {
				if op == nil || op.OperationID != p.options.OperationID {
					continue
				}
				if op.RequestBody == nil {
					return locatedOperation{}, fmt.Errorf("openapi parser: operation %q has no request body", p.options.OperationID)
				}
				return locatedOperation{id: p.options.OperationID, method: method, path: path, op: op}, nil
			}
		}
		return locatedOperation{}, fmt.Errorf("openapi parser: operation %q not found", p.options.OperationID)
	}

	var found []locatedOperation
	for path, item := range spec.Paths.Map() {
		if item == nil || item.Post == nil || item.Post.RequestBody == nil {
			continue
		}
		id := item.Post.OperationID
		if id == "" {
			id = "post:" + path
		}
		found = append(found, locatedOperation{id: id, method: "POST", path: path, op: item.Post})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].path < found[j].path })

	switch len(found) {
	case 0:
		return locatedOperation{}, errors.New("openapi parser: document has no POST operation with a request body")
	case 1:
		return found[0], nil
	default:
		ids := make([]string, 0, len(found))
		for _, op := range found {
			ids = append(ids, op.id)
		}
		return locatedOperation{}, fmt.Errorf("openapi parser: document has %d candidate operations (%s); pin one by operation id", len(found), strings.Join(ids, ", "))
	}
}

func pathOperations(item *openapi3.PathItem) map[string]*openapi3.Operation {
	return map[string]*openapi3.Operation{
		"GET":     item.Get,
		"PUT":     item.Put,
		"POST":    item.Post,
		"DELETE":  item.Delete,
		"PATCH":   item.Patch,
		"HEAD":    item.Head,
		"OPTIONS": item.Options,
		"TRACE":   item.Trace,
	}
}

// mediaTypePreference orders the request content types a form schema is
// expected under.
var mediaTypePreference = []string{
	"application/json",
	"application/x-www-form-urlencoded",
	"multipart/form-data",
}

func requestSchema(op *openapi3.Operation) (*openapi3.SchemaRef, string, error) {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil, "", errors.New("request body is missing")
	}
	content := op.RequestBody.Value.Content
	if len(content) == 0 {
		return nil, "", errors.New("request body has no content")
	}

	for _, mediaType := range mediaTypePreference {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema, mediaType, nil
		}
	}

	names := make([]string, 0, len(content))
	for name := range content {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if mt := content[name]; mt.Schema != nil {
			return mt.Schema, name, nil
		}
	}
	return nil, "", errors.New("request body declares no schema")
}

// formName slugs the operation id, falling back to the path, so the
// derived definition addresses DOM ids and draft keys the same way
// hand-written ones do.
func formName(located locatedOperation) string {
	if name := slug(located.op.OperationID); name != "" {
		return name
	}
	return slug(located.path)
}

func slug(input string) string {
	var out strings.Builder
	var prev rune
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			if prev >= 'a' && prev <= 'z' || prev >= '0' && prev <= '9' {
				out.WriteRune('-')
			}
			out.WriteRune(r - 'A' + 'a')
		default:
			r = '-'
			if out.Len() > 0 && prev != '-' {
				out.WriteRune('-')
			}
		}
		prev = r
	}
	return strings.Trim(out.String(), "-")
}
