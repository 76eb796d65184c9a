package parser

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

// convertSchema maps a kin-openapi schema onto the neutral wrapper the
// form builder consumes. Only x-formflow annotations survive the
// conversion; other vendor extensions are dropped.
func convertSchema(ref *openapi3.SchemaRef) pkgopenapi.Schema {
	if ref == nil {
		return pkgopenapi.Schema{}
	}
	if ref.Value == nil {
		return pkgopenapi.Schema{Ref: ref.Ref}
	}
	src := ref.Value
	schema := pkgopenapi.Schema{
		Ref:         ref.Ref,
		Type:        firstSchemaType(src.Type),
		Format:      src.Format,
		Title:       src.Title,
		Description: src.Description,
		Default:     src.Default,
	}

	if len(src.Required) > 0 {
		schema.Required = append([]string(nil), src.Required...)
	}
	if len(src.Enum) > 0 {
		schema.Enum = append([]any(nil), src.Enum...)
	}
	if len(src.Properties) > 0 {
		properties := make(map[string]pkgopenapi.Schema, len(src.Properties))
		for name, property := range src.Properties {
			properties[name] = convertSchema(property)
		}
		schema.Properties = properties
	}
	if src.Items != nil {
		items := convertSchema(src.Items)
		schema.Items = &items
	}
	if src.Min != nil {
		value := *src.Min
		schema.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		schema.Maximum = &value
	}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		schema.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		schema.MaxLength = &value
	}
	if src.Pattern != "" {
		schema.Pattern = src.Pattern
	}
	schema.Extensions = extractExtensions(src.Extensions)
	mergeAllOfExtensions(&schema, src.AllOf)
	return schema
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ",")
	}
}

// extractExtensions keeps the formflow annotation keys and drops every
// other vendor extension.
func extractExtensions(raw map[string]any) map[string]any {
	if len(raw) == 0 {
		return nil
	}
	result := make(map[string]any)
	for key, value := range raw {
		if !pkgopenapi.IsExtension(key) {
			continue
		}
		result[key] = value
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// mergeAllOfExtensions folds annotations declared on allOf branches into
// the composed schema so annotated mixins keep working.
func mergeAllOfExtensions(target *pkgopenapi.Schema, refs openapi3.SchemaRefs) {
	if target == nil || len(refs) == 0 {
		return
	}
	for _, ref := range refs {
		if ref == nil || ref.Value == nil {
			continue
		}
		if ext := extractExtensions(ref.Value.Extensions); len(ext) > 0 {
			target.Extensions = mergeExtensions(target.Extensions, ext)
		}
		mergeAllOfExtensions(target, ref.Value.AllOf)
	}
}

// mergeExtensions overlays priority on top of base without mutating
// either map. Keys in priority win.
func mergeExtensions(base, priority map[string]any) map[string]any {
	if len(priority) == 0 {
		return base
	}
	merged := make(map[string]any, len(base)+len(priority))
	for key, value := range base {
		merged[key] = value
	}
	for key, value := range priority {
		merged[key] = value
	}
	return merged
}
