package parser

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// propertyOrder recovers the property declaration order of the located
// request schema. kin-openapi stores properties in maps, which lose the
// document order the form builder preserves as field order. Works for
// JSON payloads too since YAML is a superset.
func propertyOrder(raw []byte, path, method, mediaType, ref string) []string {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil
	}
	doc := documentNode(&root)
	if doc == nil {
		return nil
	}

	var schema *yaml.Node
	if ref != "" {
		schema = resolveRef(doc, ref)
	} else {
		schema = requestSchemaNode(doc, path, method, mediaType)
	}
	schema = deref(doc, schema)
	if schema == nil {
		return nil
	}

	properties := deref(doc, mappingValue(schema, "properties"))
	if properties == nil || properties.Kind != yaml.MappingNode {
		return nil
	}
	order := make([]string, 0, len(properties.Content)/2)
	for i := 0; i+1 < len(properties.Content); i += 2 {
		order = append(order, properties.Content[i].Value)
	}
	return order
}

func requestSchemaNode(doc *yaml.Node, path, method, mediaType string) *yaml.Node {
	paths := mappingValue(doc, "paths")
	item := deref(doc, mappingValue(paths, path))
	operation := mappingValue(item, strings.ToLower(method))
	body := deref(doc, mappingValue(operation, "requestBody"))
	content := mappingValue(body, "content")
	mt := mappingValue(content, mediaType)
	return mappingValue(mt, "schema")
}

func documentNode(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		return root.Content[0]
	}
	return root
}

// mappingValue returns the value node for key within a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// resolveRef walks a local JSON pointer such as
// #/components/schemas/Order through the document node.
func resolveRef(doc *yaml.Node, ref string) *yaml.Node {
	if !strings.HasPrefix(ref, "#/") {
		return nil
	}
	node := doc
	for _, segment := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		node = mappingValue(node, segment)
		if node == nil {
			return nil
		}
	}
	return node
}

// deref follows $ref chains a bounded number of hops so a reference
// cycle cannot loop forever.
func deref(doc, node *yaml.Node) *yaml.Node {
	for hops := 0; node != nil && hops < 8; hops++ {
		refNode := mappingValue(node, "$ref")
		if refNode == nil {
			return node
		}
		node = resolveRef(doc, refNode.Value)
	}
	return node
}
