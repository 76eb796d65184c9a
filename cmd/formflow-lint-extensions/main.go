package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formflow/pkg/formdef"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/visibility/expr"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint OpenAPI documents for unknown or malformed x-formflow annotations.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{
			"internal/openapi/testdata/icecream.yaml",
		}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	return walk(path, nil, node), nil
}

// walk descends the raw document tree so annotations are checked wherever
// they sit: inline request schemas, shared component schemas, allOf
// branches, and operation objects alike.
func walk(file string, path []string, node *yaml.Node) []violation {
	if node == nil {
		return nil
	}

	var result []violation
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			value := node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				continue
			}
			if pkgopenapi.IsExtension(key.Value) {
				result = append(result, checkExtension(file, path, key.Value, value)...)
				continue
			}
			result = append(result, walk(file, appendPath(path, key.Value), value)...)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			result = append(result, walk(file, appendPath(path, fmt.Sprintf("[%d]", i)), item)...)
		}
	case yaml.AliasNode:
		// Anchored content is linted where it is declared.
	}
	return result
}

func checkExtension(file string, path []string, key string, value *yaml.Node) []violation {
	at := appendPath(path, key)

	if !pkgopenapi.KnownExtension(key) {
		return []violation{{
			file:     file,
			location: formatLocation(at),
			message:  fmt.Sprintf("unknown annotation %q (supported: %s)", key, strings.Join(pkgopenapi.KnownExtensions(), ", ")),
		}}
	}

	switch key {
	case pkgopenapi.ExtensionKind:
		return checkKind(file, at, value)
	case pkgopenapi.ExtensionGroup, pkgopenapi.ExtensionCountSlot, pkgopenapi.ExtensionDraftKey:
		return checkNonBlankString(file, at, key, value)
	case pkgopenapi.ExtensionVisibleWhen:
		return checkVisibleWhen(file, at, value)
	case pkgopenapi.ExtensionDefault:
		return checkScalar(file, at, key, value)
	case pkgopenapi.ExtensionOptions:
		return checkOptions(file, at, value)
	case pkgopenapi.ExtensionMirror:
		return checkMirror(file, at, value)
	}
	return nil
}

func checkKind(file string, at []string, value *yaml.Node) []violation {
	var kind string
	if err := value.Decode(&kind); err != nil {
		return []violation{fail(file, at, "kind must be a string")}
	}
	if !formdef.KnownKind(formdef.Kind(kind)) {
		known := formdef.Kinds()
		names := make([]string, len(known))
		for i, k := range known {
			names[i] = string(k)
		}
		return []violation{fail(file, at, fmt.Sprintf("unknown kind %q (known: %s)", kind, strings.Join(names, ", ")))}
	}
	return nil
}

func checkNonBlankString(file string, at []string, key string, value *yaml.Node) []violation {
	var s string
	if err := value.Decode(&s); err != nil {
		return []violation{fail(file, at, fmt.Sprintf("%s must be a string", key))}
	}
	if strings.TrimSpace(s) == "" {
		return []violation{fail(file, at, fmt.Sprintf("%s must not be blank", key))}
	}
	return nil
}

func checkVisibleWhen(file string, at []string, value *yaml.Node) []violation {
	var rule string
	if err := value.Decode(&rule); err != nil {
		return []violation{fail(file, at, "visibility expression must be a string")}
	}
	if _, err := expr.Compile(rule); err != nil {
		return []violation{fail(file, at, fmt.Sprintf("visibility expression does not compile: %v", err))}
	}
	return nil
}

func checkScalar(file string, at []string, key string, value *yaml.Node) []violation {
	if value.Kind != yaml.ScalarNode {
		return []violation{fail(file, at, fmt.Sprintf("%s must be a string, number, or boolean", key))}
	}
	return nil
}

func checkOptions(file string, at []string, value *yaml.Node) []violation {
	if value.Kind != yaml.SequenceNode {
		return []violation{fail(file, at, "options must be a list")}
	}

	var result []violation
	for i, item := range value.Content {
		entryAt := appendPath(at, fmt.Sprintf("[%d]", i))
		switch item.Kind {
		case yaml.ScalarNode:
			var s string
			if err := item.Decode(&s); err != nil {
				result = append(result, fail(file, entryAt, "option entries must be strings or {value, label} objects"))
			}
		case yaml.MappingNode:
			result = append(result, checkOptionMapping(file, entryAt, item)...)
		default:
			result = append(result, fail(file, entryAt, "option entries must be strings or {value, label} objects"))
		}
	}
	return result
}

func checkOptionMapping(file string, at []string, item *yaml.Node) []violation {
	var result []violation
	for i := 0; i+1 < len(item.Content); i += 2 {
		key := item.Content[i].Value
		if key != "value" && key != "label" {
			result = append(result, fail(file, at, fmt.Sprintf("option objects accept value and label only, found %q", key)))
		}
	}

	var option struct {
		Value string `yaml:"value"`
		Label string `yaml:"label"`
	}
	if err := item.Decode(&option); err != nil {
		result = append(result, fail(file, at, "option objects must carry string value and label"))
		return result
	}
	if strings.TrimSpace(option.Value) == "" {
		result = append(result, fail(file, at, "option value must not be blank"))
	}
	return result
}

func checkMirror(file string, at []string, value *yaml.Node) []violation {
	if value.Kind != yaml.MappingNode {
		return []violation{fail(file, at, "mirror must be a {sources, targets, notice} object")}
	}

	var result []violation
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		if key != "sources" && key != "targets" && key != "notice" {
			result = append(result, fail(file, at, fmt.Sprintf("mirror accepts sources, targets and notice only, found %q", key)))
		}
	}

	var mirror struct {
		Sources []string `yaml:"sources"`
		Targets []string `yaml:"targets"`
		Notice  string   `yaml:"notice"`
	}
	if err := value.Decode(&mirror); err != nil {
		result = append(result, fail(file, at, "mirror sources and targets must be lists of field names"))
		return result
	}

	if len(mirror.Sources) == 0 {
		result = append(result, fail(file, at, "mirror needs at least one source field"))
	}
	if len(mirror.Sources) != len(mirror.Targets) {
		result = append(result, fail(file, at, fmt.Sprintf("mirror pairs sources with targets: %d sources, %d targets", len(mirror.Sources), len(mirror.Targets))))
	}
	for _, name := range append(append([]string{}, mirror.Sources...), mirror.Targets...) {
		if strings.TrimSpace(name) == "" {
			result = append(result, fail(file, at, "mirror field names must not be blank"))
			break
		}
	}
	return result
}

func fail(file string, at []string, message string) violation {
	return violation{file: file, location: formatLocation(at), message: message}
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
