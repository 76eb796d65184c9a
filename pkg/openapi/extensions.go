package openapi

import (
	"sort"
	"strings"
)

// ExtensionNamespace prefixes every annotation the form builder reads
// from an OpenAPI document.
const ExtensionNamespace = "x-formflow"

// The recognised annotation keys. Schema-level keys describe the form;
// property-level keys describe one field.
const (
	// ExtensionKind overrides the field kind derived from type/format.
	ExtensionKind = ExtensionNamespace + "-kind"
	// ExtensionGroup assigns the field to a named group.
	ExtensionGroup = ExtensionNamespace + "-group"
	// ExtensionOptions lists selectable values, as strings or
	// {value, label} objects.
	ExtensionOptions = ExtensionNamespace + "-options"
	// ExtensionMirror declares checkbox copy semantics:
	// {sources, targets, notice}.
	ExtensionMirror = ExtensionNamespace + "-mirror"
	// ExtensionCountSlot names the element a counter renders its count
	// into.
	ExtensionCountSlot = ExtensionNamespace + "-count-slot"
	// ExtensionDefault sets the field's initial value.
	ExtensionDefault = ExtensionNamespace + "-default"
	// ExtensionVisibleWhen attaches a visibility expression to the
	// field's group.
	ExtensionVisibleWhen = ExtensionNamespace + "-visible-when"
	// ExtensionDraftKey names the key drafts of the form persist under.
	// Schema-level.
	ExtensionDraftKey = ExtensionNamespace + "-draft-key"
)

var knownExtensions = map[string]bool{
	ExtensionKind:        true,
	ExtensionGroup:       true,
	ExtensionOptions:     true,
	ExtensionMirror:      true,
	ExtensionCountSlot:   true,
	ExtensionDefault:     true,
	ExtensionVisibleWhen: true,
	ExtensionDraftKey:    true,
}

// IsExtension reports whether the key sits inside the formflow
// annotation namespace.
func IsExtension(key string) bool {
	return key == ExtensionNamespace || strings.HasPrefix(key, ExtensionNamespace+"-")
}

// KnownExtension reports whether the key is a recognised annotation.
func KnownExtension(key string) bool {
	return knownExtensions[key]
}

// KnownExtensions returns the recognised annotation keys in sorted order.
func KnownExtensions() []string {
	keys := make([]string, 0, len(knownExtensions))
	for key := range knownExtensions {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
