package formdef

import (
	"fmt"
	"strconv"
	"strings"

	pkgformdef "github.com/goliatone/go-formflow/pkg/formdef"
)

// stringExtension returns the annotation value as a trimmed string. A
// present key with a non-string or blank value is an error; an absent
// key returns ok=false.
func stringExtension(extensions map[string]any, key string) (string, bool, error) {
	raw, present := extensions[key]
	if !present {
		return "", false, nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", false, fmt.Errorf("%s must be a string", key)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false, fmt.Errorf("%s must not be blank", key)
	}
	return value, true, nil
}

// optionsExtension decodes an x-formflow-options list. Entries are either
// plain strings or {value, label} mappings.
func optionsExtension(raw any, labeler func(string) string) ([]pkgformdef.Option, error) {
	entries, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("must be a list of strings or {value, label} entries")
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("must not be empty")
	}

	options := make([]pkgformdef.Option, 0, len(entries))
	for i, entry := range entries {
		switch value := entry.(type) {
		case string:
			options = append(options, pkgformdef.Option{Value: value, Label: labeler(value)})
		case map[string]any:
			option, err := optionFromMapping(value)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			if option.Label == "" {
				option.Label = labeler(option.Value)
			}
			options = append(options, option)
		default:
			return nil, fmt.Errorf("entry %d must be a string or a {value, label} mapping", i)
		}
	}
	return options, nil
}

func optionFromMapping(entry map[string]any) (pkgformdef.Option, error) {
	value, ok := entry["value"].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return pkgformdef.Option{}, fmt.Errorf("missing a string value")
	}
	option := pkgformdef.Option{Value: value}
	if label, ok := entry["label"].(string); ok {
		option.Label = label
	}
	return option, nil
}

// mirrorExtension decodes an x-formflow-mirror mapping with sources,
// targets, and an optional notice.
func mirrorExtension(raw any) (*pkgformdef.Mirror, error) {
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("must be a mapping with sources and targets")
	}

	sources, err := stringList(mapping["sources"])
	if err != nil {
		return nil, fmt.Errorf("sources %w", err)
	}
	targets, err := stringList(mapping["targets"])
	if err != nil {
		return nil, fmt.Errorf("targets %w", err)
	}

	mirror := &pkgformdef.Mirror{Sources: sources, Targets: targets}
	if notice, ok := mapping["notice"].(string); ok {
		mirror.BlockedNotice = notice
	}
	return mirror, nil
}

func stringList(raw any) ([]string, error) {
	entries, ok := raw.([]any)
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("must be a non-empty list of field keys")
	}
	out := make([]string, 0, len(entries))
	for i, entry := range entries {
		value, ok := entry.(string)
		if !ok || strings.TrimSpace(value) == "" {
			return nil, fmt.Errorf("entry %d must be a field key", i)
		}
		out = append(out, value)
	}
	return out, nil
}

// formatDefault renders a schema default as the string form the
// definition carries: booleans as true/false, integral numbers without a
// fraction, everything else via Sprint.
func formatDefault(raw any) string {
	switch value := raw.(type) {
	case nil:
		return ""
	case string:
		return value
	case bool:
		return strconv.FormatBool(value)
	case float64:
		if value == float64(int64(value)) {
			return strconv.FormatInt(int64(value), 10)
		}
		return strconv.FormatFloat(value, 'f', -1, 64)
	case int:
		return strconv.Itoa(value)
	case int64:
		return strconv.FormatInt(value, 10)
	default:
		return fmt.Sprint(value)
	}
}
