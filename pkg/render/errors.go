package render

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/validate"
)

// ErrorMapping splits validator output into per-slot messages plus the
// ordered list the page-level summary renders.
type ErrorMapping struct {
	Fields  map[string][]string
	Summary []string
}

// MapErrors normalises validator output for rendering. Field messages
// are grouped under their field or group key with duplicates dropped;
// the summary keeps every message in rule order so the aggregate block
// mirrors what the validator found.
func MapErrors(errs []validate.Error) ErrorMapping {
	mapping := ErrorMapping{}
	if len(errs) == 0 {
		return mapping
	}

	mapping.Fields = make(map[string][]string)
	mapping.Summary = make([]string, 0, len(errs))
	for _, failure := range errs {
		message := strings.TrimSpace(failure.Message)
		if message == "" {
			continue
		}
		mapping.Summary = append(mapping.Summary, message)
		key := strings.TrimSpace(failure.Field)
		if key == "" {
			continue
		}
		mapping.Fields[key] = appendMessage(mapping.Fields[key], message)
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	if len(mapping.Summary) == 0 {
		mapping.Summary = nil
	}
	return mapping
}

// MergeFormErrors concatenates message slices, trimming whitespace and
// removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

func appendMessage(messages []string, message string) []string {
	for _, existing := range messages {
		if existing == message {
			return messages
		}
	}
	return append(messages, message)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
