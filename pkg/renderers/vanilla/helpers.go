package vanilla

import (
	"html"
	"strings"
)

func controlID(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return ""
	}
	return "ff-" + trimmed
}

func optionID(key, value string) string {
	base := controlID(key)
	if base == "" || strings.TrimSpace(value) == "" {
		return base
	}
	return base + "-" + strings.TrimSpace(value)
}

// writeAttr emits ` name="escaped value"`. Empty values are skipped so
// callers can pass optional attributes unconditionally.
func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(html.EscapeString(value))
	b.WriteString(`"`)
}

func writeBoolAttr(b *strings.Builder, name string, on bool) {
	if !on {
		return
	}
	b.WriteByte(' ')
	b.WriteString(name)
}

func escape(value string) string {
	return html.EscapeString(value)
}
