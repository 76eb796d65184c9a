package render

import (
	"strings"

	"github.com/goliatone/go-formflow/pkg/formdef"
)

// Subset selects a portion of a form for partial rendering, for example
// a single address block re-rendered after a visibility change.
type Subset struct {
	// Groups keeps only fields belonging to the named groups. Matching
	// is case-insensitive on trimmed keys.
	Groups []string
	// IncludeUngrouped keeps fields that belong to no group.
	IncludeUngrouped bool
}

func (s Subset) empty() bool {
	return len(s.Groups) == 0 && !s.IncludeUngrouped
}

// ApplySubset returns a copy of the definition holding only the fields
// and groups the subset selects. An empty subset returns the definition
// unchanged. Renderers run against the result like any other form, so
// error slots and visibility still line up with the full page.
func ApplySubset(form *formdef.Form, subset Subset) *formdef.Form {
	if form == nil || subset.empty() {
		return form
	}

	keep := make(map[string]struct{}, len(subset.Groups))
	for _, group := range subset.Groups {
		token := strings.ToLower(strings.TrimSpace(group))
		if token == "" {
			continue
		}
		keep[token] = struct{}{}
	}

	out := form.Clone()

	fields := out.Fields[:0]
	for _, field := range out.Fields {
		if field.Group == "" {
			if subset.IncludeUngrouped {
				fields = append(fields, field)
			}
			continue
		}
		if _, ok := keep[strings.ToLower(field.Group)]; ok {
			fields = append(fields, field)
		}
	}
	out.Fields = fields

	groups := out.Groups[:0]
	for _, group := range out.Groups {
		if _, ok := keep[strings.ToLower(group.Key)]; ok {
			groups = append(groups, group)
		}
	}
	out.Groups = groups

	return out
}
