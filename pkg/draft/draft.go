// Package draft persists in-progress form state between sessions. A
// draft is a flat snapshot of every field's current value, written
// wholesale to a Store under the form's draft key and replayed onto a
// fresh state on the next load. Writes replace the whole record, so the
// last writer wins and readers never see a partial merge.
package draft

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
)

// Record is one captured snapshot: field keys mapped to string values
// for text and choice fields, booleans for checkboxes and numeric
// strings for counters.
type Record map[string]any

// Capture snapshots every field the definition declares, including
// blanks, so a restored form matches the saved one even where the user
// cleared a default.
func Capture(def *formdef.Form, s formstate.State) Record {
	if def == nil {
		return Record{}
	}
	rec := make(Record, len(def.Fields))
	for i := range def.Fields {
		field := &def.Fields[i]
		switch field.Kind {
		case formdef.KindCheckbox:
			rec[field.Key] = s.Flag(field.Key)
		case formdef.KindCounter:
			rec[field.Key] = strconv.Itoa(s.Count(field.Key))
		default:
			rec[field.Key] = s.Value(field.Key)
		}
	}
	return rec
}

// Encode serializes a record for storage.
func Encode(rec Record) ([]byte, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("draft: encode record: %w", err)
	}
	return data, nil
}

// Decode parses a stored record. Callers treat a decode error as a
// stale draft: log it and continue with a fresh state.
func Decode(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("draft: decode record: %w", err)
	}
	return rec, nil
}

// Restore replays a record onto a state. Each declared field takes its
// stored value per kind: checkboxes their flag, counters their parsed
// count with unparsable values read as zero, choice groups and selects
// the stored option only when the definition still declares it. Record
// keys the definition does not declare are skipped, so drafts saved
// against an older definition degrade to a partial restore.
func Restore(def *formdef.Form, s formstate.State, rec Record) formstate.State {
	out := s
	if def == nil {
		return out
	}
	for i := range def.Fields {
		field := &def.Fields[i]
		raw, ok := rec[field.Key]
		if !ok {
			continue
		}
		switch field.Kind {
		case formdef.KindCheckbox:
			if on, ok := raw.(bool); ok {
				out = out.WithFlag(field.Key, on)
			}
		case formdef.KindCounter:
			out = out.WithCount(field.Key, countOf(raw))
		case formdef.KindChoice:
			if value, ok := raw.(string); ok && declaredOption(field, value) {
				out = out.WithValue(field.Key, value)
			}
		case formdef.KindSelect:
			value, ok := raw.(string)
			if !ok {
				continue
			}
			if value == "" || declaredOption(field, value) {
				out = out.WithValue(field.Key, value)
			}
		default:
			if value, ok := raw.(string); ok {
				out = out.WithValue(field.Key, value)
			}
		}
	}
	return out
}

// countOf reads a stored counter value, tolerating numeric strings and
// bare JSON numbers. Anything unparsable restores as zero.
func countOf(raw any) int {
	switch v := raw.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int(v)
	default:
		return 0
	}
}

func declaredOption(field *formdef.Field, value string) bool {
	for _, opt := range field.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}
