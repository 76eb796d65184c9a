// Package formstate holds the runtime state of one form as an explicit
// value object. State changes only through Apply, which takes an event
// and returns the next state; what the UI must show is derived from state
// by Project, never stored. This keeps every transition and every derived
// display decision testable without a UI or a store.
package formstate

import (
	"strconv"

	"github.com/goliatone/go-formflow/pkg/formdef"
)

// State is an immutable snapshot of a form's raw values: text and select
// values plus choice-group selections by key, checkbox flags, and counter
// values. The zero value is an empty state; New seeds definition
// defaults.
type State struct {
	values map[string]string
	flags  map[string]bool
	counts map[string]int
}

// New returns the initial state for a definition with every declared
// default applied: text and choice defaults as values, counter defaults
// parsed as counts, checkbox fields checked when their default is "true".
func New(def *formdef.Form) State {
	s := empty()
	if def == nil {
		return s
	}
	for _, field := range def.Fields {
		if field.Default == "" {
			continue
		}
		switch field.Kind {
		case formdef.KindCounter:
			if n, err := strconv.Atoi(field.Default); err == nil && n >= 0 {
				s.counts[field.Key] = n
			}
		case formdef.KindCheckbox:
			s.flags[field.Key] = field.Default == "true"
		default:
			s.values[field.Key] = field.Default
		}
	}
	return s
}

func empty() State {
	return State{
		values: map[string]string{},
		flags:  map[string]bool{},
		counts: map[string]int{},
	}
}

// Value returns the raw value of a text field or the selected option of a
// choice group; unset keys return "".
func (s State) Value(key string) string { return s.values[key] }

// Flag returns a checkbox state; unset keys return false.
func (s State) Flag(key string) bool { return s.flags[key] }

// Count returns a counter value; unset keys return 0.
func (s State) Count(key string) int { return s.counts[key] }

// Values returns a copy of every text value and choice selection.
func (s State) Values() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Flags returns a copy of every checkbox flag.
func (s State) Flags() map[string]bool {
	out := make(map[string]bool, len(s.flags))
	for k, v := range s.flags {
		out[k] = v
	}
	return out
}

// Counts returns a copy of every counter value.
func (s State) Counts() map[string]int {
	out := make(map[string]int, len(s.counts))
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// VisibilityValues merges values, flags and counts into the flat map
// visibility conditions evaluate against.
func (s State) VisibilityValues() map[string]any {
	out := make(map[string]any, len(s.values)+len(s.flags)+len(s.counts))
	for k, v := range s.values {
		out[k] = v
	}
	for k, v := range s.flags {
		out[k] = v
	}
	for k, v := range s.counts {
		out[k] = v
	}
	return out
}

// Equal reports whether two states hold the same values, flags and
// counts. Unset entries compare equal to zero values, so a state that
// stores an explicit "" matches one that never touched the key.
func (s State) Equal(other State) bool {
	for k, v := range s.values {
		if other.values[k] != v {
			return false
		}
	}
	for k, v := range other.values {
		if s.values[k] != v {
			return false
		}
	}
	for k, v := range s.flags {
		if other.flags[k] != v {
			return false
		}
	}
	for k, v := range other.flags {
		if s.flags[k] != v {
			return false
		}
	}
	for k, v := range s.counts {
		if other.counts[k] != v {
			return false
		}
	}
	for k, v := range other.counts {
		if s.counts[k] != v {
			return false
		}
	}
	return true
}

func (s State) clone() State {
	out := State{
		values: make(map[string]string, len(s.values)),
		flags:  make(map[string]bool, len(s.flags)),
		counts: make(map[string]int, len(s.counts)),
	}
	for k, v := range s.values {
		out.values[k] = v
	}
	for k, v := range s.flags {
		out.flags[k] = v
	}
	for k, v := range s.counts {
		out.counts[k] = v
	}
	return out
}

// WithValue returns a copy of the state with one raw value set. It runs
// no transition checks; most callers go through Apply and only draft
// restoration writes raw values directly.
func (s State) WithValue(key, value string) State {
	out := s.clone()
	out.values[key] = value
	return out
}

// WithFlag returns a copy of the state with one checkbox flag set,
// skipping mirror copy and rejection logic.
func (s State) WithFlag(key string, on bool) State {
	out := s.clone()
	out.flags[key] = on
	return out
}

// WithCount returns a copy of the state with one counter set, floored
// at zero.
func (s State) WithCount(key string, count int) State {
	out := s.clone()
	if count < 0 {
		count = 0
	}
	out.counts[key] = count
	return out
}
