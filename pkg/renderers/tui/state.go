package tui

import (
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// stateFromView rebuilds engine state from a projected view so an
// interactive session continues from whatever the caller last showed.
func stateFromView(def *formdef.Form, view formstate.View) formstate.State {
	s := formstate.New(def)
	for key, value := range view.Values {
		s = s.WithValue(key, value)
	}
	for key, value := range view.Selections {
		s = s.WithValue(key, value)
	}
	for key, flag := range view.Flags {
		s = s.WithFlag(key, flag)
	}
	for key, counter := range view.Counters {
		s = s.WithCount(key, counter.Count)
	}
	return s
}

// targetSet collects the field and group keys named by validation
// failures. Corrective rounds re-prompt only matching fields.
func targetSet(failures []validate.Error) map[string]bool {
	if len(failures) == 0 {
		return nil
	}
	targets := make(map[string]bool, len(failures))
	for _, failure := range failures {
		if failure.Field != "" {
			targets[failure.Field] = true
		}
	}
	return targets
}

// shouldPrompt reports whether a field belongs to the current prompt
// round. A nil target set means every field is in scope; otherwise the
// field matches by its own key or by its group's key.
func shouldPrompt(field formdef.Field, targets map[string]bool) bool {
	if targets == nil {
		return true
	}
	return targets[field.Key] || (field.Group != "" && targets[field.Group])
}
