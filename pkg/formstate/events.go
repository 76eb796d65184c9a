package formstate

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formflow/pkg/formdef"
)

// Event is one user interaction applied to a form state. The set is
// closed: SetValue, Select, SetFlag, Increment and Decrement.
type Event interface {
	event()
}

// SetValue edits a text, select or textarea field.
type SetValue struct {
	Field string
	Value string
}

// Select picks an option of a mutually-exclusive choice group.
type Select struct {
	Group  string
	Option string
}

// SetFlag sets a checkbox. For mirror checkboxes, switching on copies the
// mirror's source fields into its targets and is rejected with a Note
// while any source is blank; switching off blanks the targets.
type SetFlag struct {
	Field string
	On    bool
}

// Increment steps a counter up by one.
type Increment struct {
	Field string
}

// Decrement steps a counter down by one, flooring at zero.
type Decrement struct {
	Field string
}

func (SetValue) event()  {}
func (Select) event()    {}
func (SetFlag) event()   {}
func (Increment) event() {}
func (Decrement) event() {}

// Note is a blocking notification produced by a rejected transition. The
// state accompanying a Note is unchanged; the UI surfaces the message and
// reverts the triggering control.
type Note struct {
	Field   string
	Message string
}

const defaultBlockedNotice = "Complete the source fields before copying them."

// Apply runs one event against a state and returns the next state. It is
// pure: the input state is never mutated. A rejected transition returns
// the input state with a Note. Events referencing fields the definition
// does not declare, or of the wrong kind, return an error.
func Apply(def *formdef.Form, s State, ev Event) (State, *Note, error) {
	if def == nil {
		return s, nil, fmt.Errorf("formstate: nil form definition")
	}

	switch e := ev.(type) {
	case SetValue:
		field, ok := def.FieldByKey(e.Field)
		if !ok {
			return s, nil, fmt.Errorf("formstate: form %q has no field %q", def.Name, e.Field)
		}
		if !field.Kind.Text() {
			return s, nil, fmt.Errorf("formstate: field %q of kind %q does not take a text value", e.Field, field.Kind)
		}
		if field.Kind == formdef.KindSelect && e.Value != "" && !hasOption(field, e.Value) {
			return s, nil, fmt.Errorf("formstate: field %q has no option %q", e.Field, e.Value)
		}
		return releaseHiddenMirrors(def, s.WithValue(e.Field, e.Value)), nil, nil

	case Select:
		field, ok := def.FieldByKey(e.Group)
		if !ok {
			return s, nil, fmt.Errorf("formstate: form %q has no choice group %q", def.Name, e.Group)
		}
		if field.Kind != formdef.KindChoice {
			return s, nil, fmt.Errorf("formstate: field %q of kind %q is not a choice group", e.Group, field.Kind)
		}
		if !hasOption(field, e.Option) {
			return s, nil, fmt.Errorf("formstate: choice group %q has no option %q", e.Group, e.Option)
		}
		return releaseHiddenMirrors(def, s.WithValue(e.Group, e.Option)), nil, nil

	case SetFlag:
		field, ok := def.FieldByKey(e.Field)
		if !ok {
			return s, nil, fmt.Errorf("formstate: form %q has no field %q", def.Name, e.Field)
		}
		if field.Kind != formdef.KindCheckbox {
			return s, nil, fmt.Errorf("formstate: field %q of kind %q is not a checkbox", e.Field, field.Kind)
		}
		if field.Mirror == nil {
			return s.WithFlag(e.Field, e.On), nil, nil
		}
		if e.On {
			if blank := blankSource(s, field.Mirror); blank != "" {
				return s, &Note{Field: e.Field, Message: blockedNotice(field.Mirror)}, nil
			}
			return copyMirror(s.WithFlag(e.Field, true), field.Mirror), nil, nil
		}
		return blankTargets(s.WithFlag(e.Field, false), field.Mirror), nil, nil

	case Increment:
		if err := counterField(def, e.Field); err != nil {
			return s, nil, err
		}
		return s.WithCount(e.Field, s.Count(e.Field)+1), nil, nil

	case Decrement:
		if err := counterField(def, e.Field); err != nil {
			return s, nil, err
		}
		return s.WithCount(e.Field, s.Count(e.Field)-1), nil, nil

	default:
		return s, nil, fmt.Errorf("formstate: unsupported event %T", ev)
	}
}

func counterField(def *formdef.Form, key string) error {
	field, ok := def.FieldByKey(key)
	if !ok {
		return fmt.Errorf("formstate: form %q has no field %q", def.Name, key)
	}
	if field.Kind != formdef.KindCounter {
		return fmt.Errorf("formstate: field %q of kind %q is not a counter", key, field.Kind)
	}
	return nil
}

func hasOption(field *formdef.Field, value string) bool {
	for _, opt := range field.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func blankSource(s State, mirror *formdef.Mirror) string {
	for _, key := range mirror.Sources {
		if strings.TrimSpace(s.Value(key)) == "" {
			return key
		}
	}
	return ""
}

func blockedNotice(mirror *formdef.Mirror) string {
	if mirror.BlockedNotice != "" {
		return mirror.BlockedNotice
	}
	return defaultBlockedNotice
}

// copyMirror copies each source value verbatim into its paired target.
func copyMirror(s State, mirror *formdef.Mirror) State {
	out := s
	for i, src := range mirror.Sources {
		out = out.WithValue(mirror.Targets[i], s.Value(src))
	}
	return out
}

func blankTargets(s State, mirror *formdef.Mirror) State {
	out := s
	for _, key := range mirror.Targets {
		out = out.WithValue(key, "")
	}
	return out
}

// ResyncMirrors re-copies source values into targets for every checked
// mirror checkbox. Draft restoration applies raw values without running
// transitions, so targets can lag their sources until this runs.
func ResyncMirrors(def *formdef.Form, s State) State {
	out := s
	for i := range def.Fields {
		field := &def.Fields[i]
		if field.Mirror == nil || !out.Flag(field.Key) {
			continue
		}
		out = copyMirror(out, field.Mirror)
	}
	return out
}

// releaseHiddenMirrors sweeps every checked mirror checkbox whose group
// is no longer visible and runs its release: flag off, targets blanked.
// Values copied from a group the user can no longer see must not persist
// silently.
func releaseHiddenMirrors(def *formdef.Form, s State) State {
	out := s
	for i := range def.Fields {
		field := &def.Fields[i]
		if field.Mirror == nil || !out.Flag(field.Key) {
			continue
		}
		if field.Group == "" {
			continue
		}
		if groupVisible(def, field.Group, out) {
			continue
		}
		out = blankTargets(out.WithFlag(field.Key, false), field.Mirror)
	}
	return out
}
