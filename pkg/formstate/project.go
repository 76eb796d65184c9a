package formstate

import (
	"fmt"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/visibility"
)

// View is the derived display state of a form: which groups are visible,
// what every counter shows and whether its decrement control is enabled,
// and the raw values the controls render with. Views are recomputed from
// scratch on every projection and never stored, so displayed state cannot
// drift from the underlying values.
type View struct {
	Groups     map[string]bool
	Counters   map[string]CounterView
	Values     map[string]string
	Flags      map[string]bool
	Selections map[string]string
}

// CounterView is the display state of one quantity counter.
type CounterView struct {
	Count            int
	Label            string
	Slot             string
	DecrementEnabled bool
}

// GroupVisible reports whether a group is visible in this view. Unknown
// keys are visible; only a declared rule can hide a group.
func (v View) GroupVisible(key string) bool {
	if key == "" {
		return true
	}
	shown, ok := v.Groups[key]
	if !ok {
		return true
	}
	return shown
}

// FieldVisible reports whether a field is visible, following its group.
func (v View) FieldVisible(field formdef.Field) bool {
	return v.GroupVisible(field.Group)
}

// Project derives the display state for a form. Projection is total and
// idempotent: the same definition and state always produce the same view.
// Every counter's enablement is recomputed on every call, so one
// counter's change refreshes the button state of all of them.
func Project(def *formdef.Form, s State) View {
	view := View{
		Groups:     map[string]bool{},
		Counters:   map[string]CounterView{},
		Values:     map[string]string{},
		Flags:      map[string]bool{},
		Selections: map[string]string{},
	}
	if def == nil {
		return view
	}

	for i := range def.Groups {
		group := &def.Groups[i]
		view.Groups[group.Key] = groupVisible(def, group.Key, s)
	}

	for _, field := range def.Fields {
		switch field.Kind {
		case formdef.KindCounter:
			count := s.Count(field.Key)
			view.Counters[field.Key] = CounterView{
				Count:            count,
				Label:            fmt.Sprintf("[%d]", count),
				Slot:             field.CountSlot,
				DecrementEnabled: count > 0,
			}
		case formdef.KindCheckbox:
			view.Flags[field.Key] = s.Flag(field.Key)
		case formdef.KindChoice:
			view.Selections[field.Key] = s.Value(field.Key)
		default:
			view.Values[field.Key] = s.Value(field.Key)
		}
	}

	return view
}

// groupVisible evaluates a group's visibility rule against the state. A
// rule that fails to compile or evaluate leaves the group visible: a
// broken rule must never hide fields the user needs.
func groupVisible(def *formdef.Form, key string, s State) bool {
	group, ok := def.GroupByKey(key)
	if !ok {
		return true
	}
	cond, err := group.Condition()
	if err != nil {
		return true
	}
	shown, err := cond.Visible(visibility.Context{Values: s.VisibilityValues()})
	if err != nil {
		return true
	}
	return shown
}
