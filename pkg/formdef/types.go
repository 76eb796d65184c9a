package formdef

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/visibility"
	"github.com/goliatone/go-formflow/pkg/visibility/expr"
)

// Kind identifies how a field holds and edits its value.
type Kind string

const (
	// KindText is a free-text input.
	KindText Kind = "text"
	// KindEmail is a free-text input carrying an email address.
	KindEmail Kind = "email"
	// KindTel is a free-text input carrying a phone number.
	KindTel Kind = "tel"
	// KindPassword is a free-text input with concealed display.
	KindPassword Kind = "password"
	// KindTextarea is a multi-line free-text input.
	KindTextarea Kind = "textarea"
	// KindSelect is a single selection from a dropdown.
	KindSelect Kind = "select"
	// KindChoice is a mutually-exclusive choice group (radio set). The
	// field key is the shared group key; at most one option is selected.
	KindChoice Kind = "choice"
	// KindCheckbox is a boolean flag.
	KindCheckbox Kind = "checkbox"
	// KindCounter is a non-negative integer stepped up and down in ones.
	KindCounter Kind = "counter"
)

var knownKinds = map[Kind]bool{
	KindText:     true,
	KindEmail:    true,
	KindTel:      true,
	KindPassword: true,
	KindTextarea: true,
	KindSelect:   true,
	KindChoice:   true,
	KindCheckbox: true,
	KindCounter:  true,
}

func (k Kind) valid() bool { return knownKinds[k] }

// KnownKind reports whether k names a shipped field kind.
func KnownKind(k Kind) bool { return knownKinds[k] }

// Kinds returns every shipped field kind in sorted order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(knownKinds))
	for kind := range knownKinds {
		out = append(out, kind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Text reports whether the kind stores a plain string value.
func (k Kind) Text() bool {
	switch k {
	case KindText, KindEmail, KindTel, KindPassword, KindTextarea, KindSelect:
		return true
	default:
		return false
	}
}

// Form is a complete definition of one form: its fields, their grouping,
// and the key its drafts persist under. An empty DraftKey disables draft
// persistence for the form.
type Form struct {
	Name     string  `json:"name" yaml:"name"`
	Title    string  `json:"title,omitempty" yaml:"title,omitempty"`
	DraftKey string  `json:"draftKey,omitempty" yaml:"draftKey,omitempty"`
	Groups   []Group `json:"groups,omitempty" yaml:"groups,omitempty"`
	Fields   []Field `json:"fields" yaml:"fields"`
}

// Group is a named set of fields whose visibility is driven by a rule
// over current state values. Fields reference a group by key; fields
// without a group are always visible.
type Group struct {
	Key         string `json:"key" yaml:"key"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	VisibleWhen string `json:"visibleWhen,omitempty" yaml:"visibleWhen,omitempty"`

	cond visibility.Condition
}

// Condition returns the compiled visibility rule. Validate compiles and
// caches it; on an unvalidated group the rule compiles on each call.
func (g *Group) Condition() (visibility.Condition, error) {
	if g.cond != nil {
		return g.cond, nil
	}
	return expr.Compile(g.VisibleWhen)
}

// Field is one form control. Key is the stable identifier state, drafts
// and error slots are addressed by; for choice groups it is the shared
// group key.
type Field struct {
	Key          string   `json:"key" yaml:"key"`
	Kind         Kind     `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder  string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help         string   `json:"help,omitempty" yaml:"help,omitempty"`
	Required     bool     `json:"required,omitempty" yaml:"required,omitempty"`
	Group        string   `json:"group,omitempty" yaml:"group,omitempty"`
	Default      string   `json:"default,omitempty" yaml:"default,omitempty"`
	Options      []Option `json:"options,omitempty" yaml:"options,omitempty"`
	Mirror       *Mirror  `json:"mirror,omitempty" yaml:"mirror,omitempty"`
	CountSlot    string   `json:"countSlot,omitempty" yaml:"countSlot,omitempty"`
	Autocomplete string   `json:"autocomplete,omitempty" yaml:"autocomplete,omitempty"`
}

// Option is one selectable value of a choice group or select field.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Mirror gives a checkbox copy semantics: checking it copies every source
// field's value into the matching target field, and is rejected while any
// source is blank; unchecking blanks the targets. Sources and targets
// pair up by index.
type Mirror struct {
	Sources       []string `json:"sources" yaml:"sources"`
	Targets       []string `json:"targets" yaml:"targets"`
	BlockedNotice string   `json:"blockedNotice,omitempty" yaml:"blockedNotice,omitempty"`
}

// FieldByKey returns the field declaring key.
func (f *Form) FieldByKey(key string) (*Field, bool) {
	for i := range f.Fields {
		if f.Fields[i].Key == key {
			return &f.Fields[i], true
		}
	}
	return nil, false
}

// GroupByKey returns the group declaring key.
func (f *Form) GroupByKey(key string) (*Group, bool) {
	for i := range f.Groups {
		if f.Groups[i].Key == key {
			return &f.Groups[i], true
		}
	}
	return nil, false
}

// FieldsOfKind returns the fields of the given kind in declaration order.
func (f *Form) FieldsOfKind(kind Kind) []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Kind == kind {
			out = append(out, field)
		}
	}
	return out
}

// OptionLabel returns the label of the option with the given value on the
// named field, falling back to the value itself.
func (f *Form) OptionLabel(fieldKey, value string) string {
	field, ok := f.FieldByKey(fieldKey)
	if !ok {
		return value
	}
	for _, opt := range field.Options {
		if opt.Value == value {
			if opt.Label != "" {
				return opt.Label
			}
			return value
		}
	}
	return value
}

// Validate normalizes the definition in place and reports the first
// structural problem: blank or duplicate keys, unknown kinds, option-less
// choice fields, defaults outside the declared options, unresolvable
// group or mirror references, or visibility rules that do not compile.
// Help markup is sanitized as part of validation, so a validated form
// never carries markup outside the allowed inline subset.
func (f *Form) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return fmt.Errorf("formdef: form name is required")
	}

	groupKeys := make(map[string]bool, len(f.Groups))
	for i := range f.Groups {
		g := &f.Groups[i]
		g.Key = strings.TrimSpace(g.Key)
		if g.Key == "" {
			return fmt.Errorf("formdef: form %q group %d has no key", f.Name, i)
		}
		if groupKeys[g.Key] {
			return fmt.Errorf("formdef: form %q declares group %q twice", f.Name, g.Key)
		}
		groupKeys[g.Key] = true

		cond, err := expr.Compile(g.VisibleWhen)
		if err != nil {
			return fmt.Errorf("formdef: form %q group %q visibility rule: %w", f.Name, g.Key, err)
		}
		g.cond = cond
	}

	fieldKeys := make(map[string]bool, len(f.Fields))
	for i := range f.Fields {
		fld := &f.Fields[i]
		fld.Key = strings.TrimSpace(fld.Key)
		if fld.Key == "" {
			return fmt.Errorf("formdef: form %q field %d has no key", f.Name, i)
		}
		if fieldKeys[fld.Key] {
			return fmt.Errorf("formdef: form %q declares field %q twice", f.Name, fld.Key)
		}
		fieldKeys[fld.Key] = true

		if fld.Kind == "" {
			fld.Kind = KindText
		}
		if !fld.Kind.valid() {
			return fmt.Errorf("formdef: form %q field %q has unknown kind %q", f.Name, fld.Key, fld.Kind)
		}

		if fld.Group != "" && !groupKeys[fld.Group] {
			return fmt.Errorf("formdef: form %q field %q references undeclared group %q", f.Name, fld.Key, fld.Group)
		}

		switch fld.Kind {
		case KindChoice, KindSelect:
			if len(fld.Options) == 0 {
				return fmt.Errorf("formdef: form %q field %q needs at least one option", f.Name, fld.Key)
			}
			seen := make(map[string]bool, len(fld.Options))
			for _, opt := range fld.Options {
				if strings.TrimSpace(opt.Value) == "" {
					return fmt.Errorf("formdef: form %q field %q has an option without a value", f.Name, fld.Key)
				}
				if seen[opt.Value] {
					return fmt.Errorf("formdef: form %q field %q repeats option %q", f.Name, fld.Key, opt.Value)
				}
				seen[opt.Value] = true
			}
			if fld.Default != "" && !seen[fld.Default] {
				return fmt.Errorf("formdef: form %q field %q default %q is not a declared option", f.Name, fld.Key, fld.Default)
			}
		case KindCounter:
			if fld.Default != "" {
				n, err := strconv.Atoi(fld.Default)
				if err != nil || n < 0 {
					return fmt.Errorf("formdef: form %q counter %q default %q is not a non-negative integer", f.Name, fld.Key, fld.Default)
				}
			}
		default:
			if len(fld.Options) > 0 {
				return fmt.Errorf("formdef: form %q field %q of kind %q cannot declare options", f.Name, fld.Key, fld.Kind)
			}
		}

		if fld.CountSlot != "" && fld.Kind != KindCounter {
			return fmt.Errorf("formdef: form %q field %q of kind %q cannot declare a count slot", f.Name, fld.Key, fld.Kind)
		}

		if fld.Mirror != nil {
			if fld.Kind != KindCheckbox {
				return fmt.Errorf("formdef: form %q field %q of kind %q cannot carry a mirror", f.Name, fld.Key, fld.Kind)
			}
			if len(fld.Mirror.Sources) == 0 {
				return fmt.Errorf("formdef: form %q mirror %q has no source fields", f.Name, fld.Key)
			}
			if len(fld.Mirror.Sources) != len(fld.Mirror.Targets) {
				return fmt.Errorf("formdef: form %q mirror %q has %d sources but %d targets", f.Name, fld.Key, len(fld.Mirror.Sources), len(fld.Mirror.Targets))
			}
		}

		fld.Help = sanitizeHelpMarkup(fld.Help)
	}

	// Mirror endpoints must resolve to text-valued fields, checked after
	// the key set is complete so order of declaration does not matter.
	for _, fld := range f.Fields {
		if fld.Mirror == nil {
			continue
		}
		for _, key := range append(append([]string(nil), fld.Mirror.Sources...), fld.Mirror.Targets...) {
			ref, ok := f.FieldByKey(key)
			if !ok {
				return fmt.Errorf("formdef: form %q mirror %q references unknown field %q", f.Name, fld.Key, key)
			}
			if !ref.Kind.Text() {
				return fmt.Errorf("formdef: form %q mirror %q endpoint %q is not a text field", f.Name, fld.Key, key)
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the definition.
func (f *Form) Clone() *Form {
	if f == nil {
		return nil
	}
	out := &Form{
		Name:     f.Name,
		Title:    f.Title,
		DraftKey: f.DraftKey,
	}
	if len(f.Groups) > 0 {
		out.Groups = make([]Group, len(f.Groups))
		copy(out.Groups, f.Groups)
	}
	if len(f.Fields) > 0 {
		out.Fields = make([]Field, len(f.Fields))
		for i, fld := range f.Fields {
			cloned := fld
			if len(fld.Options) > 0 {
				cloned.Options = make([]Option, len(fld.Options))
				copy(cloned.Options, fld.Options)
			}
			if fld.Mirror != nil {
				mirror := Mirror{
					Sources:       append([]string(nil), fld.Mirror.Sources...),
					Targets:       append([]string(nil), fld.Mirror.Targets...),
					BlockedNotice: fld.Mirror.BlockedNotice,
				}
				cloned.Mirror = &mirror
			}
			out.Fields[i] = cloned
		}
	}
	return out
}

func mustForm(f *Form) *Form {
	if err := f.Validate(); err != nil {
		panic(err)
	}
	return f
}
