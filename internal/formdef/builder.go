package formdef

import (
	"fmt"
	"strings"

	pkgformdef "github.com/goliatone/go-formflow/pkg/formdef"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

// Options configures how schemas become form definitions.
type Options struct {
	// Labeler derives display labels from property names when the
	// schema carries no title. Defaults to DefaultLabeler.
	Labeler func(string) string
}

func defaultOptions() Options {
	return Options{Labeler: DefaultLabeler}
}

// Source carries the located form schema plus its naming metadata.
type Source struct {
	// Name becomes the form name. Required.
	Name string
	// Title overrides the schema title when set.
	Title string
	// Schema is the object schema whose properties become the fields.
	Schema pkgopenapi.Schema
}

// Builder converts annotated OpenAPI schemas into validated form
// definitions. Properties become fields in declaration order; groups are
// collected from x-formflow-group annotations in first-appearance order.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	return &Builder{opts: opts}
}

// Build transforms the source schema into a form definition. The result
// has passed Validate, so help markup is sanitised and group conditions
// compile.
func (b *Builder) Build(src Source) (*pkgformdef.Form, error) {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		return nil, fmt.Errorf("formdef builder: form name is required")
	}
	schema := src.Schema
	if schema.Type != "" && schema.Type != "object" {
		return nil, fmt.Errorf("formdef builder: form %q schema must be an object, got %q", name, schema.Type)
	}
	if len(schema.Properties) == 0 {
		return nil, fmt.Errorf("formdef builder: form %q schema declares no properties", name)
	}

	form := &pkgformdef.Form{Name: name, Title: src.Title}
	if form.Title == "" {
		form.Title = schema.Title
	}
	if form.Title == "" {
		form.Title = b.opts.Labeler(name)
	}

	draftKey, hasDraftKey, err := stringExtension(schema.Extensions, pkgopenapi.ExtensionDraftKey)
	if err != nil {
		return nil, fmt.Errorf("formdef builder: form %q: %w", name, err)
	}
	if hasDraftKey {
		form.DraftKey = draftKey
	}

	groups := newGroupIndex()
	for _, propName := range schema.PropertyNames() {
		prop, ok := schema.Properties[propName]
		if !ok {
			return nil, fmt.Errorf("formdef builder: form %q property order names unknown property %q", name, propName)
		}
		field, err := b.buildField(propName, prop, schema.RequiredProperty(propName), groups)
		if err != nil {
			return nil, fmt.Errorf("formdef builder: form %q property %q: %w", name, propName, err)
		}
		form.Fields = append(form.Fields, field)
	}

	form.Groups = groups.groups(b.opts.Labeler)

	if err := form.Validate(); err != nil {
		return nil, err
	}
	return form, nil
}

func (b *Builder) buildField(name string, prop pkgopenapi.Schema, required bool, groups *groupIndex) (pkgformdef.Field, error) {
	ext := prop.Extensions

	field := pkgformdef.Field{
		Key:      name,
		Required: required,
		Help:     prop.Description,
	}
	field.Label = prop.Title
	if field.Label == "" {
		field.Label = b.opts.Labeler(name)
	}

	kind, hasKind, err := stringExtension(ext, pkgopenapi.ExtensionKind)
	if err != nil {
		return field, err
	}
	if hasKind {
		field.Kind = pkgformdef.Kind(kind)
	} else {
		derived, err := deriveKind(prop)
		if err != nil {
			return field, err
		}
		field.Kind = derived
	}

	group, hasGroup, err := stringExtension(ext, pkgopenapi.ExtensionGroup)
	if err != nil {
		return field, err
	}
	if hasGroup {
		field.Group = group
		groups.observe(group)
	}

	visibleWhen, hasVisibleWhen, err := stringExtension(ext, pkgopenapi.ExtensionVisibleWhen)
	if err != nil {
		return field, err
	}
	if hasVisibleWhen {
		if !hasGroup {
			return field, fmt.Errorf("%s needs %s on the same property", pkgopenapi.ExtensionVisibleWhen, pkgopenapi.ExtensionGroup)
		}
		if err := groups.assign(group, visibleWhen, name); err != nil {
			return field, err
		}
	}

	if raw, present := ext[pkgopenapi.ExtensionOptions]; present {
		options, err := optionsExtension(raw, b.opts.Labeler)
		if err != nil {
			return field, fmt.Errorf("%s %w", pkgopenapi.ExtensionOptions, err)
		}
		field.Options = options
	} else if len(prop.Enum) > 0 {
		switch field.Kind {
		case pkgformdef.KindSelect, pkgformdef.KindChoice:
			field.Options = b.optionsFromEnum(prop.Enum)
		}
	}

	if raw, present := ext[pkgopenapi.ExtensionMirror]; present {
		mirror, err := mirrorExtension(raw)
		if err != nil {
			return field, fmt.Errorf("%s %w", pkgopenapi.ExtensionMirror, err)
		}
		field.Mirror = mirror
	}

	countSlot, hasCountSlot, err := stringExtension(ext, pkgopenapi.ExtensionCountSlot)
	if err != nil {
		return field, err
	}
	if hasCountSlot {
		field.CountSlot = countSlot
	}

	if raw, present := ext[pkgopenapi.ExtensionDefault]; present {
		field.Default = formatDefault(raw)
	} else if prop.Default != nil {
		field.Default = formatDefault(prop.Default)
	}

	// Keys outside the recognised set are left for the extension linter
	// to report.
	return field, nil
}

// deriveKind maps type/format onto a field kind when no x-formflow-kind
// annotation overrides it.
func deriveKind(prop pkgopenapi.Schema) (pkgformdef.Kind, error) {
	switch prop.Type {
	case "boolean":
		return pkgformdef.KindCheckbox, nil
	case "integer":
		return pkgformdef.KindCounter, nil
	case "string", "":
		switch strings.ToLower(prop.Format) {
		case "email":
			return pkgformdef.KindEmail, nil
		case "tel", "phone":
			return pkgformdef.KindTel, nil
		case "password":
			return pkgformdef.KindPassword, nil
		}
		if len(prop.Enum) > 0 {
			return pkgformdef.KindSelect, nil
		}
		return pkgformdef.KindText, nil
	default:
		return "", fmt.Errorf("type %q needs an explicit %s annotation", prop.Type, pkgopenapi.ExtensionKind)
	}
}

func (b *Builder) optionsFromEnum(enum []any) []pkgformdef.Option {
	options := make([]pkgformdef.Option, 0, len(enum))
	for _, entry := range enum {
		value := formatDefault(entry)
		if value == "" {
			continue
		}
		options = append(options, pkgformdef.Option{Value: value, Label: b.opts.Labeler(value)})
	}
	return options
}

// groupIndex collects group keys in first-appearance order together with
// the visibility expression their member properties declare.
type groupIndex struct {
	order       []string
	seen        map[string]bool
	visibleWhen map[string]string
	declaredBy  map[string]string
}

func newGroupIndex() *groupIndex {
	return &groupIndex{
		seen:        make(map[string]bool),
		visibleWhen: make(map[string]string),
		declaredBy:  make(map[string]string),
	}
}

func (gi *groupIndex) observe(key string) {
	if key == "" || gi.seen[key] {
		return
	}
	gi.seen[key] = true
	gi.order = append(gi.order, key)
}

func (gi *groupIndex) assign(key, expression, property string) error {
	if existing, ok := gi.visibleWhen[key]; ok {
		if existing != expression {
			return fmt.Errorf("group %q visibility declared as %q by %q and %q by %q",
				key, existing, gi.declaredBy[key], expression, property)
		}
		return nil
	}
	gi.visibleWhen[key] = expression
	gi.declaredBy[key] = property
	return nil
}

func (gi *groupIndex) groups(labeler func(string) string) []pkgformdef.Group {
	if len(gi.order) == 0 {
		return nil
	}
	groups := make([]pkgformdef.Group, 0, len(gi.order))
	for _, key := range gi.order {
		groups = append(groups, pkgformdef.Group{
			Key:         key,
			Title:       labeler(key),
			VisibleWhen: gi.visibleWhen[key],
		})
	}
	return groups
}
