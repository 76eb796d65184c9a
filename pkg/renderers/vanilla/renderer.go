package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/render"
	rendertemplate "github.com/goliatone/go-formflow/pkg/render/template"
	gotemplate "github.com/goliatone/go-formflow/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formflow/pkg/report"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	pageTemplate     string
	submitLabel      string
}

// WithTemplatesFS supplies an alternate page template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads page templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithPageTemplate wraps the form markup in the named template. The
// template receives title, body, stylesheet and theme context. An empty
// name renders the bare form element.
func WithPageTemplate(name string) Option {
	return func(cfg *config) {
		cfg.pageTemplate = strings.TrimSpace(name)
	}
}

// WithSubmitLabel overrides the caption of the submit button.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// Renderer produces plain HTML with semantic chrome classes. Output is
// fully functional without scripting: counters and choices post the
// form and the server re-renders the next view.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	pageTemplate string
	submitLabel  string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		submitLabel: "Submit",
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates:    renderer,
		pageTemplate: cfg.pageTemplate,
		submitLabel:  cfg.submitLabel,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render projects the form and its view into HTML. Hidden groups are
// emitted with hidden and disabled set so their controls neither show
// nor submit, while their values survive server-side.
func (r *Renderer) Render(_ context.Context, form *formdef.Form, view formstate.View, options render.Options) ([]byte, error) {
	if form == nil {
		return nil, fmt.Errorf("vanilla renderer: form definition is nil")
	}

	var b strings.Builder
	b.Grow(4096)

	writeThemeStyle(&b, options.Theme)

	if options.Submitted {
		writeConfirmation(&b, form)
	} else {
		writeForm(&b, form, view, options, r.submitLabel)
	}

	body := b.String()
	if r.pageTemplate == "" {
		return []byte(body), nil
	}

	page, err := r.templates.RenderTemplate(r.pageTemplate, pageContext(form, body, options.Theme))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render page template: %w", err)
	}
	return []byte(page), nil
}

func writeForm(b *strings.Builder, form *formdef.Form, view formstate.View, options render.Options, submitLabel string) {
	b.WriteString(`<form id="`)
	b.WriteString(escape(form.Name))
	b.WriteString(`" class="`)
	b.WriteString(DefaultFormClass)
	b.WriteString(`"`)
	writeAttr(b, "data-formflow-form", form.Name)
	writeAttr(b, "action", options.Action)
	method := options.Method
	if method == "" {
		method = "post"
	}
	writeAttr(b, "method", method)
	b.WriteString(" novalidate>\n")

	if title := strings.TrimSpace(form.Title); title != "" {
		b.WriteString("  <h1>")
		b.WriteString(escape(title))
		b.WriteString("</h1>\n")
	}

	writeSummary(b, options.Summary)

	openGroup := ""
	for _, field := range form.Fields {
		if field.Group != openGroup {
			if openGroup != "" {
				b.WriteString("  </fieldset>\n")
			}
			openGroup = field.Group
			if openGroup != "" {
				writeGroupOpen(b, form, openGroup, view.GroupVisible(openGroup), options)
			}
		}
		renderField(b, field, view, options)
	}
	if openGroup != "" {
		b.WriteString("  </fieldset>\n")
	}

	for _, hidden := range render.SortedHiddenFields(options.Hidden) {
		b.WriteString(`  <input type="hidden"`)
		writeAttr(b, "name", hidden.Name)
		writeAttr(b, "value", hidden.Value)
		b.WriteString(">\n")
	}

	b.WriteString(`  <div class="`)
	b.WriteString(DefaultActionsClass)
	b.WriteString("\">\n")
	b.WriteString(`    <button type="submit" name="ff-submit" value="1">`)
	b.WriteString(escape(submitLabel))
	b.WriteString("</button>\n")
	b.WriteString("  </div>\n")
	b.WriteString("</form>\n")
}

// writeGroupOpen starts a group fieldset. disabled keeps hidden controls
// out of the submitted payload. Groups carry their own paired error slot
// for messages that concern the group as a whole, such as an empty
// flavour selection.
func writeGroupOpen(b *strings.Builder, form *formdef.Form, key string, visible bool, options render.Options) {
	b.WriteString(`  <fieldset class="`)
	b.WriteString(DefaultGroupClass)
	b.WriteString(`"`)
	writeAttr(b, "data-group", key)
	writeBoolAttr(b, "hidden", !visible)
	writeBoolAttr(b, "disabled", !visible)
	b.WriteString(">\n")

	if group, ok := form.GroupByKey(key); ok && strings.TrimSpace(group.Title) != "" {
		b.WriteString("    <legend>")
		b.WriteString(escape(group.Title))
		b.WriteString("</legend>\n")
	}

	errorSlot(b, report.SlotFor(key), options.Errors[key])
}

// writeSummary always emits the aggregate container so its slot exists
// in the page; it stays hidden until messages arrive.
func writeSummary(b *strings.Builder, messages []string) {
	b.WriteString(`  <div id="`)
	b.WriteString(report.SummaryID)
	b.WriteString(`" class="`)
	b.WriteString(DefaultErrorSummaryClass)
	b.WriteString(`" role="alert" tabindex="-1"`)
	if len(messages) == 0 {
		b.WriteString(" hidden></div>\n")
		return
	}
	b.WriteString(" data-ff-focus>\n")
	b.WriteString("    <h2>")
	b.WriteString(escape(report.HeaderText(len(messages))))
	b.WriteString("</h2>\n")
	b.WriteString("    <ul>\n")
	for _, message := range messages {
		b.WriteString("      <li>")
		b.WriteString(escape(message))
		b.WriteString("</li>\n")
	}
	b.WriteString("    </ul>\n")
	b.WriteString("  </div>\n")
}

func writeConfirmation(b *strings.Builder, form *formdef.Form) {
	b.WriteString(`<div class="`)
	b.WriteString(string(ClassConfirmation))
	b.WriteString(`" role="status" data-ff-focus>`)
	b.WriteString("\n  <h1>Thank you</h1>\n  <p>")
	title := strings.TrimSpace(form.Title)
	if title == "" {
		title = "Your form"
	}
	b.WriteString(escape(title))
	b.WriteString(" has been submitted.</p>\n</div>\n")
}

// writeThemeStyle inlines resolved theme CSS variables ahead of the
// markup so chrome styling picks them up without an extra stylesheet
// round trip.
func writeThemeStyle(b *strings.Builder, cfg *theme.RendererConfig) {
	if cfg == nil || len(cfg.CSSVars) == 0 {
		return
	}
	b.WriteString(`<style`)
	writeAttr(b, "data-formflow-theme", cfg.Theme)
	b.WriteString(">\n:root {\n")

	keys := make([]string, 0, len(cfg.CSSVars))
	for key := range cfg.CSSVars {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		b.WriteString("  ")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(cfg.CSSVars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}\n</style>\n")
}

func pageContext(form *formdef.Form, body string, cfg *theme.RendererConfig) map[string]any {
	title := strings.TrimSpace(form.Title)
	if title == "" {
		title = form.Name
	}
	ctx := map[string]any{
		"title":      title,
		"form_name":  form.Name,
		"body":       body,
		"stylesheet": defaultStylesheet(),
		"script":     runtimeScript(),
	}
	if cfg != nil {
		ctx["theme"] = map[string]any{
			"name":    cfg.Theme,
			"variant": cfg.Variant,
			"tokens":  cfg.Tokens,
		}
	}
	return ctx
}
