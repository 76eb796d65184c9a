package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/report"
	"github.com/goliatone/go-formflow/pkg/rules"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// Renderer implements render.Renderer for terminal-driven sessions. A
// render call walks the visible fields with interactive prompts, applies
// each answer to a session engine, and keeps prompting for the fields
// validation flags until the form submits cleanly. The returned bytes
// are the accepted submission serialized in the configured format.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
	store        draft.Store
	rules        []validate.Rule
	logger       *zap.Logger
	maxAttempts  int
	theme        Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	driver, err := newSurveyDriver()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		driver:       driver,
		outputFormat: OutputFormatJSON,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.driver == nil {
		r.driver, err = newSurveyDriver()
		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render drives one interactive session to a valid submission. The view
// seeds the starting state; a configured draft store can replace it with
// a restored draft before the first prompt.
func (r *Renderer) Render(ctx context.Context, form *formdef.Form, view formstate.View, _ render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form == nil {
		return nil, errors.New("tui: form definition is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	sessionOpts := []session.Option{
		session.WithState(stateFromView(form, view)),
	}
	if r.store != nil {
		sessionOpts = append(sessionOpts, session.WithStore(r.store))
	}
	if r.rules != nil {
		sessionOpts = append(sessionOpts, session.WithRules(r.rules))
	}
	if r.logger != nil {
		sessionOpts = append(sessionOpts, session.WithLogger(r.logger))
	}

	engine, err := session.New(form, sessionOpts...)
	if err != nil {
		return nil, fmt.Errorf("tui: new session: %w", err)
	}
	if err := engine.Start(ctx); err != nil {
		return nil, fmt.Errorf("tui: start session: %w", err)
	}

	if title := strings.TrimSpace(form.Title); title != "" {
		if err := r.info(ctx, r.theme.InfoPrefix, title); err != nil {
			return nil, err
		}
	}

	if err := r.promptFields(ctx, engine, nil); err != nil {
		return nil, err
	}

	attempts := 0
	for {
		result, err := engine.Submit(ctx)
		if err != nil {
			return nil, err
		}
		if result.Valid {
			break
		}

		attempts++
		if r.maxAttempts > 0 && attempts >= r.maxAttempts {
			return nil, ErrAttemptsExhausted
		}

		if err := r.info(ctx, r.theme.ErrorPrefix, report.HeaderText(len(result.Errors))); err != nil {
			return nil, err
		}
		for _, failure := range result.Errors {
			if err := r.info(ctx, r.theme.ErrorPrefix, "- "+failure.Message); err != nil {
				return nil, err
			}
		}
		if err := r.promptFields(ctx, engine, targetSet(result.Errors)); err != nil {
			return nil, err
		}
	}

	return r.serialize(form, engine.State())
}

// promptFields walks the definition in order, prompting every field in
// scope. Visibility is re-checked per field because a choice answered
// moments ago may have hidden or revealed later groups.
func (r *Renderer) promptFields(ctx context.Context, engine *session.Engine, targets map[string]bool) error {
	form := engine.Definition()
	for _, field := range form.Fields {
		if !shouldPrompt(field, targets) {
			continue
		}
		view := engine.View()
		if !view.FieldVisible(field) {
			continue
		}
		if err := r.promptField(ctx, engine, field, view); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, engine *session.Engine, field formdef.Field, view formstate.View) error {
	switch field.Kind {
	case formdef.KindCounter:
		return r.promptCounter(ctx, engine, field, view)
	case formdef.KindChoice, formdef.KindSelect:
		return r.promptChoice(ctx, engine, field, view)
	case formdef.KindCheckbox:
		return r.promptCheckbox(ctx, engine, field, view)
	case formdef.KindTextarea:
		return r.promptTextArea(ctx, engine, field, view)
	default:
		return r.promptText(ctx, engine, field, view)
	}
}

func (r *Renderer) promptCounter(ctx context.Context, engine *session.Engine, field formdef.Field, view formstate.View) error {
	counter := view.Counters[field.Key]
	answer, err := r.driver.Input(ctx, InputConfig{
		Message: r.message(field.Label),
		Default: strconv.Itoa(counter.Count),
		Help:    plainHelp(field.Help),
		Validator: func(value string) error {
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				return nil
			}
			if !rules.IsAllDigits(trimmed) {
				return errors.New("enter a whole number")
			}
			return nil
		},
	})
	if err != nil {
		return err
	}

	target := 0
	if trimmed := strings.TrimSpace(answer); trimmed != "" {
		target, err = strconv.Atoi(trimmed)
		if err != nil {
			return fmt.Errorf("tui: counter %q: %w", field.Key, err)
		}
	}

	for current := counter.Count; current < target; current++ {
		if _, err := engine.Apply(formstate.Increment{Field: field.Key}); err != nil {
			return err
		}
	}
	for current := counter.Count; current > target; current-- {
		if _, err := engine.Apply(formstate.Decrement{Field: field.Key}); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptChoice(ctx context.Context, engine *session.Engine, field formdef.Field, view formstate.View) error {
	current := view.Selections[field.Key]
	if field.Kind == formdef.KindSelect {
		current = view.Values[field.Key]
	}

	labels := make([]string, len(field.Options))
	defaultIndex := 0
	for i, option := range field.Options {
		labels[i] = optionText(option)
		if option.Value == current {
			defaultIndex = i
		}
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      r.message(field.Label),
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         plainHelp(field.Help),
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(field.Options) {
		return fmt.Errorf("tui: field %q selection out of range", field.Key)
	}

	value := field.Options[idx].Value
	if field.Kind == formdef.KindSelect {
		_, err = engine.Apply(formstate.SetValue{Field: field.Key, Value: value})
		return err
	}
	_, err = engine.Apply(formstate.Select{Group: field.Key, Option: value})
	return err
}

// promptCheckbox surfaces a rejected mirror transition as an error
// message and leaves the flag off, mirroring how visual surfaces show
// the blocking notice and revert the control.
func (r *Renderer) promptCheckbox(ctx context.Context, engine *session.Engine, field formdef.Field, view formstate.View) error {
	answer, err := r.driver.Confirm(ctx, ConfirmConfig{
		Message: r.message(field.Label),
		Default: view.Flags[field.Key],
		Help:    plainHelp(field.Help),
	})
	if err != nil {
		return err
	}

	note, err := engine.Apply(formstate.SetFlag{Field: field.Key, On: answer})
	if err != nil {
		return err
	}
	if note != nil {
		return r.info(ctx, r.theme.ErrorPrefix, note.Message)
	}
	return nil
}

func (r *Renderer) promptText(ctx context.Context, engine *session.Engine, field formdef.Field, view formstate.View) error {
	cfg := InputConfig{
		Message:     r.message(field.Label),
		Help:        plainHelp(field.Help),
		Placeholder: field.Placeholder,
	}

	var answer string
	var err error
	if field.Kind == formdef.KindPassword {
		answer, err = r.driver.Password(ctx, cfg)
	} else {
		cfg.Default = view.Values[field.Key]
		answer, err = r.driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}

	_, err = engine.Apply(formstate.SetValue{Field: field.Key, Value: answer})
	return err
}

func (r *Renderer) promptTextArea(ctx context.Context, engine *session.Engine, field formdef.Field, view formstate.View) error {
	answer, err := r.driver.TextArea(ctx, TextAreaConfig{
		Message: r.message(field.Label),
		Default: view.Values[field.Key],
		Help:    plainHelp(field.Help),
	})
	if err != nil {
		return err
	}
	_, err = engine.Apply(formstate.SetValue{Field: field.Key, Value: answer})
	return err
}

func (r *Renderer) serialize(form *formdef.Form, state formstate.State) ([]byte, error) {
	view := formstate.Project(form, state)

	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		values := url.Values{}
		for _, field := range form.Fields {
			if !view.FieldVisible(field) {
				continue
			}
			switch field.Kind {
			case formdef.KindCounter:
				values.Set(field.Key, strconv.Itoa(state.Count(field.Key)))
			case formdef.KindCheckbox:
				if state.Flag(field.Key) {
					values.Set(field.Key, "on")
				}
			default:
				values.Set(field.Key, state.Value(field.Key))
			}
		}
		return []byte(values.Encode()), nil

	case OutputFormatPrettyText:
		return []byte(r.prettyText(form, state, view)), nil

	default:
		payload := make(map[string]any, len(form.Fields))
		for _, field := range form.Fields {
			if !view.FieldVisible(field) {
				continue
			}
			switch field.Kind {
			case formdef.KindCounter:
				payload[field.Key] = state.Count(field.Key)
			case formdef.KindCheckbox:
				payload[field.Key] = state.Flag(field.Key)
			default:
				payload[field.Key] = state.Value(field.Key)
			}
		}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: serialize values: %w", err)
		}
		return data, nil
	}
}

func (r *Renderer) prettyText(form *formdef.Form, state formstate.State, view formstate.View) string {
	var b strings.Builder
	if title := strings.TrimSpace(form.Title); title != "" {
		b.WriteString(title)
		b.WriteString("\n")
		b.WriteString(strings.Repeat("=", len(title)))
		b.WriteString("\n")
	}

	openGroup := ""
	for _, field := range form.Fields {
		if !view.FieldVisible(field) {
			continue
		}
		if field.Group != openGroup {
			openGroup = field.Group
			if group, ok := form.GroupByKey(openGroup); ok && strings.TrimSpace(group.Title) != "" {
				b.WriteString("\n")
				b.WriteString(group.Title)
				b.WriteString("\n")
			}
		}

		label := field.Label
		if label == "" {
			label = field.Key
		}
		b.WriteString("  ")
		b.WriteString(label)
		b.WriteString(": ")
		switch field.Kind {
		case formdef.KindCounter:
			b.WriteString(strconv.Itoa(state.Count(field.Key)))
		case formdef.KindCheckbox:
			if state.Flag(field.Key) {
				b.WriteString("yes")
			} else {
				b.WriteString("no")
			}
		case formdef.KindPassword:
			b.WriteString("(hidden)")
		case formdef.KindChoice, formdef.KindSelect:
			b.WriteString(form.OptionLabel(field.Key, state.Value(field.Key)))
		default:
			b.WriteString(state.Value(field.Key))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (r *Renderer) message(label string) string {
	if r.theme.PromptPrefix == "" {
		return label
	}
	return r.theme.PromptPrefix + label
}

func (r *Renderer) info(ctx context.Context, prefix, msg string) error {
	if prefix != "" {
		msg = prefix + msg
	}
	return r.driver.Info(ctx, msg)
}

func optionText(option formdef.Option) string {
	if strings.TrimSpace(option.Label) != "" {
		return option.Label
	}
	return option.Value
}

var helpStripper = bluemonday.StrictPolicy()

// plainHelp strips the sanitised inline markup help text carries so
// terminal prompts show plain words.
func plainHelp(help string) string {
	trimmed := strings.TrimSpace(help)
	if trimmed == "" {
		return ""
	}
	return html.UnescapeString(helpStripper.Sanitize(trimmed))
}
