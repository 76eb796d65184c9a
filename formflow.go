// Package formflow drives interactive form sessions. A form definition
// describes the fields, their grouping, and the draft key; the session
// engine applies edits, keeps conditional groups and mirrored fields
// consistent, validates on submit, and persists drafts; renderers turn
// the projected view into HTML or a terminal session.
//
// The short path from definition to rendered form:
//
//	def := formdef.OrderForm()
//	engine, err := formflow.New(def,
//		formflow.WithStore(draft.NewMemoryStore()),
//	)
//	if err != nil {
//		return err
//	}
//	if err := engine.Start(ctx); err != nil {
//		return err
//	}
//	if _, err := engine.Apply(formflow.Increment{Field: "flavor-vanilla"}); err != nil {
//		return err
//	}
//	html, err := formflow.RenderHTML(ctx, def, engine.State(), formflow.RenderOptions{
//		Action: "/orders",
//	})
//
// Definitions can also be loaded from documents (LoadForm) or derived
// from annotated OpenAPI specs (FromOpenAPI).
package formflow

import (
	"context"

	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
	"github.com/goliatone/go-formflow/pkg/report"
	"github.com/goliatone/go-formflow/pkg/session"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// Engine aliases the session engine for callers that only import the
// root package.
type Engine = session.Engine

// Result carries the submit outcome: overall validity plus the recorded
// failures.
type Result = session.Result

// Note is the transient, non-blocking message an edit can produce.
type Note = formstate.Note

// View is the renderable projection of a session's current state.
type View = formstate.View

// RenderOptions carries per-render inputs such as the action URL,
// recorded errors, and hidden fields.
type RenderOptions = render.Options

// The edit events a session accepts.
type (
	SetValue  = formstate.SetValue
	Select    = formstate.Select
	SetFlag   = formstate.SetFlag
	Increment = formstate.Increment
	Decrement = formstate.Decrement
)

// New constructs a session engine for the definition.
func New(def *formdef.Form, options ...session.Option) (*session.Engine, error) {
	return session.New(def, options...)
}

// WithStore persists drafts of the session to the given store.
func WithStore(store draft.Store) session.Option {
	return session.WithStore(store)
}

// WithRules overrides the validation rule set applied on submit.
func WithRules(rules []validate.Rule) session.Option {
	return session.WithRules(rules)
}

// WithReporter mirrors validation results into an error reporter.
func WithReporter(r report.Reporter) session.Option {
	return session.WithReporter(r)
}

// WithLogger attaches a zap logger to the session.
func WithLogger(logger *zap.Logger) session.Option {
	return session.WithLogger(logger)
}

// WithSubmitAction runs fn when a submit passes validation.
func WithSubmitAction(fn session.SubmitFunc) session.Option {
	return session.WithSubmitAction(fn)
}

// WithDraftKey overrides the key drafts persist under.
func WithDraftKey(key string) session.Option {
	return session.WithDraftKey(key)
}

// DefaultRenderers returns a registry with the built-in renderers
// registered: "vanilla" for server-driven HTML and "tui" for terminal
// sessions.
func DefaultRenderers() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(html); err != nil {
		return nil, err
	}

	terminal, err := tui.New()
	if err != nil {
		return nil, err
	}
	if err := registry.Register(terminal); err != nil {
		return nil, err
	}
	return registry, nil
}

// RenderHTML projects the state against the definition and renders it
// with the vanilla renderer. It is the simplest way to get markup for a
// session.
func RenderHTML(ctx context.Context, def *formdef.Form, state formstate.State, options render.Options) ([]byte, error) {
	renderer, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	view := formstate.Project(def, state)
	return renderer.Render(ctx, def, view, options)
}
