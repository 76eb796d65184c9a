// Package session drives one form through its lifecycle: restore any
// saved draft on start, apply user events, persist after every change,
// and run submit validation that either reports failures and keeps the
// draft or clears it and hands the state to the submit action.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/report"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// SubmitFunc receives the state once every rule has passed. The engine
// owns validation and draft cleanup; the function owns whatever
// submission itself means for the caller.
type SubmitFunc func(ctx context.Context, s formstate.State) error

// Option customises the engine configuration.
type Option func(*Engine)

// WithStore enables draft persistence against the given store. Without
// a store the engine runs fully in memory.
func WithStore(store draft.Store) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithReporter directs inline and summary error output to reporter.
func WithReporter(r report.Reporter) Option {
	return func(e *Engine) {
		e.reporter = r
	}
}

// WithRules replaces the rule set resolved from the definition name.
func WithRules(ruleSet []validate.Rule) Option {
	return func(e *Engine) {
		e.rules = ruleSet
		e.rulesSet = true
	}
}

// WithLogger injects a logger for draft and submit diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(e *Engine) {
		e.id = id
	}
}

// WithState seeds the engine with an existing state instead of the
// definition defaults.
func WithState(s formstate.State) Option {
	return func(e *Engine) {
		e.state = s
		e.stateSet = true
	}
}

// WithSubmitAction sets the function a valid submit hands off to.
func WithSubmitAction(fn SubmitFunc) Option {
	return func(e *Engine) {
		e.submit = fn
	}
}

// WithDraftKey overrides the definition's draft key. An empty key
// disables persistence even when a store is configured.
func WithDraftKey(key string) Option {
	return func(e *Engine) {
		e.draftKey = key
		e.keySet = true
	}
}

// Engine coordinates one user's pass through one form. It is not safe
// for concurrent use; each session belongs to a single user interaction
// at a time.
type Engine struct {
	def      *formdef.Form
	state    formstate.State
	id       string
	store    draft.Store
	reporter report.Reporter
	rules    []validate.Rule
	logger   *zap.Logger
	submit   SubmitFunc
	draftKey string
	rulesSet bool
	stateSet bool
	keySet   bool
}

// New constructs an engine for a form definition, applying any provided
// options. Missing dependencies fall back to built-ins: definition
// defaults for state, rules resolved from the definition name, a no-op
// reporter and logger, and a generated session ID.
func New(def *formdef.Form, options ...Option) (*Engine, error) {
	if def == nil {
		return nil, errors.New("session: form definition is required")
	}

	e := &Engine{def: def}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}

	if !e.stateSet {
		e.state = formstate.New(def)
	}
	if !e.rulesSet {
		if ruleSet, ok := validate.RulesFor(def.Name); ok {
			e.rules = ruleSet
		}
	}
	if e.reporter == nil {
		e.reporter = report.Discard
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.id == "" {
		e.id = uuid.NewString()
	}
	if !e.keySet {
		e.draftKey = def.DraftKey
	}
	e.logger = e.logger.With(zap.String("session_id", e.id), zap.String("form", def.Name))

	return e, nil
}

// ID returns the session identifier.
func (e *Engine) ID() string { return e.id }

// Definition returns the form definition the session runs against.
func (e *Engine) Definition() *formdef.Form { return e.def }

// State returns the current form state.
func (e *Engine) State() formstate.State { return e.state }

// View projects the current display state. Views are derived fresh on
// every call and never cached.
func (e *Engine) View() formstate.View { return formstate.Project(e.def, e.state) }

// Start restores any saved draft into the session. A missing draft, an
// unreadable one, or a failing store all leave the engine on its seeded
// state and log a diagnostic: drafts improve continuity, they never
// block a session. Restored mirror checkboxes re-copy their sources so
// targets match again, and the restored state is re-saved.
func (e *Engine) Start(ctx context.Context) error {
	if ctx == nil {
		return errors.New("session: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.store == nil || e.draftKey == "" {
		return nil
	}

	data, err := e.store.Read(e.draftKey)
	if errors.Is(err, draft.ErrNotFound) {
		return nil
	}
	if err != nil {
		e.logger.Warn("draft read failed", zap.String("draft_key", e.draftKey), zap.Error(err))
		return nil
	}

	rec, err := draft.Decode(data)
	if err != nil {
		e.logger.Warn("discarding unreadable draft", zap.String("draft_key", e.draftKey), zap.Error(err))
		return nil
	}

	e.state = formstate.ResyncMirrors(e.def, draft.Restore(e.def, e.state, rec))
	e.persist()
	e.logger.Debug("draft restored", zap.String("draft_key", e.draftKey), zap.Int("entries", len(rec)))
	return nil
}

// Apply runs one event against the session state. A returned Note is a
// blocking notification for the UI; the state did not change. Every
// non-erroring call persists the draft when a store is configured.
func (e *Engine) Apply(ev formstate.Event) (*formstate.Note, error) {
	next, note, err := formstate.Apply(e.def, e.state, ev)
	if err != nil {
		return nil, err
	}
	e.state = next
	e.persist()
	return note, nil
}

// Result reports one submit attempt. Errors holds every failing rule in
// rule order when Valid is false.
type Result struct {
	Valid  bool
	Errors []validate.Error
}

// Submit validates the current state. Every rule runs: failures are
// reported inline the moment they are found, then summarised, and the
// draft survives so the user keeps their progress. On a fully valid
// state the draft is deleted and the submit action, if configured,
// receives the state. An action error is returned as-is; the draft is
// not restored.
func (e *Engine) Submit(ctx context.Context) (*Result, error) {
	if ctx == nil {
		return nil, errors.New("session: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.reporter.ClearAll()

	errs := validate.Observe(e.state, e.rules, func(failure validate.Error) {
		e.reporter.FieldError(failure.Field, failure.Message)
	})
	if len(errs) > 0 {
		e.reporter.Summary(errs)
		e.logger.Debug("submit blocked", zap.Int("failures", len(errs)))
		return &Result{Valid: false, Errors: errs}, nil
	}

	e.clearDraft()
	if e.submit != nil {
		if err := e.submit(ctx, e.state); err != nil {
			return &Result{Valid: true}, fmt.Errorf("session: submit action: %w", err)
		}
	}
	e.logger.Info("form submitted")
	return &Result{Valid: true}, nil
}

// persist writes the current capture wholesale, replacing any prior
// record. Failures are logged and swallowed: losing a draft must not
// break the session.
func (e *Engine) persist() {
	if e.store == nil || e.draftKey == "" {
		return
	}
	data, err := draft.Encode(draft.Capture(e.def, e.state))
	if err != nil {
		e.logger.Warn("draft encode failed", zap.Error(err))
		return
	}
	if err := e.store.Write(e.draftKey, data); err != nil {
		e.logger.Warn("draft write failed", zap.String("draft_key", e.draftKey), zap.Error(err))
	}
}

func (e *Engine) clearDraft() {
	if e.store == nil || e.draftKey == "" {
		return
	}
	if err := e.store.Delete(e.draftKey); err != nil {
		e.logger.Warn("draft delete failed", zap.String("draft_key", e.draftKey), zap.Error(err))
	}
}
