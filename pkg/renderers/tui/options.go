package tui

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// OutputFormat controls how submitted values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// Theme captures optional formatting hints applied when printing
// messages. Keep minimal to avoid coupling prompt logic to ANSI
// specifics.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithStore enables draft persistence for interactive sessions. When
// omitted, sessions run without saved drafts.
func WithStore(store draft.Store) Option {
	return func(r *Renderer) {
		r.store = store
	}
}

// WithRules overrides the validation rules applied on submit.
func WithRules(rules []validate.Rule) Option {
	return func(r *Renderer) {
		r.rules = rules
	}
}

// WithLogger attaches a logger to the sessions the renderer drives.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxAttempts caps how many corrective rounds a session allows
// before giving up with ErrAttemptsExhausted. Zero means unlimited.
func WithMaxAttempts(attempts int) Option {
	return func(r *Renderer) {
		if attempts >= 0 {
			r.maxAttempts = attempts
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
