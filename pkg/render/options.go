package render

import (
	theme "github.com/goliatone/go-theme"
)

// Options describe per-render data that renderers can use to customise
// their output without touching the state pipeline.
type Options struct {
	// Action overrides the submit target of the rendered form. Renderers
	// that produce HTML put it on the form element; others may ignore it.
	Action string
	// Method overrides the submit method. Defaults to POST when empty.
	Method string
	// Errors surfaces validation feedback keyed by field or group key.
	// Renderers place each message list in the field's paired error slot.
	Errors map[string][]string
	// Summary lists every validation message in rule order for the
	// page-level summary block. Empty means the block stays hidden.
	Summary []string
	// Notice carries a blocking notification from a rejected transition,
	// shown near the control named by NoticeField.
	Notice      string
	NoticeField string
	// Hidden adds hidden inputs (CSRF tokens and the like) to HTML
	// output. See MergeHiddenFields.
	Hidden map[string]string
	// Theme carries resolved go-theme configuration: design tokens, CSS
	// variables and asset resolution for the rendered page.
	Theme *theme.RendererConfig
	// Submitted marks the render that follows a successful submission so
	// surfaces can show a confirmation instead of the form.
	Submitted bool
}
