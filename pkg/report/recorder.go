package report

import (
	"sort"

	"github.com/goliatone/go-formflow/pkg/validate"
)

// Recorder is the in-memory Reporter. It tracks exactly what a rendered
// page would show: which slots display which message, which inputs are
// flagged, whether the summary is visible and where focus went. Renderers
// and tests read the tracked state back through the accessors.
type Recorder struct {
	slots     map[string]bool
	messages  map[string]string
	flagged   map[string]bool
	summary   []validate.Error
	visible   bool
	focus     string
	summaryID string
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithSlots registers the fields that own an error slot. Reports against
// unregistered fields are silently dropped, matching a page with partial
// markup.
func WithSlots(fields ...string) RecorderOption {
	return func(r *Recorder) {
		for _, field := range fields {
			r.slots[field] = true
		}
	}
}

// WithSummaryID overrides the summary container identifier.
func WithSummaryID(id string) RecorderOption {
	return func(r *Recorder) {
		if id != "" {
			r.summaryID = id
		}
	}
}

// NewRecorder returns an empty Recorder.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{
		slots:     map[string]bool{},
		messages:  map[string]string{},
		flagged:   map[string]bool{},
		summaryID: SummaryID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FieldError records the message for the field's slot and flags the
// field. Unregistered fields are a no-op.
func (r *Recorder) FieldError(field, message string) {
	if !r.slots[field] {
		return
	}
	r.messages[field] = message
	r.flagged[field] = true
}

// ClearAll wipes every slot message, every flag, the summary and focus.
func (r *Recorder) ClearAll() {
	r.messages = map[string]string{}
	r.flagged = map[string]bool{}
	r.summary = nil
	r.visible = false
	r.focus = ""
}

// Summary records the ordered error list, shows the summary and moves
// focus to its container.
func (r *Recorder) Summary(errs []validate.Error) {
	r.summary = append([]validate.Error(nil), errs...)
	r.visible = true
	r.focus = r.summaryID
}

// Message returns the message shown in a field's slot.
func (r *Recorder) Message(field string) (string, bool) {
	msg, ok := r.messages[field]
	return msg, ok
}

// Flagged reports whether a field's input is marked errored.
func (r *Recorder) Flagged(field string) bool {
	return r.flagged[field]
}

// FlaggedFields returns the flagged field keys in sorted order.
func (r *Recorder) FlaggedFields() []string {
	out := make([]string, 0, len(r.flagged))
	for field := range r.flagged {
		out = append(out, field)
	}
	sort.Strings(out)
	return out
}

// SummaryVisible reports whether the summary container is shown.
func (r *Recorder) SummaryVisible() bool {
	return r.visible
}

// SummaryErrors returns a copy of the recorded summary list.
func (r *Recorder) SummaryErrors() []validate.Error {
	return append([]validate.Error(nil), r.summary...)
}

// Header returns the count header for the recorded summary.
func (r *Recorder) Header() string {
	return HeaderText(len(r.summary))
}

// FocusTarget returns the identifier focus was moved to, or "".
func (r *Recorder) FocusTarget() string {
	return r.focus
}

var _ Reporter = (*Recorder)(nil)
