// Package report carries validation output to a display surface. The
// Reporter port mirrors what a form page does with errors: per-field
// inline messages, a wipe of all error state, and an aggregate summary
// that takes keyboard focus so the failure list is announced.
package report

import (
	"fmt"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/validate"
)

// SlotSuffix derives a field's error-slot identifier from its key.
const SlotSuffix = "-error"

// SummaryID is the default identifier of the page-level summary container.
const SummaryID = "error-summary"

// Reporter is the display adapter validation results are pushed through.
type Reporter interface {
	// FieldError marks the field's error slot visible with the message
	// and flags the field's input as errored. Fields without a slot are
	// a silent no-op.
	FieldError(field, message string)
	// ClearAll hides every error slot, unflags every input and empties
	// the summary.
	ClearAll()
	// Summary renders a count header plus every message in order, shows
	// the summary container and moves keyboard focus to it.
	Summary(errs []validate.Error)
}

// SlotFor returns the error-slot identifier for a field key.
func SlotFor(field string) string {
	return field + SlotSuffix
}

// SlotsForForm returns every slot owner a definition provides: one per
// field key and one per group key, so group-level rules (the flavor
// total) have somewhere to report.
func SlotsForForm(def *formdef.Form) []string {
	if def == nil {
		return nil
	}
	out := make([]string, 0, len(def.Fields)+len(def.Groups))
	for _, field := range def.Fields {
		out = append(out, field.Key)
	}
	for _, group := range def.Groups {
		out = append(out, group.Key)
	}
	return out
}

// HeaderText is the summary's count header.
func HeaderText(count int) string {
	if count == 1 {
		return "There is 1 problem to fix:"
	}
	return fmt.Sprintf("There are %d problems to fix:", count)
}

type discard struct{}

func (discard) FieldError(string, string) {}
func (discard) ClearAll()                 {}
func (discard) Summary([]validate.Error)  {}

// Discard swallows all reports. It is the default reporter for sessions
// that read validation results from Submit instead.
var Discard Reporter = discard{}
