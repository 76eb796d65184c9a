// Package validate evaluates a form state against an ordered rule set.
// Every rule always runs; there is no short-circuiting, so one submit
// reports everything that is wrong at once. The shipped rule sets are
// fixed: this is not a general validation framework.
package validate

import (
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// Error pairs a field key with a human-readable message. Errors are
// produced transiently during validation and never persisted.
type Error struct {
	Field   string
	Message string
}

// Rule checks one aspect of a form state. When gates conditional rules:
// a gated rule whose When returns false passes without running Check.
// Message may inspect the state so one rule can report type-specific
// text.
type Rule struct {
	Field   string
	When    func(formstate.State) bool
	Check   func(formstate.State) bool
	Message func(formstate.State) string
}

// Run evaluates every rule in order and collects one Error per failing
// rule. All rules run regardless of earlier failures; the returned slice
// preserves rule order. A nil or empty result means the state is valid.
func Run(s formstate.State, ruleSet []Rule) []Error {
	return Observe(s, ruleSet, nil)
}

// Observe evaluates like Run and additionally hands each failure to
// observe the moment it is found, so callers can report inline while
// the remaining rules still run.
func Observe(s formstate.State, ruleSet []Rule, observe func(Error)) []Error {
	var errs []Error
	for _, rule := range ruleSet {
		if rule.When != nil && !rule.When(s) {
			continue
		}
		if rule.Check(s) {
			continue
		}
		failure := Error{Field: rule.Field, Message: rule.Message(s)}
		errs = append(errs, failure)
		if observe != nil {
			observe(failure)
		}
	}
	return errs
}

// RulesFor returns the shipped rule set for a built-in form name.
func RulesFor(name string) ([]Rule, bool) {
	switch name {
	case "order":
		return OrderRules(), true
	case "registration":
		return RegistrationRules(), true
	default:
		return nil, false
	}
}

func text(message string) func(formstate.State) string {
	return func(formstate.State) string { return message }
}

func nonBlankField(key string) func(formstate.State) bool {
	return func(s formstate.State) bool {
		return rules.IsNonBlank(s.Value(key))
	}
}
