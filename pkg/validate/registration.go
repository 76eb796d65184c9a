package validate

import (
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// RegistrationRules returns the registration form's rule set: username,
// password strength, confirmation match, email, and a gender selection.
func RegistrationRules() []Rule {
	return []Rule{
		{
			Field:   "username",
			Check:   nonBlankField("username"),
			Message: text("Enter a username."),
		},
		{
			Field:   "password",
			Check:   nonBlankField("password"),
			Message: text("Enter a password."),
		},
		{
			Field:   "password",
			When:    nonBlankField("password"),
			Check:   func(s formstate.State) bool { return rules.IsStrongPassword(s.Value("password")) },
			Message: text("Passwords need at least 9 characters with lowercase, uppercase, digit and symbol characters."),
		},
		{
			Field:   "confirm-password",
			Check:   func(s formstate.State) bool { return s.Value("confirm-password") == s.Value("password") },
			Message: text("Passwords do not match."),
		},
		{
			Field:   "email",
			Check:   nonBlankField("email"),
			Message: text("Enter an email address."),
		},
		{
			Field:   "email",
			When:    nonBlankField("email"),
			Check:   func(s formstate.State) bool { return rules.IsValidEmail(s.Value("email")) },
			Message: text("Enter a valid email address."),
		},
		{
			Field:   "gender",
			Check:   nonBlankField("gender"),
			Message: text("Select a gender option."),
		},
	}
}
