// Package rules holds the pure field predicates the form validators are
// built from. Every predicate is stateless and never errors; it reports a
// boolean verdict on the raw input value and nothing else.
package rules

import (
	"regexp"
	"strings"
	"unicode"
)

// emailShape is deliberately permissive: local@domain.tld where each part
// is one or more non-space, non-@ characters. It is not an RFC validator.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsNonBlank reports whether text contains anything besides whitespace.
func IsNonBlank(text string) bool {
	return strings.TrimSpace(text) != ""
}

// IsStrongPassword reports whether text is at least 9 characters long and
// contains a lowercase letter, an uppercase letter, a digit, and at least
// one character that is neither letter nor digit. The five requirements
// are independent; character order does not matter.
func IsStrongPassword(text string) bool {
	var length int
	var lower, upper, digit, symbol bool
	for _, r := range text {
		length++
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}
	return length >= 9 && lower && upper && digit && symbol
}

// IsValidPostcode reports whether text is exactly four decimal digits.
func IsValidPostcode(text string) bool {
	if len(text) != 4 {
		return false
	}
	return IsAllDigits(text)
}

// IsValidEmail reports whether text has a local@domain.tld shape.
func IsValidEmail(text string) bool {
	return emailShape.MatchString(text)
}

// IsAlphaSpace reports whether text contains only ASCII letters and
// spaces. The empty string passes; pair with IsNonBlank when a value is
// required.
func IsAlphaSpace(text string) bool {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == ' ' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			continue
		}
		return false
	}
	return true
}

// IsAllDigits reports whether text contains only decimal digits. The
// empty string passes; pair with a length check when digits are required.
func IsAllDigits(text string) bool {
	for i := 0; i < len(text); i++ {
		if text[i] < '0' || text[i] > '9' {
			return false
		}
	}
	return true
}
