package rules_test

import (
	"testing"

	"github.com/goliatone/go-formflow/pkg/rules"
)

func TestIsNonBlank(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"   ", false},
		{"\t\n", false},
		{"x", true},
		{"  x  ", true},
	}
	for _, tc := range cases {
		if got := rules.IsNonBlank(tc.in); got != tc.want {
			t.Errorf("IsNonBlank(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsStrongPassword(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want bool
	}{
		{name: "all classes and long enough", in: "Abcdef1!x", want: true},
		{name: "classes in any order", in: "!1fedcbAx", want: true},
		{name: "exactly nine characters", in: "aA1!aaaaa", want: true},
		{name: "eight characters", in: "Abcdef1!", want: false},
		{name: "missing lowercase", in: "ABCDEF1!X", want: false},
		{name: "missing uppercase", in: "abcdef1!x", want: false},
		{name: "missing digit", in: "Abcdefg!x", want: false},
		{name: "missing symbol", in: "Abcdefg1x", want: false},
		{name: "empty", in: "", want: false},
		{name: "long but single class", in: "aaaaaaaaaaaa", want: false},
		{name: "space counts as symbol", in: "Abcdef1 x", want: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := rules.IsStrongPassword(tc.in); got != tc.want {
				t.Fatalf("IsStrongPassword(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsValidPostcode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"2000", true},
		{"0000", true},
		{"9999", true},
		{"200", false},
		{"20000", false},
		{"20a0", false},
		{"2 00", false},
		{"-200", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := rules.IsValidPostcode(tc.in); got != tc.want {
			t.Errorf("IsValidPostcode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"a@b.com", true},
		{"first.last@mail.example.org", true},
		{"user+tag@host.co", true},
		{"", false},
		{"plain", false},
		{"no-at.example.com", false},
		{"a@b", false},
		{"a@b.", false},
		{"a@.b", false},
		{"@b.com", false},
		{"a b@c.com", false},
		{"a@b c.com", false},
	}
	for _, tc := range cases {
		if got := rules.IsValidEmail(tc.in); got != tc.want {
			t.Errorf("IsValidEmail(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsAlphaSpace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"Jane Doe", true},
		{"jane", true},
		{"JANE", true},
		{"Jane-Doe", false},
		{"Jane2", false},
		{"Jâne", false},
	}
	for _, tc := range cases {
		if got := rules.IsAlphaSpace(tc.in); got != tc.want {
			t.Errorf("IsAlphaSpace(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestIsAllDigits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"0123456789", true},
		{"12a4", false},
		{"12 4", false},
		{"12.4", false},
		{"-124", false},
	}
	for _, tc := range cases {
		if got := rules.IsAllDigits(tc.in); got != tc.want {
			t.Errorf("IsAllDigits(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
