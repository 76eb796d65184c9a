package formdef

import "testing"

func TestDefaultLabeler(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"customer-email", "Customer Email"},
		{"billingStreet", "Billing Street"},
		{"card_cvv", "Card CVV"},
		{"user-id", "User ID"},
		{"avatarURL", "Avatar URL"},
		{"line2", "Line 2"},
		{"delivery-address", "Delivery Address"},
		{"pickup", "Pickup"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := DefaultLabeler(tc.in); got != tc.want {
			t.Errorf("DefaultLabeler(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
