package validate

import (
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/rules"
)

// OrderRules returns the order form's rule set. Rule order is the order
// errors are collected and reported: flavor total, delivery address when
// delivering, billing address unless mirrored from delivery, contact
// details, then card details when paying online.
func OrderRules() []Rule {
	isDelivery := func(s formstate.State) bool { return s.Value("order-type") == "delivery" }
	notMirrored := func(s formstate.State) bool { return !s.Flag("same-as-delivery") }
	paysOnline := func(s formstate.State) bool { return s.Value("pay-method") == "online" }

	return []Rule{
		{
			Field: "flavors",
			Check: func(s formstate.State) bool {
				total := s.Count("flavor-vanilla") + s.Count("flavor-chocolate") + s.Count("flavor-strawberry")
				return total > 0
			},
			Message: text("Choose at least one flavor."),
		},
		{
			Field:   "delivery-street",
			When:    isDelivery,
			Check:   nonBlankField("delivery-street"),
			Message: text("Enter a delivery street address."),
		},
		{
			Field:   "delivery-suburb",
			When:    isDelivery,
			Check:   nonBlankField("delivery-suburb"),
			Message: text("Enter a delivery suburb."),
		},
		{
			Field:   "delivery-postcode",
			When:    isDelivery,
			Check:   func(s formstate.State) bool { return rules.IsValidPostcode(s.Value("delivery-postcode")) },
			Message: text("Delivery postcode must be exactly 4 digits."),
		},
		{
			Field:   "billing-street",
			When:    notMirrored,
			Check:   nonBlankField("billing-street"),
			Message: text("Enter a billing street address."),
		},
		{
			Field:   "billing-suburb",
			When:    notMirrored,
			Check:   nonBlankField("billing-suburb"),
			Message: text("Enter a billing suburb."),
		},
		{
			Field:   "billing-postcode",
			When:    notMirrored,
			Check:   func(s formstate.State) bool { return rules.IsValidPostcode(s.Value("billing-postcode")) },
			Message: text("Billing postcode must be exactly 4 digits."),
		},
		{
			Field:   "contact-number",
			Check:   nonBlankField("contact-number"),
			Message: text("Enter a contact number."),
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
			Field:   "card-type",
			When:    paysOnline,
			Check:   nonBlankField("card-type"),
			Message: text("Select a card type."),
		},
		{
			Field:   "card-name",
			When:    paysOnline,
			Check:   nonBlankField("card-name"),
			Message: text("Enter the name on the card."),
		},
		{
			Field:   "card-name",
			When:    paysOnline,
			Check:   func(s formstate.State) bool { return rules.IsAlphaSpace(s.Value("card-name")) },
			Message: text("The name on the card can only contain letters and spaces."),
		},
		{
			Field:   "card-number",
			When:    paysOnline,
			Check:   cardNumberValid,
			Message: cardNumberMessage,
		},
		{
			Field:   "card-expiry",
			When:    paysOnline,
			Check:   nonBlankField("card-expiry"),
			Message: text("Enter the card expiry date."),
		},
		{
			Field:   "card-cvv",
			When:    paysOnline,
			Check:   nonBlankField("card-cvv"),
			Message: text("Enter the card CVV."),
		},
	}
}

// cardNumberValid keeps the three-way branch: a selected type demands its
// exact length, while no selection accepts 15 or 16 digits. Digits-only
// holds on every branch.
func cardNumberValid(s formstate.State) bool {
	number := s.Value("card-number")
	if !rules.IsAllDigits(number) {
		return false
	}
	switch s.Value("card-type") {
	case "amex":
		return len(number) == 15
	case "visa", "mastercard":
		return len(number) == 16
	default:
		return len(number) == 15 || len(number) == 16
	}
}

func cardNumberMessage(s formstate.State) string {
	switch s.Value("card-type") {
	case "amex":
		return "American Express card numbers are exactly 15 digits."
	case "visa":
		return "Visa card numbers are exactly 16 digits."
	case "mastercard":
		return "Mastercard numbers are exactly 16 digits."
	default:
		return "Enter a card number of 15 or 16 digits."
	}
}
