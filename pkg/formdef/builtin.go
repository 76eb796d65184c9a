package formdef

// OrderForm returns the built-in ice cream order form: flavor counters,
// the delivery/pickup and payment-method choice groups, the conditional
// delivery and payment groups, and the same-as-delivery address mirror.
// The returned definition is validated and owned by the caller.
func OrderForm() *Form {
	return mustForm(&Form{
		Name:     "order",
		Title:    "Ice cream order",
		DraftKey: "order-form",
		Groups: []Group{
			{Key: "flavors", Title: "Flavours"},
			{Key: "delivery-address", Title: "Delivery address", VisibleWhen: `order-type == "delivery"`},
			{Key: "billing-address", Title: "Billing address"},
			{Key: "contact", Title: "Contact details"},
			{Key: "payment-details", Title: "Payment details", VisibleWhen: `pay-method == "online"`},
		},
		Fields: []Field{
			{Key: "flavor-vanilla", Kind: KindCounter, Label: "Vanilla", Group: "flavors", CountSlot: "qty-vanilla", Default: "0"},
			{Key: "flavor-chocolate", Kind: KindCounter, Label: "Chocolate", Group: "flavors", CountSlot: "qty-chocolate", Default: "0"},
			{Key: "flavor-strawberry", Kind: KindCounter, Label: "Strawberry", Group: "flavors", CountSlot: "qty-strawberry", Default: "0"},
			{
				Key:     "order-type",
				Kind:    KindChoice,
				Label:   "Order type",
				Default: "delivery",
				Options: []Option{
					{Value: "delivery", Label: "Delivery"},
					{Value: "pickup", Label: "Pickup"},
				},
			},
			{Key: "delivery-street", Kind: KindText, Label: "Street address", Group: "delivery-address", Required: true, Autocomplete: "street-address"},
			{Key: "delivery-suburb", Kind: KindText, Label: "Suburb", Group: "delivery-address", Required: true, Autocomplete: "address-level2"},
			{Key: "delivery-postcode", Kind: KindText, Label: "Postcode", Group: "delivery-address", Required: true, Placeholder: "e.g. 2000", Autocomplete: "postal-code"},
			{
				Key:   "same-as-delivery",
				Kind:  KindCheckbox,
				Label: "Billing address is the same as delivery",
				Group: "delivery-address",
				Mirror: &Mirror{
					Sources:       []string{"delivery-street", "delivery-suburb", "delivery-postcode"},
					Targets:       []string{"billing-street", "billing-suburb", "billing-postcode"},
					BlockedNotice: "Fill in the delivery address before copying it to billing.",
				},
			},
			{Key: "billing-street", Kind: KindText, Label: "Street address", Group: "billing-address", Required: true, Autocomplete: "street-address"},
			{Key: "billing-suburb", Kind: KindText, Label: "Suburb", Group: "billing-address", Required: true, Autocomplete: "address-level2"},
			{Key: "billing-postcode", Kind: KindText, Label: "Postcode", Group: "billing-address", Required: true, Placeholder: "e.g. 2000", Autocomplete: "postal-code"},
			{Key: "contact-number", Kind: KindTel, Label: "Contact number", Group: "contact", Required: true, Autocomplete: "tel"},
			{Key: "email", Kind: KindEmail, Label: "Email", Group: "contact", Required: true, Autocomplete: "email"},
			{
				Key:     "pay-method",
				Kind:    KindChoice,
				Label:   "Payment method",
				Default: "online",
				Options: []Option{
					{Value: "online", Label: "Pay online"},
					{Value: "cash", Label: "Pay on delivery or pickup"},
				},
			},
			{
				Key:   "card-type",
				Kind:  KindChoice,
				Label: "Card type",
				Group: "payment-details",
				Options: []Option{
					{Value: "visa", Label: "Visa"},
					{Value: "mastercard", Label: "Mastercard"},
					{Value: "amex", Label: "American Express"},
				},
			},
			{Key: "card-name", Kind: KindText, Label: "Name on card", Group: "payment-details", Required: true, Autocomplete: "cc-name"},
			{Key: "card-number", Kind: KindText, Label: "Card number", Group: "payment-details", Required: true, Autocomplete: "cc-number"},
			{Key: "card-expiry", Kind: KindText, Label: "Expiry", Group: "payment-details", Required: true, Placeholder: "MM/YY", Autocomplete: "cc-exp"},
			{Key: "card-cvv", Kind: KindText, Label: "CVV", Group: "payment-details", Required: true, Autocomplete: "cc-csc"},
		},
	})
}

// RegistrationForm returns the built-in account registration form. It has
// no draft key; registration input is never persisted.
func RegistrationForm() *Form {
	return mustForm(&Form{
		Name:  "registration",
		Title: "Create an account",
		Fields: []Field{
			{Key: "username", Kind: KindText, Label: "Username", Required: true, Autocomplete: "username"},
			{
				Key:      "password",
				Kind:     KindPassword,
				Label:    "Password",
				Required: true,
				Help:     "At least 9 characters with <em>lower</em> and <em>upper</em> case letters, a digit and a symbol.",
			},
			{Key: "confirm-password", Kind: KindPassword, Label: "Confirm password", Required: true},
			{Key: "email", Kind: KindEmail, Label: "Email", Required: true, Autocomplete: "email"},
			{
				Key:   "gender",
				Kind:  KindChoice,
				Label: "Gender",
				Options: []Option{
					{Value: "female", Label: "Female"},
					{Value: "male", Label: "Male"},
					{Value: "other", Label: "Other"},
				},
			},
		},
	})
}

// Builtin returns the built-in definition with the given name, if any.
func Builtin(name string) (*Form, bool) {
	switch name {
	case "order":
		return OrderForm(), true
	case "registration":
		return RegistrationForm(), true
	default:
		return nil, false
	}
}
