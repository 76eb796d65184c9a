package validate_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/testsupport"
	"github.com/goliatone/go-formflow/pkg/validate"
)

func apply(t *testing.T, def *formdef.Form, s formstate.State, evs ...formstate.Event) formstate.State {
	t.Helper()
	for _, ev := range evs {
		next, note, err := formstate.Apply(def, s, ev)
		if err != nil {
			t.Fatalf("Apply(%+v) returned error: %v", ev, err)
		}
		if note != nil {
			t.Fatalf("Apply(%+v) was blocked: %+v", ev, note)
		}
		s = next
	}
	return s
}

func fieldsOf(errs []validate.Error) []string {
	out := make([]string, len(errs))
	for i, err := range errs {
		out[i] = err.Field
	}
	return out
}

func messageFor(errs []validate.Error, field string) (string, bool) {
	for _, err := range errs {
		if err.Field == field {
			return err.Message, true
		}
	}
	return "", false
}

func TestOrderRulesEmptyDefaultState(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	errs := validate.Run(formstate.New(def), validate.OrderRules())

	want := []validate.Error{
		{Field: "flavors", Message: "Choose at least one flavor."},
		{Field: "delivery-street", Message: "Enter a delivery street address."},
		{Field: "delivery-suburb", Message: "Enter a delivery suburb."},
		{Field: "delivery-postcode", Message: "Delivery postcode must be exactly 4 digits."},
		{Field: "billing-street", Message: "Enter a billing street address."},
		{Field: "billing-suburb", Message: "Enter a billing suburb."},
		{Field: "billing-postcode", Message: "Billing postcode must be exactly 4 digits."},
		{Field: "contact-number", Message: "Enter a contact number."},
		{Field: "email", Message: "Enter an email address."},
		{Field: "card-type", Message: "Select a card type."},
		{Field: "card-name", Message: "Enter the name on the card."},
		{Field: "card-number", Message: "Enter a card number of 15 or 16 digits."},
		{Field: "card-expiry", Message: "Enter the card expiry date."},
		{Field: "card-cvv", Message: "Enter the card CVV."},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("error list mismatch (-want +got):\n%s", diff)
	}
}

func TestOrderRulesPickupSkipsDeliveryChecks(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := apply(t, def, formstate.New(def),
		formstate.Select{Group: "order-type", Option: "pickup"},
	)

	errs := validate.Run(s, validate.OrderRules())

	if msg, ok := messageFor(errs, "flavors"); !ok || !strings.Contains(msg, "at least one flavor") {
		t.Fatalf("flavor error missing or wrong: %q", msg)
	}
	for _, field := range fieldsOf(errs) {
		if strings.HasPrefix(field, "delivery-") {
			t.Fatalf("pickup order reported delivery error on %s", field)
		}
	}
}

func TestOrderRulesSingleFlavorError(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := apply(t, def, formstate.New(def),
		formstate.SetValue{Field: "delivery-street", Value: "1 Scoop St"},
		formstate.SetValue{Field: "delivery-suburb", Value: "Newtown"},
		formstate.SetValue{Field: "delivery-postcode", Value: "2042"},
		formstate.SetFlag{Field: "same-as-delivery", On: true},
		formstate.Select{Group: "pay-method", Option: "cash"},
		formstate.SetValue{Field: "contact-number", Value: "0400 000 000"},
		formstate.SetValue{Field: "email", Value: "a@b.com"},
	)

	errs := validate.Run(s, validate.OrderRules())

	want := []validate.Error{{Field: "flavors", Message: "Choose at least one flavor."}}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("expected only the flavor error (-want +got):\n%s", diff)
	}
}

func TestOrderRulesAmexLengthMessage(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := apply(t, def, formstate.New(def),
		formstate.Select{Group: "card-type", Option: "amex"},
		formstate.SetValue{Field: "card-number", Value: "4111222233334444"},
	)

	errs := validate.Run(s, validate.OrderRules())

	msg, ok := messageFor(errs, "card-number")
	if !ok {
		t.Fatal("16-digit number accepted for amex")
	}
	if !strings.Contains(msg, "15") {
		t.Fatalf("amex error %q does not state 15 digits", msg)
	}
}

func TestOrderRulesCardNumberBranches(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		cardType string
		number   string
		wantErr  bool
		wantSub  string
	}{
		{name: "visa exact", cardType: "visa", number: "4111222233334444", wantErr: false},
		{name: "visa short", cardType: "visa", number: "411122223333444", wantErr: true, wantSub: "16"},
		{name: "visa non-digit", cardType: "visa", number: "4111 2222 3333 4444", wantErr: true, wantSub: "Visa"},
		{name: "mastercard exact", cardType: "mastercard", number: "5111222233334444", wantErr: false},
		{name: "mastercard long", cardType: "mastercard", number: "51112222333344445", wantErr: true, wantSub: "16"},
		{name: "amex exact", cardType: "amex", number: "341122223333444", wantErr: false},
		{name: "amex long", cardType: "amex", number: "3411222233334444", wantErr: true, wantSub: "15"},
		{name: "no type fifteen", cardType: "", number: "341122223333444", wantErr: false},
		{name: "no type sixteen", cardType: "", number: "4111222233334444", wantErr: false},
		{name: "no type fourteen", cardType: "", number: "41112222333344", wantErr: true, wantSub: "15 or 16"},
		{name: "no type letters", cardType: "", number: "fourteen-digits", wantErr: true, wantSub: "15 or 16"},
	}

	def := formdef.OrderForm()
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			evs := []formstate.Event{
				formstate.SetValue{Field: "card-number", Value: tc.number},
			}
			if tc.cardType != "" {
				evs = append(evs, formstate.Select{Group: "card-type", Option: tc.cardType})
			}
			s := apply(t, def, formstate.New(def), evs...)

			errs := validate.Run(s, validate.OrderRules())
			msg, got := messageFor(errs, "card-number")
			if got != tc.wantErr {
				t.Fatalf("card-number error = %v (%q), want %v", got, msg, tc.wantErr)
			}
			if tc.wantErr && !strings.Contains(msg, tc.wantSub) {
				t.Fatalf("message %q does not contain %q", msg, tc.wantSub)
			}
		})
	}
}

func TestOrderRulesEmailGating(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()

	blank := formstate.New(def)
	errs := validate.Run(blank, validate.OrderRules())
	if msg, _ := messageFor(errs, "email"); msg != "Enter an email address." {
		t.Fatalf("blank email message = %q", msg)
	}
	count := 0
	for _, err := range errs {
		if err.Field == "email" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("blank email produced %d errors, want 1", count)
	}

	s := apply(t, def, blank, formstate.SetValue{Field: "email", Value: "not-an-email"})
	errs = validate.Run(s, validate.OrderRules())
	if msg, _ := messageFor(errs, "email"); msg != "Enter a valid email address." {
		t.Fatalf("malformed email message = %q", msg)
	}
}

func TestOrderRulesCardNameChecks(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()

	s := apply(t, def, formstate.New(def), formstate.SetValue{Field: "card-name", Value: "J0hn Doe"})
	errs := validate.Run(s, validate.OrderRules())
	if msg, ok := messageFor(errs, "card-name"); !ok || !strings.Contains(msg, "letters and spaces") {
		t.Fatalf("digit in card name not caught: %q", msg)
	}

	blankErrs := validate.Run(formstate.New(def), validate.OrderRules())
	count := 0
	for _, err := range blankErrs {
		if err.Field == "card-name" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("blank card name produced %d errors, want only the blank check", count)
	}
}

func TestOrderRulesMirrorSkipsBilling(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := apply(t, def, formstate.New(def),
		formstate.SetValue{Field: "delivery-street", Value: "1 Scoop St"},
		formstate.SetValue{Field: "delivery-suburb", Value: "Newtown"},
		formstate.SetValue{Field: "delivery-postcode", Value: "2042"},
		formstate.SetFlag{Field: "same-as-delivery", On: true},
	)

	errs := validate.Run(s, validate.OrderRules())
	for _, field := range fieldsOf(errs) {
		if strings.HasPrefix(field, "billing-") {
			t.Fatalf("billing rule ran while mirrored: %s", field)
		}
	}
}

func TestOrderRulesValidState(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := apply(t, def, formstate.New(def),
		formstate.Increment{Field: "flavor-vanilla"},
		formstate.SetValue{Field: "delivery-street", Value: "1 Scoop St"},
		formstate.SetValue{Field: "delivery-suburb", Value: "Newtown"},
		formstate.SetValue{Field: "delivery-postcode", Value: "2042"},
		formstate.SetFlag{Field: "same-as-delivery", On: true},
		formstate.SetValue{Field: "contact-number", Value: "0400 000 000"},
		formstate.SetValue{Field: "email", Value: "a@b.com"},
		formstate.Select{Group: "card-type", Option: "visa"},
		formstate.SetValue{Field: "card-name", Value: "Jane Doe"},
		formstate.SetValue{Field: "card-number", Value: "4111222233334444"},
		formstate.SetValue{Field: "card-expiry", Value: "12/27"},
		formstate.SetValue{Field: "card-cvv", Value: "123"},
	)

	if errs := validate.Run(s, validate.OrderRules()); len(errs) != 0 {
		t.Fatalf("valid order reported errors: %+v", errs)
	}
}

func TestOrderRulesRestoredDraft(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := testsupport.RestoreState(t, def, "testdata/valid-order.json")

	if got := s.Count("flavor-vanilla"); got != 1 {
		t.Fatalf("restored vanilla count = %d, want 1", got)
	}
	if errs := validate.Run(s, validate.OrderRules()); len(errs) != 0 {
		t.Fatalf("restored draft reported errors: %+v", errs)
	}
}

func TestRegistrationRules(t *testing.T) {
	t.Parallel()

	def := formdef.RegistrationForm()

	valid := apply(t, def, formstate.New(def),
		formstate.SetValue{Field: "username", Value: "janed"},
		formstate.SetValue{Field: "password", Value: "Str0ng!pass"},
		formstate.SetValue{Field: "confirm-password", Value: "Str0ng!pass"},
		formstate.SetValue{Field: "email", Value: "jane@example.com"},
		formstate.Select{Group: "gender", Option: "female"},
	)
	if errs := validate.Run(valid, validate.RegistrationRules()); len(errs) != 0 {
		t.Fatalf("valid registration reported errors: %+v", errs)
	}

	weak := apply(t, def, valid, formstate.SetValue{Field: "password", Value: "weakpass"})
	errs := validate.Run(weak, validate.RegistrationRules())
	if msg, ok := messageFor(errs, "password"); !ok || !strings.Contains(msg, "9 characters") {
		t.Fatalf("weak password not caught: %q", msg)
	}
	if msg, ok := messageFor(errs, "confirm-password"); !ok || msg != "Passwords do not match." {
		t.Fatalf("confirmation mismatch not caught: %q", msg)
	}

	blank := formstate.New(def)
	want := []validate.Error{
		{Field: "username", Message: "Enter a username."},
		{Field: "password", Message: "Enter a password."},
		{Field: "email", Message: "Enter an email address."},
		{Field: "gender", Message: "Select a gender option."},
	}
	if diff := cmp.Diff(want, validate.Run(blank, validate.RegistrationRules())); diff != "" {
		t.Fatalf("blank registration mismatch (-want +got):\n%s", diff)
	}
}

func TestRulesFor(t *testing.T) {
	t.Parallel()

	if _, ok := validate.RulesFor("order"); !ok {
		t.Fatal("RulesFor(order) missing")
	}
	if _, ok := validate.RulesFor("registration"); !ok {
		t.Fatal("RulesFor(registration) missing")
	}
	if _, ok := validate.RulesFor("unknown"); ok {
		t.Fatal("RulesFor(unknown) unexpectedly found")
	}
}
