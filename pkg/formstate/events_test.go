package formstate_test

import (
	"testing"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
)

// step applies an event that must succeed without a note.
func step(t *testing.T, def *formdef.Form, s formstate.State, ev formstate.Event) formstate.State {
	t.Helper()
	next, note, err := formstate.Apply(def, s, ev)
	if err != nil {
		t.Fatalf("Apply(%+v) returned error: %v", ev, err)
	}
	if note != nil {
		t.Fatalf("Apply(%+v) returned unexpected note: %+v", ev, note)
	}
	return next
}

func deliveryComplete(t *testing.T, def *formdef.Form) formstate.State {
	t.Helper()
	s := formstate.New(def)
	s = step(t, def, s, formstate.SetValue{Field: "delivery-street", Value: "1 Scoop St"})
	s = step(t, def, s, formstate.SetValue{Field: "delivery-suburb", Value: "Newtown"})
	s = step(t, def, s, formstate.SetValue{Field: "delivery-postcode", Value: "2042"})
	return s
}

func TestCounterEvents(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)

	s = step(t, def, s, formstate.Increment{Field: "flavor-vanilla"})
	s = step(t, def, s, formstate.Increment{Field: "flavor-vanilla"})
	if got := s.Count("flavor-vanilla"); got != 2 {
		t.Fatalf("count after two increments = %d, want 2", got)
	}

	s = step(t, def, s, formstate.Decrement{Field: "flavor-vanilla"})
	if got := s.Count("flavor-vanilla"); got != 1 {
		t.Fatalf("count after decrement = %d, want 1", got)
	}
}

func TestDecrementFloorsAtZero(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)

	s = step(t, def, s, formstate.Decrement{Field: "flavor-chocolate"})
	if got := s.Count("flavor-chocolate"); got != 0 {
		t.Fatalf("count after decrement at zero = %d, want 0", got)
	}
	s = step(t, def, s, formstate.Decrement{Field: "flavor-chocolate"})
	if got := s.Count("flavor-chocolate"); got != 0 {
		t.Fatalf("count stays floored, got %d", got)
	}
}

func TestMirrorCheckCopiesSources(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := deliveryComplete(t, def)

	s = step(t, def, s, formstate.SetFlag{Field: "same-as-delivery", On: true})

	if !s.Flag("same-as-delivery") {
		t.Fatal("mirror flag not set")
	}
	want := map[string]string{
		"billing-street":   "1 Scoop St",
		"billing-suburb":   "Newtown",
		"billing-postcode": "2042",
	}
	for key, value := range want {
		if got := s.Value(key); got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}

func TestMirrorCheckRejectedWhileSourceBlank(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)
	s = step(t, def, s, formstate.SetValue{Field: "delivery-suburb", Value: "Newtown"})
	s = step(t, def, s, formstate.SetValue{Field: "delivery-postcode", Value: "2042"})
	s = step(t, def, s, formstate.SetValue{Field: "billing-street", Value: "untouched"})

	next, note, err := formstate.Apply(def, s, formstate.SetFlag{Field: "same-as-delivery", On: true})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if note == nil {
		t.Fatal("expected a blocking note, got none")
	}
	if note.Field != "same-as-delivery" {
		t.Fatalf("note field = %q, want same-as-delivery", note.Field)
	}
	if note.Message == "" {
		t.Fatal("note has no message")
	}
	if !next.Equal(s) {
		t.Fatal("rejected transition changed the state")
	}
	if next.Flag("same-as-delivery") {
		t.Fatal("rejected transition left the flag set")
	}
	if got := next.Value("billing-street"); got != "untouched" {
		t.Fatalf("billing-street = %q, want untouched", got)
	}
}

func TestMirrorUncheckBlanksTargets(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := deliveryComplete(t, def)
	s = step(t, def, s, formstate.SetFlag{Field: "same-as-delivery", On: true})
	s = step(t, def, s, formstate.SetFlag{Field: "same-as-delivery", On: false})

	if s.Flag("same-as-delivery") {
		t.Fatal("flag still set")
	}
	for _, key := range []string{"billing-street", "billing-suburb", "billing-postcode"} {
		if got := s.Value(key); got != "" {
			t.Errorf("%s = %q, want blank", key, got)
		}
	}
}

func TestPickupReleasesCheckedMirror(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := deliveryComplete(t, def)
	s = step(t, def, s, formstate.SetFlag{Field: "same-as-delivery", On: true})

	s = step(t, def, s, formstate.Select{Group: "order-type", Option: "pickup"})

	if s.Flag("same-as-delivery") {
		t.Fatal("mirror flag survived the switch to pickup")
	}
	for _, key := range []string{"billing-street", "billing-suburb", "billing-postcode"} {
		if got := s.Value(key); got != "" {
			t.Errorf("%s = %q, want blank after pickup", key, got)
		}
	}
	// The hidden delivery values themselves stay put.
	if got := s.Value("delivery-street"); got != "1 Scoop St" {
		t.Fatalf("delivery-street = %q, want it retained", got)
	}
}

func TestPickupWithoutMirrorLeavesBilling(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)
	s = step(t, def, s, formstate.SetValue{Field: "billing-street", Value: "5 Cone Ct"})

	s = step(t, def, s, formstate.Select{Group: "order-type", Option: "pickup"})

	if got := s.Value("billing-street"); got != "5 Cone Ct" {
		t.Fatalf("billing-street = %q, want it retained when the mirror was never checked", got)
	}
}

func TestApplyErrors(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)

	cases := []struct {
		name string
		ev   formstate.Event
	}{
		{name: "unknown field", ev: formstate.SetValue{Field: "nope", Value: "x"}},
		{name: "value on a counter", ev: formstate.SetValue{Field: "flavor-vanilla", Value: "3"}},
		{name: "unknown group", ev: formstate.Select{Group: "nope", Option: "x"}},
		{name: "select on a text field", ev: formstate.Select{Group: "email", Option: "x"}},
		{name: "undeclared option", ev: formstate.Select{Group: "order-type", Option: "teleport"}},
		{name: "flag on a text field", ev: formstate.SetFlag{Field: "email", On: true}},
		{name: "increment on a text field", ev: formstate.Increment{Field: "email"}},
		{name: "decrement unknown field", ev: formstate.Decrement{Field: "nope"}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			next, note, err := formstate.Apply(def, s, tc.ev)
			if err == nil {
				t.Fatalf("Apply(%+v) succeeded, want error", tc.ev)
			}
			if note != nil {
				t.Fatalf("error case returned a note: %+v", note)
			}
			if !next.Equal(s) {
				t.Fatal("error case changed the state")
			}
		})
	}
}
