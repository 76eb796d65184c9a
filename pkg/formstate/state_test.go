package formstate_test

import (
	"testing"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
)

func TestNewSeedsDefaults(t *testing.T) {
	t.Parallel()

	state := formstate.New(formdef.OrderForm())

	if got := state.Value("order-type"); got != "delivery" {
		t.Fatalf("order-type = %q, want %q", got, "delivery")
	}
	if got := state.Value("pay-method"); got != "online" {
		t.Fatalf("pay-method = %q, want %q", got, "online")
	}
	for _, key := range []string{"flavor-vanilla", "flavor-chocolate", "flavor-strawberry"} {
		if got := state.Count(key); got != 0 {
			t.Fatalf("%s = %d, want 0", key, got)
		}
	}
	if state.Flag("same-as-delivery") {
		t.Fatal("same-as-delivery starts checked, want unchecked")
	}
	if got := state.Value("card-type"); got != "" {
		t.Fatalf("card-type preselected %q, want none", got)
	}
}

func TestStateEqual(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	a := formstate.New(def)
	b := formstate.New(def)
	if !a.Equal(b) {
		t.Fatal("fresh states differ")
	}

	c, _, err := formstate.Apply(def, a, formstate.SetValue{Field: "email", Value: "a@b.com"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if a.Equal(c) {
		t.Fatal("states equal after a value change")
	}
	if !a.Equal(b) {
		t.Fatal("Apply mutated its input state")
	}
}

func TestAccessorsCopy(t *testing.T) {
	t.Parallel()

	state := formstate.New(formdef.OrderForm())
	values := state.Values()
	values["order-type"] = "pickup"
	if got := state.Value("order-type"); got != "delivery" {
		t.Fatalf("mutating the Values() copy changed state: %q", got)
	}

	counts := state.Counts()
	counts["flavor-vanilla"] = 99
	if got := state.Count("flavor-vanilla"); got != 0 {
		t.Fatalf("mutating the Counts() copy changed state: %d", got)
	}
}

func TestVisibilityValues(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	state := formstate.New(def)
	state, _, err := formstate.Apply(def, state, formstate.Increment{Field: "flavor-vanilla"})
	if err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}

	values := state.VisibilityValues()
	if values["order-type"] != "delivery" {
		t.Fatalf("order-type in visibility values = %v", values["order-type"])
	}
	if values["flavor-vanilla"] != 1 {
		t.Fatalf("flavor-vanilla in visibility values = %v", values["flavor-vanilla"])
	}
	if _, ok := values["billing-street"]; ok {
		t.Fatal("unset fields should be absent from visibility values")
	}
}
