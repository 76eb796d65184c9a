package formstate_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
)

func TestProjectInitialVisibility(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	view := formstate.Project(def, formstate.New(def))

	if !view.GroupVisible("delivery-address") {
		t.Fatal("delivery-address hidden in default delivery state")
	}
	if !view.GroupVisible("payment-details") {
		t.Fatal("payment-details hidden in default online state")
	}
	if !view.GroupVisible("billing-address") {
		t.Fatal("billing-address must always be visible")
	}
	if !view.GroupVisible("") {
		t.Fatal("ungrouped fields must be visible")
	}
	if !view.GroupVisible("not-declared") {
		t.Fatal("unknown groups default to visible")
	}
}

func TestProjectFollowsSelections(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)
	s = step(t, def, s, formstate.Select{Group: "order-type", Option: "pickup"})
	s = step(t, def, s, formstate.Select{Group: "pay-method", Option: "cash"})

	view := formstate.Project(def, s)
	if view.GroupVisible("delivery-address") {
		t.Fatal("delivery-address visible in pickup state")
	}
	if view.GroupVisible("payment-details") {
		t.Fatal("payment-details visible in cash state")
	}
	if got := view.Selections["order-type"]; got != "pickup" {
		t.Fatalf("order-type selection = %q, want pickup", got)
	}

	street, _ := def.FieldByKey("delivery-street")
	if view.FieldVisible(*street) {
		t.Fatal("delivery-street visible while its group is hidden")
	}
	email, _ := def.FieldByKey("email")
	if !view.FieldVisible(*email) {
		t.Fatal("email hidden though its group has no rule")
	}
}

func TestProjectCounters(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)
	s = step(t, def, s, formstate.Increment{Field: "flavor-vanilla"})
	s = step(t, def, s, formstate.Increment{Field: "flavor-vanilla"})

	view := formstate.Project(def, s)

	vanilla := view.Counters["flavor-vanilla"]
	want := formstate.CounterView{Count: 2, Label: "[2]", Slot: "qty-vanilla", DecrementEnabled: true}
	if diff := cmp.Diff(want, vanilla); diff != "" {
		t.Fatalf("vanilla counter mismatch (-want +got):\n%s", diff)
	}

	chocolate := view.Counters["flavor-chocolate"]
	if chocolate.Count != 0 || chocolate.Label != "[0]" || chocolate.DecrementEnabled {
		t.Fatalf("chocolate counter at zero = %+v, want disabled [0]", chocolate)
	}
}

func TestProjectIdempotent(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)
	s = step(t, def, s, formstate.Select{Group: "order-type", Option: "pickup"})
	s = step(t, def, s, formstate.Increment{Field: "flavor-strawberry"})

	first := formstate.Project(def, s)
	second := formstate.Project(def, s)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("projection is not idempotent (-first +second):\n%s", diff)
	}
}

func TestProjectDecrementDisabledAfterFloor(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	s := formstate.New(def)
	s = step(t, def, s, formstate.Decrement{Field: "flavor-vanilla"})

	view := formstate.Project(def, s)
	counter := view.Counters["flavor-vanilla"]
	if counter.Count != 0 {
		t.Fatalf("count = %d, want 0", counter.Count)
	}
	if counter.DecrementEnabled {
		t.Fatal("decrement enabled at zero")
	}
}
