package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
)

func main() {
	outputPath := flag.String("output", "pkg/validate/testdata/valid-order.json", "output path for the captured draft record")
	flag.Parse()

	def := formdef.OrderForm()
	state, err := completedOrder(def)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build completed order state: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.MarshalIndent(draft.Capture(def, state), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode draft record: %v\n", err)
		os.Exit(1)
	}
	payload = append(payload, '\n')

	if err := os.WriteFile(*outputPath, payload, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write draft record: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Wrote draft record to %s\n", *outputPath)
}

// completedOrder replays the edits of a fully filled-in delivery order
// paid by card. The captured record doubles as the valid-state fixture
// the validation tests restore.
func completedOrder(def *formdef.Form) (formstate.State, error) {
	events := []formstate.Event{
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
	}

	s := formstate.New(def)
	for _, ev := range events {
		next, note, err := formstate.Apply(def, s, ev)
		if err != nil {
			return s, err
		}
		if note != nil {
			return s, fmt.Errorf("edit %+v was blocked: %s", ev, note.Message)
		}
		s = next
	}
	return s, nil
}
