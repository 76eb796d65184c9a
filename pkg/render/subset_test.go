package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/render"
)

func fieldKeys(form *formdef.Form) []string {
	keys := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		keys = append(keys, field.Key)
	}
	return keys
}

func TestApplySubsetByGroup(t *testing.T) {
	t.Parallel()

	form := formdef.OrderForm()
	subset := render.ApplySubset(form, render.Subset{Groups: []string{"Delivery-Address"}})

	want := []string{"delivery-street", "delivery-suburb", "delivery-postcode", "same-as-delivery"}
	if diff := cmp.Diff(want, fieldKeys(subset)); diff != "" {
		t.Fatalf("subset fields mismatch (-want +got):\n%s", diff)
	}
	if len(subset.Groups) != 1 || subset.Groups[0].Key != "delivery-address" {
		t.Fatalf("subset groups = %+v, want only delivery-address", subset.Groups)
	}
}

func TestApplySubsetIncludeUngrouped(t *testing.T) {
	t.Parallel()

	form := formdef.OrderForm()
	subset := render.ApplySubset(form, render.Subset{
		Groups:           []string{"billing-address"},
		IncludeUngrouped: true,
	})

	keys := fieldKeys(subset)
	has := func(key string) bool {
		for _, k := range keys {
			if k == key {
				return true
			}
		}
		return false
	}
	if !has("billing-street") || !has("order-type") {
		t.Fatalf("subset keys = %v, want billing fields plus ungrouped order-type", keys)
	}
	if has("delivery-street") {
		t.Fatalf("subset keys = %v, delivery-street should be filtered", keys)
	}
}

func TestApplySubsetEmptyReturnsSameForm(t *testing.T) {
	t.Parallel()

	form := formdef.OrderForm()
	if got := render.ApplySubset(form, render.Subset{}); got != form {
		t.Fatal("empty subset should return the definition unchanged")
	}
}

func TestApplySubsetLeavesOriginalIntact(t *testing.T) {
	t.Parallel()

	form := formdef.OrderForm()
	before := len(form.Fields)
	render.ApplySubset(form, render.Subset{Groups: []string{"contact"}})
	if len(form.Fields) != before {
		t.Fatalf("ApplySubset mutated its input: %d fields, want %d", len(form.Fields), before)
	}
}
