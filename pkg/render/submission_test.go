package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	t.Parallel()

	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.Hidden(" return_to ", "/orders"),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing":  "keep",
		"_csrf":     "token123",
		"return_to": "/orders",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "return_to", Value: "/orders"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeHiddenFieldsLaterWins(t *testing.T) {
	t.Parallel()

	merged := render.MergeHiddenFields(nil,
		render.CSRFToken("_csrf", "stale"),
		render.CSRFToken("_csrf", "fresh"),
	)
	if got := merged["_csrf"]; got != "fresh" {
		t.Fatalf("_csrf = %q, want %q", got, "fresh")
	}
}

func TestSortedHiddenFieldsEmpty(t *testing.T) {
	t.Parallel()

	if got := render.SortedHiddenFields(nil); got != nil {
		t.Fatalf("SortedHiddenFields(nil) = %v, want nil", got)
	}
}
