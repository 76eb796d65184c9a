package testsupport_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/testsupport"
)

func TestLoadDocumentFromPath(t *testing.T) {
	t.Parallel()

	if _, err := testsupport.LoadDocumentFromPath(""); err == nil {
		t.Fatal("expected an error for an empty path")
	}

	path := filepath.Join(t.TempDir(), "doc.yaml")
	if err := os.WriteFile(path, []byte("openapi: 3.0.3\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := testsupport.LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	if doc.Location() != path {
		t.Errorf("document location = %q, want %q", doc.Location(), path)
	}
	if len(doc.Raw()) == 0 {
		t.Error("document payload is empty")
	}
}

func TestRestoreStateReplaysRecordAndMirrors(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	path := filepath.Join(t.TempDir(), "state.json")
	payload := `{
		"flavor-vanilla": "2",
		"order-type": "delivery",
		"delivery-street": "1 Scoop St",
		"delivery-suburb": "Newtown",
		"delivery-postcode": "2042",
		"same-as-delivery": true
	}`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	state := testsupport.RestoreState(t, def, path)

	if got := state.Count("flavor-vanilla"); got != 2 {
		t.Errorf("vanilla count = %d, want 2", got)
	}
	if !state.Flag("same-as-delivery") {
		t.Error("mirror flag was not restored")
	}
	if got := state.Value("billing-street"); got != "1 Scoop St" {
		t.Errorf("billing street = %q, want the re-synced delivery value", got)
	}
}

func TestStateFromRecordSkipsUndeclaredKeys(t *testing.T) {
	t.Parallel()

	def := formdef.RegistrationForm()
	state := testsupport.StateFromRecord(def, draft.Record{
		"username": "janed",
		"retired":  "value",
	})

	if got := state.Value("username"); got != "janed" {
		t.Errorf("username = %q, want %q", got, "janed")
	}
	if got := state.Value("retired"); got != "" {
		t.Errorf("undeclared key restored a value: %q", got)
	}
}
