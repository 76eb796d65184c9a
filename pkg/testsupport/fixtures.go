// Package testsupport carries fixture helpers shared by the package
// tests: OpenAPI document loading, state snapshots in the draft record
// format, and golden-file plumbing.
package testsupport

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

// LoadDocument reads a fixture and builds an openapi.Document using a
// file source. Testing helpers fail the test on error to keep contract
// tests concise.
func LoadDocument(t *testing.T, path string) *pkgopenapi.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T,
// allowing callers to wire fixtures in setup functions.
func LoadDocumentFromPath(path string) (*pkgopenapi.Document, error) {
	if path == "" {
		return nil, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// RestoreState reads a state fixture in the draft record format and
// rebuilds the form state the way a restoring session would: defaults
// first, the record replayed on top, mirrors re-synced.
func RestoreState(t *testing.T, def *formdef.Form, path string) formstate.State {
	t.Helper()

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read state fixture: %v", err)
	}
	rec, err := draft.Decode(raw)
	if err != nil {
		t.Fatalf("decode state fixture: %v", err)
	}
	return StateFromRecord(def, rec)
}

// StateFromRecord replays a draft record onto the definition defaults
// and re-syncs checked mirrors, matching session restore semantics.
func StateFromRecord(def *formdef.Form, rec draft.Record) formstate.State {
	return formstate.ResyncMirrors(def, draft.Restore(def, formstate.New(def), rec))
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set.
// Returns true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
