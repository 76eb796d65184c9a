package postcodes

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMountPath_JoinsBasePath(t *testing.T) {
	if got := MountPath("/admin"); got != "/admin/api/postcodes" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("admin"); got != "/admin/api/postcodes" {
		t.Fatalf("unexpected mount path: %q", got)
	}
	if got := MountPath("/admin/", WithRoutePath("api/pc")); got != "/admin/api/pc" {
		t.Fatalf("unexpected mount path: %q", got)
	}
}

func TestRegisterRoutes_RegistersHandler(t *testing.T) {
	mux := http.NewServeMux()
	pattern, err := RegisterRoutes(mux, "/admin", WithTable(testTable()))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if pattern != "/admin/api/postcodes" {
		t.Fatalf("unexpected registered pattern: %q", pattern)
	}

	req := httptest.NewRequest(http.MethodGet, pattern+"?q=sydney&limit=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestComponent_OptionsReturnsCopy(t *testing.T) {
	c := New(WithRoutePath("/api/lookup"), WithDefaultLimit(5))

	opts := c.Options()
	if opts.RoutePath != "/api/lookup" || opts.DefaultLimit != 5 {
		t.Fatalf("unexpected options: %#v", opts)
	}

	opts.RoutePath = "/mutated"
	if c.Options().RoutePath != "/api/lookup" {
		t.Fatal("expected component options to be unaffected by caller mutation")
	}
}
