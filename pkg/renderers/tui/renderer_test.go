package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	"github.com/goliatone/go-formflow/pkg/render"
)

// stubDriver replays scripted answers and records what was asked so
// tests can run sessions without a terminal.
type stubDriver struct {
	inputs    []string
	passwords []string
	confirms  []bool
	selects   []int

	inputPos    int
	passwordPos int
	confirmPos  int
	selectPos   int

	inputMessages []string
	inputDefaults []string
	infos         []string

	failNextInput error
}

func (d *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	if d.failNextInput != nil {
		err := d.failNextInput
		d.failNextInput = nil
		return "", err
	}
	if d.inputPos >= len(d.inputs) {
		return "", fmt.Errorf("unscripted input prompt %q", cfg.Message)
	}
	d.inputMessages = append(d.inputMessages, cfg.Message)
	d.inputDefaults = append(d.inputDefaults, cfg.Default)
	answer := d.inputs[d.inputPos]
	d.inputPos++
	if cfg.Validator != nil {
		if err := cfg.Validator(answer); err != nil {
			return "", fmt.Errorf("scripted answer %q rejected: %w", answer, err)
		}
	}
	return answer, nil
}

func (d *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	if d.passwordPos >= len(d.passwords) {
		return "", fmt.Errorf("unscripted password prompt %q", cfg.Message)
	}
	answer := d.passwords[d.passwordPos]
	d.passwordPos++
	return answer, nil
}

func (d *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	if d.confirmPos >= len(d.confirms) {
		return false, fmt.Errorf("unscripted confirm prompt %q", cfg.Message)
	}
	answer := d.confirms[d.confirmPos]
	d.confirmPos++
	return answer, nil
}

func (d *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	if d.selectPos >= len(d.selects) {
		return 0, fmt.Errorf("unscripted select prompt %q", cfg.Message)
	}
	answer := d.selects[d.selectPos]
	d.selectPos++
	if answer < 0 || answer >= len(cfg.Options) {
		return 0, fmt.Errorf("scripted selection %d out of range for %q", answer, cfg.Message)
	}
	return answer, nil
}

func (d *stubDriver) TextArea(_ context.Context, cfg TextAreaConfig) (string, error) {
	return "", fmt.Errorf("unscripted textarea prompt %q", cfg.Message)
}

func (d *stubDriver) Info(_ context.Context, msg string) error {
	d.infos = append(d.infos, msg)
	return nil
}

func newTestRenderer(t *testing.T, driver *stubDriver, opts ...Option) *Renderer {
	t.Helper()

	renderer, err := New(append([]Option{WithPromptDriver(driver)}, opts...)...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return renderer
}

func TestRendererIdentity(t *testing.T) {
	t.Parallel()

	renderer := newTestRenderer(t, &stubDriver{})
	if renderer.Name() != "tui" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if renderer.ContentType() != "application/json" {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}

	pretty := newTestRenderer(t, &stubDriver{}, WithOutputFormat(OutputFormatPrettyText))
	if pretty.ContentType() != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected pretty content type %q", pretty.ContentType())
	}
}

func TestRendererDrivesOrderToValidSubmission(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs: []string{
			"2", "0", "1", // flavor counters
			"1 Scoop St", "Gelato Grove", "2000", // delivery address
			"1 Scoop St", "Gelato Grove", "2000", // billing address
			"0400123123", "mia@example.com", // contact
		},
		selects:  []int{0, 1}, // delivery, pay on delivery
		confirms: []bool{true},
	}
	renderer := newTestRenderer(t, driver)

	def := formdef.OrderForm()
	out, err := renderer.Render(context.Background(), def, formstate.Project(def, formstate.New(def)), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if got := payload["flavor-vanilla"]; got != float64(2) {
		t.Fatalf("vanilla count = %v, want 2", got)
	}
	if got := payload["billing-street"]; got != "1 Scoop St" {
		t.Fatalf("billing street = %v, want mirrored delivery street", got)
	}
	if got := payload["same-as-delivery"]; got != true {
		t.Fatalf("mirror flag = %v, want true", got)
	}
	if _, ok := payload["card-number"]; ok {
		t.Fatal("hidden payment fields must not appear in the payload")
	}
	if driver.inputPos != len(driver.inputs) {
		t.Fatalf("consumed %d of %d scripted inputs", driver.inputPos, len(driver.inputs))
	}
	if len(driver.infos) == 0 || driver.infos[0] != "Ice cream order" {
		t.Fatalf("expected form title announcement, got %v", driver.infos)
	}
}

func TestRendererRepromptsOnlyErroredFields(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs:    []string{"ada", "ada@example.com"},
		passwords: []string{"weak", "weak", "Str0ng&Pass", "Str0ng&Pass"},
		selects:   []int{2}, // other
	}
	renderer := newTestRenderer(t, driver)

	def := formdef.RegistrationForm()
	out, err := renderer.Render(context.Background(), def, formstate.Project(def, formstate.New(def)), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(out, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if got := payload["password"]; got != "Str0ng&Pass" {
		t.Fatalf("password = %v, want corrected value", got)
	}

	// Username and email were answered once; corrective rounds only
	// revisited the failing password fields.
	if driver.inputPos != 2 {
		t.Fatalf("text inputs prompted %d times, want 2", driver.inputPos)
	}
	if driver.passwordPos != 4 {
		t.Fatalf("password prompts = %d, want 4", driver.passwordPos)
	}
	if driver.selectPos != 1 {
		t.Fatalf("gender prompted %d times, want 1", driver.selectPos)
	}

	var sawHeader bool
	for _, msg := range driver.infos {
		if strings.Contains(msg, "problem to fix") || strings.Contains(msg, "problems to fix") {
			sawHeader = true
		}
	}
	if !sawHeader {
		t.Fatalf("expected validation header in %v", driver.infos)
	}
}

func TestRendererSurfacesMirrorRejection(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs: []string{
			"1", "0", "0",
			"", "", "", // delivery left blank
			"", "", "",
			"0400123123", "mia@example.com",
		},
		selects:  []int{0, 1},
		confirms: []bool{true}, // attempt the mirror against blank sources
	}
	renderer := newTestRenderer(t, driver, WithMaxAttempts(1))

	def := formdef.OrderForm()
	_, err := renderer.Render(context.Background(), def, formstate.Project(def, formstate.New(def)), render.Options{})
	if !errors.Is(err, ErrAttemptsExhausted) {
		t.Fatalf("expected attempts exhausted, got %v", err)
	}

	var sawNotice bool
	for _, msg := range driver.infos {
		if strings.Contains(msg, "Fill in the delivery address before copying it to billing.") {
			sawNotice = true
		}
	}
	if !sawNotice {
		t.Fatalf("expected blocked mirror notice in %v", driver.infos)
	}
}

func TestRendererAbortStopsSession(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{failNextInput: ErrAborted}
	renderer := newTestRenderer(t, driver)

	def := formdef.OrderForm()
	_, err := renderer.Render(context.Background(), def, formstate.Project(def, formstate.New(def)), render.Options{})
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected abort, got %v", err)
	}
}

func TestRendererSeedsPromptsFromStoredDraft(t *testing.T) {
	t.Parallel()

	def := formdef.OrderForm()
	saved := formstate.New(def).
		WithCount("flavor-vanilla", 3).
		WithValue("delivery-street", "7 Waffle Way")
	data, err := draft.Encode(draft.Capture(def, saved))
	if err != nil {
		t.Fatalf("encode draft: %v", err)
	}
	store := draft.NewMemoryStore()
	if err := store.Write("order-form", data); err != nil {
		t.Fatalf("write draft: %v", err)
	}

	driver := &stubDriver{
		inputs: []string{
			"3", "0", "1",
			"7 Waffle Way", "Gelato Grove", "2000",
			"7 Waffle Way", "Gelato Grove", "2000",
			"0400123123", "mia@example.com",
		},
		selects:  []int{0, 1},
		confirms: []bool{true},
	}
	renderer := newTestRenderer(t, driver, WithStore(store))

	if _, err := renderer.Render(context.Background(), def, formstate.Project(def, formstate.New(def)), render.Options{}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if driver.inputDefaults[0] != "3" {
		t.Fatalf("first counter default = %q, want restored count", driver.inputDefaults[0])
	}
	if driver.inputDefaults[3] != "7 Waffle Way" {
		t.Fatalf("delivery street default = %q, want restored value", driver.inputDefaults[3])
	}

	// A clean submission removes the saved draft.
	if _, err := store.Read("order-form"); !errors.Is(err, draft.ErrNotFound) {
		t.Fatalf("expected draft removed after submit, got %v", err)
	}
}

func TestRendererPrettyOutputMasksSecrets(t *testing.T) {
	t.Parallel()

	driver := &stubDriver{
		inputs:    []string{"ada", "ada@example.com"},
		passwords: []string{"Str0ng&Pass", "Str0ng&Pass"},
		selects:   []int{0},
	}
	renderer := newTestRenderer(t, driver, WithOutputFormat(OutputFormatPrettyText))

	def := formdef.RegistrationForm()
	out, err := renderer.Render(context.Background(), def, formstate.Project(def, formstate.New(def)), render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := string(out)

	if !strings.Contains(text, "Create an account") {
		t.Fatal("expected form title in pretty output")
	}
	if strings.Contains(text, "Str0ng&Pass") {
		t.Fatal("password must not appear in pretty output")
	}
	if !strings.Contains(text, "Password: (hidden)") {
		t.Fatal("expected masked password line")
	}
}

func TestPlainHelpStripsMarkup(t *testing.T) {
	t.Parallel()

	got := plainHelp("At least 9 characters with <em>lower</em> and <em>upper</em> case letters, a digit and a symbol.")
	want := "At least 9 characters with lower and upper case letters, a digit and a symbol."
	if got != want {
		t.Fatalf("plainHelp = %q, want %q", got, want)
	}
}
