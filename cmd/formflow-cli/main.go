package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"gopkg.in/yaml.v3"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/draft"
	"github.com/goliatone/go-formflow/pkg/formdef"
	"github.com/goliatone/go-formflow/pkg/formstate"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
	"github.com/goliatone/go-formflow/pkg/report"
	"github.com/goliatone/go-formflow/pkg/validate"
)

var errInvalidState = errors.New("state failed validation")

func main() {
	mode := flag.String("mode", "render", "render, validate, or session")
	form := flag.String("form", "order", "built-in definition (order, registration) or a definition document path")
	spec := flag.String("spec", "", "derive the definition from an annotated OpenAPI document instead of -form")
	operation := flag.String("operation", "", "operation ID to pin when the OpenAPI document has several candidates")
	output := flag.String("output", "", "output file (stdout if empty)")
	statePath := flag.String("state", "", "state JSON to check (mode validate)")
	page := flag.Bool("page", false, "wrap the form in the full page shell (mode render)")
	themePath := flag.String("theme", "", "theme file with design tokens (mode render)")
	format := flag.String("format", "json", "submission output: json, form, or pretty (mode session)")
	flag.Parse()

	ctx := context.Background()

	def, err := resolveDefinition(ctx, *form, *spec, *operation)
	if err != nil {
		log.Fatalf("Failed to resolve definition: %v", err)
	}

	switch *mode {
	case "render":
		err = runRender(ctx, def, *output, *page, *themePath)
	case "validate":
		err = runValidate(def, *statePath)
	case "session":
		err = runSession(ctx, def, *output, *format)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n\n", *mode)
		flag.Usage()
		os.Exit(2)
	}

	if errors.Is(err, errInvalidState) {
		os.Exit(1)
	}
	if err != nil {
		log.Fatalf("%s failed: %v", *mode, err)
	}
}

func resolveDefinition(ctx context.Context, form, spec, operation string) (*formdef.Form, error) {
	if spec != "" {
		var options []pkgopenapi.ParserOption
		if operation != "" {
			options = append(options, pkgopenapi.WithOperationID(operation))
		}
		return formflow.FromOpenAPI(ctx, pkgopenapi.SourceFromFile(spec), options...)
	}
	return formflow.LoadForm(ctx, form)
}

func runRender(ctx context.Context, def *formdef.Form, output string, page bool, themePath string) error {
	var rendererOptions []vanilla.Option
	if page {
		rendererOptions = append(rendererOptions, vanilla.WithPageTemplate(vanilla.PageTemplateName))
	}
	renderer, err := vanilla.New(rendererOptions...)
	if err != nil {
		return err
	}

	options := render.Options{}
	if themePath != "" {
		cfg, err := loadTheme(themePath)
		if err != nil {
			return err
		}
		options.Theme = cfg
	}

	view := formstate.Project(def, formstate.New(def))
	html, err := renderer.Render(ctx, def, view, options)
	if err != nil {
		return err
	}
	return writeOutput(output, html)
}

// runValidate reads a state snapshot in the draft record format, rebuilds
// the form state the way a restoring session would, and runs the form's
// rule set against it.
func runValidate(def *formdef.Form, statePath string) error {
	if statePath == "" {
		return errors.New("mode validate requires -state with a state JSON file")
	}

	raw, err := os.ReadFile(statePath)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	rec, err := draft.Decode(raw)
	if err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	state := formstate.ResyncMirrors(def, draft.Restore(def, formstate.New(def), rec))

	ruleSet, ok := validate.RulesFor(def.Name)
	if !ok {
		return fmt.Errorf("no rule set is registered for form %q", def.Name)
	}

	errs := validate.Run(state, ruleSet)
	if len(errs) == 0 {
		fmt.Printf("%s: state is valid\n", def.Name)
		return nil
	}

	fmt.Fprintln(os.Stderr, report.HeaderText(len(errs)))
	for _, failure := range errs {
		fmt.Fprintf(os.Stderr, "- %s: %s\n", failure.Field, failure.Message)
	}
	return errInvalidState
}

func runSession(ctx context.Context, def *formdef.Form, output, format string) error {
	switch tui.OutputFormat(format) {
	case tui.OutputFormatJSON, tui.OutputFormatFormURLEncoded, tui.OutputFormatPrettyText:
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	terminal, err := tui.New(
		tui.WithStore(draft.NewMemoryStore()),
		tui.WithOutputFormat(tui.OutputFormat(format)),
	)
	if err != nil {
		return err
	}

	view := formstate.Project(def, formstate.New(def))
	payload, err := terminal.Render(ctx, def, view, render.Options{})
	if err != nil {
		return err
	}
	return writeOutput(output, payload)
}

// themeFile is the on-disk theme shape: a name plus design tokens. Tokens
// become CSS custom properties on the rendered page.
type themeFile struct {
	Name    string            `yaml:"name" json:"name"`
	Variant string            `yaml:"variant" json:"variant"`
	Tokens  map[string]string `yaml:"tokens" json:"tokens"`
}

func loadTheme(path string) (*theme.RendererConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme: %w", err)
	}

	var file themeFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}

	cssVars := make(map[string]string, len(file.Tokens))
	for token, value := range file.Tokens {
		cssVars["--"+strings.TrimPrefix(token, "--")] = value
	}
	return &theme.RendererConfig{
		Theme:   file.Name,
		Variant: file.Variant,
		Tokens:  file.Tokens,
		CSSVars: cssVars,
	}, nil
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Written to %s\n", path)
	return nil
}
