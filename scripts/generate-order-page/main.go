package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/formstate"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
)

func main() {
	ctx := context.Background()

	const (
		specPath    = "internal/openapi/testdata/icecream.yaml"
		operationID = "placeIceCreamOrder"
		outputPath  = "docs/demo/order-form.html"
	)

	def, err := formflow.FromOpenAPI(ctx, pkgopenapi.SourceFromFile(specPath), pkgopenapi.WithOperationID(operationID))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load definition: %v\n", err)
		os.Exit(1)
	}

	renderer, err := vanilla.New(vanilla.WithPageTemplate(vanilla.PageTemplateName))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build renderer: %v\n", err)
		os.Exit(1)
	}

	view := formstate.Project(def, formstate.New(def))
	html, err := renderer.Render(ctx, def, view, render.Options{Action: "/orders", Method: "POST"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to render form: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(outputPath, html, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Generated order form page (%d bytes) → %s\n", len(html), outputPath)
}
