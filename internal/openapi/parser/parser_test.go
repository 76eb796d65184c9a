package parser

import (
	"context"
	"strings"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	pkgformdef "github.com/goliatone/go-formflow/pkg/formdef"
	pkgopenapi "github.com/goliatone/go-formflow/pkg/openapi"
)

const signupDocument = `
openapi: 3.0.3
info:
  title: Test API
  version: 0.1.0
paths:
  /signup:
    post:
      summary: Create an account
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required:
                - email
              properties:
                username:
                  type: string
                email:
                  type: string
                  format: email
                newsletter:
                  type: boolean
      responses:
        '200':
          description: OK
`

func inlineDocument(t *testing.T, raw string) *pkgopenapi.Document {
	t.Helper()
	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFS("inline.yaml"), []byte(raw))
	if err != nil {
		t.Fatalf("wrap document: %v", err)
	}
	return doc
}

func TestParseLocatesSinglePostOperation(t *testing.T) {
	t.Parallel()

	parser := New(pkgopenapi.NewParserOptions())
	form, err := parser.Parse(context.Background(), inlineDocument(t, signupDocument))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if form.Name != "signup" {
		t.Errorf("form name = %q", form.Name)
	}
	if form.Title != "Create an account" {
		t.Errorf("form title = %q", form.Title)
	}

	wantKeys := []string{"username", "email", "newsletter"}
	gotKeys := make([]string, 0, len(form.Fields))
	for _, field := range form.Fields {
		gotKeys = append(gotKeys, field.Key)
	}
	if diff := cmp.Diff(wantKeys, gotKeys); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	email, _ := form.FieldByKey("email")
	if email.Kind != pkgformdef.KindEmail || !email.Required {
		t.Errorf("email field = kind %q required %v", email.Kind, email.Required)
	}
	newsletter, _ := form.FieldByKey("newsletter")
	if newsletter.Kind != pkgformdef.KindCheckbox {
		t.Errorf("newsletter kind = %q", newsletter.Kind)
	}
}

func TestParseRequiresACandidateOperation(t *testing.T) {
	t.Parallel()

	const doc = `
openapi: 3.0.3
info:
  title: Test API
  version: 0.1.0
paths:
  /things:
    get:
      responses:
        '200':
          description: OK
`
	parser := New(pkgopenapi.NewParserOptions())
	_, err := parser.Parse(context.Background(), inlineDocument(t, doc))
	if err == nil || !strings.Contains(err.Error(), "no POST operation") {
		t.Fatalf("expected candidate error, got %v", err)
	}
}

const twoFormsDocument = `
openapi: 3.0.3
info:
  title: Test API
  version: 0.1.0
paths:
  /orders:
    post:
      operationId: placeOrder
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                note:
                  type: string
      responses:
        '200':
          description: OK
  /signup:
    post:
      operationId: registerUser
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                email:
                  type: string
                  format: email
      responses:
        '200':
          description: OK
`

func TestParseReportsAmbiguousOperations(t *testing.T) {
	t.Parallel()

	parser := New(pkgopenapi.NewParserOptions())
	_, err := parser.Parse(context.Background(), inlineDocument(t, twoFormsDocument))
	if err == nil {
		t.Fatalf("expected ambiguity error")
	}
	for _, id := range []string{"placeOrder", "registerUser"} {
		if !strings.Contains(err.Error(), id) {
			t.Errorf("error %q does not name %s", err, id)
		}
	}
}

func TestParsePinsOperationByID(t *testing.T) {
	t.Parallel()

	parser := New(pkgopenapi.NewParserOptions(pkgopenapi.WithOperationID("registerUser")))
	form, err := parser.Parse(context.Background(), inlineDocument(t, twoFormsDocument))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if form.Name != "register-user" {
		t.Errorf("form name = %q", form.Name)
	}
	if _, ok := form.FieldByKey("email"); !ok {
		t.Errorf("pinned operation fields missing")
	}
}

func TestParseValidationToggle(t *testing.T) {
	t.Parallel()

	// Missing info section fails document validation but still carries a
	// usable form schema.
	const doc = `
openapi: 3.0.3
paths:
  /signup:
    post:
      requestBody:
        content:
          application/json:
            schema:
              type: object
              properties:
                email:
                  type: string
      responses:
        '200':
          description: OK
`
	strict := New(pkgopenapi.NewParserOptions())
	if _, err := strict.Parse(context.Background(), inlineDocument(t, doc)); err == nil {
		t.Fatalf("expected validation error")
	}

	lenient := New(pkgopenapi.NewParserOptions(pkgopenapi.WithDocumentValidation(false)))
	form, err := lenient.Parse(context.Background(), inlineDocument(t, doc))
	if err != nil {
		t.Fatalf("lenient parse: %v", err)
	}
	if form.Name != "signup" {
		t.Errorf("form name = %q", form.Name)
	}
}

func TestParseRejectsNilDocument(t *testing.T) {
	t.Parallel()

	parser := New(pkgopenapi.NewParserOptions())
	if _, err := parser.Parse(context.Background(), nil); err == nil {
		t.Fatalf("expected nil document error")
	}
}

func TestSlug(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"placeIceCreamOrder", "place-ice-cream-order"},
		{"registerUser", "register-user"},
		{"/signup", "signup"},
		{"/ice_cream/orders", "ice-cream-orders"},
		{"HTTPThing", "httpthing"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := slug(tc.in); got != tc.want {
			t.Errorf("slug(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPropertyOrderFollowsDocument(t *testing.T) {
	t.Parallel()

	const doc = `
openapi: 3.0.3
paths:
  /orders:
    post:
      requestBody:
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/Order'
components:
  schemas:
    Order:
      type: object
      properties:
        zebra:
          type: string
        apple:
          type: string
        mango:
          type: string
`
	got := propertyOrder([]byte(doc), "/orders", "POST", "application/json", "#/components/schemas/Order")
	want := []string{"zebra", "apple", "mango"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("ref order mismatch (-want +got):\n%s", diff)
	}
}

func TestPropertyOrderHandlesInlineJSON(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"paths":{"/x":{"post":{"requestBody":{"content":{"application/json":{"schema":{"type":"object","properties":{"second":{"type":"string"},"first":{"type":"string"}}}}}}}}}}`)
	got := propertyOrder(raw, "/x", "POST", "application/json", "")
	want := []string{"second", "first"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("inline order mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertSchemaKeepsOnlyFormflowExtensions(t *testing.T) {
	t.Parallel()

	ref := openapi3.NewSchemaRef("", &openapi3.Schema{
		Type: &openapi3.Types{"object"},
		Extensions: map[string]any{
			"x-formflow-draft-key": "orders",
			"x-internal-audit":     true,
		},
		AllOf: openapi3.SchemaRefs{
			openapi3.NewSchemaRef("", &openapi3.Schema{
				Extensions: map[string]any{"x-formflow-group": "mixin"},
			}),
		},
	})

	schema := convertSchema(ref)
	if schema.Extensions["x-formflow-draft-key"] != "orders" {
		t.Errorf("draft key annotation missing: %v", schema.Extensions)
	}
	if schema.Extensions["x-formflow-group"] != "mixin" {
		t.Errorf("allOf annotation not merged: %v", schema.Extensions)
	}
	if _, ok := schema.Extensions["x-internal-audit"]; ok {
		t.Errorf("foreign extension survived conversion")
	}
}
