package schemadoc_test

import (
	"testing"

	ascertain "github.com/3axap4eHko/ascertain"
	"github.com/3axap4eHko/ascertain/schemadoc"
)

const serverDoc = `
object:
  name:
    type: string
  port:
    type: number
  mode:
    or:
      - dev
      - prod
  tags:
    optional:
      array:
        - type: string
`

func TestFromYAML_EndToEnd(t *testing.T) {
	schema, err := schemadoc.FromYAML([]byte(serverDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := ascertain.Compile(schema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	ok := map[string]any{
		"name": "api",
		"port": 8080,
		"mode": "dev",
		"tags": []any{"a"},
	}
	if !v.Validate(ok) {
		t.Fatalf("expected valid, got %v", v.Issues)
	}
	bad := map[string]any{
		"name": "api",
		"port": "8080",
		"mode": "dev",
	}
	if v.Validate(bad) {
		t.Fatalf("expected string port to fail")
	}
	if v.Issues[0].Pointer() != "/port" {
		t.Fatalf("expected /port issue, got %v", v.Issues)
	}
}

func TestFromYAML_Discriminated(t *testing.T) {
	doc := `
discriminated:
  key: type
  variants:
    - type: email
      address:
        type: string
    - type: sms
      phone:
        type: string
`
	schema, err := schemadoc.FromYAML([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := ascertain.Compile(schema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !v.Validate(map[string]any{"type": "email", "address": "a@b"}) {
		t.Fatalf("expected email variant to pass: %v", v.Issues)
	}
	if v.Validate(map[string]any{"type": "push"}) {
		t.Fatalf("expected unknown variant to fail")
	}
}

func TestFromJSON_StrictAndPattern(t *testing.T) {
	doc := `{
		"object": {
			"$strict": true,
			"$keys": {"pattern": "^[a-z]+$"},
			"host": {"type": "string"}
		}
	}`
	schema, err := schemadoc.FromJSON([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	v, err := ascertain.Compile(schema)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if !v.Validate(map[string]any{"host": "x"}) {
		t.Fatalf("expected valid, got %v", v.Issues)
	}
	if v.Validate(map[string]any{"host": "x", "extra": "y"}) {
		t.Fatalf("expected strict rejection")
	}
}

func TestFrom_Errors(t *testing.T) {
	bad := []string{
		`unknown_directive: 1
another: 2`,
		`{"type": "martian"}`,
		`{"pattern": "["}`,
		`{"or": []}`,
		`{"discriminated": {"variants": []}}`,
	}
	for _, doc := range bad {
		if _, err := schemadoc.FromYAML([]byte(doc)); err == nil {
			t.Fatalf("expected error for %q", doc)
		}
	}
}
