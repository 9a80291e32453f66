package ascertain

import (
	"regexp"
	"testing"

	"github.com/3axap4eHko/ascertain/internal/ir"
)

func TestRegistry_Dedup(t *testing.T) {
	re := regexp.MustCompile(`^x$`)
	prog, err := compileSchema(map[string]any{
		"a": String,
		"b": String,
		"c": re,
		"d": re,
		"e": Number,
	})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	// String desc, regexp, Number desc
	if got := len(prog.Registry); got != 3 {
		t.Fatalf("expected 3 interned fragments, got %d: %v", got, prog.Registry)
	}
}

func TestCompile_SortedFieldOrder(t *testing.T) {
	prog, err := compileSchema(map[string]any{"b": Number, "a": Number, "c": Number})
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if prog.Root.Kind != ir.KindObject {
		t.Fatalf("expected object step, got %v", prog.Root.Kind)
	}
	for i, want := range []string{"a", "b", "c"} {
		if prog.Root.Fields[i].Name != want {
			t.Fatalf("field %d: expected %q, got %q", i, want, prog.Root.Fields[i].Name)
		}
	}
}

func TestCompile_StrictMarkerType(t *testing.T) {
	if _, err := compileSchema(map[string]any{Strict: "yes"}); err == nil {
		t.Fatalf("expected error for non-bool strict marker")
	}
}

func TestCompile_DuplicateDiscriminantFirstWins(t *testing.T) {
	prog, err := compileSchema(Discriminated("type",
		map[string]any{"type": "a", "first": Number},
		map[string]any{"type": "a", "second": Number},
	))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if idx := prog.Root.DiscIndex[ir.NormalizeKey("a")]; idx != 0 {
		t.Fatalf("expected first declaration to win, got index %d", idx)
	}
}
