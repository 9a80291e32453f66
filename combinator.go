package ascertain

// combineOp enumerates the closed set of combinator kinds. All semantics live
// in the compiler; combinators are plain immutable value holders.
type combineOp int

const (
	opOr combineOp = iota
	opAnd
	opOptional
	opTuple
	opDiscriminated
)

func (op combineOp) String() string {
	switch op {
	case opOr:
		return "Or"
	case opAnd:
		return "And"
	case opOptional:
		return "Optional"
	case opTuple:
		return "Tuple"
	case opDiscriminated:
		return "Discriminated"
	}
	return "Combinator"
}

// Combinator wraps one or more child schemas under a combining operator.
// Construct via Or, And, Optional, Tuple or Discriminated.
type Combinator struct {
	op      combineOp
	schemas []any
	key     string // Discriminated only
}

func newCombinator(op combineOp, schemas []any) *Combinator {
	if len(schemas) == 0 {
		panic("ascertain: " + op.String() + " requires at least one schema")
	}
	return &Combinator{op: op, schemas: append([]any(nil), schemas...)}
}

// Or builds a union: a value is valid when at least one child accepts it.
// Panics when called with no schemas.
func Or(schemas ...any) *Combinator { return newCombinator(opOr, schemas) }

// And builds an intersection: every child must accept the same value.
// Panics when called with no schemas.
func And(schemas ...any) *Combinator { return newCombinator(opAnd, schemas) }

// Optional wraps one schema; nil values short-circuit to valid.
func Optional(schema any) *Combinator {
	return &Combinator{op: opOptional, schemas: []any{schema}}
}

// Tuple builds a fixed-length array shape where each position has its own
// schema and the exact length is mandatory. Panics when called with no
// schemas.
func Tuple(schemas ...any) *Combinator { return newCombinator(opTuple, schemas) }

// Discriminated builds a tagged union of object schemas sharing one
// literal-valued field named key. The compiler selects exactly one variant by
// that field before validating the rest, replacing O(n) branch testing with a
// single dispatch. Panics when called with no variants; variants missing the
// key or carrying a non-literal discriminant are reported by Compile.
func Discriminated(key string, variants ...any) *Combinator {
	c := newCombinator(opDiscriminated, variants)
	c.key = key
	return c
}
