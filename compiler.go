package ascertain

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"

	"github.com/3axap4eHko/ascertain/internal/ir"
)

// compiler performs a recursive descent over a schema value tree and emits
// the step program. One compiler, and therefore one registry, exists per
// Compile call; the registry survives only as state closed over by the
// returned Validator.
type compiler struct {
	prog *ir.Program
}

func compileSchema(schema any) (*ir.Program, error) {
	c := &compiler{prog: &ir.Program{}}
	root, err := c.compile(schema)
	if err != nil {
		return nil, err
	}
	c.prog.Root = root
	return c.prog, nil
}

func (c *compiler) compile(schema any) (*ir.Step, error) {
	switch s := schema.(type) {
	case nil:
		return &ir.Step{Kind: ir.KindNil}, nil
	case *TypeRef:
		return &ir.Step{Kind: ir.KindType, Ref: c.prog.Intern(&s.desc)}, nil
	case *regexp.Regexp:
		if s == nil {
			return &ir.Step{Kind: ir.KindNil}, nil
		}
		return &ir.Step{Kind: ir.KindPattern, Ref: c.prog.Intern(s)}, nil
	case *Combinator:
		return c.compileCombinator(s)
	case map[string]any:
		return c.compileObject(s)
	case []any:
		return c.compileArray(s)
	}
	return &ir.Step{Kind: ir.KindLiteral, Literal: schema}, nil
}

func (c *compiler) compileArray(items []any) (*ir.Step, error) {
	if len(items) == 1 {
		elem, err := c.compile(items[0])
		if err != nil {
			return nil, err
		}
		return &ir.Step{Kind: ir.KindArrayOf, Elem: elem}, nil
	}
	st := &ir.Step{Kind: ir.KindPositional}
	for _, item := range items {
		child, err := c.compile(item)
		if err != nil {
			return nil, err
		}
		st.Children = append(st.Children, child)
	}
	return st, nil
}

func (c *compiler) compileObject(m map[string]any) (*ir.Step, error) {
	st := &ir.Step{Kind: ir.KindObject}

	names := make([]string, 0, len(m))
	for k := range m {
		if k == Keys || k == Values || k == Strict {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		child, err := c.compile(m[k])
		if err != nil {
			return nil, err
		}
		st.Fields = append(st.Fields, ir.Field{Name: k, Step: child})
	}
	if ks, ok := m[Keys]; ok {
		step, err := c.compile(ks)
		if err != nil {
			return nil, err
		}
		st.Keys = step
	}
	if vs, ok := m[Values]; ok {
		step, err := c.compile(vs)
		if err != nil {
			return nil, err
		}
		st.Values = step
	}
	if sv, ok := m[Strict]; ok {
		b, isBool := sv.(bool)
		if !isBool {
			return nil, fmt.Errorf("ascertain: %s marker must be a bool, got %T", Strict, sv)
		}
		st.Strict = b
	}
	if st.Strict {
		st.Allowed = make(map[string]struct{}, len(names))
		for _, k := range names {
			st.Allowed[k] = struct{}{}
		}
	}
	return st, nil
}

func (c *compiler) compileCombinator(cb *Combinator) (*ir.Step, error) {
	switch cb.op {
	case opOptional:
		elem, err := c.compile(cb.schemas[0])
		if err != nil {
			return nil, err
		}
		return &ir.Step{Kind: ir.KindOptional, Elem: elem}, nil
	case opOr, opAnd, opTuple:
		kind := ir.KindOr
		switch cb.op {
		case opAnd:
			kind = ir.KindAnd
		case opTuple:
			kind = ir.KindTuple
		}
		st := &ir.Step{Kind: kind}
		for _, s := range cb.schemas {
			child, err := c.compile(s)
			if err != nil {
				return nil, err
			}
			st.Children = append(st.Children, child)
		}
		return st, nil
	case opDiscriminated:
		return c.compileDiscriminated(cb)
	}
	return nil, fmt.Errorf("ascertain: unknown combinator %v", cb.op)
}

// compileDiscriminated builds the variant dispatch table. Each variant must
// be an object schema carrying the discriminant key with a literal
// string/number/boolean value; anything else is a compile-time error, not a
// validation failure.
func (c *compiler) compileDiscriminated(cb *Combinator) (*ir.Step, error) {
	st := &ir.Step{
		Kind:      ir.KindDiscriminated,
		DiscKey:   cb.key,
		DiscIndex: make(map[any]int, len(cb.schemas)),
	}
	for i, v := range cb.schemas {
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("ascertain: discriminated variant %d: expected object schema, got %T", i, v)
		}
		dv, ok := m[cb.key]
		if !ok {
			return nil, fmt.Errorf("ascertain: discriminated variant %d: missing discriminant key %q", i, cb.key)
		}
		if !isDiscriminantLiteral(dv) {
			return nil, fmt.Errorf("ascertain: discriminated variant %d: discriminant %q must be a literal string, number or boolean", i, cb.key)
		}
		rest := make(map[string]any, len(m)-1)
		for k, s := range m {
			if k == cb.key {
				continue
			}
			rest[k] = s
		}
		child, err := c.compileObject(rest)
		if err != nil {
			return nil, err
		}
		// the data always carries its own discriminant key
		if child.Strict {
			child.Allowed[cb.key] = struct{}{}
		}
		st.Children = append(st.Children, child)
		st.DiscValues = append(st.DiscValues, dv)
		key := ir.NormalizeKey(dv)
		// first declaration wins on duplicate tags
		if _, dup := st.DiscIndex[key]; !dup {
			st.DiscIndex[key] = i
		}
	}
	return st, nil
}

func isDiscriminantLiteral(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
