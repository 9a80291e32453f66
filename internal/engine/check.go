package engine

import (
	"regexp"

	"github.com/3axap4eHko/ascertain/internal/ir"
)

// Check runs the fast boolean pass. It performs no path tracking and builds
// no messages; already-valid data goes through without diagnostic work.
func Check(p *ir.Program, v any) bool {
	return check(p, p.Root, v)
}

func check(p *ir.Program, s *ir.Step, v any) bool {
	switch s.Kind {
	case ir.KindNil:
		return IsNil(v)
	case ir.KindOptional:
		if IsNil(v) {
			return true
		}
		return check(p, s.Elem, v)
	case ir.KindOr:
		for _, c := range s.Children {
			if check(p, c, v) {
				return true
			}
		}
		return false
	case ir.KindAnd:
		for _, c := range s.Children {
			if !check(p, c, v) {
				return false
			}
		}
		return true
	}

	// Leaf and structural steps surface carried cast failures as hard
	// mismatches, unless the step explicitly expects an error type.
	if _, carried := errorValue(v); carried {
		if s.Kind != ir.KindType || !p.Registry[s.Ref].(*ir.TypeDesc).ExpectsError() {
			return false
		}
	}

	switch s.Kind {
	case ir.KindLiteral:
		return literalEqual(s.Literal, v)
	case ir.KindType:
		return typeMatches(p.Registry[s.Ref].(*ir.TypeDesc), v)
	case ir.KindPattern:
		if IsNil(v) {
			return false
		}
		return p.Registry[s.Ref].(*regexp.Regexp).MatchString(stringify(v))
	case ir.KindObject:
		return checkObject(p, s, v)
	case ir.KindArrayOf:
		n, ok := arrayLen(v)
		if !ok {
			return false
		}
		for i := 0; i < n; i++ {
			if !check(p, s.Elem, arrayIndex(v, i)) {
				return false
			}
		}
		return true
	case ir.KindPositional:
		n, ok := arrayLen(v)
		if !ok || n > len(s.Children) {
			return false
		}
		for i, c := range s.Children {
			var el any
			if i < n {
				el = arrayIndex(v, i)
			}
			if !check(p, c, el) {
				return false
			}
		}
		return true
	case ir.KindTuple:
		n, ok := arrayLen(v)
		if !ok || n != len(s.Children) {
			return false
		}
		for i, c := range s.Children {
			if !check(p, c, arrayIndex(v, i)) {
				return false
			}
		}
		return true
	case ir.KindDiscriminated:
		if !isObject(v) {
			return false
		}
		idx, ok := s.DiscIndex[ir.NormalizeKey(property(v, s.DiscKey))]
		if !ok {
			return false
		}
		return check(p, s.Children[idx], v)
	}
	return false
}

func checkObject(p *ir.Program, s *ir.Step, v any) bool {
	if !isObject(v) {
		return false
	}
	if s.Keys != nil || s.Values != nil || s.Strict {
		for _, k := range objectKeys(v) {
			if s.Keys != nil && !check(p, s.Keys, k) {
				return false
			}
			if s.Values != nil && !check(p, s.Values, property(v, k)) {
				return false
			}
			if s.Strict {
				if _, declared := s.Allowed[k]; !declared {
					return false
				}
			}
		}
	}
	for _, f := range s.Fields {
		if !check(p, f.Step, property(v, f.Name)) {
			return false
		}
	}
	return true
}
