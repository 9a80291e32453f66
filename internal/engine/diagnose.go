package engine

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/3axap4eHko/ascertain/internal/ir"
)

// Diagnose runs the diagnostic pass. With all=false it stops at the first
// failing leaf in pre-order; with all=true it accumulates every fault in
// traversal order.
func Diagnose(p *ir.Program, v any, all bool) []ir.Fault {
	d := &diagnoser{p: p, all: all}
	d.step(p.Root, v, nil)
	return d.faults
}

type diagnoser struct {
	p      *ir.Program
	all    bool
	faults []ir.Fault
}

func (d *diagnoser) halted() bool { return !d.all && len(d.faults) > 0 }

func (d *diagnoser) fail(code string, path []any, params map[string]string, cause error) {
	d.faults = append(d.faults, ir.Fault{
		Code:   code,
		Path:   append([]any(nil), path...),
		Params: params,
		Cause:  cause,
	})
}

func (d *diagnoser) step(s *ir.Step, v any, path []any) {
	switch s.Kind {
	case ir.KindNil:
		if !IsNil(v) {
			d.fail(ir.CodeInvalidNullable, path, map[string]string{"got": describeType(v)}, nil)
		}
		return
	case ir.KindOptional:
		if IsNil(v) {
			return
		}
		d.step(s.Elem, v, path)
		return
	case ir.KindOr:
		d.stepOr(s, v, path)
		return
	case ir.KindAnd:
		for _, c := range s.Children {
			d.step(c, v, path)
			if d.halted() {
				return
			}
		}
		return
	}

	if err, carried := errorValue(v); carried {
		if s.Kind != ir.KindType || !d.p.Registry[s.Ref].(*ir.TypeDesc).ExpectsError() {
			d.fail(ir.CodeCastError, path, map[string]string{"message": err.Error()}, err)
			return
		}
	}

	switch s.Kind {
	case ir.KindLiteral:
		if !literalEqual(s.Literal, v) {
			d.fail(ir.CodeInvalidLiteral, path, map[string]string{
				"expected": describeValue(s.Literal),
				"got":      describeValue(v),
			}, nil)
		}
	case ir.KindType:
		desc := d.p.Registry[s.Ref].(*ir.TypeDesc)
		if !typeMatches(desc, v) {
			d.fail(ir.CodeInvalidType, path, map[string]string{
				"expected": desc.Name,
				"got":      describeType(v),
			}, nil)
		}
	case ir.KindPattern:
		re := d.p.Registry[s.Ref].(*regexp.Regexp)
		if IsNil(v) || !re.MatchString(stringify(v)) {
			d.fail(ir.CodePattern, path, map[string]string{
				"expected": re.String(),
				"got":      describeValue(v),
			}, nil)
		}
	case ir.KindObject:
		d.stepObject(s, v, path)
	case ir.KindArrayOf:
		n, ok := arrayLen(v)
		if !ok {
			d.fail(ir.CodeInvalidType, path, map[string]string{
				"expected": "array",
				"got":      describeType(v),
			}, nil)
			return
		}
		for i := 0; i < n; i++ {
			d.step(s.Elem, arrayIndex(v, i), append(path, i))
			if d.halted() {
				return
			}
		}
	case ir.KindPositional:
		n, ok := arrayLen(v)
		if !ok {
			d.fail(ir.CodeInvalidType, path, map[string]string{
				"expected": "array",
				"got":      describeType(v),
			}, nil)
			return
		}
		if n > len(s.Children) {
			d.fail(ir.CodeTooLong, path, map[string]string{
				"expected": strconv.Itoa(len(s.Children)),
				"got":      strconv.Itoa(n),
			}, nil)
			if d.halted() {
				return
			}
		}
		for i, c := range s.Children {
			var el any
			if i < n {
				el = arrayIndex(v, i)
			}
			d.step(c, el, append(path, i))
			if d.halted() {
				return
			}
		}
	case ir.KindTuple:
		n, ok := arrayLen(v)
		if !ok {
			d.fail(ir.CodeInvalidType, path, map[string]string{
				"expected": "array",
				"got":      describeType(v),
			}, nil)
			return
		}
		if n != len(s.Children) {
			d.fail(ir.CodeInvalidLength, path, map[string]string{
				"expected": strconv.Itoa(len(s.Children)),
				"got":      strconv.Itoa(n),
			}, nil)
			if d.halted() {
				return
			}
		}
		for i, c := range s.Children {
			var el any
			if i < n {
				el = arrayIndex(v, i)
			}
			d.step(c, el, append(path, i))
			if d.halted() {
				return
			}
		}
	case ir.KindDiscriminated:
		d.stepDiscriminated(s, v, path)
	}
}

// stepOr validates OR children in declared order. When every branch fails,
// first-error mode surfaces the first branch's failure as representative;
// all-errors mode aggregates every branch's faults.
func (d *diagnoser) stepOr(s *ir.Step, v any, path []any) {
	var collected []ir.Fault
	for _, c := range s.Children {
		sub := &diagnoser{p: d.p, all: d.all}
		sub.step(c, v, path)
		if len(sub.faults) == 0 {
			return
		}
		if d.all {
			collected = append(collected, sub.faults...)
		} else if collected == nil {
			collected = sub.faults
		}
	}
	d.faults = append(d.faults, collected...)
}

func (d *diagnoser) stepObject(s *ir.Step, v any, path []any) {
	if !isObject(v) {
		d.fail(ir.CodeInvalidType, path, map[string]string{
			"expected": "object",
			"got":      describeType(v),
		}, nil)
		return
	}
	if s.Keys != nil || s.Values != nil || s.Strict {
		for _, k := range objectKeys(v) {
			if s.Keys != nil {
				d.step(s.Keys, k, append(path, k))
				if d.halted() {
					return
				}
			}
			if s.Values != nil {
				d.step(s.Values, property(v, k), append(path, k))
				if d.halted() {
					return
				}
			}
			if s.Strict {
				if _, declared := s.Allowed[k]; !declared {
					d.fail(ir.CodeUnknownKey, append(path, k), map[string]string{"key": k}, nil)
					if d.halted() {
						return
					}
				}
			}
		}
	}
	for _, f := range s.Fields {
		d.step(f.Step, property(v, f.Name), append(path, f.Name))
		if d.halted() {
			return
		}
	}
}

func (d *diagnoser) stepDiscriminated(s *ir.Step, v any, path []any) {
	if !isObject(v) {
		d.fail(ir.CodeInvalidType, path, map[string]string{
			"expected": "object",
			"got":      describeType(v),
		}, nil)
		return
	}
	dv := property(v, s.DiscKey)
	idx, ok := s.DiscIndex[ir.NormalizeKey(dv)]
	if !ok {
		expected := make([]string, 0, len(s.DiscValues))
		for _, lit := range s.DiscValues {
			expected = append(expected, describeValue(lit))
		}
		d.fail(ir.CodeDiscriminatorUnknown, append(path, s.DiscKey), map[string]string{
			"expected": strings.Join(expected, ", "),
			"got":      describeValue(dv),
		}, nil)
		return
	}
	d.step(s.Children[idx], v, path)
}
