// Package ir defines the validation-step tree produced by the compiler and
// interpreted by the engine. This package is internal and not part of the
// public API.
package ir

import "reflect"

// Kind identifies a step type.
type Kind int

const (
	KindNil Kind = iota
	KindLiteral
	KindType
	KindPattern
	KindObject
	KindArrayOf
	KindPositional
	KindOr
	KindAnd
	KindOptional
	KindTuple
	KindDiscriminated
)

// TypeClass partitions type descriptors into the checks the engine performs.
type TypeClass int

const (
	ClassString TypeClass = iota
	ClassBool
	ClassInt
	ClassFloat
	ClassNumber
	ClassTime
	ClassFunc
	ClassAny
	ClassExact // identity against RT
)

// TypeDesc is an opaque type fragment held in the registry. Markers share a
// single descriptor instance so interning collapses repeated uses.
type TypeDesc struct {
	Name  string
	Class TypeClass
	RT    reflect.Type // set for ClassExact only
}

var errIface = reflect.TypeOf((*error)(nil)).Elem()

// ExpectsError reports whether the descriptor accepts error values, which
// disables the cast-failure short circuit for that step.
func (d *TypeDesc) ExpectsError() bool {
	if d.Class != ClassExact || d.RT == nil {
		return false
	}
	if d.RT.Kind() == reflect.Interface {
		return d.RT == errIface || d.RT.Implements(errIface)
	}
	return d.RT.Implements(errIface) || reflect.PointerTo(d.RT).Implements(errIface)
}

// Field binds a declared property name to its step. The compiler emits fields
// in sorted name order so traversal is deterministic.
type Field struct {
	Name string
	Step *Step
}

// Step is a single validation instruction over the current value.
type Step struct {
	Kind    Kind
	Literal any   // KindLiteral
	Ref     int   // KindType, KindPattern: registry index
	Elem    *Step // KindArrayOf, KindOptional

	// KindObject
	Fields  []Field
	Keys    *Step
	Values  *Step
	Strict  bool
	Allowed map[string]struct{} // declared names, set when Strict

	// KindPositional, KindOr, KindAnd, KindTuple, KindDiscriminated
	Children []*Step

	// KindDiscriminated
	DiscKey    string
	DiscValues []any       // per-child discriminant literal, declaration order
	DiscIndex  map[any]int // normalized literal -> child index
}

// Program is a compiled schema: a step tree plus the registry of non-literal
// fragments the steps reference by index.
type Program struct {
	Root     *Step
	Registry []any
}

// Intern stores v in the registry, reusing the index of an identical entry.
func (p *Program) Intern(v any) int {
	for i, got := range p.Registry {
		if got == v {
			return i
		}
	}
	p.Registry = append(p.Registry, v)
	return len(p.Registry) - 1
}

// NormalizeKey canonicalizes discriminant values so numeric literals match
// across Go kinds (a JSON-decoded float64(1) selects the int literal 1).
func NormalizeKey(v any) any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	if !rv.Type().Comparable() {
		return nil
	}
	return v
}

// Fault codes shared between the engine and the public issue model.
const (
	CodeInvalidType          = "invalid_type"
	CodeInvalidLiteral       = "invalid_literal"
	CodeInvalidNullable      = "invalid_nullable"
	CodePattern              = "pattern"
	CodeUnknownKey           = "unknown_key"
	CodeInvalidLength        = "invalid_length"
	CodeTooLong              = "too_long"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeCastError            = "cast_error"
)

// Fault is an engine-level validation failure. The public layer renders it
// into an Issue with a localized message.
type Fault struct {
	Code   string
	Path   []any // string keys and int indices, root first
	Params map[string]string
	Cause  error
}
