package ascertain

import (
	"reflect"

	"github.com/3axap4eHko/ascertain/internal/ir"
)

// A schema is an ordinary Go value tree:
//
//   - literals (strings, numbers, booleans) match by value equality;
//   - type markers (String, Number, ...) match by runtime type;
//   - *regexp.Regexp matches the value's string form;
//   - map[string]any maps property names to child schemas, with the reserved
//     Keys/Values/Strict marker keys;
//   - []any with one element is a homogeneous array schema, with more it is a
//     positional shape;
//   - *Combinator values come from Or, And, Optional, Tuple, Discriminated;
//   - nil requires a nil value.
//
// Schemas are immutable after construction and may be compiled many times.

// Reserved object-schema marker keys.
const (
	// Keys declares a schema every own key of the object must satisfy,
	// validated as a string.
	Keys = "$keys"
	// Values declares a schema every own value of the object must satisfy.
	Values = "$values"
	// Strict, when set to true, rejects properties beyond the declared ones.
	Strict = "$strict"
)

// TypeRef marks an expected runtime type in a schema. Use the predefined
// markers or TypeOf for user-defined types.
type TypeRef struct {
	desc ir.TypeDesc
}

// Name reports the marker's display name as it appears in issue messages.
func (t *TypeRef) Name() string { return t.desc.Name }

var (
	// String matches any value of string kind.
	String = &TypeRef{desc: ir.TypeDesc{Name: "String", Class: ir.ClassString}}
	// Boolean matches any value of bool kind.
	Boolean = &TypeRef{desc: ir.TypeDesc{Name: "Boolean", Class: ir.ClassBool}}
	// Number matches any integer or float kind; NaN is rejected.
	Number = &TypeRef{desc: ir.TypeDesc{Name: "Number", Class: ir.ClassNumber}}
	// Int matches integer kinds only.
	Int = &TypeRef{desc: ir.TypeDesc{Name: "Int", Class: ir.ClassInt}}
	// Float matches float kinds; NaN is rejected.
	Float = &TypeRef{desc: ir.TypeDesc{Name: "Float", Class: ir.ClassFloat}}
	// Time matches a non-zero time.Time (the zero value counts as an
	// invalid instant).
	Time = &TypeRef{desc: ir.TypeDesc{Name: "Time", Class: ir.ClassTime}}
	// Func matches any callable value.
	Func = &TypeRef{desc: ir.TypeDesc{Name: "Func", Class: ir.ClassFunc}}
	// Any matches any non-nil value.
	Any = &TypeRef{desc: ir.TypeDesc{Name: "Any", Class: ir.ClassAny}}
)

// TypeOf returns a marker matching values of type T (or *T). When T is an
// interface type, values implementing it match. Markers built from error
// types accept error values instead of surfacing them as cast failures.
func TypeOf[T any]() *TypeRef {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	return &TypeRef{desc: ir.TypeDesc{Name: rt.String(), Class: ir.ClassExact, RT: rt}}
}
