// Package engine interprets compiled programs. The fast interpreter answers
// valid/invalid only; the diagnostic interpreter produces faults with paths.
package engine

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"time"

	"github.com/3axap4eHko/ascertain/internal/ir"
)

// IsNil reports whether v is nil in the schema sense: the nil interface or a
// nil pointer, map, slice, function or channel.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// errorValue extracts a carried error (typically a cast sentinel) from v.
func errorValue(v any) (error, bool) {
	err, ok := v.(error)
	if !ok || IsNil(v) {
		return nil, false
	}
	return err, true
}

func typeMatches(d *ir.TypeDesc, v any) bool {
	if IsNil(v) {
		return false
	}
	switch d.Class {
	case ir.ClassAny:
		return true
	case ir.ClassString:
		return reflect.ValueOf(v).Kind() == reflect.String
	case ir.ClassBool:
		return reflect.ValueOf(v).Kind() == reflect.Bool
	case ir.ClassInt:
		switch reflect.ValueOf(v).Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		}
		return false
	case ir.ClassFloat:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return !math.IsNaN(rv.Float())
		}
		return false
	case ir.ClassNumber:
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			return true
		case reflect.Float32, reflect.Float64:
			return !math.IsNaN(rv.Float())
		}
		return false
	case ir.ClassTime:
		switch t := v.(type) {
		case time.Time:
			return !t.IsZero()
		case *time.Time:
			return t != nil && !t.IsZero()
		}
		return false
	case ir.ClassFunc:
		return reflect.ValueOf(v).Kind() == reflect.Func
	case ir.ClassExact:
		t := reflect.TypeOf(v)
		if d.RT == nil {
			return false
		}
		if d.RT.Kind() == reflect.Interface {
			return t.Implements(d.RT)
		}
		return t == d.RT || t == reflect.PointerTo(d.RT)
	}
	return false
}

// numAsFloat converts any numeric kind to float64 for cross-kind literal
// equality. Exact values survive the conversion for the ranges schemas use.
func numAsFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func literalEqual(lit, v any) bool {
	if IsNil(v) {
		return IsNil(lit)
	}
	lt, vt := reflect.TypeOf(lit), reflect.TypeOf(v)
	if lt == vt {
		if !lt.Comparable() {
			return false
		}
		return lit == v
	}
	lf, lok := numAsFloat(lit)
	vf, vok := numAsFloat(v)
	if lok && vok {
		return lf == vf && !math.IsNaN(lf)
	}
	return false
}

// isObject reports whether the engine can treat v as a property container:
// a string-keyed map, a struct, or a pointer to a struct.
func isObject(v any) bool {
	if IsNil(v) {
		return false
	}
	if _, ok := v.(map[string]any); ok {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Key().Kind() == reflect.String
	case reflect.Struct:
		return true
	case reflect.Pointer:
		return rv.Elem().Kind() == reflect.Struct
	}
	return false
}

// objectKeys returns own keys in sorted order for deterministic traversal.
func objectKeys(v any) []string {
	if m, ok := v.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		for _, k := range rv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return keys
	case reflect.Struct:
		t := rv.Type()
		keys := make([]string, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			if f := t.Field(i); f.IsExported() {
				keys = append(keys, f.Name)
			}
		}
		sort.Strings(keys)
		return keys
	}
	return nil
}

// property reads the named property; a missing property behaves as nil.
func property(v any, key string) any {
	if m, ok := v.(map[string]any); ok {
		return m[key]
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		kv := rv.MapIndex(reflect.ValueOf(key))
		if !kv.IsValid() {
			return nil
		}
		return kv.Interface()
	case reflect.Struct:
		fv := rv.FieldByName(key)
		if !fv.IsValid() || !fv.CanInterface() {
			return nil
		}
		return fv.Interface()
	}
	return nil
}

// arrayLen reports the length of a slice or array value; strings are not
// arrays here.
func arrayLen(v any) (int, bool) {
	if a, ok := v.([]any); ok {
		return len(a), true
	}
	if IsNil(v) {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}

func arrayIndex(v any, i int) any {
	if a, ok := v.([]any); ok {
		return a[i]
	}
	return reflect.ValueOf(v).Index(i).Interface()
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// describeType names v's type for diagnostics.
func describeType(v any) string {
	if IsNil(v) {
		return "nullable"
	}
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	}
	return reflect.TypeOf(v).String()
}

// describeValue renders v for diagnostics, quoting strings.
func describeValue(v any) string {
	if IsNil(v) {
		return "nullable"
	}
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
