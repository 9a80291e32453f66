// Package schemadoc builds schema value trees from declarative YAML or JSON
// documents, the data-driven face of the compiler used by the CLI.
//
// Document grammar, one directive per node:
//
//	type: string|boolean|number|int|float|time|func|any
//	pattern: "^[a-z]+$"
//	literal: 42            # bare scalars are literals too
//	array: [<node>]        # one node: homogeneous; several: positional
//	or: [<node>, ...]
//	and: [<node>, ...]
//	tuple: [<node>, ...]
//	optional: <node>
//	discriminated: {key: <name>, variants: [<object>, ...]}
//	object:
//	  <field>: <node>
//	  $keys: <node>
//	  $values: <node>
//	  $strict: true
package schemadoc

import (
	"fmt"
	"regexp"

	json "github.com/goccy/go-json"
	yaml "gopkg.in/yaml.v3"

	ascertain "github.com/3axap4eHko/ascertain"
)

// FromYAML parses a YAML schema document into a schema value.
func FromYAML(data []byte) (any, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("schemadoc: %w", err)
	}
	return build(node)
}

// FromJSON parses a JSON schema document into a schema value.
func FromJSON(data []byte) (any, error) {
	var node any
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("schemadoc: %w", err)
	}
	return build(node)
}

func build(node any) (any, error) {
	switch n := node.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return buildDirective(n)
	case []any:
		return buildSequence(n)
	default:
		// bare scalar literal
		return n, nil
	}
}

func buildDirective(m map[string]any) (any, error) {
	if len(m) != 1 {
		return nil, fmt.Errorf("schemadoc: expected exactly one directive, got %d keys", len(m))
	}
	var key string
	var val any
	for k, v := range m {
		key, val = k, v
	}
	switch key {
	case "type":
		return buildType(val)
	case "pattern":
		s, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("schemadoc: pattern must be a string, got %T", val)
		}
		re, err := regexp.Compile(s)
		if err != nil {
			return nil, fmt.Errorf("schemadoc: pattern %q: %w", s, err)
		}
		return re, nil
	case "literal":
		return val, nil
	case "object":
		return buildObject(val)
	case "array":
		items, ok := val.([]any)
		if !ok {
			return nil, fmt.Errorf("schemadoc: array must be a sequence, got %T", val)
		}
		return buildSequence(items)
	case "or", "and", "tuple":
		items, ok := val.([]any)
		if !ok || len(items) == 0 {
			return nil, fmt.Errorf("schemadoc: %s requires a non-empty sequence", key)
		}
		children := make([]any, 0, len(items))
		for _, item := range items {
			child, err := build(item)
			if err != nil {
				return nil, err
			}
			children = append(children, child)
		}
		switch key {
		case "or":
			return ascertain.Or(children...), nil
		case "and":
			return ascertain.And(children...), nil
		default:
			return ascertain.Tuple(children...), nil
		}
	case "optional":
		child, err := build(val)
		if err != nil {
			return nil, err
		}
		return ascertain.Optional(child), nil
	case "discriminated":
		return buildDiscriminated(val)
	}
	return nil, fmt.Errorf("schemadoc: unknown directive %q", key)
}

func buildSequence(items []any) (any, error) {
	out := make([]any, 0, len(items))
	for _, item := range items {
		child, err := build(item)
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	return out, nil
}

func buildType(val any) (any, error) {
	name, ok := val.(string)
	if !ok {
		return nil, fmt.Errorf("schemadoc: type must be a string, got %T", val)
	}
	switch name {
	case "string":
		return ascertain.String, nil
	case "boolean", "bool":
		return ascertain.Boolean, nil
	case "number":
		return ascertain.Number, nil
	case "int", "integer":
		return ascertain.Int, nil
	case "float":
		return ascertain.Float, nil
	case "time", "date":
		return ascertain.Time, nil
	case "func", "function":
		return ascertain.Func, nil
	case "any":
		return ascertain.Any, nil
	}
	return nil, fmt.Errorf("schemadoc: unknown type %q", name)
}

func buildObject(val any) (any, error) {
	m, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemadoc: object must be a mapping, got %T", val)
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k == ascertain.Strict {
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("schemadoc: %s must be a bool, got %T", k, v)
			}
			out[k] = b
			continue
		}
		child, err := build(v)
		if err != nil {
			return nil, err
		}
		out[k] = child
	}
	return out, nil
}

func buildDiscriminated(val any) (any, error) {
	m, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemadoc: discriminated must be a mapping, got %T", val)
	}
	key, ok := m["key"].(string)
	if !ok || key == "" {
		return nil, fmt.Errorf("schemadoc: discriminated requires a string key")
	}
	items, ok := m["variants"].([]any)
	if !ok || len(items) == 0 {
		return nil, fmt.Errorf("schemadoc: discriminated requires non-empty variants")
	}
	variants := make([]any, 0, len(items))
	for i, item := range items {
		vm, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("schemadoc: discriminated variant %d must be a mapping, got %T", i, item)
		}
		variant, err := buildObject(vm)
		if err != nil {
			return nil, err
		}
		variants = append(variants, variant)
	}
	return ascertain.Discriminated(key, variants...), nil
}
