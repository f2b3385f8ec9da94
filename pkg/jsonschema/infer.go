// Package jsonschema infers JSON-Schema-shaped documents from sample values.
//
// The inference is purely structural: arrays take their items schema from
// the first element, objects get one property schema per key, and
// primitives flatten to a bare {"type": ...}. This is a description of a
// sample instance, not a validator.
package jsonschema

import "reflect"

// DraftURI identifies the schema dialect emitted by Infer.
const DraftURI = "http://json-schema.org/draft-07/schema#"

// Schema is a JSON-Schema document or fragment.
type Schema = map[string]any

// TypeOf returns the JSON type name for v: one of boolean, integer,
// number, string, array, object, or null. Booleans are checked before the
// numeric kinds so they are never misclassified as integers.
func TypeOf(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case bool:
		return "boolean"
	case string:
		return "string"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	}
	return "null"
}

// Infer builds a draft-07 schema describing the sample instance. The
// returned document carries the $schema, title and description envelope;
// nested structures are described by plain fragments.
func Infer(instance any, title, description string) Schema {
	s := Schema{
		"$schema":     DraftURI,
		"title":       title,
		"description": description,
	}
	for k, v := range inferValue(instance) {
		s[k] = v
	}
	return s
}

// inferValue produces the schema fragment for a single value.
func inferValue(v any) Schema {
	switch val := v.(type) {
	case []any:
		s := Schema{"type": "array"}
		if len(val) == 0 {
			s["items"] = Schema{}
			return s
		}
		s["items"] = inferValue(val[0])
		return s
	case map[string]any:
		props := Schema{}
		for k, pv := range val {
			frag := inferValue(pv)
			switch frag["type"] {
			case "object", "array":
				props[k] = frag
			default:
				props[k] = Schema{"type": frag["type"]}
			}
		}
		return Schema{"type": "object", "properties": props}
	default:
		return Schema{"type": TypeOf(v)}
	}
}
