package exporter

import "github.com/angraph/angraph/pkg/jsonschema"

// setItems replaces the items schema of the named array field inside a
// generated document schema. The generated shape is checked first; when it
// does not match expectations and insertFallback is set, a default-shaped
// array schema is inserted instead. Returns whether the patch landed on
// the generated shape.
func setItems(schema jsonschema.Schema, field string, items jsonschema.Schema, insertFallback bool) bool {
	if props, ok := schema["properties"].(jsonschema.Schema); ok {
		if entry, ok := props[field].(jsonschema.Schema); ok {
			if _, ok := entry["items"]; ok {
				entry["items"] = items
				return true
			}
		}
	}

	if !insertFallback {
		return false
	}

	props, ok := schema["properties"].(jsonschema.Schema)
	if !ok {
		props = jsonschema.Schema{}
		schema["properties"] = props
	}
	props[field] = jsonschema.Schema{"type": "array", "items": items}
	return false
}
