package jsonschema

import (
	"reflect"
	"testing"
)

func TestTypeOf(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"int", 42, "integer"},
		{"int64", int64(42), "integer"},
		{"bool true", true, "boolean"},
		{"bool false", false, "boolean"},
		{"float", 3.14, "number"},
		{"float32", float32(1.5), "number"},
		{"string", "hello", "string"},
		{"empty string", "", "string"},
		{"nil", nil, "null"},
		{"slice", []any{1, 2}, "array"},
		{"empty slice", []any{}, "array"},
		{"string slice", []string{"a"}, "array"},
		{"map", map[string]any{"a": 1}, "object"},
		{"empty map", map[string]any{}, "object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.value); got != tt.want {
				t.Errorf("TypeOf(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestInferPrimitive(t *testing.T) {
	s := Infer("sample", "Title", "Desc")

	if s["$schema"] != DraftURI {
		t.Errorf("$schema = %v, want %v", s["$schema"], DraftURI)
	}
	if s["title"] != "Title" || s["description"] != "Desc" {
		t.Errorf("envelope = %v/%v", s["title"], s["description"])
	}
	if s["type"] != "string" {
		t.Errorf("type = %v, want string", s["type"])
	}
}

func TestInferEmptyArray(t *testing.T) {
	s := Infer([]any{}, "T", "")

	if s["type"] != "array" {
		t.Fatalf("type = %v, want array", s["type"])
	}
	items, ok := s["items"].(Schema)
	if !ok {
		t.Fatalf("items is %T, want Schema", s["items"])
	}
	if len(items) != 0 {
		t.Errorf("items = %v, want empty schema", items)
	}
}

func TestInferEmptyObject(t *testing.T) {
	s := Infer(map[string]any{}, "T", "")

	if s["type"] != "object" {
		t.Fatalf("type = %v, want object", s["type"])
	}
	props, ok := s["properties"].(Schema)
	if !ok {
		t.Fatalf("properties is %T, want Schema", s["properties"])
	}
	if len(props) != 0 {
		t.Errorf("properties = %v, want empty", props)
	}
}

func TestInferArrayOfObjects(t *testing.T) {
	sample := []any{
		map[string]any{"name": "first", "count": int64(3)},
		map[string]any{"name": "ignored"},
	}
	s := Infer(sample, "T", "")

	items, ok := s["items"].(Schema)
	if !ok {
		t.Fatalf("items is %T, want Schema", s["items"])
	}
	if items["type"] != "object" {
		t.Errorf("items.type = %v, want object", items["type"])
	}
	props := items["properties"].(Schema)
	want := Schema{
		"name":  Schema{"type": "string"},
		"count": Schema{"type": "integer"},
	}
	if !reflect.DeepEqual(props, want) {
		t.Errorf("items.properties = %v, want %v", props, want)
	}
}

func TestInferArrayItemsFromFirstElementOnly(t *testing.T) {
	s := Infer([]any{"text", 42}, "T", "")
	items := s["items"].(Schema)
	if items["type"] != "string" {
		t.Errorf("items.type = %v, want string (from first element)", items["type"])
	}
}

func TestInferNestedStructure(t *testing.T) {
	sample := map[string]any{
		"id":     "n1",
		"active": true,
		"stats":  map[string]any{"edges": int64(4)},
		"tags":   []any{"a", "b"},
	}
	s := Infer(sample, "T", "")
	props := s["properties"].(Schema)

	// Primitives flatten to a bare {type}.
	if !reflect.DeepEqual(props["id"], Schema{"type": "string"}) {
		t.Errorf("props[id] = %v", props["id"])
	}
	if !reflect.DeepEqual(props["active"], Schema{"type": "boolean"}) {
		t.Errorf("props[active] = %v", props["active"])
	}

	// Nested objects and arrays keep their full structure.
	stats, ok := props["stats"].(Schema)
	if !ok || stats["type"] != "object" {
		t.Fatalf("props[stats] = %v", props["stats"])
	}
	if !reflect.DeepEqual(stats["properties"], Schema{"edges": Schema{"type": "integer"}}) {
		t.Errorf("stats.properties = %v", stats["properties"])
	}
	tags, ok := props["tags"].(Schema)
	if !ok || tags["type"] != "array" {
		t.Fatalf("props[tags] = %v", props["tags"])
	}
	if !reflect.DeepEqual(tags["items"], Schema{"type": "string"}) {
		t.Errorf("tags.items = %v", tags["items"])
	}
}

func TestInferNull(t *testing.T) {
	s := Infer(nil, "T", "")
	if s["type"] != "null" {
		t.Errorf("type = %v, want null", s["type"])
	}
}
