package entity

import (
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	input := `{
	  "nodes": [
	    {
	      "id": "Component:Foo",
	      "type": "Component",
	      "name": "Foo",
	      "filePath": "foo.ts",
	      "properties": {"selector": "app-foo", "standalone": true},
	      "relationships": [
	        {"targetId": "Service:Bar", "type": "USES"},
	        {"targetId": "External:rxjs", "type": "IMPORTS", "properties": {"named.import": "map"}}
	      ]
	    },
	    {"id": "File:foo.ts", "type": "File", "name": "foo.ts", "filePath": "foo.ts"}
	  ]
	}`

	doc, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("len(Nodes) = %d, want 2", len(doc.Nodes))
	}

	foo := doc.Nodes[0]
	if foo.ID != "Component:Foo" || foo.Type != "Component" || foo.FilePath != "foo.ts" {
		t.Errorf("unexpected record: %+v", foo)
	}
	if foo.Properties["standalone"] != true {
		t.Errorf("Properties[standalone] = %v, want true", foo.Properties["standalone"])
	}
	if len(foo.Relationships) != 2 {
		t.Fatalf("len(Relationships) = %d, want 2", len(foo.Relationships))
	}
	if foo.Relationships[1].TargetID != "External:rxjs" || foo.Relationships[1].Type != "IMPORTS" {
		t.Errorf("unexpected relationship: %+v", foo.Relationships[1])
	}
}

func TestReadInvalidJSON(t *testing.T) {
	if _, err := Read(strings.NewReader("{not json")); err == nil {
		t.Error("Read() with invalid JSON should return an error")
	}
}

func TestReadMissingFields(t *testing.T) {
	doc, err := Read(strings.NewReader(`{"nodes": [{"name": "orphan"}]}`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if doc.Nodes[0].ID != "" {
		t.Errorf("ID = %q, want empty", doc.Nodes[0].ID)
	}
}

func TestSanitizeKeys(t *testing.T) {
	tests := []struct {
		name  string
		props map[string]any
		want  map[string]any
	}{
		{
			name:  "dots replaced",
			props: map[string]any{"a.b": 1, "a.b.c": "x"},
			want:  map[string]any{"a_b": 1, "a_b_c": "x"},
		},
		{
			name:  "clean keys untouched",
			props: map[string]any{"name": "x", "count": 2},
			want:  map[string]any{"name": "x", "count": 2},
		},
		{
			name:  "nil map",
			props: nil,
			want:  nil,
		},
		{
			name:  "empty map",
			props: map[string]any{},
			want:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeKeys(tt.props); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SanitizeKeys(%v) = %v, want %v", tt.props, got, tt.want)
			}
		})
	}
}

func TestSanitizeKeysDoesNotMutate(t *testing.T) {
	props := map[string]any{"a.b": 1}
	_ = SanitizeKeys(props)
	if _, ok := props["a.b"]; !ok {
		t.Error("SanitizeKeys mutated its input")
	}
}
