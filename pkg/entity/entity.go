// Package entity defines the parsed-source input document model.
//
// The upstream parser emits a JSON document of the form
// {"nodes": [entity, ...]} where each entity describes one structural item
// of an Angular codebase (a file, component, service, ...) together with
// the relationships it declares. This package decodes that document and
// resolves entity types to graph label sets.
package entity

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one structural entity from the parsed-source document.
type Record struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Name          string         `json:"name"`
	FilePath      string         `json:"filePath"`
	Properties    map[string]any `json:"properties,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty"`
}

// Relationship is a declared edge from its enclosing entity to a target.
// TargetID may carry one of the reserved prefixes (see ReservedPrefixes)
// when the parser could not resolve the target to a known entity.
type Relationship struct {
	TargetID   string         `json:"targetId"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Document is the root of the parsed-source input file.
type Document struct {
	Nodes []Record `json:"nodes"`
}

// Read decodes a parsed-source document from r.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &doc, nil
}

// ReadFile decodes a parsed-source document from the file at path.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// SanitizeKeys returns a copy of props with the '.' separator replaced by
// '_' in every key. Neo4j reserves '.' in property names.
func SanitizeKeys(props map[string]any) map[string]any {
	if props == nil {
		return nil
	}
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[strings.ReplaceAll(k, ".", "_")] = v
	}
	return out
}
