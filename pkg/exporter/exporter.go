// Package exporter queries the graph store and writes the four export
// artifacts: the architecture summary, the full data model, and a JSON
// Schema for each.
//
// Artifact failures are independent: a query or write error is logged and
// the remaining artifacts are still attempted, mirroring the loader's
// partial-success policy.
package exporter

import (
	"github.com/charmbracelet/log"

	"github.com/angraph/angraph/pkg/graphstore"
	"github.com/angraph/angraph/pkg/jsonschema"
	"github.com/angraph/angraph/pkg/output"
)

// TypeSummary describes one distinct node label or relationship type,
// with property names mapped to their inferred JSON type names.
type TypeSummary struct {
	Type       string            `json:"type"`
	Properties map[string]string `json:"properties"`
}

// ArchitectureDoc is the schema-level summary of the graph.
type ArchitectureDoc struct {
	Nodes         []TypeSummary `json:"nodes"`
	Relationships []TypeSummary `json:"relationships"`
}

// NodeRecord is one node in the full data-model dump.
type NodeRecord struct {
	ElementID  string         `json:"_id"`
	Labels     []string       `json:"labels"`
	ID         any            `json:"id,omitempty"` // business id, hoisted from properties when present
	Properties map[string]any `json:"properties"`
}

// RelRecord is one relationship in the full data-model dump.
type RelRecord struct {
	ElementID  string         `json:"_id"`
	SourceID   string         `json:"_sourceId"`
	TargetID   string         `json:"_targetId"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
}

// DataModelDoc is the full dump of the graph.
type DataModelDoc struct {
	Nodes         []NodeRecord `json:"nodes"`
	Relationships []RelRecord  `json:"relationships"`
}

// Exporter reads the graph through a store session and writes artifacts
// into a prepared output directory.
type Exporter struct {
	q   graphstore.Querier
	dir *output.Dir
	log *log.Logger
}

// New creates an exporter. A nil logger falls back to the default logger.
func New(q graphstore.Querier, dir *output.Dir, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = log.Default()
	}
	return &Exporter{q: q, dir: dir, log: logger}
}

// stringProps converts a raw sample property map into name -> type-name
// entries for the architecture summary.
func stringProps(sample map[string]any) map[string]string {
	out := make(map[string]string, len(sample))
	for k, v := range sample {
		out[k] = jsonschema.TypeOf(v)
	}
	return out
}

// asPropsMap coerces a record value into a property map. Missing or null
// samples become an empty map.
func asPropsMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// asString coerces a record value into a string, empty when absent.
func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
