package exporter

import (
	"context"
	"fmt"

	"github.com/angraph/angraph/pkg/entity"
	"github.com/angraph/angraph/pkg/jsonschema"
	"github.com/angraph/angraph/pkg/output"
)

// Reserved labels are bookkeeping labels, not entity types; they are
// excluded from the distinct-type enumeration.
var nodeTypesQuery = fmt.Sprintf(`MATCH (n)
UNWIND labels(n) AS lbl
WITH lbl, n
WHERE NOT lbl IN ['%s', '%s']
WITH DISTINCT lbl AS nodeType, head(collect(properties(n))) AS sampleProps
RETURN nodeType, sampleProps
ORDER BY nodeType`, entity.LabelEntity, entity.LabelPlaceholder)

var placeholderSampleQuery = fmt.Sprintf(`MATCH (n:%s)
RETURN head(collect(properties(n))) AS sampleProps
LIMIT 1`, entity.LabelPlaceholder)

const relTypesQuery = `MATCH ()-[r]->()
WITH DISTINCT type(r) AS relType, head(collect(properties(r))) AS sampleProps
RETURN relType, sampleProps
ORDER BY relType`

// ExportArchitecture builds the architecture summary from the distinct
// labels and relationship types in the store, writes architecture.json,
// and writes the inferred architecture_schema.json. The returned document
// is also used for the optional diagram rendering.
func (e *Exporter) ExportArchitecture(ctx context.Context) *ArchitectureDoc {
	doc := &ArchitectureDoc{
		Nodes:         []TypeSummary{},
		Relationships: []TypeSummary{},
	}

	records, err := e.q.Query(ctx, nodeTypesQuery, nil)
	if err != nil {
		e.log.Errorf("query node types: %v", err)
	}
	for _, rec := range records {
		doc.Nodes = append(doc.Nodes, TypeSummary{
			Type:       asString(rec["nodeType"]),
			Properties: stringProps(asPropsMap(rec["sampleProps"])),
		})
	}
	e.log.Debugf("found %d distinct node types", len(doc.Nodes))

	records, err = e.q.Query(ctx, placeholderSampleQuery, nil)
	if err != nil {
		e.log.Errorf("query placeholder sample: %v", err)
	}
	if len(records) > 0 {
		if sample := asPropsMap(records[0]["sampleProps"]); len(sample) > 0 {
			doc.Nodes = append(doc.Nodes, TypeSummary{
				Type:       entity.LabelPlaceholder,
				Properties: stringProps(sample),
			})
		}
	}

	records, err = e.q.Query(ctx, relTypesQuery, nil)
	if err != nil {
		e.log.Errorf("query relationship types: %v", err)
	}
	for _, rec := range records {
		doc.Relationships = append(doc.Relationships, TypeSummary{
			Type:       asString(rec["relType"]),
			Properties: stringProps(asPropsMap(rec["sampleProps"])),
		})
	}

	if err := e.dir.WriteJSON(output.FileArchitecture, doc); err != nil {
		e.log.Errorf("write %s: %v", output.FileArchitecture, err)
	} else {
		e.log.Info("exported architecture summary",
			"node_types", len(doc.Nodes),
			"relationship_types", len(doc.Relationships))
	}

	schema := architectureSchema(doc)
	if err := e.dir.WriteJSON(output.FileArchitectureSchema, schema); err != nil {
		e.log.Errorf("write %s: %v", output.FileArchitectureSchema, err)
	}

	return doc
}

// architectureSchema infers the schema from a one-entry sample of the real
// document (or a fixed example when the graph was empty), then patches the
// item schemas with the published field descriptions.
func architectureSchema(doc *ArchitectureDoc) jsonschema.Schema {
	sampleNodes := []any{map[string]any{
		"type":       "ExampleNodeType",
		"properties": map[string]any{"prop1": "string"},
	}}
	sampleRels := []any{map[string]any{
		"type":       "ExampleRelType",
		"properties": map[string]any{"relProp1": true},
	}}
	if len(doc.Nodes) > 0 {
		sampleNodes = []any{summarySample(doc.Nodes[0])}
	}
	if len(doc.Relationships) > 0 {
		sampleRels = []any{summarySample(doc.Relationships[0])}
	}

	schema := jsonschema.Infer(
		map[string]any{"nodes": sampleNodes, "relationships": sampleRels},
		"Graph Architecture Schema",
		"Defines the structure for specifying node and relationship types and their properties.",
	)

	setItems(schema, "nodes", jsonschema.Schema{
		"type": "object",
		"properties": jsonschema.Schema{
			"type": jsonschema.Schema{
				"type":        "string",
				"description": "The label/type of the node.",
			},
			"properties": jsonschema.Schema{
				"type":                 "object",
				"description":          "Key-value pairs where key is property name and value is its JSON schema type (string).",
				"additionalProperties": jsonschema.Schema{"type": "string"},
			},
		},
		"required": []string{"type", "properties"},
	}, false)
	setItems(schema, "relationships", jsonschema.Schema{
		"type": "object",
		"properties": jsonschema.Schema{
			"type": jsonschema.Schema{
				"type":        "string",
				"description": "The type of the relationship.",
			},
			"properties": jsonschema.Schema{
				"type":                 "object",
				"description":          "Key-value pairs where key is property name and value is its JSON schema type (string).",
				"additionalProperties": jsonschema.Schema{"type": "string"},
			},
		},
		"required": []string{"type", "properties"},
	}, false)

	return schema
}

// summarySample converts a TypeSummary into generic values for inference.
func summarySample(s TypeSummary) map[string]any {
	props := make(map[string]any, len(s.Properties))
	for k, v := range s.Properties {
		props[k] = v
	}
	return map[string]any{"type": s.Type, "properties": props}
}
