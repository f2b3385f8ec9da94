package exporter

import (
	"context"
	"slices"

	"github.com/angraph/angraph/pkg/entity"
	"github.com/angraph/angraph/pkg/jsonschema"
	"github.com/angraph/angraph/pkg/output"
)

const allNodesQuery = `MATCH (n)
RETURN elementId(n) AS elementId, labels(n) AS labels, properties(n) AS props`

const allRelsQuery = `MATCH (n)-[r]->(m)
RETURN
    elementId(r) AS elementId,
    elementId(n) AS sourceElementId,
    elementId(m) AS targetElementId,
    type(r) AS type,
    properties(r) AS props`

// EffectiveLabel picks the single label that represents a node's primary
// type in the export, by fixed precedence: the first non-reserved label,
// else the placeholder label, else the generic entity label, else an
// unknown fallback.
func EffectiveLabel(labels []string) string {
	for _, lbl := range labels {
		if lbl != entity.LabelEntity && lbl != entity.LabelPlaceholder {
			return lbl
		}
	}
	if slices.Contains(labels, entity.LabelPlaceholder) {
		return entity.LabelPlaceholder
	}
	if slices.Contains(labels, entity.LabelEntity) {
		return entity.LabelEntity
	}
	return "UnknownNode"
}

// ExportDataModel dumps every node and relationship, writes
// data_model.json, and writes the inferred data_model_schema.json.
func (e *Exporter) ExportDataModel(ctx context.Context) *DataModelDoc {
	doc := &DataModelDoc{
		Nodes:         []NodeRecord{},
		Relationships: []RelRecord{},
	}

	records, err := e.q.Query(ctx, allNodesQuery, nil)
	if err != nil {
		e.log.Errorf("query nodes: %v", err)
	}
	for _, rec := range records {
		node := NodeRecord{
			ElementID:  asString(rec["elementId"]),
			Labels:     []string{EffectiveLabel(asStrings(rec["labels"]))},
			Properties: asPropsMap(rec["props"]),
		}
		if id, ok := node.Properties["id"]; ok {
			node.ID = id
		}
		doc.Nodes = append(doc.Nodes, node)
	}
	e.log.Debugf("retrieved %d nodes", len(doc.Nodes))

	records, err = e.q.Query(ctx, allRelsQuery, nil)
	if err != nil {
		e.log.Errorf("query relationships: %v", err)
	}
	for _, rec := range records {
		doc.Relationships = append(doc.Relationships, RelRecord{
			ElementID:  asString(rec["elementId"]),
			SourceID:   asString(rec["sourceElementId"]),
			TargetID:   asString(rec["targetElementId"]),
			Type:       asString(rec["type"]),
			Properties: asPropsMap(rec["props"]),
		})
	}

	if err := e.dir.WriteJSON(output.FileDataModel, doc); err != nil {
		e.log.Errorf("write %s: %v", output.FileDataModel, err)
	} else {
		e.log.Info("exported data model",
			"nodes", len(doc.Nodes),
			"relationships", len(doc.Relationships))
	}

	schema := dataModelSchema(doc)
	if err := e.dir.WriteJSON(output.FileDataModelSchema, schema); err != nil {
		e.log.Errorf("write %s: %v", output.FileDataModelSchema, err)
	}

	return doc
}

// dataModelSchema infers the document schema from one sampled node and one
// sampled relationship (synthetic defaults when the graph is empty), then
// patches in the published record shapes. When the generated shape does
// not match expectations a default-shaped fragment is inserted instead.
func dataModelSchema(doc *DataModelDoc) jsonschema.Schema {
	sampleNode := map[string]any{
		"_id":        "node_el_id_default",
		"labels":     []any{"DefaultLabel"},
		"id":         "node_biz_id_default",
		"properties": map[string]any{"name": "Default Node", "type": "DefaultType"},
	}
	if n, ok := pickNodeSample(doc.Nodes); ok {
		sampleNode = n
	}

	sampleRel := map[string]any{
		"_id":        "rel_el_id_default",
		"_sourceId":  "node_el_id_1",
		"_targetId":  "node_el_id_2",
		"type":       "DEFAULT_REL",
		"properties": map[string]any{"description": "Default relationship"},
	}
	if r, ok := pickRelSample(doc.Relationships); ok {
		sampleRel = r
	}

	schema := jsonschema.Infer(
		map[string]any{"nodes": []any{sampleNode}, "relationships": []any{sampleRel}},
		"Graph Data Model Instance Schema",
		"Defines the structure for representing graph nodes and relationships.",
	)

	nodeItemProps := jsonschema.Schema{
		"_id": jsonschema.Schema{
			"type":        "string",
			"description": "Internal element ID of the node.",
		},
		"labels": jsonschema.Schema{
			"type":        "array",
			"items":       jsonschema.Schema{"type": "string"},
			"description": "List of labels for the node.",
		},
		"properties": jsonschema.Schema{
			"type":                 "object",
			"description":          "Key-value properties of the node.",
			"additionalProperties": true,
		},
	}
	nodeRequired := []string{"_id", "labels", "properties"}
	if _, ok := sampleNode["id"]; ok {
		nodeItemProps["id"] = jsonschema.Schema{
			"type":        "string",
			"description": "Primary business identifier of the node.",
		}
		nodeRequired = append(nodeRequired, "id")
	}
	setItems(schema, "nodes", jsonschema.Schema{
		"type":       "object",
		"properties": nodeItemProps,
		"required":   nodeRequired,
	}, true)

	setItems(schema, "relationships", jsonschema.Schema{
		"type": "object",
		"properties": jsonschema.Schema{
			"_id": jsonschema.Schema{
				"type":        "string",
				"description": "Internal element ID of the relationship.",
			},
			"_sourceId": jsonschema.Schema{
				"type":        "string",
				"description": "Element ID of the source node.",
			},
			"_targetId": jsonschema.Schema{
				"type":        "string",
				"description": "Element ID of the target node.",
			},
			"type": jsonschema.Schema{
				"type":        "string",
				"description": "Type of the relationship.",
			},
			"properties": jsonschema.Schema{
				"type":                 "object",
				"description":          "Key-value properties of the relationship.",
				"additionalProperties": true,
			},
		},
		"required": []string{"_id", "_sourceId", "_targetId", "type", "properties"},
	}, true)

	return schema
}

// pickNodeSample prefers the first node that has properties, falling back
// to the first node for its _id/labels structure.
func pickNodeSample(nodes []NodeRecord) (map[string]any, bool) {
	if len(nodes) == 0 {
		return nil, false
	}
	chosen := nodes[0]
	for _, n := range nodes {
		if len(n.Properties) > 0 {
			chosen = n
			break
		}
	}
	return nodeSample(chosen), true
}

func nodeSample(n NodeRecord) map[string]any {
	labels := make([]any, len(n.Labels))
	for i, l := range n.Labels {
		labels[i] = l
	}
	sample := map[string]any{
		"_id":        n.ElementID,
		"labels":     labels,
		"properties": n.Properties,
	}
	if n.ID != nil {
		sample["id"] = n.ID
	}
	return sample
}

// pickRelSample mirrors pickNodeSample for relationships.
func pickRelSample(rels []RelRecord) (map[string]any, bool) {
	if len(rels) == 0 {
		return nil, false
	}
	chosen := rels[0]
	for _, r := range rels {
		if len(r.Properties) > 0 {
			chosen = r
			break
		}
	}
	return map[string]any{
		"_id":        chosen.ElementID,
		"_sourceId":  chosen.SourceID,
		"_targetId":  chosen.TargetID,
		"type":       chosen.Type,
		"properties": chosen.Properties,
	}, true
}

// asStrings coerces a driver list value into a string slice.
func asStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
