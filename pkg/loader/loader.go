// Package loader merges parsed-source entities into the graph store.
//
// Loading is two sequential passes over the input document: first every
// entity is upserted as a node, then containment (DEFINED_IN) and
// explicitly declared relationships are merged. Each query is its own
// implicit transaction; a failing record is logged and skipped so a bad
// entity never aborts the batch.
package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/angraph/angraph/pkg/entity"
	"github.com/angraph/angraph/pkg/graphstore"
)

// Stats summarizes one load run.
type Stats struct {
	NodesMerged     int // entities upserted as nodes
	NodesSkipped    int // entities dropped for a missing id
	DefinedInEdges  int // containment edges merged
	ExplicitEdges   int // declared relationships merged
	RelsSkipped     int // declared relationships dropped as incomplete
	QueryErrors     int // individual queries rejected by the store
	PlaceholderRefs int // relationships that targeted a placeholder node
}

// Loader writes entities and relationships through a store session.
type Loader struct {
	q   graphstore.Querier
	log *log.Logger
}

// New creates a loader. A nil logger falls back to the default logger.
func New(q graphstore.Querier, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{q: q, log: logger}
}

// Load merges doc into the store: all nodes first, then all relationships,
// so every explicit edge can assume its endpoints exist. Failures are
// reflected in the returned stats, never as an error; partial loads are an
// accepted outcome.
func (l *Loader) Load(ctx context.Context, doc *entity.Document) Stats {
	var stats Stats
	if len(doc.Nodes) == 0 {
		l.log.Warn("no nodes found in the parsed data")
		return stats
	}

	l.log.Infof("loading %d entities", len(doc.Nodes))
	l.loadNodes(ctx, doc, &stats)
	l.loadRelationships(ctx, doc, &stats)

	l.log.Info("load complete",
		"nodes", stats.NodesMerged,
		"skipped", stats.NodesSkipped,
		"defined_in", stats.DefinedInEdges,
		"relationships", stats.ExplicitEdges,
		"errors", stats.QueryErrors)
	return stats
}

// loadNodes upserts one node per entity, keyed by the business id.
// Duplicate ids collapse into a single node with last-write-wins
// properties.
func (l *Loader) loadNodes(ctx context.Context, doc *entity.Document, stats *Stats) {
	for _, rec := range doc.Nodes {
		if rec.ID == "" {
			l.log.Warnf("skipping entity with missing id (name=%q)", rec.Name)
			stats.NodesSkipped++
			continue
		}

		entityType := rec.Type
		if entityType == "" {
			entityType = "Unknown"
		}

		name := rec.Name
		if name == "" {
			name = "Unknown"
		}

		props := map[string]any{
			"id":       rec.ID,
			"name":     name,
			"filePath": rec.FilePath,
			"type":     entityType,
		}
		for k, v := range entity.SanitizeKeys(rec.Properties) {
			props[k] = v
		}

		// The label set comes from a fixed table, so interpolation is safe.
		labels := strings.Join(entity.Labels(entityType), ":")
		query := fmt.Sprintf(`MERGE (n:%s {id: $id})
ON CREATE SET n += $props, n:%s
ON MATCH SET n += $props, n:%s`, entity.LabelEntity, labels, labels)

		if err := l.q.Exec(ctx, query, map[string]any{"id": rec.ID, "props": props}); err != nil {
			l.log.Errorf("merge node %s: %v", rec.ID, err)
			stats.QueryErrors++
			continue
		}
		stats.NodesMerged++
	}
}

// loadRelationships merges containment and explicit edges. Runs after the
// node pass so targets loaded from the same document already exist.
func (l *Loader) loadRelationships(ctx context.Context, doc *entity.Document, stats *Stats) {
	for _, rec := range doc.Nodes {
		if rec.ID == "" {
			continue
		}

		if rec.Type != "File" && rec.FilePath != "" {
			l.mergeDefinedIn(ctx, rec, stats)
		}

		for _, rel := range rec.Relationships {
			if rel.TargetID == "" || rel.Type == "" {
				l.log.Warnf("skipping relationship from %s: missing targetId or type", rec.ID)
				stats.RelsSkipped++
				continue
			}
			l.mergeExplicit(ctx, rec.ID, rel, stats)
		}
	}
}

// mergeDefinedIn links an entity to its containing file node. The file
// node is matched, not created: when it was never loaded the MATCH finds
// nothing and the query is a silent no-op.
func (l *Loader) mergeDefinedIn(ctx context.Context, rec entity.Record, stats *Stats) {
	fileID := "File:" + rec.FilePath
	query := fmt.Sprintf(`MATCH (source:%s {id: $source_id})
MATCH (targetFile:File {id: $file_id})
MERGE (source)-[:DEFINED_IN]->(targetFile)`, entity.LabelEntity)

	if err := l.q.Exec(ctx, query, map[string]any{"source_id": rec.ID, "file_id": fileID}); err != nil {
		l.log.Errorf("merge DEFINED_IN %s -> %s: %v", rec.ID, fileID, err)
		stats.QueryErrors++
		return
	}
	stats.DefinedInEdges++
}

// mergeExplicit merges one declared relationship. Targets carrying a
// reserved prefix get a placeholder node merged first and the edge matches
// the placeholder by originalId; regular targets match by business id.
// Edge properties are replaced wholesale on create and match.
func (l *Loader) mergeExplicit(ctx context.Context, sourceID string, rel entity.Relationship, stats *Stats) {
	props := entity.SanitizeKeys(rel.Properties)
	if props == nil {
		props = map[string]any{}
	}

	targetMatch := fmt.Sprintf("(target:%s {id: $target_id})", entity.LabelEntity)
	if status, name, ok := entity.SplitReservedPrefix(rel.TargetID); ok {
		placeholder := fmt.Sprintf(`MERGE (t:%s {name: $name, originalId: $originalId})
ON CREATE SET t.status = $status`, entity.LabelPlaceholder)
		params := map[string]any{"name": name, "originalId": rel.TargetID, "status": status}
		if err := l.q.Exec(ctx, placeholder, params); err != nil {
			l.log.Errorf("merge placeholder for %s: %v", rel.TargetID, err)
			stats.QueryErrors++
			return
		}
		targetMatch = fmt.Sprintf("(target:%s {originalId: $target_id})", entity.LabelPlaceholder)
		stats.PlaceholderRefs++
	}

	// The relationship type is used verbatim as the edge label, as emitted
	// by the upstream parser.
	query := fmt.Sprintf(`MATCH (source:%s {id: $source_id})
MATCH %s
MERGE (source)-[r:%s]->(target)
ON CREATE SET r = $props
ON MATCH SET r = $props`, entity.LabelEntity, targetMatch, rel.Type)

	params := map[string]any{"source_id": sourceID, "target_id": rel.TargetID, "props": props}
	if err := l.q.Exec(ctx, query, params); err != nil {
		l.log.Errorf("merge relationship %s -[%s]-> %s: %v", sourceID, rel.Type, rel.TargetID, err)
		stats.QueryErrors++
		return
	}
	stats.ExplicitEdges++
}
