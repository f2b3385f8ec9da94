// Package render converts the architecture summary into Graphviz DOT and
// renders it to SVG for a quick visual of the exported graph schema.
package render

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/angraph/angraph/pkg/entity"
	"github.com/angraph/angraph/pkg/exporter"
)

// ToDOT converts an architecture summary to Graphviz DOT. Node types are
// boxes listing their property names and inferred types. The summary does
// not record which node types a relationship connects, so relationship
// types are rendered as a dashed legend of labeled edges.
func ToDOT(doc *exporter.ArchitectureDoc) string {
	var buf bytes.Buffer
	buf.WriteString("digraph architecture {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range doc.Nodes {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(n))}
		if n.Type == entity.LabelPlaceholder {
			attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.Type, strings.Join(attrs, ", "))
	}

	if len(doc.Relationships) > 0 {
		buf.WriteString("\n")
		for _, r := range doc.Relationships {
			anchor := "rel_" + r.Type
			fmt.Fprintf(&buf, "  %q [shape=plaintext, label=\"\"];\n", anchor)
			fmt.Fprintf(&buf, "  %q -> %q [label=%q, style=dashed];\n", anchor, anchor, r.Type)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

// nodeLabel formats a node type box with its property names and types,
// sorted for stable output.
func nodeLabel(n exporter.TypeSummary) string {
	parts := []string{n.Type}
	for _, k := range slices.Sorted(maps.Keys(n.Properties)) {
		parts = append(parts, fmt.Sprintf("%s: %s", k, n.Properties[k]))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
