// File: internal/visualize/dot.go
// Description: Emits the dependency graph as Graphviz DOT. Layout and
// rasterization are left to whatever consumes the artifact; this side only
// owns the node and edge sets.
package visualize

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/internal/depgraph"
)

// DOT renders a graph into Graphviz digraph source.
type DOT struct {
	log *zap.Logger
}

// NewDOT creates the renderer.
func NewDOT(logger *zap.Logger) *DOT {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DOT{log: logger.Named("visualize")}
}

// Render emits one digraph covering every node and dependency edge, in the
// graph's insertion order so identical graphs produce identical bytes.
// Bare nodes are drawn dashed to distinguish them from declared components.
func (d *DOT) Render(g *depgraph.Graph) ([]byte, error) {
	if g == nil {
		return nil, fmt.Errorf("render: nil graph")
	}

	var buf bytes.Buffer
	buf.WriteString("digraph system {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded];\n")

	for _, id := range g.Nodes() {
		comp, ok := g.Component(id)
		if !ok {
			fmt.Fprintf(&buf, "  %s [style=\"rounded,dashed\"];\n", quote(id))
			continue
		}
		label := id
		if comp.Type != "" {
			label = fmt.Sprintf("%s\\n%s", id, comp.Type)
		}
		fmt.Fprintf(&buf, "  %s [label=%s];\n", quote(id), quote(label))
	}

	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s;\n", quote(e.From), quote(e.To))
	}
	buf.WriteString("}\n")

	d.log.Debug("Graph rendered",
		zap.Int("nodes", g.Len()), zap.Int("edges", g.EdgeCount()), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// quote wraps a DOT identifier in double quotes, escaping embedded quotes.
// Escaped label newlines (\n) pass through untouched.
func quote(s string) string {
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}
