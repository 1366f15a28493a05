// File: internal/depgraph/graph.go
// Description: In-memory dependency graph over component ids. Nodes keep
// their first-seen insertion order so every downstream traversal is
// reproducible; attribute lookups follow a canonical last-write-wins table.
package depgraph

import "github.com/depscope/depscope-cli/api/schemas"

// Edge is a directed dependency relation: From depends on To.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the built dependency graph. It is read-only once Build returns,
// which is what lets concurrent probes share it without locking.
//
// A node referenced only as a dependency target (a bare node) exists in the
// graph but has no component attributes; Component reports ok=false for it.
type Graph struct {
	order    []string                     // node ids in first-seen order
	index    map[string]int               // id -> position in order
	attrs    map[string]schemas.Component // canonical attribute table, last write wins
	outgoing map[string][]string          // id -> dependency ids in declaration order
	edgeSeen map[string]map[string]bool   // duplicate-edge suppression
	edges    int
}

func newGraph() *Graph {
	return &Graph{
		index:    make(map[string]int),
		attrs:    make(map[string]schemas.Component),
		outgoing: make(map[string][]string),
		edgeSeen: make(map[string]map[string]bool),
	}
}

// addNode registers id if unseen, preserving insertion order. Re-adding an
// existing id keeps its original position.
func (g *Graph) addNode(id string) {
	if _, ok := g.index[id]; ok {
		return
	}
	g.index[id] = len(g.order)
	g.order = append(g.order, id)
}

// setAttributes records the canonical attributes for id. A duplicate id
// replaces the earlier entry: last write governs every later lookup.
func (g *Graph) setAttributes(comp schemas.Component) {
	g.addNode(comp.ID)
	g.attrs[comp.ID] = comp
}

// addEdge registers the directed relation from -> to, creating the target
// as a bare node when needed. Repeated identical edges collapse to one.
func (g *Graph) addEdge(from, to string) {
	g.addNode(from)
	g.addNode(to)

	seen := g.edgeSeen[from]
	if seen == nil {
		seen = make(map[string]bool)
		g.edgeSeen[from] = seen
	}
	if seen[to] {
		return
	}
	seen[to] = true
	g.outgoing[from] = append(g.outgoing[from], to)
	g.edges++
}

// Nodes returns all node ids in first-seen insertion order. The returned
// slice is a copy.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Component looks up the canonical attributes for id. ok is false for bare
// nodes and for ids not in the graph at all.
func (g *Graph) Component(id string) (schemas.Component, bool) {
	comp, ok := g.attrs[id]
	return comp, ok
}

// Outgoing returns the ids that id depends on, in declaration order.
func (g *Graph) Outgoing(id string) []string {
	return g.outgoing[id]
}

// Edges returns every dependency edge, ordered by source insertion order
// and then declaration order. This is the view the visualizer consumes.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, from := range g.order {
		for _, to := range g.outgoing[from] {
			out = append(out, Edge{From: from, To: to})
		}
	}
	return out
}

// Len reports the number of nodes, bare nodes included.
func (g *Graph) Len() int { return len(g.order) }

// EdgeCount reports the number of distinct dependency edges.
func (g *Graph) EdgeCount() int { return g.edges }
