// File: internal/depgraph/builder.go
package depgraph

import (
	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
)

// Build populates a Graph from a decoded system description. The input must
// already be shape-validated (see internal/ingest); Build itself never
// fails on dangling dependency targets, those simply become bare nodes.
//
// Subsystems and components are walked in input order, so the resulting
// node order is deterministic for identical inputs.
func Build(desc *schemas.SystemDescription, logger *zap.Logger) *Graph {
	if logger == nil {
		logger = zap.NewNop()
	}
	log := logger.Named("depgraph")

	g := newGraph()
	for _, sub := range desc.System.Subsystems {
		for _, comp := range sub.Components {
			if _, dup := g.Component(comp.ID); dup {
				log.Debug("Duplicate component id, last write wins",
					zap.String("id", comp.ID), zap.String("subsystem", sub.Name))
			}
			g.setAttributes(comp)
			for _, dep := range comp.Dependencies {
				g.addEdge(comp.ID, dep)
			}
		}
	}

	log.Debug("Dependency graph built",
		zap.Int("nodes", g.Len()), zap.Int("edges", g.EdgeCount()))
	return g
}
