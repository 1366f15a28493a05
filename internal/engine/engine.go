// File: internal/engine/engine.go
// Description: Traversal and aggregation engine. Visits every graph node
// exactly once via multi-root breadth-first traversal and fans health
// probes out per frontier, joining results back in deterministic order.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/depscope/depscope-cli/api/schemas"
	"github.com/depscope/depscope-cli/internal/depgraph"
)

const (
	// DefaultConcurrency bounds in-flight probes per traversal. The bound is
	// caller-scoped: two concurrent traversals never share a pool.
	DefaultConcurrency = 10
	// DefaultProbeTimeout bounds a single probe invocation.
	DefaultProbeTimeout = 5 * time.Second
)

// Engine drives traversals. BFS bookkeeping (queue, visited set) is owned
// by the single calling goroutine; only probe invocations run concurrently.
type Engine struct {
	log          *zap.Logger
	concurrency  int
	probeTimeout time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithConcurrency caps the number of probes in flight at once. Values below
// one fall back to the default.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithProbeTimeout bounds each probe invocation. A timed-out probe degrades
// that component's health to unknown instead of stalling the traversal.
func WithProbeTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.probeTimeout = d
		}
	}
}

// New creates a traversal engine.
func New(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		log:          logger.Named("engine"),
		concurrency:  DefaultConcurrency,
		probeTimeout: DefaultProbeTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Result is the outcome of one traversal.
type Result struct {
	// RunID identifies this traversal in logs and responses.
	RunID string `json:"run_id"`
	// VisitOrder lists every node id exactly once, bare nodes included.
	VisitOrder []string `json:"visit_order"`
	// Records holds one entry per visited node that had component
	// attributes, in VisitOrder.
	Records []schemas.EnrichedRecord `json:"records"`
	// Partial is true when cancellation cut the traversal short.
	Partial bool `json:"partial"`
}

// probeOutcome is the joined result for one frontier slot.
type probeOutcome struct {
	bare       bool
	cancelled  bool
	health     schemas.Health
	diagnostic string
}

// Traverse visits every node of g exactly once and aggregates enriched
// records. Node order is a pure function of graph structure: roots are
// taken in first-seen insertion order, each root is traversed breadth
// first, and nodes are marked visited at enqueue time so cycles and
// self-dependencies terminate naturally.
//
// Probe failures and timeouts degrade single components to HealthUnknown.
// Cancellation of ctx stops the traversal after the current frontier
// drains: cancelled components are omitted from Records entirely and the
// error wraps schemas.ErrPartialResult.
func (e *Engine) Traverse(ctx context.Context, g *depgraph.Graph, probe schemas.HealthProbe) (*Result, error) {
	if g == nil {
		return nil, fmt.Errorf("traverse: nil graph")
	}
	if probe == nil {
		return nil, fmt.Errorf("traverse: nil probe")
	}

	res := &Result{RunID: uuid.NewString()}
	if g.Len() == 0 {
		return res, nil
	}

	log := e.log.With(zap.String("run_id", res.RunID))
	log.Debug("Traversal starting",
		zap.Int("nodes", g.Len()), zap.Int("concurrency", e.concurrency))

	visited := make(map[string]bool, g.Len())
	for _, root := range g.Nodes() {
		if visited[root] {
			continue
		}
		visited[root] = true

		frontier := []string{root}
		for len(frontier) > 0 {
			outcomes := e.probeFrontier(ctx, g, probe, frontier)

			// Join in frontier order, never completion order.
			for i, id := range frontier {
				res.VisitOrder = append(res.VisitOrder, id)
				out := outcomes[i]
				if out.bare {
					continue
				}
				if out.cancelled {
					res.Partial = true
					continue
				}
				comp, _ := g.Component(id)
				res.Records = append(res.Records, schemas.EnrichedRecord{
					ID:             comp.ID,
					Type:           comp.Type,
					Status:         comp.Status,
					ObservedHealth: out.health,
					CPUUsage:       comp.CPUUsage,
					MemoryUsage:    comp.MemoryUsage,
					DiskUsage:      comp.DiskUsage,
					Diagnostic:     out.diagnostic,
				})
			}

			if ctx.Err() != nil {
				res.Partial = true
				log.Warn("Traversal cancelled mid-flight",
					zap.Int("visited", len(res.VisitOrder)), zap.Int("nodes", g.Len()))
				return res, fmt.Errorf("traversal %s: %w", res.RunID, schemas.ErrPartialResult)
			}

			frontier = nextFrontier(g, frontier, visited)
		}
	}

	log.Debug("Traversal complete",
		zap.Int("visited", len(res.VisitOrder)), zap.Int("records", len(res.Records)))
	return res, nil
}

// probeFrontier fans out probes for every frontier node that has component
// attributes and waits for all of them. Outcomes are indexed by frontier
// position so the caller can join them deterministically.
func (e *Engine) probeFrontier(ctx context.Context, g *depgraph.Graph, probe schemas.HealthProbe, frontier []string) []probeOutcome {
	outcomes := make([]probeOutcome, len(frontier))

	grp := new(errgroup.Group)
	grp.SetLimit(e.concurrency)
	for i, id := range frontier {
		comp, ok := g.Component(id)
		if !ok {
			outcomes[i] = probeOutcome{bare: true}
			continue
		}
		grp.Go(func() error {
			outcomes[i] = e.checkOne(ctx, probe, id, comp.Status)
			// Probe failures never abort the group; they are recorded in
			// the outcome slot instead.
			return nil
		})
	}
	_ = grp.Wait()
	return outcomes
}

// checkOne invokes the probe for a single component under the per-probe
// timeout and classifies the outcome.
func (e *Engine) checkOne(ctx context.Context, probe schemas.HealthProbe, id, declaredStatus string) probeOutcome {
	pctx, cancel := context.WithTimeout(ctx, e.probeTimeout)
	defer cancel()

	health, err := probe.Check(pctx, id, declaredStatus)
	if err == nil {
		return probeOutcome{health: health}
	}

	// Parent cancellation: the component is omitted rather than reported
	// with a guessed status.
	if ctx.Err() != nil {
		return probeOutcome{cancelled: true}
	}

	perr := &schemas.ProbeError{ComponentID: id, Err: err}
	e.log.Warn("Health probe degraded to unknown",
		zap.String("component", id), zap.Error(perr))
	return probeOutcome{health: schemas.HealthUnknown, diagnostic: perr.Error()}
}

// nextFrontier collects the not-yet-visited outgoing neighbors of the
// current frontier, marking each visited at enqueue time.
func nextFrontier(g *depgraph.Graph, frontier []string, visited map[string]bool) []string {
	var next []string
	for _, id := range frontier {
		for _, dep := range g.Outgoing(id) {
			if visited[dep] {
				continue
			}
			visited[dep] = true
			next = append(next, dep)
		}
	}
	return next
}
