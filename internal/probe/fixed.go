// File: internal/probe/fixed.go
// Description: Default probe implementations. FixedLatency echoes the
// declared status after an artificial delay, standing in for a real
// monitoring endpoint.
package probe

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
)

// DefaultLatency mirrors the one-second delay of the monitoring stand-in.
const DefaultLatency = 1 * time.Second

// FixedLatency reports the declared status back as the observed health
// after a fixed delay. The delay is context-aware: a cancelled or expired
// context ends the check immediately.
type FixedLatency struct {
	latency time.Duration
	log     *zap.Logger
}

var _ schemas.HealthProbe = (*FixedLatency)(nil)

// NewFixedLatency creates the echo probe. A non-positive latency means no
// artificial delay, which is what deterministic tests want.
func NewFixedLatency(latency time.Duration, logger *zap.Logger) *FixedLatency {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FixedLatency{
		latency: latency,
		log:     logger.Named("probe.fixed"),
	}
}

// Check waits out the configured latency, then echoes the declared status.
func (p *FixedLatency) Check(ctx context.Context, componentID, declaredStatus string) (schemas.Health, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", &schemas.ProbeError{ComponentID: componentID, Err: ctx.Err()}
		}
	}

	p.log.Debug("Echoing declared status",
		zap.String("component", componentID), zap.String("status", declaredStatus))
	return schemas.Health(declaredStatus), nil
}
