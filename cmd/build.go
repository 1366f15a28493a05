// File: cmd/build.go
// Description: Shared construction of the traversal engine and probe from
// the resolved configuration. Used by both serve and inspect.
package cmd

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
	"github.com/depscope/depscope-cli/internal/config"
	"github.com/depscope/depscope-cli/internal/engine"
	"github.com/depscope/depscope-cli/internal/probe"
)

// buildEngine constructs the traversal engine from config.
func buildEngine(cfg *config.Config, logger *zap.Logger) *engine.Engine {
	return engine.New(logger,
		engine.WithConcurrency(cfg.Engine.ProbeConcurrency),
		engine.WithProbeTimeout(cfg.Engine.ProbeTimeout),
	)
}

// buildProbe constructs the configured health probe implementation.
func buildProbe(cfg *config.Config, logger *zap.Logger) (schemas.HealthProbe, error) {
	switch strings.ToLower(cfg.Probe.Kind) {
	case "fixed":
		return probe.NewFixedLatency(cfg.Probe.Latency, logger), nil
	case "http":
		return probe.NewHTTP(probe.HTTPConfig{
			Endpoint:          cfg.Probe.Endpoint,
			RequestsPerSecond: cfg.Probe.RequestsPerSecond,
			Burst:             cfg.Probe.Burst,
		}, nil, logger)
	default:
		return nil, fmt.Errorf("unknown probe kind %q", cfg.Probe.Kind)
	}
}
