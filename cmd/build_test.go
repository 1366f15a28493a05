// cmd/build_test.go
package cmd

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/internal/config"
	"github.com/depscope/depscope-cli/internal/probe"
)

func loadTestConfig(t *testing.T, overrides map[string]any) *config.Config {
	t.Helper()
	v := viper.New()
	config.SetDefaults(v)
	for key, val := range overrides {
		v.Set(key, val)
	}
	cfg, err := config.Load(v)
	require.NoError(t, err)
	return cfg
}

func TestBuildProbeFixed(t *testing.T) {
	cfg := loadTestConfig(t, map[string]any{"probe.latency": 10 * time.Millisecond})

	p, err := buildProbe(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &probe.FixedLatency{}, p)
}

func TestBuildProbeHTTP(t *testing.T) {
	cfg := loadTestConfig(t, map[string]any{
		"probe.kind":     "http",
		"probe.endpoint": "http://monitor.internal:8080",
	})

	p, err := buildProbe(cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &probe.HTTP{}, p)
}

func TestBuildProbeUnknownKind(t *testing.T) {
	cfg := loadTestConfig(t, nil)
	cfg.Probe.Kind = "carrier-pigeon"

	_, err := buildProbe(cfg, zap.NewNop())
	require.Error(t, err)
}

func TestBuildEngine(t *testing.T) {
	cfg := loadTestConfig(t, map[string]any{"engine.probe_concurrency": 3})
	assert.NotNil(t, buildEngine(cfg, zap.NewNop()))
}
