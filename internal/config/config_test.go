// internal/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, 5001, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:5001", cfg.Server.Addr())
	assert.Equal(t, int64(10<<20), cfg.Server.MaxRequestBytes)
	assert.Equal(t, 10, cfg.Engine.ProbeConcurrency)
	assert.Equal(t, 5*time.Second, cfg.Engine.ProbeTimeout)
	assert.Equal(t, "fixed", cfg.Probe.Kind)
	assert.Equal(t, time.Second, cfg.Probe.Latency)
	assert.Equal(t, "graph.dot", cfg.Artifact.Filename)
}

func TestLoadOverrides(t *testing.T) {
	v := newViper()
	v.Set("server.port", 9090)
	v.Set("engine.probe_concurrency", 2)
	v.Set("probe.kind", "http")
	v.Set("probe.endpoint", "http://monitor.internal:8080")

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Engine.ProbeConcurrency)
	assert.Equal(t, "http", cfg.Probe.Kind)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *viper.Viper)
		wantErr string
	}{
		{
			name:    "bad logger format",
			mutate:  func(v *viper.Viper) { v.Set("logger.format", "xml") },
			wantErr: "logger.format",
		},
		{
			name:    "port out of range",
			mutate:  func(v *viper.Viper) { v.Set("server.port", 99999) },
			wantErr: "server.port",
		},
		{
			name:    "zero concurrency",
			mutate:  func(v *viper.Viper) { v.Set("engine.probe_concurrency", 0) },
			wantErr: "engine.probe_concurrency",
		},
		{
			name:    "zero probe timeout",
			mutate:  func(v *viper.Viper) { v.Set("engine.probe_timeout", "0s") },
			wantErr: "engine.probe_timeout",
		},
		{
			name:    "http probe without endpoint",
			mutate:  func(v *viper.Viper) { v.Set("probe.kind", "http") },
			wantErr: "probe.endpoint",
		},
		{
			name:    "unknown probe kind",
			mutate:  func(v *viper.Viper) { v.Set("probe.kind", "icmp") },
			wantErr: "probe.kind",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := newViper()
			tc.mutate(v)
			_, err := Load(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
