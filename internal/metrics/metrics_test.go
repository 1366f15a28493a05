// internal/metrics/metrics_test.go
package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope-cli/api/schemas"
)

func TestInstrumentProbeCountsFailures(t *testing.T) {
	set := New(prometheus.NewRegistry())

	calls := 0
	inner := schemas.HealthProbeFunc(func(ctx context.Context, id, status string) (schemas.Health, error) {
		calls++
		if id == "bad" {
			return "", errors.New("boom")
		}
		return schemas.Health(status), nil
	})

	wrapped := set.InstrumentProbe(inner)

	health, err := wrapped.Check(context.Background(), "good", "healthy")
	require.NoError(t, err)
	assert.Equal(t, schemas.Health("healthy"), health)

	_, err = wrapped.Check(context.Background(), "bad", "healthy")
	require.Error(t, err)

	assert.Equal(t, 2, calls)
	assert.Equal(t, float64(1), testutil.ToFloat64(set.ProbeFailures))
}

func TestNewRegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	set := New(reg)

	set.TraversalsTotal.Inc()
	set.RecordsEmitted.Add(4)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, fam := range families {
		names[fam.GetName()] = true
	}
	for _, want := range []string{
		"depscope_traversals_total",
		"depscope_traversal_duration_seconds",
		"depscope_records_emitted_total",
		"depscope_probe_duration_seconds",
		"depscope_probe_failures_total",
	} {
		assert.Truef(t, names[want], "collector %s not registered", want)
	}
}
