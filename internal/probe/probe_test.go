// internal/probe/probe_test.go
package probe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
)

func TestFixedLatencyEchoesDeclaredStatus(t *testing.T) {
	p := NewFixedLatency(0, zap.NewNop())

	health, err := p.Check(context.Background(), "web", "healthy")
	require.NoError(t, err)
	assert.Equal(t, schemas.Health("healthy"), health)
}

func TestFixedLatencyHonorsCancellation(t *testing.T) {
	p := NewFixedLatency(5*time.Second, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := p.Check(ctx, "web", "healthy")
	require.Error(t, err)

	var perr *schemas.ProbeError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "web", perr.ComponentID)
	assert.Less(t, time.Since(start), time.Second, "cancellation must end the check promptly")
}

func TestHTTPProbeReadsHealthFromEndpoint(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/components/api/health", r.URL.Path)
		w.Write([]byte("degraded\n"))
	}))
	defer srv.Close()

	p, err := NewHTTP(HTTPConfig{Endpoint: srv.URL}, srv.Client(), zap.NewNop())
	require.NoError(t, err)

	health, err := p.Check(context.Background(), "api", "healthy")
	require.NoError(t, err)
	assert.Equal(t, schemas.Health("degraded"), health)
}

func TestHTTPProbeNonSuccessStatusIsProbeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer srv.Close()

	p, err := NewHTTP(HTTPConfig{Endpoint: srv.URL}, srv.Client(), zap.NewNop())
	require.NoError(t, err)

	_, err = p.Check(context.Background(), "api", "healthy")
	require.Error(t, err)

	var perr *schemas.ProbeError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "api", perr.ComponentID)
}

func TestHTTPProbeEscapesComponentID(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	p, err := NewHTTP(HTTPConfig{Endpoint: srv.URL}, srv.Client(), zap.NewNop())
	require.NoError(t, err)

	_, err = p.Check(context.Background(), "auth/session broker", "healthy")
	require.NoError(t, err)
	assert.Equal(t, "/components/auth%2Fsession%20broker/health", gotPath)
}

func TestHTTPProbeRequiresEndpoint(t *testing.T) {
	_, err := NewHTTP(HTTPConfig{}, nil, zap.NewNop())
	require.Error(t, err)
}

func TestHTTPProbeRateLimiterRespectsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	// One request a minute with burst 1: the second check must block on
	// the limiter and fail once the context expires.
	p, err := NewHTTP(HTTPConfig{Endpoint: srv.URL, RequestsPerSecond: 1.0 / 60, Burst: 1}, srv.Client(), zap.NewNop())
	require.NoError(t, err)

	_, err = p.Check(context.Background(), "a", "healthy")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.Check(ctx, "b", "healthy")
	require.Error(t, err)
}
