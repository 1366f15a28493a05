// File: internal/probe/http.go
// Description: Network-backed probe for deployments with a real monitoring
// endpoint. Requests are paced by a shared rate limiter so a large frontier
// cannot stampede the monitoring service.
package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/depscope/depscope-cli/api/schemas"
)

// HTTPConfig configures the network-backed probe.
type HTTPConfig struct {
	// Endpoint is the base URL of the monitoring service. The probe issues
	// GET <Endpoint>/components/<id>/health.
	Endpoint string
	// RequestsPerSecond paces outbound requests. Zero disables pacing.
	RequestsPerSecond float64
	// Burst is the limiter burst size; defaults to 1 when pacing is on.
	Burst int
}

// HTTP checks component health against a monitoring endpoint. The observed
// health is the response body; any transport error or non-2xx status is a
// ProbeError for that component alone.
type HTTP struct {
	endpoint string
	client   *http.Client
	limiter  *rate.Limiter
	log      *zap.Logger
}

var _ schemas.HealthProbe = (*HTTP)(nil)

// NewHTTP creates the network-backed probe. The client may be nil; a
// default client without its own timeout is used then, because per-probe
// deadlines arrive via the context.
func NewHTTP(cfg HTTPConfig, client *http.Client, logger *zap.Logger) (*HTTP, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("http probe: endpoint is required")
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("http probe: invalid endpoint %q: %w", cfg.Endpoint, err)
	}
	if client == nil {
		client = &http.Client{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &HTTP{
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
		client:   client,
		limiter:  limiter,
		log:      logger.Named("probe.http"),
	}, nil
}

// Check queries the monitoring endpoint for one component.
func (p *HTTP) Check(ctx context.Context, componentID, declaredStatus string) (schemas.Health, error) {
	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			return "", &schemas.ProbeError{ComponentID: componentID, Err: err}
		}
	}

	target := fmt.Sprintf("%s/components/%s/health", p.endpoint, url.PathEscape(componentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", &schemas.ProbeError{ComponentID: componentID, Err: err}
	}

	start := time.Now()
	resp, err := p.client.Do(req)
	if err != nil {
		return "", &schemas.ProbeError{ComponentID: componentID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return "", &schemas.ProbeError{ComponentID: componentID, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &schemas.ProbeError{
			ComponentID: componentID,
			Err:         fmt.Errorf("monitoring endpoint returned %s", resp.Status),
		}
	}

	health := schemas.Health(strings.TrimSpace(string(body)))
	p.log.Debug("Component health observed",
		zap.String("component", componentID),
		zap.String("health", string(health)),
		zap.Duration("elapsed", time.Since(start)))
	return health, nil
}
