// File: internal/server/server.go
// Description: HTTP surface for the inspector. Transport plumbing only: the
// handlers decode uploads, hand them to the traversal core, and format what
// comes back.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
	"github.com/depscope/depscope-cli/internal/config"
	"github.com/depscope/depscope-cli/internal/engine"
	"github.com/depscope/depscope-cli/internal/metrics"
	"github.com/depscope/depscope-cli/internal/visualize"
)

// Server wires the traversal core to its HTTP collaborators.
type Server struct {
	cfg      config.ServerConfig
	log      *zap.Logger
	engine   *engine.Engine
	probe    schemas.HealthProbe
	renderer *visualize.DOT
	store    schemas.ArtifactStore
	metrics  *metrics.Set
	registry *prometheus.Registry

	httpServer *http.Server
}

// New creates the server. All collaborators are required; the constructor
// rejects nil dependencies up front rather than panicking mid-request.
func New(
	cfg config.ServerConfig,
	logger *zap.Logger,
	eng *engine.Engine,
	probe schemas.HealthProbe,
	renderer *visualize.DOT,
	store schemas.ArtifactStore,
	registry *prometheus.Registry,
) (*Server, error) {
	if logger == nil || eng == nil || probe == nil || renderer == nil || store == nil {
		return nil, fmt.Errorf("server: nil dependency")
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	mset := metrics.New(registry)
	s := &Server{
		cfg:      cfg,
		log:      logger.Named("server"),
		engine:   eng,
		probe:    mset.InstrumentProbe(probe),
		renderer: renderer,
		store:    store,
		metrics:  mset,
		registry: registry,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/systems/inspect", s.handleInspect)
	mux.HandleFunc("/api/v1/systems/graph", s.handleGraphArtifact)
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.requestID(s.accessLog(mux)),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

// Handler exposes the routed handler stack, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// Start serves until ctx is cancelled, then drains with the configured
// shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", zap.String("addr", s.cfg.Addr()))
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

// requestID tags every request with a uuid, echoed in the response header
// and attached to the request context for handler logging.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(withRequestID(r.Context(), id)))
	})
}

// accessLog logs one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("Request handled",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.String("request_id", requestIDFrom(r.Context())),
			zap.Duration("elapsed", time.Since(start)))
	})
}

type requestIDKey struct{}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
