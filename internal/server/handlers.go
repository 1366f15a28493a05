// File: internal/server/handlers.go
package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
	"github.com/depscope/depscope-cli/internal/depgraph"
	"github.com/depscope/depscope-cli/internal/ingest"
	"github.com/depscope/depscope-cli/internal/report"
	"github.com/depscope/depscope-cli/internal/visualize"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// inspectResponse is the JSON shape of a completed inspection.
type inspectResponse struct {
	RunID        string                   `json:"run_id"`
	VisitOrder   []string                 `json:"visit_order"`
	Records      []schemas.EnrichedRecord `json:"records"`
	Partial      bool                     `json:"partial"`
	ArtifactPath string                   `json:"artifact_path,omitempty"`
}

// handleInspect accepts a system description (raw JSON body or a multipart
// "file" field), runs the build-and-traverse pipeline, refreshes the graph
// artifact, and answers with either a plain-text report or JSON depending
// on the Accept header.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	log := s.log.With(zap.String("request_id", requestIDFrom(r.Context())))

	payload, err := s.readPayload(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	desc, err := ingest.Decode(payload)
	if err != nil {
		if schemas.IsMalformedInput(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, "Failed to decode payload", http.StatusInternalServerError)
		return
	}

	graph := depgraph.Build(desc, s.log)

	start := time.Now()
	result, err := s.engine.Traverse(r.Context(), graph, s.probe)
	s.metrics.TraversalDuration.Observe(time.Since(start).Seconds())
	s.metrics.TraversalsTotal.Inc()
	if err != nil && !errors.Is(err, schemas.ErrPartialResult) {
		log.Error("Traversal failed", zap.Error(err))
		http.Error(w, "Traversal failed", http.StatusInternalServerError)
		return
	}
	s.metrics.RecordsEmitted.Add(float64(len(result.Records)))

	// Refresh the artifact. A rendering or storage failure is logged and
	// the response carries no artifact path; the computed records are
	// never discarded because of it.
	artifactPath := ""
	if dot, renderErr := s.renderer.Render(graph); renderErr != nil {
		log.Error("Graph rendering failed", zap.Error(renderErr))
	} else if path, putErr := s.store.Put(dot); putErr != nil {
		log.Error("Artifact store rejected graph", zap.Error(putErr))
	} else {
		artifactPath = path
	}

	status := http.StatusOK
	if result.Partial {
		status = http.StatusPartialContent
	}

	if wantsJSON(r) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		resp := inspectResponse{
			RunID:        result.RunID,
			VisitOrder:   result.VisitOrder,
			Records:      result.Records,
			Partial:      result.Partial,
			ArtifactPath: artifactPath,
		}
		if encErr := json.NewEncoder(w).Encode(resp); encErr != nil {
			log.Error("Failed to encode response", zap.Error(encErr))
		}
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	var b strings.Builder
	b.WriteString("System Health Report:\n\n")
	if result.Partial {
		b.WriteString("WARNING: traversal was interrupted; this report is partial.\n\n")
	}
	b.WriteString(report.Render(result.Records))
	b.WriteString("\n")
	if artifactPath != "" {
		fmt.Fprintf(&b, "\nGraph artifact: %s\n", artifactPath)
	}
	if _, wErr := io.WriteString(w, b.String()); wErr != nil {
		log.Error("Failed to write response", zap.Error(wErr))
	}
}

// handleGraphArtifact serves the most recently rendered graph. Absence is a
// 404 with guidance, distinct from a read failure.
func (s *Server) handleGraphArtifact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	_, data, err := s.store.Latest()
	if errors.Is(err, visualize.ErrNoArtifact) {
		http.Error(w, "Graph artifact not found. Upload a system description before requesting the graph.", http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("Failed to read graph artifact", zap.Error(err))
		http.Error(w, "Failed to read graph artifact", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	if _, err := w.Write(data); err != nil {
		s.log.Error("Failed to write artifact response", zap.Error(err))
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "ok")
}

// readPayload extracts the system description bytes from either a raw body
// or a multipart upload, bounded by the configured request size.
func (s *Server) readPayload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxRequestBytes)

	contentType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if contentType == "multipart/form-data" {
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, fmt.Errorf("multipart upload missing \"file\" field: %w", err)
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read uploaded file: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read request body: %w", err)
	}
	return data, nil
}

// wantsJSON checks whether the caller asked for a JSON response.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
