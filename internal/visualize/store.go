// File: internal/visualize/store.go
// Description: Keeps the most recently rendered graph artifact on disk.
// Each successful traversal overwrites the previous artifact; absence is a
// distinct condition from a read failure.
package visualize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
)

// ErrNoArtifact reports that no graph has been rendered yet.
var ErrNoArtifact = errors.New("no graph artifact has been generated yet")

// DefaultArtifactName is the on-disk filename of the latest artifact.
const DefaultArtifactName = "graph.dot"

// FileStore is an overwrite-latest artifact store backed by a directory.
type FileStore struct {
	mu   sync.Mutex
	dir  string
	name string
	log  *zap.Logger
}

var _ schemas.ArtifactStore = (*FileStore)(nil)

// NewFileStore creates the store, creating dir if needed.
func NewFileStore(dir, name string, logger *zap.Logger) (*FileStore, error) {
	if dir == "" {
		dir = "."
	}
	if name == "" {
		name = DefaultArtifactName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact store: create dir %s: %w", dir, err)
	}
	return &FileStore{
		dir:  dir,
		name: name,
		log:  logger.Named("artifacts"),
	}, nil
}

// Put atomically replaces the stored artifact: the bytes land in a temp
// file first and a rename swaps them in, so Latest never sees a torn write.
func (s *FileStore) Put(data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, s.name+".tmp-*")
	if err != nil {
		return "", fmt.Errorf("artifact store: create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("artifact store: write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("artifact store: close temp file: %w", err)
	}

	final := filepath.Join(s.dir, s.name)
	if err := os.Rename(tmpPath, final); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("artifact store: replace artifact: %w", err)
	}

	s.log.Debug("Artifact replaced", zap.String("path", final), zap.Int("bytes", len(data)))
	return final, nil
}

// Latest returns the stored artifact. ErrNoArtifact means nothing has been
// stored yet; any other error is a genuine read failure.
func (s *FileStore) Latest() (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.dir, s.name)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil, ErrNoArtifact
	}
	if err != nil {
		return "", nil, fmt.Errorf("artifact store: read artifact: %w", err)
	}
	return path, data, nil
}
