// internal/visualize/visualize_test.go
package visualize

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/depscope/depscope-cli/api/schemas"
	"github.com/depscope/depscope-cli/internal/depgraph"
)

func testGraph(t *testing.T) *depgraph.Graph {
	t.Helper()
	desc := &schemas.SystemDescription{
		System: &schemas.System{
			Subsystems: []schemas.Subsystem{{
				Components: []schemas.Component{
					{ID: "web", Type: "service", Status: "ok", Dependencies: []string{"api"}},
					{ID: "api", Type: "service", Status: "ok", Dependencies: []string{"ghost-db"}},
				},
			}},
		},
	}
	return depgraph.Build(desc, zap.NewNop())
}

func TestDOTRender(t *testing.T) {
	dot, err := NewDOT(zap.NewNop()).Render(testGraph(t))
	require.NoError(t, err)

	out := string(dot)
	assert.True(t, strings.HasPrefix(out, "digraph system {"))
	assert.Contains(t, out, `"web" -> "api";`)
	assert.Contains(t, out, `"api" -> "ghost-db";`)
	// Bare dependency targets are drawn dashed.
	assert.Contains(t, out, `"ghost-db" [style="rounded,dashed"];`)
}

func TestDOTRenderDeterministic(t *testing.T) {
	r := NewDOT(zap.NewNop())
	first, err := r.Render(testGraph(t))
	require.NoError(t, err)
	second, err := r.Render(testGraph(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDOTRenderNilGraph(t *testing.T) {
	_, err := NewDOT(zap.NewNop()).Render(nil)
	require.Error(t, err)
}

func TestFileStoreLatestBeforeAnyPut(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "graph.dot", zap.NewNop())
	require.NoError(t, err)

	_, _, err = store.Latest()
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestFileStorePutOverwritesLatest(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, "graph.dot", zap.NewNop())
	require.NoError(t, err)

	first, err := store.Put([]byte("digraph a {}"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "graph.dot"), first)

	second, err := store.Put([]byte("digraph b {}"))
	require.NoError(t, err)
	assert.Equal(t, first, second, "the artifact path is stable across overwrites")

	path, data, err := store.Latest()
	require.NoError(t, err)
	assert.Equal(t, first, path)
	assert.Equal(t, "digraph b {}", string(data))
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "artifacts")
	store, err := NewFileStore(dir, "", zap.NewNop())
	require.NoError(t, err)

	path, err := store.Put([]byte("digraph {}"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultArtifactName), path)
}
