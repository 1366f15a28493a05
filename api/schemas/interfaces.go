// File: api/schemas/interfaces.go
// Description: Seams between the traversal core and its collaborators.
// The core depends only on these contracts, never on concrete transports,
// renderers, or storage.
package schemas

import "context"

// HealthProbe observes the health of a single component. Implementations
// may be slow (a real monitoring endpoint) and must honor the context: a
// cancelled or expired context ends the check promptly.
//
// Probes for unrelated components run concurrently; implementations must be
// safe for concurrent use.
type HealthProbe interface {
	Check(ctx context.Context, componentID, declaredStatus string) (Health, error)
}

// HealthProbeFunc adapts a plain function to the HealthProbe interface.
type HealthProbeFunc func(ctx context.Context, componentID, declaredStatus string) (Health, error)

func (f HealthProbeFunc) Check(ctx context.Context, componentID, declaredStatus string) (Health, error) {
	return f(ctx, componentID, declaredStatus)
}

// ArtifactStore persists the most recent graph visualization. Put replaces
// whatever was stored before; Latest must distinguish "nothing stored yet"
// from a read failure.
type ArtifactStore interface {
	Put(data []byte) (path string, err error)
	Latest() (path string, data []byte, err error)
}
