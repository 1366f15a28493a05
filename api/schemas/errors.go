// File: api/schemas/errors.go
// Description: Error taxonomy shared by the ingest, graph, and traversal
// layers. Callers branch on these with errors.As / errors.Is.
package schemas

import (
	"errors"
	"fmt"
)

// MalformedInputError reports a payload that does not match the expected
// nested system/subsystems/components shape. It is raised before any graph
// is built or any probe is invoked, never partway through.
type MalformedInputError struct {
	// Field names the missing or invalid key, e.g. "system" or
	// "subsystems[2].components[0].id".
	Field  string
	Reason string
}

func (e *MalformedInputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("malformed input: %s", e.Reason)
	}
	return fmt.Sprintf("malformed input: field %q: %s", e.Field, e.Reason)
}

// IsMalformedInput reports whether err is (or wraps) a MalformedInputError.
func IsMalformedInput(err error) bool {
	var target *MalformedInputError
	return errors.As(err, &target)
}

// ProbeError reports a single failed health probe. It is local to one
// component: the traversal records the failure as a diagnostic and keeps
// going.
type ProbeError struct {
	ComponentID string
	Err         error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("health probe for component %q failed: %v", e.ComponentID, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// ErrPartialResult signals that a traversal was cancelled mid-flight. The
// accompanying result is valid but covers fewer components than the graph
// holds; components whose probes were cancelled are omitted outright rather
// than reported with a guessed status.
var ErrPartialResult = errors.New("traversal interrupted: partial result")
