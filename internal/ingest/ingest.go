// File: internal/ingest/ingest.go
// Description: Decodes an uploaded payload into the canonical system
// description and validates its nested shape. All shape errors surface here,
// before any graph is built or probe invoked.
package ingest

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/depscope/depscope-cli/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Decode parses raw payload bytes into a SystemDescription. Any failure is
// a *schemas.MalformedInputError: invalid JSON, a missing required key at
// any level, or a component without an id.
func Decode(payload []byte) (*schemas.SystemDescription, error) {
	if len(payload) == 0 {
		return nil, &schemas.MalformedInputError{Reason: "empty payload"}
	}

	var desc schemas.SystemDescription
	if err := json.Unmarshal(payload, &desc); err != nil {
		return nil, &schemas.MalformedInputError{Reason: fmt.Sprintf("invalid JSON: %v", err)}
	}

	if err := validate(&desc); err != nil {
		return nil, err
	}
	return &desc, nil
}

// validate walks the decoded structure top-down and reports the first
// missing required key with its full field path.
func validate(desc *schemas.SystemDescription) error {
	if desc.System == nil {
		return &schemas.MalformedInputError{Field: "system", Reason: "missing required key"}
	}
	if desc.System.Subsystems == nil {
		return &schemas.MalformedInputError{Field: "system.subsystems", Reason: "missing required key"}
	}

	for i, sub := range desc.System.Subsystems {
		if sub.Components == nil {
			return &schemas.MalformedInputError{
				Field:  fmt.Sprintf("system.subsystems[%d].components", i),
				Reason: "missing required key",
			}
		}
		for j, comp := range sub.Components {
			if comp.ID == "" {
				return &schemas.MalformedInputError{
					Field:  fmt.Sprintf("system.subsystems[%d].components[%d].id", i, j),
					Reason: "missing or empty component id",
				}
			}
			if comp.Status == "" {
				return &schemas.MalformedInputError{
					Field:  fmt.Sprintf("system.subsystems[%d].components[%d].status", i, j),
					Reason: "missing or empty component status",
				}
			}
			if comp.Dependencies == nil {
				return &schemas.MalformedInputError{
					Field:  fmt.Sprintf("system.subsystems[%d].components[%d].dependencies", i, j),
					Reason: "missing required key",
				}
			}
		}
	}
	return nil
}
