// File: api/schemas/system.go
// Description: Canonical data model for the hierarchical system description
// that callers upload, and the telemetry fields attached to components.
package schemas

import (
	stdjson "encoding/json"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// SystemDescription is the root of the uploaded payload: a system that
// contains an ordered list of subsystems.
type SystemDescription struct {
	System *System `json:"system"`
}

// System groups subsystems. The order of subsystems is meaningful: it
// determines the first-seen insertion order of every component downstream.
type System struct {
	Name       string      `json:"name,omitempty"`
	Subsystems []Subsystem `json:"subsystems"`
}

// Subsystem holds an ordered list of components.
type Subsystem struct {
	Name       string      `json:"name,omitempty"`
	Components []Component `json:"components"`
}

// Component is the atomic unit of the inspected system. Dependencies may
// name ids that never appear as components themselves; those become bare
// nodes in the dependency graph.
type Component struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	Dependencies []string  `json:"dependencies"`
	CPUUsage     Telemetry `json:"cpu_usage,omitempty"`
	MemoryUsage  Telemetry `json:"memory_usage,omitempty"`
	DiskUsage    Telemetry `json:"disk_usage,omitempty"`
}

// Telemetry is an optional measurement on a component. Absence is not an
// error; it renders as "N/A" rather than a zero value. Input payloads carry
// these fields as either JSON numbers or strings, so both decode.
type Telemetry struct {
	Set   bool
	Value string
}

// NewTelemetry returns a present telemetry value.
func NewTelemetry(value string) Telemetry {
	return Telemetry{Set: true, Value: value}
}

// NotAvailable is the render marker for an absent telemetry field.
const NotAvailable = "N/A"

func (t Telemetry) String() string {
	if !t.Set {
		return NotAvailable
	}
	return t.Value
}

// UnmarshalJSON accepts strings, numbers, or null. Anything else is a type
// error surfaced to the decoder.
func (t *Telemetry) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		t.Set = false
		t.Value = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		t.Set = true
		t.Value = s
		return nil
	}

	var n stdjson.Number
	if err := json.Unmarshal(data, &n); err == nil {
		t.Set = true
		t.Value = n.String()
		return nil
	}

	return fmt.Errorf("telemetry value must be a string or number, got %s", strconv.Quote(string(data)))
}

// MarshalJSON round-trips an absent value as null.
func (t Telemetry) MarshalJSON() ([]byte, error) {
	if !t.Set {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}
