// File: api/schemas/records.go
package schemas

// Health is the value a probe observed for a component. It is distinct from
// the component's declared status: the declared status is what the input
// claims, the health is what the probe saw.
type Health string

const (
	// HealthUnknown marks a component whose probe failed or timed out. The
	// traversal still emits a record for it so the report stays complete.
	HealthUnknown Health = "unknown"
)

// EnrichedRecord is one row of the traversal output: the component's
// declared attributes joined with the health the probe observed. Bare
// dependency nodes never produce a record.
type EnrichedRecord struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	ObservedHealth Health    `json:"observed_health"`
	CPUUsage       Telemetry `json:"cpu_usage"`
	MemoryUsage    Telemetry `json:"memory_usage"`
	DiskUsage      Telemetry `json:"disk_usage"`

	// Diagnostic holds the probe failure note when ObservedHealth degraded
	// to HealthUnknown. Empty on a clean probe.
	Diagnostic string `json:"diagnostic,omitempty"`
}
