// internal/ingest/ingest_test.go
package ingest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/depscope/depscope-cli/api/schemas"
)

const validPayload = `{
  "system": {
    "name": "shop",
    "subsystems": [
      {
        "name": "frontend",
        "components": [
          {"id": "web", "type": "service", "status": "healthy",
           "dependencies": ["api"], "cpu_usage": "42%", "memory_usage": 512}
        ]
      },
      {
        "name": "backend",
        "components": [
          {"id": "api", "type": "service", "status": "degraded", "dependencies": []}
        ]
      }
    ]
  }
}`

func TestDecodeValidPayload(t *testing.T) {
	desc, err := Decode([]byte(validPayload))
	require.NoError(t, err)
	require.NotNil(t, desc.System)
	require.Len(t, desc.System.Subsystems, 2)

	web := desc.System.Subsystems[0].Components[0]
	assert.Equal(t, "web", web.ID)
	assert.Equal(t, []string{"api"}, web.Dependencies)
	assert.True(t, web.CPUUsage.Set)
	assert.Equal(t, "42%", web.CPUUsage.Value)
	assert.True(t, web.MemoryUsage.Set)
	assert.Equal(t, "512", web.MemoryUsage.Value)
	assert.False(t, web.DiskUsage.Set, "absent telemetry stays unset")
}

func TestDecodeMalformedInputs(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantField string
	}{
		{
			name:      "missing system key",
			payload:   `{"network": {}}`,
			wantField: "system",
		},
		{
			name:      "missing subsystems",
			payload:   `{"system": {"name": "x"}}`,
			wantField: "system.subsystems",
		},
		{
			name:      "subsystem without components",
			payload:   `{"system": {"subsystems": [{"name": "a"}]}}`,
			wantField: "system.subsystems[0].components",
		},
		{
			name:      "component without id",
			payload:   `{"system": {"subsystems": [{"components": [{"type": "service"}]}]}}`,
			wantField: "system.subsystems[0].components[0].id",
		},
		{
			name:      "component without status",
			payload:   `{"system": {"subsystems": [{"components": [{"id": "a", "dependencies": []}]}]}}`,
			wantField: "system.subsystems[0].components[0].status",
		},
		{
			name:      "component without dependencies",
			payload:   `{"system": {"subsystems": [{"components": [{"id": "a", "status": "up"}]}]}}`,
			wantField: "system.subsystems[0].components[0].dependencies",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.payload))
			require.Error(t, err)

			var malformed *schemas.MalformedInputError
			require.True(t, errors.As(err, &malformed), "want MalformedInputError, got %T", err)
			assert.Equal(t, tc.wantField, malformed.Field)
		})
	}
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, err := Decode([]byte(`{"system": `))
	require.Error(t, err)
	assert.True(t, schemas.IsMalformedInput(err))
}

func TestDecodeEmptyPayload(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)
	assert.True(t, schemas.IsMalformedInput(err))
}

func TestDecodeEmptySubsystemsIsLegal(t *testing.T) {
	desc, err := Decode([]byte(`{"system": {"subsystems": []}}`))
	require.NoError(t, err)
	assert.Empty(t, desc.System.Subsystems)
}

func TestDecodeTelemetryRejectsWrongType(t *testing.T) {
	payload := `{"system": {"subsystems": [{"components": [
	  {"id": "a", "type": "t", "status": "s", "dependencies": [], "cpu_usage": {"oops": true}}
	]}]}}`

	_, err := Decode([]byte(payload))
	require.Error(t, err)
	assert.True(t, schemas.IsMalformedInput(err))
}
