package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGolden_OrderLifecycle(t *testing.T) {
	s := loadTestScenario(t, "order-lifecycle")

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass(), "failures: %v", result.Failures)
}

func TestGolden_DuplicateCleanup(t *testing.T) {
	s := loadTestScenario(t, "duplicate-cleanup")

	result, err := RunWithGolden(t, s)
	require.NoError(t, err)
	assert.True(t, result.Pass(), "failures: %v", result.Failures)
}

func TestTraceJSON_Canonical(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: tiny
description: "single append"
steps:
  - op: append
    event:
      type: order.created
      order_id: O1
assertions:
  - type: log_length
    count: 1
`))
	require.NoError(t, err)

	result, err := NewRunner().Run(s)
	require.NoError(t, err)

	got, err := TraceJSON(result)
	require.NoError(t, err)

	want := `{"scenario_name":"tiny","trace":[` +
		`{"event_count":1,"op":"append","props":` +
		`{"eventCount":1,"lastEventTime":"2024-01-01T00:00:01Z","lastEventType":"order.created","version":1}` +
		`,"step":1,"version":1}]}`
	assert.Equal(t, want, string(got))
}
