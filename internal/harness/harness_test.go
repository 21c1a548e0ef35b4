package harness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marrowlabs/triptych/internal/orders"
)

func loadTestScenario(t *testing.T, name string) *Scenario {
	t.Helper()
	s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
	require.NoError(t, err)
	return s
}

func TestRunner_OrderLifecycle(t *testing.T) {
	s := loadTestScenario(t, "order-lifecycle")

	result, err := NewRunner().Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass(), "failures: %v", result.Failures)
	assert.Len(t, result.Trace, 3)

	final := result.Final
	assert.Equal(t, "O1", final.Value().OrderID)
	assert.Equal(t, orders.StatusCreated, final.Value().Status)
	assert.Equal(t, 21.00, final.Value().Total)
	assert.Equal(t, int64(2), final.State().CurrentVersion)
}

func TestRunner_DuplicateCleanup(t *testing.T) {
	s := loadTestScenario(t, "duplicate-cleanup")

	result, err := NewRunner().Run(s)
	require.NoError(t, err)

	assert.True(t, result.Pass(), "failures: %v", result.Failures)

	// The dirty write held three entries; normalize collapsed the
	// shared id down to two.
	assert.Equal(t, 3, result.Trace[2].EventCount)
	assert.Equal(t, 2, result.Trace[3].EventCount)
	assert.Equal(t, int64(2), result.Final.State().CurrentVersion)
}

func TestRunner_DeterministicIDsAndTimestamps(t *testing.T) {
	s := loadTestScenario(t, "order-lifecycle")

	result, err := NewRunner().Run(s)
	require.NoError(t, err)

	events := result.Final.State().Events
	require.Len(t, events, 2)

	assert.Equal(t, "evt-001", events[0].ID())
	assert.Equal(t, "evt-002", events[1].ID())
	assert.Equal(t, clockBase.Add(time.Second), events[0].OccurredAt())
	assert.Equal(t, clockBase.Add(2*time.Second), events[1].OccurredAt())
}

func TestRunner_SameScenarioSameTrace(t *testing.T) {
	s := loadTestScenario(t, "duplicate-cleanup")

	r1, err := NewRunner().Run(s)
	require.NoError(t, err)
	r2, err := NewRunner().Run(s)
	require.NoError(t, err)

	j1, err := TraceJSON(r1)
	require.NoError(t, err)
	j2, err := TraceJSON(r2)
	require.NoError(t, err)

	assert.Equal(t, string(j1), string(j2))
}

func TestRunner_FailedAssertionsCollected(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: failing
description: "assertions that cannot hold"
steps:
  - op: append
    event:
      type: order.created
      order_id: O9
assertions:
  - type: log_length
    count: 5
  - type: status
    value: shipped
  - type: prop_equals
    key: nonexistent
    value: 1
`))
	require.NoError(t, err)

	result, err := NewRunner().Run(s)
	require.NoError(t, err)

	assert.False(t, result.Pass())
	require.Len(t, result.Failures, 3)
	assert.Contains(t, result.Failures[0], "log holds 1 events, want 5")
	assert.Contains(t, result.Failures[1], `status = "created", want "shipped"`)
	assert.Contains(t, result.Failures[2], `property "nonexistent" absent`)
}

func TestRunner_CommitThenValidateReportsFail(t *testing.T) {
	// The version counter survives compaction, so the contiguity check
	// fails against the compacted log.
	s, err := ParseScenario([]byte(`
name: compaction-validate
description: "post-compaction validation reports FAIL"
steps:
  - op: append
    event:
      type: order.created
      order_id: O3
  - op: append
    event:
      type: order.item_added
      item_id: sku-1
      name: widget
      price: 1
      qty: 1
  - op: append
    event:
      type: order.item_added
      item_id: sku-2
      name: gizmo
      price: 2
      qty: 1
  - op: commit
    keep: 2
  - op: validate
assertions:
  - type: validation_result
    result: FAIL
  - type: log_length
    count: 2
`))
	require.NoError(t, err)

	result, err := NewRunner().Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass(), "failures: %v", result.Failures)
}

func TestLooseEqual(t *testing.T) {
	tests := []struct {
		name string
		want any
		got  any
		eq   bool
	}{
		{"int vs int64", 2, int64(2), true},
		{"float vs int64", 2.0, int64(2), true},
		{"float mismatch", 2.5, int64(2), false},
		{"string match", "a", "a", true},
		{"string mismatch", "a", "b", false},
		{"bool match", true, true, true},
		{"time string", "2024-01-01T00:00:01Z", clockBase.Add(time.Second), true},
		{"string list", []any{"x", "y"}, []string{"x", "y"}, true},
		{"string list mismatch", []any{"x"}, []string{"x", "y"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eq, looseEqual(tt.want, tt.got))
		})
	}
}
