package harness

import (
	"bytes"
	"fmt"
	"strconv"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceJSON serializes a result's trace canonically: fixed key order,
// props in their RFC 8785 encoding. Byte-stable across runs, so golden
// files diff cleanly.
func TraceJSON(r *Result) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"scenario_name":`)
	buf.WriteString(strconv.Quote(r.Scenario.Name))
	buf.WriteString(`,"trace":[`)

	for i, e := range r.Trace {
		if i > 0 {
			buf.WriteByte(',')
		}
		props, err := e.Props.MarshalCanonical()
		if err != nil {
			return nil, fmt.Errorf("trace entry %d: %w", e.Step, err)
		}
		buf.WriteString(`{"event_count":`)
		buf.WriteString(strconv.Itoa(e.EventCount))
		buf.WriteString(`,"op":`)
		buf.WriteString(strconv.Quote(e.Op))
		buf.WriteString(`,"props":`)
		buf.Write(props)
		buf.WriteString(`,"step":`)
		buf.WriteString(strconv.Itoa(e.Step))
		buf.WriteString(`,"version":`)
		buf.WriteString(strconv.FormatInt(e.Version, 10))
		buf.WriteByte('}')
	}

	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

// RunWithGolden executes a scenario and compares the trace against a
// golden file under testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails; trace mismatch fails the
// test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := NewRunner().Run(scenario)
	if err != nil {
		return nil, err
	}

	traceJSON, err := TraceJSON(result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return result, nil
}
