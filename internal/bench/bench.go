// Package bench measures operator throughput over prebuilt aggregates.
// Workloads mirror the testing.B benchmarks so CLI numbers and go test
// numbers describe the same work.
package bench

import (
	"fmt"
	"time"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/orders"
)

// Workload pairs an operator with the aggregate it runs against.
type Workload struct {
	Name  string
	Setup func() orders.Aggregate
	Op    op.Operator[orders.Projection, orders.EventLog]
}

// Report is one measured workload.
type Report struct {
	Name       string
	Iterations int
	Elapsed    time.Duration
	OpsPerSec  float64
}

// logSize is the event count of the benchmark aggregate. Large enough
// that fold and sort costs dominate fixture noise.
const logSize = 100

// Workloads returns the standard operator workloads, each over a
// 100-event aggregate.
func Workloads() []Workload {
	clock := benchClock()
	return []Workload{
		{
			Name:  "append",
			Setup: func() orders.Aggregate { return buildAggregate(logSize, false) },
			Op: orders.MustAppend(orders.ItemAdded{
				EventMeta: orders.Meta("bench-append", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
				ItemID:    "sku-bench", Name: "bench", Price: 1, Qty: 1,
			}),
		},
		{
			Name:  "replay",
			Setup: func() orders.Aggregate { return buildAggregate(logSize, false) },
			Op:    orders.NewReplay(orders.WithClock(clock)),
		},
		{
			Name:  "normalize",
			Setup: func() orders.Aggregate { return buildAggregate(logSize, true) },
			Op:    orders.NewNormalize(orders.WithClock(clock)),
		},
		{
			Name:  "commit",
			Setup: func() orders.Aggregate { return buildAggregate(logSize, false) },
			Op:    orders.MustCommit(logSize/2, orders.WithClock(clock)),
		},
		{
			Name:  "validate",
			Setup: func() orders.Aggregate { return buildAggregate(logSize, false) },
			Op:    orders.NewValidate(),
		},
	}
}

// Measure applies the workload's operator iterations times against one
// prebuilt aggregate and reports throughput.
func Measure(w Workload, iterations int) Report {
	x := w.Setup()

	start := time.Now()
	for i := 0; i < iterations; i++ {
		_ = w.Op.Apply(x)
	}
	elapsed := time.Since(start)

	ops := float64(iterations)
	if secs := elapsed.Seconds(); secs > 0 {
		ops = float64(iterations) / secs
	}
	return Report{
		Name:       w.Name,
		Iterations: iterations,
		Elapsed:    elapsed,
		OpsPerSec:  ops,
	}
}

// RunAll measures every standard workload.
func RunAll(iterations int) []Report {
	workloads := Workloads()
	reports := make([]Report, 0, len(workloads))
	for _, w := range workloads {
		reports = append(reports, Measure(w, iterations))
	}
	return reports
}

// buildAggregate appends n item events; when dup is set every tenth
// event reuses the previous id so normalize has work to do.
func buildAggregate(n int, dup bool) orders.Aggregate {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	x := orders.MustAppend(orders.Created{
		EventMeta: orders.Meta("bench-created", at),
		OrderID:   "bench",
	}).Apply(orders.NewAggregate())

	for i := 1; i < n; i++ {
		id := fmt.Sprintf("bench-%04d", i)
		if dup && i%10 == 0 {
			id = fmt.Sprintf("bench-%04d", i-1)
		}
		x = orders.MustAppend(orders.ItemAdded{
			EventMeta: orders.Meta(id, at.Add(time.Duration(i)*time.Second)),
			ItemID:    fmt.Sprintf("sku-%d", i%7),
			Name:      "bench item",
			Price:     0.5,
			Qty:       1,
		}).Apply(x)
	}
	return x
}

// benchClock is deterministic so workload props never allocate
// differently between runs.
func benchClock() orders.Clock {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var n int64
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}
