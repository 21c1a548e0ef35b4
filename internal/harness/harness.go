package harness

import (
	"fmt"
	"time"

	"github.com/marrowlabs/triptych/internal/orders"
	"github.com/marrowlabs/triptych/internal/triple"
)

// clockBase is the fixed epoch every runner starts from. Scenario
// timestamps count seconds from here.
var clockBase = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Runner executes scenarios with a deterministic clock and sequential
// event ids. A Runner is single-use per scenario; both counters start
// fresh from NewRunner.
type Runner struct {
	now    orders.Clock
	nextID func() string
}

// NewRunner builds a runner with a fixed-base one-second clock and ids
// evt-001, evt-002, ...
func NewRunner() *Runner {
	var ticks int64
	var ids int
	return &Runner{
		now: func() time.Time {
			ticks++
			return clockBase.Add(time.Duration(ticks) * time.Second)
		},
		nextID: func() string {
			ids++
			return fmt.Sprintf("evt-%03d", ids)
		},
	}
}

// TraceEntry records the triple after one step.
type TraceEntry struct {
	Step       int
	Op         string
	Version    int64
	EventCount int
	Props      triple.Props
}

// Result is a completed scenario execution. Failures holds assertion
// messages; an execution error (bad step, bad event) aborts Run instead.
type Result struct {
	Scenario *Scenario
	Final    orders.Aggregate
	Trace    []TraceEntry
	Failures []string
}

// Pass reports whether every assertion held.
func (r *Result) Pass() bool { return len(r.Failures) == 0 }

// Run applies the scenario's steps to a fresh aggregate, recording a
// trace entry after each, then evaluates the assertions against the
// final triple.
func (r *Runner) Run(s *Scenario) (*Result, error) {
	x := orders.NewAggregate()

	trace := make([]TraceEntry, 0, len(s.Steps))
	for i, step := range s.Steps {
		next, err := r.applyStep(x, step)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
		x = next

		trace = append(trace, TraceEntry{
			Step:       i + 1,
			Op:         step.Op,
			Version:    x.State().CurrentVersion,
			EventCount: len(x.State().Events),
			Props:      x.Props().Clone(),
		})
	}

	return &Result{
		Scenario: s,
		Final:    x,
		Trace:    trace,
		Failures: evaluateAssertions(s, x),
	}, nil
}

func (r *Runner) applyStep(x orders.Aggregate, step Step) (orders.Aggregate, error) {
	switch step.Op {
	case OpAppend:
		ev, err := r.buildEvent(step.Event)
		if err != nil {
			return x, err
		}
		a, err := orders.NewAppend(ev)
		if err != nil {
			return x, err
		}
		return a.Apply(x), nil
	case OpReplay:
		return orders.NewReplay(orders.WithClock(r.now)).Apply(x), nil
	case OpSnapshot:
		return orders.NewSnapshot(orders.WithClock(r.now)).Apply(x), nil
	case OpNormalize:
		return orders.NewNormalize(orders.WithClock(r.now)).Apply(x), nil
	case OpCommit:
		c, err := orders.NewCommit(step.Keep, orders.WithClock(r.now))
		if err != nil {
			return x, err
		}
		return c.Apply(x), nil
	case OpValidate:
		return orders.NewValidate().Apply(x), nil
	default:
		return x, fmt.Errorf("unknown op %q", step.Op)
	}
}

// buildEvent materializes an EventSpec. The event timestamp consumes one
// clock tick; the id comes from the event spec or the sequential
// generator.
func (r *Runner) buildEvent(spec *EventSpec) (orders.Event, error) {
	id := spec.ID
	if id == "" {
		id = r.nextID()
	}
	meta := orders.Meta(id, r.now())

	switch spec.Type {
	case "order.created":
		return orders.Created{EventMeta: meta, OrderID: spec.OrderID}, nil
	case "order.item_added":
		return orders.ItemAdded{
			EventMeta: meta,
			ItemID:    spec.ItemID,
			Name:      spec.Name,
			Price:     spec.Price,
			Qty:       spec.Qty,
		}, nil
	case "order.item_removed":
		return orders.ItemRemoved{EventMeta: meta, ItemID: spec.ItemID}, nil
	case "order.shipped":
		return orders.Shipped{
			EventMeta:   meta,
			Carrier:     spec.Carrier,
			TrackingRef: spec.TrackingRef,
		}, nil
	case "order.cancelled":
		return orders.Cancelled{EventMeta: meta, Reason: spec.Reason}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", spec.Type)
	}
}

// evaluateAssertions checks every assertion against the final triple and
// returns one message per failure.
func evaluateAssertions(s *Scenario, final orders.Aggregate) []string {
	var failures []string
	for i, a := range s.Assertions {
		if msg := evaluateAssertion(&a, final); msg != "" {
			failures = append(failures, fmt.Sprintf("assertions[%d] %s: %s", i, a.Type, msg))
		}
	}
	return failures
}

func evaluateAssertion(a *Assertion, final orders.Aggregate) string {
	switch a.Type {
	case AssertPropEquals:
		v, ok := final.Props()[a.Key]
		if !ok {
			return fmt.Sprintf("property %q absent", a.Key)
		}
		got := propToAny(v)
		if !looseEqual(a.Value, got) {
			return fmt.Sprintf("property %q = %v, want %v", a.Key, got, a.Value)
		}
	case AssertLogLength:
		if got := len(final.State().Events); got != a.Count {
			return fmt.Sprintf("log holds %d events, want %d", got, a.Count)
		}
	case AssertTotal:
		want, ok := toFloat(a.Value)
		if !ok {
			return fmt.Sprintf("value %v is not numeric", a.Value)
		}
		if got := final.Value().Total; got != want {
			return fmt.Sprintf("total = %v, want %v", got, want)
		}
	case AssertStatus:
		want, ok := a.Value.(string)
		if !ok {
			return fmt.Sprintf("value %v is not a string", a.Value)
		}
		if got := final.Value().Status.String(); got != want {
			return fmt.Sprintf("status = %q, want %q", got, want)
		}
	case AssertValidationResult:
		got, ok := final.Props().String(orders.PropValidationResult)
		if !ok {
			return "validationResult property absent"
		}
		if got != a.Result {
			return fmt.Sprintf("validationResult = %q, want %q", got, a.Result)
		}
	}
	return ""
}

// propToAny unwraps a props value for loose comparison with YAML data.
func propToAny(v triple.Value) any {
	switch x := v.(type) {
	case triple.String:
		return string(x)
	case triple.Int:
		return int64(x)
	case triple.Bool:
		return bool(x)
	case triple.Float:
		return float64(x)
	case triple.Time:
		return x.Std()
	case triple.Strings:
		return []string(x)
	default:
		return nil
	}
}

// looseEqual compares a YAML-decoded expectation against an unwrapped
// props value. Numbers compare across int/float; times parse RFC 3339.
func looseEqual(want, got any) bool {
	if wf, ok := toFloat(want); ok {
		gf, ok2 := toFloat(got)
		return ok2 && wf == gf
	}

	switch g := got.(type) {
	case string:
		w, ok := want.(string)
		return ok && w == g
	case bool:
		w, ok := want.(bool)
		return ok && w == g
	case time.Time:
		w, ok := want.(string)
		if !ok {
			return false
		}
		t, err := time.Parse(time.RFC3339Nano, w)
		return err == nil && t.Equal(g)
	case []string:
		ws, ok := want.([]any)
		if !ok || len(ws) != len(g) {
			return false
		}
		for i := range g {
			s, ok := ws[i].(string)
			if !ok || s != g[i] {
				return false
			}
		}
		return true
	}
	return false
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
