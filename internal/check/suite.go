package check

import (
	"fmt"
	"math/rand"
	"reflect"
	"strings"
	"time"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/orders"
	"github.com/marrowlabs/triptych/internal/triple"
)

// Property names, stable across runs so history queries can group them.
const (
	PropClosure          = "closure"
	PropStability        = "structural_stability"
	PropIdentity         = "identity_laws"
	PropNoncommutativity = "noncommutativity_witness"
	PropRoundTrip        = "append_replay_round_trip"
	PropIdempotence      = "normalize_idempotence"
	PropCompaction       = "compaction_correctness"
	PropDuplicateAppend  = "duplicate_id_append"
	PropAssociativity    = "associativity_under_independence"
)

// Suite runs every property against the orders instantiation. Randomized
// properties draw from a seeded source so a failing run is reproducible
// from its seed alone.
type Suite struct {
	seed   int64
	trials int
	rec    Recorder
}

// Option configures a Suite.
type Option func(*Suite)

// WithTrials sets the sample count for randomized properties. Values
// below 100 are raised to 100; the associativity property is specified
// over at least that many samples.
func WithTrials(n int) Option {
	return func(s *Suite) {
		if n < 100 {
			n = 100
		}
		s.trials = n
	}
}

// NewSuite builds a Suite recording to rec with the given seed.
func NewSuite(rec Recorder, seed int64, opts ...Option) *Suite {
	s := &Suite{seed: seed, trials: 100, rec: rec}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Run executes every property in declaration order and reports whether
// all passed. Individual outcomes go to the recorder as they complete.
func (s *Suite) Run() bool {
	all := true
	for _, c := range []struct {
		name string
		fn   func() (bool, string)
	}{
		{PropClosure, s.closure},
		{PropStability, s.structuralStability},
		{PropIdentity, s.identityLaws},
		{PropNoncommutativity, s.noncommutativityWitness},
		{PropRoundTrip, s.appendReplayRoundTrip},
		{PropIdempotence, s.normalizeIdempotence},
		{PropCompaction, s.compactionCorrectness},
		{PropDuplicateAppend, s.duplicateIDAppend},
		{PropAssociativity, s.associativityUnderIndependence},
	} {
		passed, details := guard(c.fn)
		s.rec.Record(Result{Name: c.name, Passed: passed, Details: details})
		all = all && passed
	}
	return all
}

// guard converts a panicking property into a local failure.
func guard(fn func() (bool, string)) (passed bool, details string) {
	defer func() {
		if r := recover(); r != nil {
			passed = false
			details = fmt.Sprintf("panic: %v", r)
		}
	}()
	return fn()
}

// fixedClock returns a clock ticking one second per call from a fixed
// base, so wall-clock props never depend on the host.
func fixedClock() orders.Clock {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var n int64
	return func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Second)
	}
}

// sampleOperators returns one operator per family member, all on the
// same deterministic clock.
func sampleOperators(clock orders.Clock) []op.Operator[orders.Projection, orders.EventLog] {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return []op.Operator[orders.Projection, orders.EventLog]{
		orders.MustAppend(orders.ItemAdded{
			EventMeta: orders.Meta("closure-item", at),
			ItemID:    "sku-1", Name: "widget", Price: 5, Qty: 1,
		}),
		orders.NewReplay(orders.WithClock(clock)),
		orders.NewSnapshot(orders.WithClock(clock)),
		orders.NewNormalize(orders.WithClock(clock)),
		orders.MustCommit(10, orders.WithClock(clock)),
		orders.NewValidate(),
		op.Identity[orders.Projection, orders.EventLog]{},
	}
}

// closure: every operator applied to every fixture yields a triple with
// non-nil props.
func (s *Suite) closure() (bool, string) {
	clock := fixedClock()
	fixtures := []orders.Aggregate{
		orders.NewAggregate(),
		s.populatedAggregate(3),
		s.duplicateIDAggregate(),
	}

	for fi, x := range fixtures {
		for oi, o := range sampleOperators(clock) {
			out := o.Apply(x)
			if out.Props() == nil {
				return false, fmt.Sprintf("fixture %d, operator %d: nil props", fi, oi)
			}
		}
	}
	return true, ""
}

// structuralStability: randomized operator chains still yield non-nil
// props at every step.
func (s *Suite) structuralStability() (bool, string) {
	rng := rand.New(rand.NewSource(s.seed))
	clock := fixedClock()
	ops := sampleOperators(clock)

	for trial := 0; trial < s.trials; trial++ {
		chain := s.randomAggregate(rng)
		for step := 0; step < 1+rng.Intn(4); step++ {
			chain = ops[rng.Intn(len(ops))].Apply(chain)
			if chain.Props() == nil {
				return false, fmt.Sprintf("trial %d, step %d: nil props (seed %d)", trial, step, s.seed)
			}
		}
	}
	return true, ""
}

// identityLaws: identity is a two-sided neutral element under structural
// equality and under composition with a sample operator.
func (s *Suite) identityLaws() (bool, string) {
	id := op.Identity[orders.Projection, orders.EventLog]{}
	x := s.populatedAggregate(4)

	if !triple.Equal(id.Apply(x), x) {
		return false, "identity(x) != x"
	}

	f := orders.NewValidate()
	left := op.Compose[orders.Projection, orders.EventLog](id, f).Apply(x)
	right := op.Compose[orders.Projection, orders.EventLog](f, id).Apply(x)
	direct := f.Apply(x)

	if !triple.Equal(left, direct) {
		return false, "compose(identity, f)(x) != f(x)"
	}
	if !triple.Equal(right, direct) {
		return false, "compose(f, identity)(x) != f(x)"
	}
	return true, ""
}

// noncommutativityWitness: append and normalize disagree on a log that
// holds a duplicate-id event, in either application order.
func (s *Suite) noncommutativityWitness() (bool, string) {
	x := s.duplicateIDAggregate()
	clock := fixedClock()

	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := orders.MustAppend(orders.ItemAdded{
		EventMeta: orders.Meta("witness-item", at),
		ItemID:    "sku-9", Name: "gadget", Price: 3, Qty: 1,
	})
	r := orders.NewNormalize(orders.WithClock(clock))

	lr := op.Compose[orders.Projection, orders.EventLog](l, r).Apply(x)
	rl := op.Compose[orders.Projection, orders.EventLog](r, l).Apply(x)

	if triple.Equal(lr, rl) {
		return false, "compose(L,R)(x) == compose(R,L)(x) for the duplicate-id witness"
	}
	return true, ""
}

// appendReplayRoundTrip: a replayed projection matches the one built
// incrementally by the appends.
func (s *Suite) appendReplayRoundTrip() (bool, string) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	x := orders.NewAggregate()
	x = orders.MustAppend(orders.Created{
		EventMeta: orders.Meta("evt-created", at),
		OrderID:   "O1",
	}).Apply(x)
	x = orders.MustAppend(orders.ItemAdded{
		EventMeta: orders.Meta("evt-item", at.Add(time.Second)),
		ItemID:    "sku-1", Name: "widget", Price: 10.50, Qty: 2,
	}).Apply(x)

	replayed := orders.NewReplay(orders.WithClock(fixedClock())).Apply(x)

	if !reflect.DeepEqual(replayed.Value(), x.Value()) {
		return false, fmt.Sprintf("replayed projection %+v != incremental %+v", replayed.Value(), x.Value())
	}
	if got := replayed.Value().Total; got != 21.00 {
		return false, fmt.Sprintf("replayed total %v, want 21.00", got)
	}
	if got := len(replayed.Value().Items); got != 1 {
		return false, fmt.Sprintf("replayed item count %d, want 1", got)
	}
	return true, ""
}

// normalizeIdempotence: a second normalize changes neither the value nor
// the log. Props are excluded; they carry per-application diagnostics
// such as removedDuplicates.
func (s *Suite) normalizeIdempotence() (bool, string) {
	rng := rand.New(rand.NewSource(s.seed))
	clock := fixedClock()
	n := orders.NewNormalize(orders.WithClock(clock))

	for trial := 0; trial < s.trials; trial++ {
		x := s.randomAggregate(rng)
		once := n.Apply(x)
		twice := n.Apply(once)

		if !reflect.DeepEqual(once.State(), twice.State()) {
			return false, fmt.Sprintf("trial %d: log differs after second normalize (seed %d)", trial, s.seed)
		}
		if !reflect.DeepEqual(once.Value(), twice.Value()) {
			return false, fmt.Sprintf("trial %d: projection differs after second normalize (seed %d)", trial, s.seed)
		}
	}
	return true, ""
}

// compactionCorrectness: 15 events committed with keepRecent=10 leave the
// 10 highest versions ascending and report clearedEvents=5.
func (s *Suite) compactionCorrectness() (bool, string) {
	x := s.populatedAggregate(15)
	x = orders.MustCommit(10, orders.WithClock(fixedClock())).Apply(x)

	log := x.State()
	if len(log.Events) != 10 {
		return false, fmt.Sprintf("kept %d events, want 10", len(log.Events))
	}
	for i, ev := range log.Events {
		if want := int64(6 + i); ev.Version() != want {
			return false, fmt.Sprintf("position %d holds version %d, want %d", i, ev.Version(), want)
		}
	}
	if log.CurrentVersion != 15 {
		return false, fmt.Sprintf("current version %d, want 15", log.CurrentVersion)
	}
	cleared, ok := x.Props().Int(orders.PropClearedEvents)
	if !ok || cleared != 5 {
		return false, fmt.Sprintf("clearedEvents %d (present %v), want 5", cleared, ok)
	}
	return true, ""
}

// duplicateIDAppend: a reused id is accepted on append under sequential
// versions, Validate passes contiguity, and Normalize collapses the log
// to one distinct event.
func (s *Suite) duplicateIDAppend() (bool, string) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	first := orders.ItemAdded{
		EventMeta: orders.Meta("dup-id", at),
		ItemID:    "sku-1", Name: "widget", Price: 2, Qty: 1,
	}
	second := orders.ItemAdded{
		EventMeta: orders.Meta("dup-id", at.Add(time.Second)),
		ItemID:    "sku-2", Name: "gizmo", Price: 4, Qty: 1,
	}

	x := orders.MustAppend(second).Apply(orders.MustAppend(first).Apply(orders.NewAggregate()))

	log := x.State()
	if len(log.Events) != 2 || log.Events[0].Version() != 1 || log.Events[1].Version() != 2 {
		return false, fmt.Sprintf("dirty write produced %d events", len(log.Events))
	}

	validated := orders.NewValidate().Apply(x)
	if res, _ := validated.Props().String(orders.PropValidationResult); res != orders.ValidationPass {
		return false, fmt.Sprintf("validation result %q, want PASS on sequential versions", res)
	}

	normalized := orders.NewNormalize(orders.WithClock(fixedClock())).Apply(x)
	if got := len(normalized.State().Events); got != 1 {
		return false, fmt.Sprintf("normalize kept %d events, want 1", got)
	}

	var digests []string
	for _, ev := range log.Events {
		digests = append(digests, orders.MustEventDigest(ev)[:12])
	}
	return true, fmt.Sprintf("entry digests %s collapse to one event by id", strings.Join(digests, ", "))
}

// associativityUnderIndependence: three appends, whose state transitions
// read only the incoming state, group interchangeably over randomized
// starting aggregates.
func (s *Suite) associativityUnderIndependence() (bool, string) {
	rng := rand.New(rand.NewSource(s.seed))
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	f := orders.MustAppend(orders.ItemAdded{
		EventMeta: orders.Meta("assoc-f", at),
		ItemID:    "sku-f", Name: "f", Price: 1, Qty: 1,
	})
	g := orders.MustAppend(orders.ItemAdded{
		EventMeta: orders.Meta("assoc-g", at.Add(time.Second)),
		ItemID:    "sku-g", Name: "g", Price: 2, Qty: 1,
	})
	h := orders.MustAppend(orders.ItemAdded{
		EventMeta: orders.Meta("assoc-h", at.Add(2*time.Second)),
		ItemID:    "sku-h", Name: "h", Price: 3, Qty: 1,
	})

	left := op.ComposeStructural[orders.Projection, orders.EventLog](
		op.ComposeStructural[orders.Projection, orders.EventLog](f, g), h)
	right := op.ComposeStructural[orders.Projection, orders.EventLog](
		f, op.ComposeStructural[orders.Projection, orders.EventLog](g, h))

	for trial := 0; trial < s.trials; trial++ {
		x := s.randomAggregate(rng)
		if !triple.Equal(left.Apply(x), right.Apply(x)) {
			return false, fmt.Sprintf("trial %d: groupings diverge (seed %d)", trial, s.seed)
		}
	}
	return true, ""
}

// populatedAggregate builds an aggregate with a Created event followed by
// n-1 item events, versions 1..n.
func (s *Suite) populatedAggregate(n int) orders.Aggregate {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	x := orders.MustAppend(orders.Created{
		EventMeta: orders.Meta("fixture-created", at),
		OrderID:   "O1",
	}).Apply(orders.NewAggregate())

	for i := 1; i < n; i++ {
		x = orders.MustAppend(orders.ItemAdded{
			EventMeta: orders.Meta(fmt.Sprintf("fixture-%03d", i), at.Add(time.Duration(i)*time.Second)),
			ItemID:    fmt.Sprintf("sku-%d", i),
			Name:      fmt.Sprintf("item %d", i),
			Price:     float64(i),
			Qty:       1,
		}).Apply(x)
	}
	return x
}

// duplicateIDAggregate builds a three-event log whose last two entries
// share an id.
func (s *Suite) duplicateIDAggregate() orders.Aggregate {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	x := orders.MustAppend(orders.Created{
		EventMeta: orders.Meta("dup-created", at),
		OrderID:   "O1",
	}).Apply(orders.NewAggregate())

	x = orders.MustAppend(orders.ItemAdded{
		EventMeta: orders.Meta("dup-shared", at.Add(time.Second)),
		ItemID:    "sku-1", Name: "widget", Price: 2, Qty: 1,
	}).Apply(x)

	return orders.MustAppend(orders.ItemAdded{
		EventMeta: orders.Meta("dup-shared", at.Add(2*time.Second)),
		ItemID:    "sku-2", Name: "gizmo", Price: 4, Qty: 1,
	}).Apply(x)
}

// randomAggregate builds an aggregate with 0..7 item appends drawn from
// the suite's seeded source. Prices stay on exact binary fractions so
// totals compare exactly.
func (s *Suite) randomAggregate(rng *rand.Rand) orders.Aggregate {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	x := orders.MustAppend(orders.Created{
		EventMeta: orders.Meta(fmt.Sprintf("rand-created-%d", rng.Int63()), at),
		OrderID:   fmt.Sprintf("O%d", rng.Intn(1000)),
	}).Apply(orders.NewAggregate())

	prices := []float64{0.25, 0.5, 1, 2.5, 4, 8.75}
	for i, n := 0, rng.Intn(8); i < n; i++ {
		x = orders.MustAppend(orders.ItemAdded{
			EventMeta: orders.Meta(fmt.Sprintf("rand-%d-%d", i, rng.Int63()), at.Add(time.Duration(i+1)*time.Second)),
			ItemID:    fmt.Sprintf("sku-%d", rng.Intn(20)),
			Name:      fmt.Sprintf("item %d", i),
			Price:     prices[rng.Intn(len(prices))],
			Qty:       int64(1 + rng.Intn(3)),
		}).Apply(x)
	}
	return x
}
