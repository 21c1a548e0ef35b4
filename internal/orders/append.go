package orders

import (
	"fmt"
	"slices"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/triple"
)

// Append is the structural operator that records one event: it folds the
// event into the projection, assigns the next version, appends to the
// log, and updates the bookkeeping props.
//
// Append performs no id-based deduplication. An event reusing an
// existing id is accepted and becomes a second log entry under a fresh
// version; only Normalize collapses it later.
type Append struct {
	op.StructuralTag
	event Event
}

// NewAppend builds an Append for the given event. The event must be
// non-nil and carry an id; both are rejected here so Apply stays total.
func NewAppend(event Event) (Append, error) {
	if event == nil {
		return Append{}, fmt.Errorf("append: event is required")
	}
	if event.ID() == "" {
		return Append{}, fmt.Errorf("append: event id is required")
	}
	return Append{event: event}, nil
}

// MustAppend is like NewAppend but panics on error. Use only in tests or
// when inputs are known to be valid.
func MustAppend(event Event) Append {
	a, err := NewAppend(event)
	if err != nil {
		panic(err)
	}
	return a
}

// Apply returns a new triple with the event applied and appended. The
// event value stored in the log is a copy with the version set; the
// constructor-supplied event is never modified.
func (a Append) Apply(t Aggregate) Aggregate {
	log := t.State()

	ev := a.event.withVersion(log.CurrentVersion + 1)
	proj := applyEvent(t.Value(), ev)

	events := append(slices.Clone(log.Events), ev)
	next := EventLog{
		Events:         events,
		CurrentVersion: log.CurrentVersion + 1,
		Replaying:      log.Replaying,
	}

	props := t.Props().Clone()
	props[PropVersion] = triple.Int(next.CurrentVersion)
	props[PropLastEventTime] = triple.TimeOf(ev.OccurredAt())
	props[PropEventCount] = triple.Int(int64(len(events)))
	props[PropLastEventType] = triple.String(ev.Type())

	return triple.New(proj, props, next)
}
