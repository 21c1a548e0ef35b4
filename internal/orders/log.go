package orders

import (
	"github.com/marrowlabs/triptych/internal/triple"
)

// EventLog is the state component of the order triple: an ordered,
// versioned, append-biased history. Operators replace the whole value
// inside a fresh triple; the Events slice is never edited in place.
type EventLog struct {
	Events         []Event
	CurrentVersion int64
	Replaying      bool
}

// Last returns the final event, if any.
func (l EventLog) Last() (Event, bool) {
	if len(l.Events) == 0 {
		return nil, false
	}
	return l.Events[len(l.Events)-1], true
}

// Aggregate is the triple transformed by this instantiation.
type Aggregate = triple.Triple[Projection, EventLog]

// NewAggregate returns the empty starting triple: zero projection, empty
// props, empty log.
func NewAggregate() Aggregate {
	return triple.New(Projection{}, triple.NewProps(), EventLog{})
}
