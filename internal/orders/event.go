package orders

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies an event variant on the wire and in props.
type EventType string

// Event type labels, recorded under the lastEventType prop.
const (
	TypeCreated     EventType = "order.created"
	TypeItemAdded   EventType = "order.item_added"
	TypeItemRemoved EventType = "order.item_removed"
	TypeShipped     EventType = "order.shipped"
	TypeCancelled   EventType = "order.cancelled"
)

// Event is the closed sum of order history entries. Only the five
// variants in this file implement it; the unexported withVersion method
// seals the set, so folds can switch exhaustively with no "unknown
// event" fallback.
type Event interface {
	// ID returns the unique event id. Uniqueness is by convention, not
	// enforced on append - see the package comment.
	ID() string

	// Version returns the log sequence number, assigned on append.
	Version() int64

	// OccurredAt returns the event timestamp.
	OccurredAt() time.Time

	// Type returns the variant label.
	Type() EventType

	// withVersion returns a copy of the event with the version set.
	// Events are value types; the original is never modified.
	withVersion(v int64) Event
}

// EventMeta carries the fields common to every variant. Embedded by each
// event struct.
type EventMeta struct {
	EventID string
	Seq     int64
	At      time.Time
}

// Meta builds an EventMeta with a zero version; Append assigns the
// version when the event enters the log.
func Meta(id string, at time.Time) EventMeta {
	return EventMeta{EventID: id, At: at.UTC()}
}

// ID returns the unique event id.
func (m EventMeta) ID() string { return m.EventID }

// Version returns the assigned log version (0 before append).
func (m EventMeta) Version() int64 { return m.Seq }

// OccurredAt returns the event timestamp.
func (m EventMeta) OccurredAt() time.Time { return m.At }

// NewEventID returns a time-sortable UUIDv7 event id.
func NewEventID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Created starts an order's history and resets the projection.
type Created struct {
	EventMeta
	OrderID string
}

// Type returns the variant label.
func (Created) Type() EventType { return TypeCreated }

func (e Created) withVersion(v int64) Event { e.Seq = v; return e }

// ItemAdded appends a line item.
type ItemAdded struct {
	EventMeta
	ItemID string
	Name   string
	Price  float64
	Qty    int64
}

// Type returns the variant label.
func (ItemAdded) Type() EventType { return TypeItemAdded }

func (e ItemAdded) withVersion(v int64) Event { e.Seq = v; return e }

// ItemRemoved drops a line item by id.
type ItemRemoved struct {
	EventMeta
	ItemID string
}

// Type returns the variant label.
func (ItemRemoved) Type() EventType { return TypeItemRemoved }

func (e ItemRemoved) withVersion(v int64) Event { e.Seq = v; return e }

// Shipped transitions the order to the shipped status.
type Shipped struct {
	EventMeta
	Carrier     string
	TrackingRef string
}

// Type returns the variant label.
func (Shipped) Type() EventType { return TypeShipped }

func (e Shipped) withVersion(v int64) Event { e.Seq = v; return e }

// Cancelled transitions the order to the cancelled status.
type Cancelled struct {
	EventMeta
	Reason string
}

// Type returns the variant label.
func (Cancelled) Type() EventType { return TypeCancelled }

func (e Cancelled) withVersion(v int64) Event { e.Seq = v; return e }
