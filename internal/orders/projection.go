package orders

import "slices"

// Status is the order lifecycle state derived from the event fold.
type Status int

// Lifecycle states. StatusNone is the zero projection before any
// Created event has been folded.
const (
	StatusNone Status = iota
	StatusCreated
	StatusShipped
	StatusCancelled
)

// String returns the status label.
func (s Status) String() string {
	switch s {
	case StatusCreated:
		return "created"
	case StatusShipped:
		return "shipped"
	case StatusCancelled:
		return "cancelled"
	default:
		return "none"
	}
}

// LineItem is one order line in the projection.
type LineItem struct {
	ItemID string
	Name   string
	Price  float64
	Qty    int64
}

// Projection is the value component of the order triple: aggregate state
// derived solely by folding events in version order.
type Projection struct {
	OrderID string
	Status  Status
	Items   []LineItem
	Total   float64
}

// applyEvent folds one event into the projection, returning a new value.
// The switch is exhaustive over the sealed Event sum.
func applyEvent(p Projection, ev Event) Projection {
	switch e := ev.(type) {
	case Created:
		return Projection{OrderID: e.OrderID, Status: StatusCreated}
	case ItemAdded:
		items := append(slices.Clone(p.Items), LineItem{
			ItemID: e.ItemID,
			Name:   e.Name,
			Price:  e.Price,
			Qty:    e.Qty,
		})
		p.Items = items
		p.Total += e.Price * float64(e.Qty)
		return p
	case ItemRemoved:
		items := make([]LineItem, 0, len(p.Items))
		for _, it := range p.Items {
			if it.ItemID != e.ItemID {
				items = append(items, it)
			}
		}
		p.Items = items
		p.Total = recomputeTotal(items)
		return p
	case Shipped:
		p.Status = StatusShipped
		return p
	case Cancelled:
		p.Status = StatusCancelled
		return p
	default:
		// Unreachable: Event is sealed.
		return p
	}
}

// foldProjection rebuilds the projection from scratch by folding every
// event in stored order.
func foldProjection(events []Event) Projection {
	var p Projection
	for _, ev := range events {
		p = applyEvent(p, ev)
	}
	return p
}

// recomputeTotal sums price times quantity over the remaining items.
func recomputeTotal(items []LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Qty)
	}
	return total
}
