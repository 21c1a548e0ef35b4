package orders

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventDigest_EqualEventsEqualDigests(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	a := ItemAdded{EventMeta: Meta("evt-1", at), ItemID: "sku-1", Name: "widget", Price: 10.50, Qty: 2}
	b := ItemAdded{EventMeta: Meta("evt-1", at), ItemID: "sku-1", Name: "widget", Price: 10.50, Qty: 2}

	da, err := EventDigest(a)
	require.NoError(t, err)
	db, err := EventDigest(b)
	require.NoError(t, err)

	assert.Equal(t, da, db)
	assert.Len(t, da, 64) // hex-encoded SHA-256
}

func TestEventDigest_SensitiveToEveryField(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	base := ItemAdded{EventMeta: Meta("evt-1", at), ItemID: "sku-1", Name: "widget", Price: 10.50, Qty: 2}
	baseDigest := MustEventDigest(base)

	variants := map[string]Event{
		"id":      ItemAdded{EventMeta: Meta("evt-2", at), ItemID: "sku-1", Name: "widget", Price: 10.50, Qty: 2},
		"time":    ItemAdded{EventMeta: Meta("evt-1", at.Add(time.Second)), ItemID: "sku-1", Name: "widget", Price: 10.50, Qty: 2},
		"item_id": ItemAdded{EventMeta: Meta("evt-1", at), ItemID: "sku-2", Name: "widget", Price: 10.50, Qty: 2},
		"price":   ItemAdded{EventMeta: Meta("evt-1", at), ItemID: "sku-1", Name: "widget", Price: 10.51, Qty: 2},
		"qty":     ItemAdded{EventMeta: Meta("evt-1", at), ItemID: "sku-1", Name: "widget", Price: 10.50, Qty: 3},
	}

	for name, ev := range variants {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, baseDigest, MustEventDigest(ev))
		})
	}
}

func TestEventDigest_VersionChangesDigest(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ev := Created{EventMeta: Meta("evt-1", at), OrderID: "ord-1"}

	unversioned := MustEventDigest(ev)
	versioned := MustEventDigest(ev.withVersion(4))

	assert.NotEqual(t, unversioned, versioned)
}

func TestEventDigest_DistinguishesVariantsWithSharedMeta(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	removed := MustEventDigest(ItemRemoved{EventMeta: Meta("evt-1", at), ItemID: "sku-1"})
	shipped := MustEventDigest(Shipped{EventMeta: Meta("evt-1", at), Carrier: "ups", TrackingRef: "1Z"})
	cancelled := MustEventDigest(Cancelled{EventMeta: Meta("evt-1", at), Reason: "oos"})

	assert.NotEqual(t, removed, shipped)
	assert.NotEqual(t, shipped, cancelled)
	assert.NotEqual(t, removed, cancelled)
}

func TestEventDigest_StableAcrossRuns(t *testing.T) {
	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	ev := Shipped{EventMeta: Meta("evt-1", at), Carrier: "dhl", TrackingRef: "JD0001"}

	first := MustEventDigest(ev)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, MustEventDigest(ev))
	}
}

func TestNewEventID_TimeSortableUUID(t *testing.T) {
	id := NewEventID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())

	assert.NotEqual(t, id, NewEventID())
}
