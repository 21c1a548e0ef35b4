package orders

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/marrowlabs/triptych/internal/triple"
)

// DomainEventDigest prefixes the event digest hash. The version suffix
// enables future algorithm migration.
const DomainEventDigest = "triptych/event/v1"

// EventDigest computes a content-addressed digest of an event: SHA-256
// with domain separation over the canonical props encoding of its
// fields. Equal events yield equal digests regardless of construction
// path, which the checker uses to diagnose duplicate-id appends.
func EventDigest(ev Event) (string, error) {
	fields := triple.Props{
		"id":      triple.String(ev.ID()),
		"type":    triple.String(ev.Type()),
		"version": triple.Int(ev.Version()),
		"at":      triple.TimeOf(ev.OccurredAt()),
	}

	switch e := ev.(type) {
	case Created:
		fields["order_id"] = triple.String(e.OrderID)
	case ItemAdded:
		fields["item_id"] = triple.String(e.ItemID)
		fields["name"] = triple.String(e.Name)
		// Price enters as a decimal string so the digest never depends
		// on float formatting quirks.
		fields["price"] = triple.String(strconv.FormatFloat(e.Price, 'f', -1, 64))
		fields["qty"] = triple.Int(e.Qty)
	case ItemRemoved:
		fields["item_id"] = triple.String(e.ItemID)
	case Shipped:
		fields["carrier"] = triple.String(e.Carrier)
		fields["tracking_ref"] = triple.String(e.TrackingRef)
	case Cancelled:
		fields["reason"] = triple.String(e.Reason)
	}

	canonical, err := fields.MarshalCanonical()
	if err != nil {
		return "", fmt.Errorf("event digest: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(DomainEventDigest))
	h.Write([]byte{0x00}) // null separator prevents domain/data ambiguity
	h.Write(canonical)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// MustEventDigest is like EventDigest but panics on error. Use only in
// tests or when inputs are known to be valid.
func MustEventDigest(ev Event) string {
	d, err := EventDigest(ev)
	if err != nil {
		panic(err)
	}
	return d
}
