package orders

import (
	"cmp"
	"slices"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/triple"
)

// Normalize is the normalizing operator that cleans the log: events are
// deduplicated by id (first occurrence wins), re-sorted by version
// ascending, the version counter is reset to the surviving event count,
// and the replaying flag is cleared.
//
// Note the counter reset: Normalize re-bases CurrentVersion on the
// deduplicated length, which is how a duplicate-id append is eventually
// reconciled with the version sequence.
type Normalize struct {
	op.NormalizingTag
	now Clock
}

// NewNormalize builds a Normalize operator.
func NewNormalize(opts ...Option) Normalize {
	cfg := newConfig(opts)
	return Normalize{now: cfg.now}
}

// Apply returns a new triple with the normalized log.
func (n Normalize) Apply(t Aggregate) Aggregate {
	log := t.State()

	seen := make(map[string]bool, len(log.Events))
	deduped := make([]Event, 0, len(log.Events))
	for _, ev := range log.Events {
		if seen[ev.ID()] {
			continue
		}
		seen[ev.ID()] = true
		deduped = append(deduped, ev)
	}
	removed := len(log.Events) - len(deduped)

	slices.SortStableFunc(deduped, func(a, b Event) int {
		return cmp.Compare(a.Version(), b.Version())
	})

	next := EventLog{
		Events:         deduped,
		CurrentVersion: int64(len(deduped)),
		Replaying:      false,
	}

	props := t.Props().Clone()
	props[PropNormalized] = triple.Bool(true)
	props[PropNormalizationTime] = triple.TimeOf(n.now())
	props[PropEventCount] = triple.Int(int64(len(deduped)))
	props[PropRemovedDuplicates] = triple.Int(int64(removed))

	return triple.New(t.Value(), props, next)
}
