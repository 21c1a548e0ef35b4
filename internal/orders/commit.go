package orders

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/triple"
)

// Commit is the normalizing operator for bounded retention: it keeps only
// the N highest-version events (re-sorted ascending) and discards the
// rest.
//
// CurrentVersion deliberately survives compaction unchanged - future
// appends continue from the old counter, so a compacted log can start at
// a version greater than 1. Validate's contiguity check assumes an
// uncompacted log and will report the resulting offset as a failure;
// that tension is inherited behavior, kept on purpose.
type Commit struct {
	op.NormalizingTag
	keep int
	now  Clock
}

// NewCommit builds a Commit retaining the keepRecent highest-version
// events. keepRecent must be at least 1; the bound is validated here,
// never clamped.
func NewCommit(keepRecent int, opts ...Option) (Commit, error) {
	if keepRecent < 1 {
		return Commit{}, fmt.Errorf("commit: keepRecent must be >= 1, got %d", keepRecent)
	}
	cfg := newConfig(opts)
	return Commit{keep: keepRecent, now: cfg.now}, nil
}

// MustCommit is like NewCommit but panics on error. Use only in tests or
// when inputs are known to be valid.
func MustCommit(keepRecent int, opts ...Option) Commit {
	c, err := NewCommit(keepRecent, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Apply returns a new triple with the compacted log.
func (c Commit) Apply(t Aggregate) Aggregate {
	log := t.State()

	byVersionDesc := slices.Clone(log.Events)
	slices.SortStableFunc(byVersionDesc, func(a, b Event) int {
		return cmp.Compare(b.Version(), a.Version())
	})

	n := c.keep
	if n > len(byVersionDesc) {
		n = len(byVersionDesc)
	}
	kept := byVersionDesc[:n]
	slices.SortStableFunc(kept, func(a, b Event) int {
		return cmp.Compare(a.Version(), b.Version())
	})

	next := EventLog{
		Events:         kept,
		CurrentVersion: log.CurrentVersion, // counter survives compaction
		Replaying:      log.Replaying,
	}

	props := t.Props().Clone()
	props[PropCommitted] = triple.Bool(true)
	props[PropCommitVersion] = triple.Int(log.CurrentVersion)
	props[PropCommitTime] = triple.TimeOf(c.now())
	props[PropKeptEvents] = triple.Int(int64(len(kept)))
	props[PropClearedEvents] = triple.Int(int64(len(log.Events) - len(kept)))

	return triple.New(t.Value(), props, next)
}
