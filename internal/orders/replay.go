package orders

import (
	"slices"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/triple"
)

// Replay is the structural operator that rebuilds the projection from
// scratch by folding every logged event in stored order. The log's
// events and version are untouched; the returned log is flagged as
// replaying until the next Normalize.
type Replay struct {
	op.StructuralTag
	now Clock
}

// NewReplay builds a Replay operator.
func NewReplay(opts ...Option) Replay {
	cfg := newConfig(opts)
	return Replay{now: cfg.now}
}

// Apply refolds the projection and records the replay props.
func (r Replay) Apply(t Aggregate) Aggregate {
	log := t.State()

	proj := foldProjection(log.Events)
	next := EventLog{
		Events:         slices.Clone(log.Events),
		CurrentVersion: log.CurrentVersion,
		Replaying:      true,
	}

	props := t.Props().Clone()
	props[PropReplayed] = triple.Bool(true)
	props[PropReplayTime] = triple.TimeOf(r.now())
	props[PropReplayedEventCount] = triple.Int(int64(len(log.Events)))

	return triple.New(proj, props, next)
}
