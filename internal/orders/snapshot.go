package orders

import (
	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/triple"
)

// Snapshot is the structural operator that bookmarks the current version
// in props. V and S pass through unchanged; this is pure metadata.
type Snapshot struct {
	op.StructuralTag
	now Clock
}

// NewSnapshot builds a Snapshot operator.
func NewSnapshot(opts ...Option) Snapshot {
	cfg := newConfig(opts)
	return Snapshot{now: cfg.now}
}

// Apply records the snapshot bookmark props.
func (s Snapshot) Apply(t Aggregate) Aggregate {
	props := t.Props().Clone()
	props[PropSnapshotVersion] = triple.Int(t.State().CurrentVersion)
	props[PropSnapshotTime] = triple.TimeOf(s.now())
	props[PropHasSnapshot] = triple.Bool(true)

	return triple.New(t.Value(), props, t.State())
}
