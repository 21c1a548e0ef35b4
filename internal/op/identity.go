package op

import "github.com/marrowlabs/triptych/internal/triple"

// Identity is the stateless no-op transformation. It satisfies both
// family markers and is the two-sided neutral element for composition:
// Compose(Identity, f) and Compose(f, Identity) equal f under structural
// equality of results.
//
// The returned triple shares V and S with the input but carries a
// freshly cloned, content-identical props map, so identity still obeys
// the "every application reconstructs the triple" rule.
type Identity[V, S any] struct{}

// Apply returns a structurally equal copy of t.
func (Identity[V, S]) Apply(t triple.Triple[V, S]) triple.Triple[V, S] {
	return triple.New(t.Value(), t.Props().Clone(), t.State())
}

// Structural implements the capability marker.
func (Identity[V, S]) Structural() {}

// Normalizing implements the capability marker.
func (Identity[V, S]) Normalizing() {}
