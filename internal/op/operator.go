package op

import "github.com/marrowlabs/triptych/internal/triple"

// Operator is the shared contract of both families: a pure, total
// transformation over triples. Guarantees for well-formed input:
//   - closure: the output is a well-formed Triple of the same V/S types
//   - structural stability: the output props map is never nil
//   - the input triple is never mutated in place
//
// Apply must not fail at runtime for well-formed input; operators with
// parameters validate them at construction time instead.
type Operator[V, S any] interface {
	Apply(t triple.Triple[V, S]) triple.Triple[V, S]
}

// Structural marks the append/mutate family: transformations that change
// the object's structure or value. Mutation of V, props, or S is
// permitted, never mandatory.
type Structural[V, S any] interface {
	Operator[V, S]

	// Structural is a no-op capability marker declaring family membership.
	Structural()
}

// Normalizing marks the clean-up/commit family: deduplication, sorting,
// consistency repair, retention, metadata commit. Nothing structural
// distinguishes it from the other family beyond intent.
type Normalizing[V, S any] interface {
	Operator[V, S]

	// Normalizing is a no-op capability marker declaring family membership.
	Normalizing()
}

// StructuralTag provides the Structural marker by embedding.
type StructuralTag struct{}

// Structural implements the Structural capability marker.
func (StructuralTag) Structural() {}

// NormalizingTag provides the Normalizing marker by embedding.
type NormalizingTag struct{}

// Normalizing implements the Normalizing capability marker.
func (NormalizingTag) Normalizing() {}

// StructuralFunc adapts a function to the structural family.
type StructuralFunc[V, S any] func(triple.Triple[V, S]) triple.Triple[V, S]

// Apply invokes the function.
func (f StructuralFunc[V, S]) Apply(t triple.Triple[V, S]) triple.Triple[V, S] {
	return f(t)
}

// Structural implements the capability marker.
func (StructuralFunc[V, S]) Structural() {}

// NormalizingFunc adapts a function to the normalizing family.
type NormalizingFunc[V, S any] func(triple.Triple[V, S]) triple.Triple[V, S]

// Apply invokes the function.
func (f NormalizingFunc[V, S]) Apply(t triple.Triple[V, S]) triple.Triple[V, S] {
	return f(t)
}

// Normalizing implements the capability marker.
func (NormalizingFunc[V, S]) Normalizing() {}
