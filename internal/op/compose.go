package op

import "github.com/marrowlabs/triptych/internal/triple"

// Compose returns the cross-family composition f ∘ g: g is applied
// first, f second. The result carries no family marker because a chain
// mixing families belongs to neither.
//
// Composition is not commutative - Compose(f, g) and Compose(g, f) may
// produce different triples, and the event-log instantiation exhibits at
// least one such pair (append vs. normalize over a duplicate-id log).
//
// Grouping is interchangeable (Compose(Compose(f,g),h) equals
// Compose(f,Compose(g,h)) on every input) only when each operator's
// output state depends solely on the state of the triple passed to it.
// Operators keyed off transient, order-sensitive fields void that
// guarantee.
func Compose[V, S any](f, g Operator[V, S]) Operator[V, S] {
	return composed[V, S]{f: f, g: g}
}

// ComposeStructural composes two structural operators; the family is
// closed under composition.
func ComposeStructural[V, S any](f, g Structural[V, S]) Structural[V, S] {
	return structuralComposed[V, S]{composed[V, S]{f: f, g: g}}
}

// ComposeNormalizing composes two normalizing operators; the family is
// closed under composition.
func ComposeNormalizing[V, S any](f, g Normalizing[V, S]) Normalizing[V, S] {
	return normalizingComposed[V, S]{composed[V, S]{f: f, g: g}}
}

type composed[V, S any] struct {
	f Operator[V, S]
	g Operator[V, S]
}

func (c composed[V, S]) Apply(t triple.Triple[V, S]) triple.Triple[V, S] {
	return c.f.Apply(c.g.Apply(t))
}

type structuralComposed[V, S any] struct {
	composed[V, S]
}

func (structuralComposed[V, S]) Structural() {}

type normalizingComposed[V, S any] struct {
	composed[V, S]
}

func (normalizingComposed[V, S]) Normalizing() {}
