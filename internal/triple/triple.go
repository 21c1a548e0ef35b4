package triple

import "reflect"

// Triple is the immutable (value, props, state) record transformed by
// operators. V is the primary payload, S the replaceable internal state;
// both are opaque to this package. Operators return a fresh Triple per
// application: the props map is always reallocated, V and S may be
// referentially identical to the input's when unchanged.
type Triple[V, S any] struct {
	value V
	props Props
	state S
}

// New builds a Triple. A nil props map is normalized to an empty one so
// the structural-completeness invariant (props never nil) holds from
// construction onward.
func New[V, S any](value V, props Props, state S) Triple[V, S] {
	if props == nil {
		props = NewProps()
	}
	return Triple[V, S]{value: value, props: props, state: state}
}

// Value returns the primary payload.
func (t Triple[V, S]) Value() V {
	return t.value
}

// Props returns the live props map. Callers must treat it as read-only;
// operators clone before modifying (see Props.Clone and Props.With).
func (t Triple[V, S]) Props() Props {
	return t.props
}

// State returns the internal state component.
func (t Triple[V, S]) State() S {
	return t.state
}

// Equal reports structural equality of two triples: equal values, equal
// props as key/value sets, and equal states. Never referential.
func Equal[V, S any](a, b Triple[V, S]) bool {
	if !a.props.Equal(b.props) {
		return false
	}
	if !reflect.DeepEqual(a.value, b.value) {
		return false
	}
	return reflect.DeepEqual(a.state, b.state)
}
