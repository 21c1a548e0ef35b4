package triple

import "time"

// Value is a sealed interface over the variant types a props map may hold.
// Only String, Int, Bool, Float, Time, and Strings implement it. Keeping
// the set closed lets equality and canonical serialization be exhaustive
// type switches with no fallback branch.
type Value interface {
	propValue() // Sealed - only these types implement it
}

// String is a string-valued prop.
type String string

func (String) propValue() {}

// Int is an integer-valued prop. Always int64.
type Int int64

func (Int) propValue() {}

// Bool is a boolean-valued prop.
type Bool bool

func (Bool) propValue() {}

// Float is a float-valued prop. Permitted at the props boundary even
// though canonical serialization of floats is shortest-round-trip only;
// keys that feed content-addressed digests should prefer Int.
type Float float64

func (Float) propValue() {}

// Time is a timestamp-valued prop. Serialized as RFC 3339 with
// nanoseconds in UTC; compared with time.Time.Equal, not ==.
type Time time.Time

func (Time) propValue() {}

// TimeOf wraps a time.Time as a prop value, normalized to UTC.
func TimeOf(t time.Time) Time {
	return Time(t.UTC())
}

// Std returns the wrapped time.Time.
func (t Time) Std() time.Time {
	return time.Time(t)
}

// Strings is a list-of-strings prop, used for diagnostic lists such as
// validation error messages.
type Strings []string

func (Strings) propValue() {}

// valueEqual compares two prop values structurally.
func valueEqual(a, b Value) bool {
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Int:
		bv, ok := b.(Int)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Float:
		bv, ok := b.(Float)
		return ok && av == bv
	case Time:
		bv, ok := b.(Time)
		return ok && time.Time(av).Equal(time.Time(bv))
	case Strings:
		bv, ok := b.(Strings)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}
