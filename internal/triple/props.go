package triple

import (
	"slices"
	"time"
	"unicode/utf16"
)

// Props is the string-keyed metadata side channel carried by every
// Triple. Keys follow a documented convention (version, eventCount,
// normalized, validationResult, ...) but are not statically enforced:
// consumers must treat absent keys and wrong dynamic types as expected
// failure modes, which is why every getter returns (value, ok).
//
// Insertion order is not significant. Props is never nil on a
// well-formed Triple.
type Props map[string]Value

// NewProps returns an empty, non-nil props map.
func NewProps() Props {
	return Props{}
}

// Clone returns a shallow copy. Value variants are immutable except
// Strings, which is copied as well so callers cannot alias the slice.
func (p Props) Clone() Props {
	out := make(Props, len(p))
	for k, v := range p {
		if s, ok := v.(Strings); ok {
			v = Strings(slices.Clone(s))
		}
		out[k] = v
	}
	return out
}

// With returns a clone of p with key set to v. The receiver is unchanged.
func (p Props) With(key string, v Value) Props {
	out := p.Clone()
	out[key] = v
	return out
}

// String returns the string value for key, if present with that type.
func (p Props) String(key string) (string, bool) {
	v, ok := p[key].(String)
	return string(v), ok
}

// Int returns the integer value for key, if present with that type.
func (p Props) Int(key string) (int64, bool) {
	v, ok := p[key].(Int)
	return int64(v), ok
}

// Bool returns the boolean value for key, if present with that type.
func (p Props) Bool(key string) (bool, bool) {
	v, ok := p[key].(Bool)
	return bool(v), ok
}

// Float returns the float value for key, if present with that type.
func (p Props) Float(key string) (float64, bool) {
	v, ok := p[key].(Float)
	return float64(v), ok
}

// Time returns the timestamp value for key, if present with that type.
func (p Props) Time(key string) (time.Time, bool) {
	v, ok := p[key].(Time)
	return time.Time(v), ok
}

// Strings returns the string-list value for key, if present with that type.
func (p Props) Strings(key string) ([]string, bool) {
	v, ok := p[key].(Strings)
	return []string(v), ok
}

// Equal reports structural equality: same key set, equal values.
func (p Props) Equal(other Props) bool {
	if len(p) != len(other) {
		return false
	}
	for k, v := range p {
		ov, ok := other[k]
		if !ok || !valueEqual(v, ov) {
			return false
		}
	}
	return true
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings uses UTF-8 byte order, which differs for strings
// containing supplementary-plane characters.
func (p Props) SortedKeys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareKeysRFC8785)
	return keys
}

// compareKeysRFC8785 compares strings by UTF-16 code units as required
// by RFC 8785 canonical JSON.
func compareKeysRFC8785(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	minLen := len(a16)
	if len(b16) < minLen {
		minLen = len(b16)
	}
	for i := 0; i < minLen; i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	if len(a16) < len(b16) {
		return -1
	}
	if len(a16) > len(b16) {
		return 1
	}
	return 0
}
