package triple

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces canonical JSON for a props map: keys sorted
// by UTF-16 code units (RFC 8785), strings NFC-normalized, no HTML
// escaping. This is the only serialization used for golden traces and
// content-addressed digests; the output for equal props is byte-identical
// regardless of map iteration order.
func (p Props) MarshalCanonical() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range p.SortedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')

		valBytes, err := marshalCanonicalValue(p[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCanonicalValue encodes a single prop value. Exhaustive over the
// sealed variant set.
func marshalCanonicalValue(v Value) ([]byte, error) {
	switch val := v.(type) {
	case String:
		return marshalCanonicalString(string(val))
	case Int:
		return strconv.AppendInt(nil, int64(val), 10), nil
	case Bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case Float:
		// Shortest round-trip form; deterministic for a given float64.
		return strconv.AppendFloat(nil, float64(val), 'g', -1, 64), nil
	case Time:
		return marshalCanonicalString(time.Time(val).UTC().Format(time.RFC3339Nano))
	case Strings:
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, s := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			b, err := marshalCanonicalString(s)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			buf.Write(b)
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	case nil:
		return nil, fmt.Errorf("nil value is forbidden in props")
	default:
		return nil, fmt.Errorf("unsupported props value type: %T", v)
	}
}

// marshalCanonicalString produces a canonical JSON string: NFC normalized,
// no HTML escaping, and U+2028/U+2029 left literal per RFC 8785.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false) // <, > and & must NOT be escaped
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}

	// Go's encoder escapes U+2028/U+2029 for JavaScript embedding; RFC 8785
	// requires them literal. A backslash in the source string is itself
	// escaped to \\, so \u202x sequences preceded by an even number of
	// backslashes are real escapes to undo.
	return unescapeU2028U2029(result), nil
}

// unescapeU2028U2029 converts \u2028 and \u2029 escape sequences back to
// literal characters, preserving \\u2028 (escaped backslash + text).
func unescapeU2028U2029(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	backslashes := 0
	for i := 0; i < len(data); {
		if data[i] == '\\' && i+5 < len(data) && backslashes%2 == 0 &&
			data[i+1] == 'u' && data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
			(data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 6
			backslashes = 0
			continue
		}
		if data[i] == '\\' {
			backslashes++
		} else {
			backslashes = 0
		}
		out = append(out, data[i])
		i++
	}
	return out
}
