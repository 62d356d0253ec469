package pyson

import "bytes"

// Marshaler is the interface implemented by types that can represent
// themselves as a pyson Value.
type Marshaler interface {
	MarshalPYSON() (Value, error)
}

// Unmarshaler is the interface implemented by types that can populate
// themselves from a pyson Value.
type Unmarshaler interface {
	UnmarshalPYSON(Value) error
}

// Marshal returns the pyson document encoding of v.
//
// v may be a *Document, a map with string keys, or a flat struct; see
// Encoder.Encode for the conversion rules.
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	e := NewEncoder(&buf)
	if err := e.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal parses the pyson document in data and stores the result in the
// value pointed to by v, which must be a non-nil pointer.
//
// A pointer to Document receives the parsed document itself. A struct
// receives one field per entry, matched by the `pyson` struct tag or the
// field name, case-insensitively; "-" excludes a field, unknown names are
// skipped unless DisallowUnknownNames is set, and embedded structs flatten
// into their parent. A map with string keys receives one element per entry,
// and an empty interface receives a map[string]any holding int64, float64,
// string and []string values.
//
// Int entries fill integer and float fields, float entries fill float
// fields, str entries fill string fields and list entries fill string
// slices and arrays; anything else is a type mismatch error. A Value field
// stores the entry's value as-is. Types implementing Unmarshaler or
// encoding.TextUnmarshaler decode themselves.
func Unmarshal(data []byte, v any, opts ...Option) error {
	var o options
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return err
		}
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	return decodeDocument(doc, v, &o)
}
