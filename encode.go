package pyson

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"
)

// Encoder writes pyson documents to an output stream.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns a new encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the pyson encoding of v to the stream.
//
// A *Document encodes as-is after a name-uniqueness check. A map with
// string keys encodes one entry per key, in sorted key order. A struct
// encodes one entry per exported field, in declaration order; the `pyson`
// struct tag renames a field, "-" skips it, and the "omitempty" option
// drops fields holding their type's empty value. Embedded structs flatten
// into their parent's entries.
//
// Field and map values must classify as pyson values, so booleans, nested
// maps and nested structs fail with ErrUnsupportedValueType, as do nil
// pointers outside omitempty fields. Types implementing Marshaler or
// encoding.TextMarshaler choose their own representation.
func (e *Encoder) Encode(v any) error {
	doc, err := marshalDocument(v)
	if err != nil {
		return err
	}
	_, err = e.w.Write(doc.Encode())
	return err
}

// marshalDocument converts v into a Document ready for the wire.
func marshalDocument(v any) (*Document, error) {
	switch t := v.(type) {
	case *Document:
		if t == nil {
			return nil, fmt.Errorf("pyson: cannot marshal nil *Document")
		}
		if err := uniqueNames(t.Entries); err != nil {
			return nil, err
		}
		return t, nil
	case Document:
		if err := uniqueNames(t.Entries); err != nil {
			return nil, err
		}
		return &t, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("pyson: cannot marshal nil")
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil, fmt.Errorf("pyson: cannot marshal nil")
	}

	if rv.Type() == documentType {
		doc := rv.Interface().(Document)
		if err := uniqueNames(doc.Entries); err != nil {
			return nil, err
		}
		return &doc, nil
	}

	switch rv.Kind() {
	case reflect.Struct:
		return marshalStruct(rv)
	case reflect.Map:
		return marshalMap(rv)
	default:
		return nil, fmt.Errorf("pyson: cannot marshal %s into a document", rv.Type())
	}
}

func marshalStruct(rv reflect.Value) (*Document, error) {
	entries, err := structEntries(rv)
	if err != nil {
		return nil, err
	}
	if err := uniqueNames(entries); err != nil {
		return nil, err
	}
	return &Document{Entries: entries}, nil
}

// structEntries collects one entry per marshalable field, recursing into
// untagged embedded structs so their fields flatten into the document.
func structEntries(rv reflect.Value) ([]*NamedValue, error) {
	var entries []*NamedValue
	t := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}

		tagStr := sf.Tag.Get("pyson")
		if embeddedStructType(sf) != nil && tagStr == "" {
			fieldValue := rv.Field(i)
			if fieldValue.Kind() == reflect.Pointer {
				if fieldValue.IsNil() {
					continue
				}
				fieldValue = fieldValue.Elem()
			}
			sub, err := structEntries(fieldValue)
			if err != nil {
				return nil, err
			}
			entries = append(entries, sub...)
			continue
		}

		tagName, fieldOpts := parseTag(tagStr)
		if tagName == "-" {
			continue
		}

		fieldValue := rv.Field(i)
		if fieldOpts["omitempty"] && isEmptyValue(fieldValue) {
			continue
		}

		name := sf.Name
		if tagName != "" {
			name = tagName
		}

		val, err := marshalValueOf(fieldValue)
		if err != nil {
			return nil, err
		}
		nv, err := NewNamedValue(name, val)
		if err != nil {
			return nil, err
		}
		entries = append(entries, nv)
	}
	return entries, nil
}

func marshalMap(rv reflect.Value) (*Document, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("pyson: map key type must be a string, got %s", rv.Type().Key())
	}

	keys := rv.MapKeys()
	slices.SortFunc(keys, func(a, b reflect.Value) int {
		return strings.Compare(a.String(), b.String())
	})

	doc := &Document{Entries: make([]*NamedValue, 0, len(keys))}
	for _, key := range keys {
		val, err := marshalValueOf(rv.MapIndex(key))
		if err != nil {
			return nil, err
		}
		nv, err := NewNamedValue(key.String(), val)
		if err != nil {
			return nil, err
		}
		doc.Entries = append(doc.Entries, nv)
	}
	return doc, nil
}

// marshalValueOf converts a single Go value into a pyson Value, honoring
// custom marshalers.
func marshalValueOf(v reflect.Value) (Value, error) {
	if !v.IsValid() || (v.Kind() == reflect.Interface && v.IsNil()) {
		return Value{}, fmt.Errorf("%w: nil", ErrUnsupportedValueType)
	}

	// Check for custom marshaler implementations. We must check the value
	// itself and a pointer to the value, to handle both value and pointer
	// receivers.
	if v.Type().NumMethod() > 0 && v.CanInterface() {
		if u, ok := v.Interface().(Marshaler); ok {
			return marshalCustom(v, u)
		}
		if u, ok := v.Interface().(encoding.TextMarshaler); ok {
			return marshalText(v, u)
		}
	}
	if v.Kind() != reflect.Pointer {
		var pv reflect.Value
		if v.CanAddr() {
			pv = v.Addr()
		} else {
			// For non-addressable values (like map entries), create a
			// pointer to a copy to check for the interface.
			pv = reflect.New(v.Type())
			pv.Elem().Set(v)
		}
		if pv.Type().NumMethod() > 0 && pv.CanInterface() {
			if u, ok := pv.Interface().(Marshaler); ok {
				return marshalCustom(pv, u)
			}
			if u, ok := pv.Interface().(encoding.TextMarshaler); ok {
				return marshalText(pv, u)
			}
		}
	}

	// Unwrap one level of indirection and start over, so a marshaler
	// behind a pointer or an interface's dynamic type is still found.
	if v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Value{}, fmt.Errorf("%w: nil", ErrUnsupportedValueType)
		}
		return marshalValueOf(v.Elem())
	}

	return NewValue(v.Interface())
}

// marshalCustom invokes a custom MarshalPYSON implementation and validates
// its result.
func marshalCustom(v reflect.Value, u Marshaler) (Value, error) {
	val, err := u.MarshalPYSON()
	if err != nil {
		return Value{}, &MarshalerError{Type: v.Type(), Err: err}
	}
	if !val.IsValid() {
		return Value{}, &MarshalerError{Type: v.Type(), Err: fmt.Errorf("returned the zero Value")}
	}
	return val, nil
}

// marshalText invokes a custom MarshalText implementation; the result
// becomes a Str value.
func marshalText(v reflect.Value, u encoding.TextMarshaler) (Value, error) {
	b, err := u.MarshalText()
	if err != nil {
		return Value{}, &MarshalerError{Type: v.Type(), Err: err, sourceFunc: "MarshalText"}
	}
	return strValue(string(b)), nil
}

// parseTag splits a pyson struct tag into its name and options.
func parseTag(tag string) (string, map[string]bool) {
	parts := strings.Split(tag, ",")
	name := parts[0]
	options := make(map[string]bool)
	for _, part := range parts[1:] {
		options[strings.TrimSpace(part)] = true
	}
	return name, options
}

// isEmptyValue reports whether the value v is empty.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Ptr:
		return v.IsNil()
	}
	return false
}
