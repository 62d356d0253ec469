package pyson

import (
	"encoding"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"
)

// Decoder reads and decodes a pyson document from an input stream.
type Decoder struct {
	r    io.Reader
	opts []Option
}

// NewDecoder returns a new decoder that reads from r.
//
// The decoder may buffer data from r as necessary. It is the caller's
// responsibility to call Close on r if required.
//
// Functional options can be provided to configure the decoding process,
// such as rejecting unknown entry names with DisallowUnknownNames.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{r: r, opts: opts}
}

// Decode reads the pyson document from its input and stores it in the
// value pointed to by v. If v is nil or not a pointer, Decode returns an
// error.
//
// See the documentation for Unmarshal for details about the conversion of
// a pyson document into a Go value.
//
// Note: This is a non-streaming implementation. It reads the entire
// reader into memory first before parsing.
func (d *Decoder) Decode(v any) error {
	if d.r == nil {
		return fmt.Errorf("pyson: Decode(nil reader)")
	}
	data, err := io.ReadAll(d.r)
	if err != nil {
		return err
	}

	var o options
	for _, opt := range d.opts {
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

var (
	documentType = reflect.TypeOf(Document{})
	valueType    = reflect.TypeOf(Value{})
)

// decodeDocument maps a parsed document onto the Go value pointed to by v.
func decodeDocument(doc *Document, v any, o *options) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("pyson: Unmarshal(non-pointer %T or nil)", v)
	}

	// The document model itself is a valid target.
	switch t := v.(type) {
	case **Document:
		*t = doc
		return nil
	case *Document:
		*t = *doc
		return nil
	}

	ds := &decodeState{opts: o}
	return ds.mapDocument(doc, rv.Elem())
}

type decodeState struct {
	opts *options
}

// mapDocument routes a document onto a struct, a string-keyed map, or an
// empty interface.
func (ds *decodeState) mapDocument(doc *Document, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Type() == documentType {
		rv.Set(reflect.ValueOf(*doc))
		return nil
	}

	switch rv.Kind() {
	case reflect.Struct:
		return ds.mapStruct(doc, rv)
	case reflect.Map:
		return ds.mapMap(doc, rv)
	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return fmt.Errorf("pyson: cannot unmarshal document into non-empty interface %s", rv.Type())
		}
		m := make(map[string]any, len(doc.Entries))
		for _, nv := range doc.Entries {
			m[nv.name] = nv.value.goValue()
		}
		rv.Set(reflect.ValueOf(m))
		return nil
	default:
		return fmt.Errorf("pyson: cannot unmarshal document into Go value of type %s", rv.Type())
	}
}

func (ds *decodeState) mapStruct(doc *Document, rv reflect.Value) error {
	fields := cachedFields(rv.Type())
	for _, nv := range doc.Entries {
		targetField := findField(fields, nv.name)
		if targetField == nil {
			if ds.opts.disallowUnknown {
				return fmt.Errorf("pyson: unknown entry name %q for type %s", nv.name, rv.Type())
			}
			continue
		}
		fieldVal := fieldByIndex(rv, targetField.idx)
		if fieldVal.IsValid() && fieldVal.CanSet() {
			if err := ds.mapValue(nv.value, fieldVal); err != nil {
				return err
			}
		}
	}
	return nil
}

// fieldByIndex walks a field index path, allocating nil embedded pointers
// along the way so fields behind them stay reachable.
func fieldByIndex(rv reflect.Value, idx []int) reflect.Value {
	for _, i := range idx {
		for rv.Kind() == reflect.Pointer {
			if rv.IsNil() {
				if !rv.CanSet() {
					return reflect.Value{}
				}
				rv.Set(reflect.New(rv.Type().Elem()))
			}
			rv = rv.Elem()
		}
		rv = rv.Field(i)
	}
	return rv
}

func (ds *decodeState) mapMap(doc *Document, rv reflect.Value) error {
	mapType := rv.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("pyson: cannot unmarshal document into map with non-string key type %s", mapType.Key())
	}
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(mapType))
	} else {
		for _, k := range rv.MapKeys() {
			rv.SetMapIndex(k, reflect.Value{}) // The zero Value deletes the key
		}
	}
	elemType := mapType.Elem()
	for _, nv := range doc.Entries {
		newVal := reflect.New(elemType).Elem()
		if err := ds.mapValue(nv.value, newVal); err != nil {
			return err
		}
		key := reflect.ValueOf(nv.name).Convert(mapType.Key())
		rv.SetMapIndex(key, newVal)
	}
	return nil
}

// mapValue stores a single Value into rv, allocating through pointers and
// honoring custom unmarshalers at every level of indirection.
func (ds *decodeState) mapValue(val Value, rv reflect.Value) error {
	for {
		handled, err := ds.tryCustomUnmarshal(val, rv)
		if err != nil {
			return err
		}
		if handled {
			return nil
		}
		if rv.Kind() != reflect.Pointer {
			break
		}
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() == reflect.Interface {
		return ds.mapInterface(val, rv)
	}
	if !rv.CanSet() {
		return fmt.Errorf("pyson: cannot set value of type %s", rv.Type())
	}

	if rv.Type() == valueType {
		rv.Set(reflect.ValueOf(val))
		return nil
	}

	switch val.Type() {
	case Int:
		return ds.mapInt(val.i, rv)
	case Float:
		return ds.mapFloat(val.f, rv)
	case Str:
		return ds.mapStr(val.s, rv)
	default:
		switch rv.Kind() {
		case reflect.Slice:
			return ds.mapSlice(val.list, rv)
		case reflect.Array:
			return ds.mapArray(val.list, rv)
		default:
			return fmt.Errorf("pyson: cannot unmarshal list into Go value of type %s", rv.Type())
		}
	}
}

// tryCustomUnmarshal attempts to use a custom unmarshaler (pyson.Unmarshaler
// or encoding.TextUnmarshaler) on the given reflect.Value. It returns true
// if a custom unmarshaler was found and used, in which case the caller
// should not proceed with default unmarshaling.
func (ds *decodeState) tryCustomUnmarshal(val Value, rv reflect.Value) (bool, error) {
	if !rv.CanAddr() {
		return false, nil
	}
	pv := rv.Addr()
	if !pv.CanInterface() {
		return false, nil
	}

	if u, ok := pv.Interface().(Unmarshaler); ok {
		if err := u.UnmarshalPYSON(val); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err}
		}
		return true, nil
	}

	if u, ok := pv.Interface().(encoding.TextUnmarshaler); ok {
		if !val.IsStr() {
			// TextUnmarshaler can only be used on string values.
			return false, nil
		}
		if err := u.UnmarshalText([]byte(val.s)); err != nil {
			return true, &UnmarshalerError{Type: pv.Type(), Err: err, sourceFunc: "UnmarshalText"}
		}
		return true, nil
	}

	return false, nil
}

func (ds *decodeState) mapInt(i int64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.OverflowInt(i) {
			return fmt.Errorf("pyson: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetInt(i)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return fmt.Errorf("pyson: integer value %d overflows Go value of type %s", i, rv.Type())
		}
		rv.SetUint(uint64(i))
		return nil
	case reflect.Float32, reflect.Float64:
		// An integral number still fills a float field; the wire format
		// cannot tell 5 apart from 5.0.
		rv.SetFloat(float64(i))
		return nil
	default:
		return fmt.Errorf("pyson: cannot unmarshal integer into Go value of type %s", rv.Type())
	}
}

func (ds *decodeState) mapFloat(f float64, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if rv.OverflowFloat(f) {
			return fmt.Errorf("pyson: float value %g overflows Go value of type %s", f, rv.Type())
		}
		rv.SetFloat(f)
		return nil
	default:
		return fmt.Errorf("pyson: cannot unmarshal float into Go value of type %s", rv.Type())
	}
}

func (ds *decodeState) mapStr(s string, rv reflect.Value) error {
	if rv.Kind() != reflect.String {
		return fmt.Errorf("pyson: cannot unmarshal string into Go value of type %s", rv.Type())
	}
	rv.SetString(s)
	return nil
}

func (ds *decodeState) mapSlice(elems []string, rv reflect.Value) error {
	newSlice := reflect.MakeSlice(rv.Type(), len(elems), len(elems))
	for i, elem := range elems {
		if err := ds.mapValue(strValue(elem), newSlice.Index(i)); err != nil {
			return err
		}
	}
	rv.Set(newSlice)
	return nil
}

func (ds *decodeState) mapArray(elems []string, rv reflect.Value) error {
	if rv.Len() != len(elems) {
		return fmt.Errorf("pyson: cannot unmarshal list of length %d into Go array of length %d", len(elems), rv.Len())
	}
	for i, elem := range elems {
		if err := ds.mapValue(strValue(elem), rv.Index(i)); err != nil {
			return err
		}
	}
	return nil
}

func (ds *decodeState) mapInterface(val Value, rv reflect.Value) error {
	if rv.NumMethod() != 0 {
		return fmt.Errorf("pyson: cannot unmarshal into non-empty interface %s", rv.Type())
	}
	rv.Set(reflect.ValueOf(val.goValue()))
	return nil
}

// findField finds the target field in a struct's cached fields.
// It first attempts a case-sensitive match, then falls back to a
// case-insensitive match.
func findField(fields map[string]field, name string) *field {
	// Try a direct, case-sensitive match on the tag/field name.
	if f, ok := fields[name]; ok {
		return &f
	}

	// Fallback to a case-insensitive match pre-calculated in the cache.
	if f, ok := fields[strings.ToLower(name)]; ok {
		return &f
	}
	return nil
}

// A field represents a single field in a struct.
type field struct {
	idx []int
}

// fieldCache caches a map of struct field names to their properties.
var fieldCache sync.Map // map[reflect.Type]map[string]field

// cachedFields returns a map of field names to field properties for the given
// type. The result is cached to avoid repeated reflection work.
//
// Embedded structs are walked breadth-first and names never overwrite, so an
// outer field shadows an embedded one and, at equal depth, the first declared
// field wins.
func cachedFields(t reflect.Type) map[string]field {
	if f, ok := fieldCache.Load(t); ok {
		if fields, ok := f.(map[string]field); ok {
			return fields
		}
	}

	fields := make(map[string]field)
	store := func(name string, f field) {
		if _, ok := fields[name]; !ok {
			fields[name] = f
		}
	}

	type level struct {
		typ reflect.Type
		idx []int
	}
	queue := []level{{typ: t}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for i := 0; i < cur.typ.NumField(); i++ {
			sf := cur.typ.Field(i)
			idx := append(append([]int(nil), cur.idx...), i)

			tag := sf.Tag.Get("pyson")
			if embedded := embeddedStructType(sf); embedded != nil && tag == "" {
				queue = append(queue, level{typ: embedded, idx: idx})
				continue
			}
			if !sf.IsExported() {
				continue
			}
			if tag == "-" {
				continue
			}

			f := field{idx: idx}
			tagName := strings.Split(tag, ",")[0]

			// Store entries for the original tag name and field name,
			// plus lower-cased versions for case-insensitive fallback.
			if tagName != "" {
				store(tagName, f)
				store(strings.ToLower(tagName), f)
			}
			store(sf.Name, f)
			store(strings.ToLower(sf.Name), f)
		}
	}

	fieldCache.Store(t, fields)
	return fields
}

// embeddedStructType returns the struct type behind an anonymous struct or
// pointer-to-struct field, or nil for any other field.
func embeddedStructType(sf reflect.StructField) reflect.Type {
	if !sf.Anonymous {
		return nil
	}
	ft := sf.Type
	if ft.Kind() == reflect.Pointer {
		ft = ft.Elem()
	}
	if ft.Kind() != reflect.Struct {
		return nil
	}
	return ft
}
