package pyson

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/ProbablyComputingSquid/pyson-go/internal/wire"
)

// A Value holds exactly one payload of one of the four pyson types. The
// zero Value is invalid; construct Values with NewValue. Once constructed a
// Value is never modified, so sharing one across goroutines is safe.
type Value struct {
	kind Type
	i    int64
	f    float64
	s    string
	list []string
}

// NewValue classifies payload into a Value.
//
// Integer kinds yield Int. Float kinds yield Int when the value is a
// mathematical integer representable in int64, and Float otherwise; there
// is no way to build a Float holding an integral value from a bare number.
// NaN and the infinities have no wire form and fail with
// ErrUnsupportedValueType. Strings yield Str. Slices and arrays yield List, provided every element
// is a string; a non-string element fails with ErrInvalidListElement. A
// Value passes through unchanged, and list payloads are copied, never
// aliased. Every other payload, booleans, maps and structs included, fails
// with ErrUnsupportedValueType.
func NewValue(payload any) (Value, error) {
	if v, ok := payload.(Value); ok {
		if !v.IsValid() {
			return Value{}, fmt.Errorf("%w: zero Value", ErrUnsupportedValueType)
		}
		return v, nil
	}

	rv := reflect.ValueOf(payload)
	if !rv.IsValid() {
		return Value{}, fmt.Errorf("%w: nil", ErrUnsupportedValueType)
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return intValue(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %d overflows int64", ErrUnsupportedValueType, u)
		}
		return intValue(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Value{}, fmt.Errorf("%w: non-finite float %g", ErrUnsupportedValueType, f)
		}
		return floatValue(f), nil
	case reflect.String:
		return strValue(rv.String()), nil
	case reflect.Slice, reflect.Array:
		return listValue(rv)
	default:
		return Value{}, fmt.Errorf("%w: %s", ErrUnsupportedValueType, rv.Type())
	}
}

func intValue(i int64) Value { return Value{kind: Int, i: i} }

func strValue(s string) Value { return Value{kind: Str, s: s} }

// floatValue applies the integer classification rule: an integral float in
// int64 range becomes an Int, everything else stays a Float. The caller has
// already rejected NaN and the infinities.
func floatValue(f float64) Value {
	if f == math.Trunc(f) && f >= -1<<63 && f < 1<<63 {
		return intValue(int64(f))
	}
	return Value{kind: Float, f: f}
}

// listValue builds a List from a slice or array, unwrapping interface
// elements so []any full of strings classifies as well as []string.
func listValue(rv reflect.Value) (Value, error) {
	elems := make([]string, rv.Len())
	for i := range elems {
		ev := rv.Index(i)
		for ev.Kind() == reflect.Interface {
			if ev.IsNil() {
				return Value{}, fmt.Errorf("%w: element %d is nil", ErrInvalidListElement, i)
			}
			ev = ev.Elem()
		}
		if ev.Kind() != reflect.String {
			return Value{}, fmt.Errorf("%w: element %d is %s", ErrInvalidListElement, i, ev.Type())
		}
		elems[i] = ev.String()
	}
	return Value{kind: List, list: elems}, nil
}

// Type returns the Value's type. The zero Value reports the invalid Type.
func (v Value) Type() Type { return v.kind }

// IsValid reports whether the Value was built by NewValue or a parse, as
// opposed to being the zero Value.
func (v Value) IsValid() bool { return v.kind != invalidType }

// IsInt reports whether the Value holds an integer.
func (v Value) IsInt() bool { return v.kind == Int }

// IsFloat reports whether the Value holds a non-integral number.
func (v Value) IsFloat() bool { return v.kind == Float }

// IsStr reports whether the Value holds text.
func (v Value) IsStr() bool { return v.kind == Str }

// IsList reports whether the Value holds a string sequence.
func (v Value) IsList() bool { return v.kind == List }

// Int returns the integer payload. It panics if the Value is not an Int;
// check IsInt or Type first when the kind is not known.
func (v Value) Int() int64 {
	if v.kind != Int {
		panic("pyson: Int called on " + v.kind.String() + " Value")
	}
	return v.i
}

// Float returns the float payload. It panics if the Value is not a Float.
func (v Value) Float() float64 {
	if v.kind != Float {
		panic("pyson: Float called on " + v.kind.String() + " Value")
	}
	return v.f
}

// Str returns the string payload. It panics if the Value is not a Str.
func (v Value) Str() string {
	if v.kind != Str {
		panic("pyson: Str called on " + v.kind.String() + " Value")
	}
	return v.s
}

// List returns a copy of the list payload; mutating it leaves the Value
// untouched. It panics if the Value is not a List.
func (v Value) List() []string {
	if v.kind != List {
		panic("pyson: List called on " + v.kind.String() + " Value")
	}
	return slices.Clone(v.list)
}

// goValue returns the payload in its plain Go form: int64, float64, string
// or []string. Empty-interface decode targets receive this form.
func (v Value) goValue() any {
	switch v.kind {
	case Int:
		return v.i
	case Float:
		return v.f
	case Str:
		return v.s
	case List:
		return slices.Clone(v.list)
	default:
		return nil
	}
}

// Encode returns the bare wire form of the Value: "<tag>:<content>" for the
// scalar types, and the delimiter-joined elements with no tag prefix for
// lists. The zero Value encodes to "".
func (v Value) Encode() string {
	switch v.kind {
	case invalidType:
		return ""
	case List:
		return wire.JoinList(v.list)
	default:
		return v.kind.String() + wire.FieldSep + v.content()
	}
}

// String implements fmt.Stringer as an alias for Encode.
func (v Value) String() string { return v.Encode() }

// content renders the payload portion of the wire form. Floats use the
// shortest decimal form that round-trips through strconv.ParseFloat.
func (v Value) content() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Str:
		return v.s
	case List:
		return wire.JoinList(v.list)
	default:
		return ""
	}
}
