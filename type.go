package pyson

import "fmt"

// Type identifies the kind of payload a Value holds. The zero Type is
// invalid; valid Types come from the exported constants or from ParseType.
type Type uint8

const (
	invalidType Type = iota

	// Int is the type of integral numbers.
	Int
	// Float is the type of non-integral numbers.
	Float
	// Str is the type of single-line text.
	Str
	// List is the type of ordered string sequences.
	List
)

// typeTags maps each canonical lowercase wire tag to its Type.
var typeTags = map[string]Type{
	"int":   Int,
	"float": Float,
	"str":   Str,
	"list":  List,
}

// ParseType returns the Type named by the given wire tag. Anything but the
// exact lowercase tags "int", "float", "str" and "list" fails with
// ErrInvalidType.
func ParseType(tag string) (Type, error) {
	if t, ok := typeTags[tag]; ok {
		return t, nil
	}
	return invalidType, fmt.Errorf("%w: %q", ErrInvalidType, tag)
}

// String returns the canonical wire tag for the Type, or "invalid" for a
// Type that did not come from a constant or ParseType.
func (t Type) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case Str:
		return "str"
	case List:
		return "list"
	default:
		return "invalid"
	}
}
