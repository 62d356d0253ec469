package pyson

import (
	"fmt"

	"github.com/ProbablyComputingSquid/pyson-go/internal/wire"
)

// A NamedValue pairs a non-empty name with a Value: one entry of a pyson
// document. Mutators replace the name or the Value wholesale and reject
// input that would leave the entry unencodable; the payload inside a Value
// is never edited in place.
//
// A NamedValue on its own knows nothing about name uniqueness. That is a
// document-level invariant, enforced by ParseDocument and Marshal.
type NamedValue struct {
	name  string
	value Value
}

// NewNamedValue builds an entry from a name and a Value. It fails with
// ErrInvalidArgument when name is empty or value is the zero Value.
func NewNamedValue(name string, value Value) (*NamedValue, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidArgument)
	}
	if !value.IsValid() {
		return nil, fmt.Errorf("%w: zero Value", ErrInvalidArgument)
	}
	return &NamedValue{name: name, value: value}, nil
}

// Name returns the entry's name.
func (nv *NamedValue) Name() string { return nv.name }

// Value returns the entry's current Value.
func (nv *NamedValue) Value() Value { return nv.value }

// Pair returns the name and the Value together.
func (nv *NamedValue) Pair() (string, Value) { return nv.name, nv.value }

// SetName renames the entry. An empty name fails with ErrInvalidArgument
// and leaves the entry unchanged.
func (nv *NamedValue) SetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidArgument)
	}
	nv.name = name
	return nil
}

// SwapName renames the entry and returns the name it replaced.
func (nv *NamedValue) SwapName(name string) (string, error) {
	old := nv.name
	if err := nv.SetName(name); err != nil {
		return "", err
	}
	return old, nil
}

// SetValue replaces the entry's Value. The zero Value fails with
// ErrInvalidArgument and leaves the entry unchanged.
func (nv *NamedValue) SetValue(value Value) error {
	if !value.IsValid() {
		return fmt.Errorf("%w: zero Value", ErrInvalidArgument)
	}
	nv.value = value
	return nil
}

// SwapValue replaces the entry's Value and returns the Value it replaced.
func (nv *NamedValue) SwapValue(value Value) (Value, error) {
	old := nv.value
	if err := nv.SetValue(value); err != nil {
		return Value{}, err
	}
	return old, nil
}

// Encode returns the entry's canonical wire line, "<name>:<tag>:<content>",
// without a trailing newline.
func (nv *NamedValue) Encode() string {
	return wire.JoinEntry(nv.name, nv.value.kind.String(), nv.value.content())
}

// String implements fmt.Stringer as an alias for Encode.
func (nv *NamedValue) String() string { return nv.Encode() }
