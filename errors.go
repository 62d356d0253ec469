package pyson

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Sentinel errors reported by this package. Call sites wrap them with
// context, so match them with errors.Is rather than equality.
var (
	// ErrInvalidType reports an unknown type tag in an entry line.
	ErrInvalidType = errors.New("pyson: invalid type tag")

	// ErrUnsupportedValueType reports a payload that fits none of the four
	// value types.
	ErrUnsupportedValueType = errors.New("pyson: unsupported value type")

	// ErrInvalidListElement reports a sequence payload containing a
	// non-string element.
	ErrInvalidListElement = errors.New("pyson: list element is not a string")

	// ErrInvalidArgument reports an empty name or an invalid Value passed
	// to a NamedValue constructor or mutator.
	ErrInvalidArgument = errors.New("pyson: invalid argument")

	// ErrEmbeddedNewline reports a newline character inside a single entry.
	ErrEmbeddedNewline = errors.New("pyson: entry contains a newline")

	// ErrMalformedEntry reports a line with fewer than three colon-separated
	// fields.
	ErrMalformedEntry = errors.New("pyson: malformed entry")

	// ErrInvalidNumber reports int or float content that does not parse as
	// a number.
	ErrInvalidNumber = errors.New("pyson: invalid number")

	// ErrDuplicateName reports a name used by more than one entry in a
	// document.
	ErrDuplicateName = errors.New("pyson: duplicate name")

	// ErrFileNotFound reports a document file that does not exist.
	ErrFileNotFound = errors.New("pyson: file not found")
)

// An EntryError wraps an entry failure with the 1-based line number at
// which it occurred while parsing a document. Empty lines count toward the
// number even though they produce no entry.
type EntryError struct {
	Line int
	Err  error
}

func (e *EntryError) Error() string {
	// The cause already carries the package prefix; strip it so the
	// combined message reads as one.
	msg := strings.TrimPrefix(e.Err.Error(), "pyson: ")
	return fmt.Sprintf("pyson: line %d: %s", e.Line, msg)
}

func (e *EntryError) Unwrap() error { return e.Err }

// A MarshalerError represents an error from calling a MarshalPYSON or
// MarshalText method.
type MarshalerError struct {
	Type reflect.Type
	Err  error

	sourceFunc string
}

func (e *MarshalerError) Error() string {
	srcFunc := e.sourceFunc
	if srcFunc == "" {
		srcFunc = "MarshalPYSON"
	}
	return "pyson: error calling " + srcFunc + " for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *MarshalerError) Unwrap() error { return e.Err }

// An UnmarshalerError represents an error from calling an UnmarshalPYSON or
// UnmarshalText method.
type UnmarshalerError struct {
	Type reflect.Type
	Err  error

	sourceFunc string
}

func (e *UnmarshalerError) Error() string {
	srcFunc := e.sourceFunc
	if srcFunc == "" {
		srcFunc = "UnmarshalPYSON"
	}
	return "pyson: error calling " + srcFunc + " for type " + e.Type.String() + ": " + e.Err.Error()
}

func (e *UnmarshalerError) Unwrap() error { return e.Err }
