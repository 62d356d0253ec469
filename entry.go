package pyson

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ProbablyComputingSquid/pyson-go/internal/wire"
)

// ParseEntry parses a single pyson line into a NamedValue.
//
// The first two colons are structural: the name runs to the first, the type
// tag to the second, and everything after the second, further colons
// included, is value content. Content is interpreted per the tag: base-10
// integers for "int", decimal floats for "float", verbatim text for "str"
// and "(*)"-separated elements for "list". A "float" whose content is an
// integral number parses to an Int, per the classification rule.
func ParseEntry(line string) (*NamedValue, error) {
	if strings.ContainsRune(line, '\n') {
		return nil, fmt.Errorf("%w: %q", ErrEmbeddedNewline, line)
	}
	name, tag, content, ok := wire.SplitEntry(line)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMalformedEntry, line)
	}
	typ, err := ParseType(tag)
	if err != nil {
		return nil, err
	}
	payload, err := parseContent(typ, content)
	if err != nil {
		return nil, err
	}
	value, err := NewValue(payload)
	if err != nil {
		return nil, err
	}
	return NewNamedValue(name, value)
}

// parseContent converts raw content into the payload matching the tagged
// type, ready for value classification.
func parseContent(typ Type, content string) (any, error) {
	switch typ {
	case Int:
		n, err := strconv.ParseInt(content, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a base-10 integer", ErrInvalidNumber, content)
		}
		return n, nil
	case Float:
		f, err := strconv.ParseFloat(content, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a float", ErrInvalidNumber, content)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, fmt.Errorf("%w: %q is not a finite float", ErrInvalidNumber, content)
		}
		return f, nil
	case Str:
		return content, nil
	default:
		return wire.SplitList(content), nil
	}
}
