// Package wire implements the low-level text primitives of the pyson line
// format: field splitting and joining for entry lines, element splitting and
// joining for list content, and line iteration over whole documents.
//
// The package deals in raw strings only. It performs no validation beyond
// structural splitting; type tags, numeric content and name uniqueness are
// the caller's concern.
package wire

import (
	"iter"
	"strings"
)

const (
	// FieldSep separates the name, type tag and content fields of an entry
	// line. Only the first two occurrences are structural; the content field
	// may contain further separators.
	FieldSep = ":"

	// ListSep is the literal delimiter between elements of encoded list
	// content. It is matched verbatim, with no escaping mechanism.
	ListSep = "(*)"
)

// SplitEntry splits an entry line into its name, type tag and content
// fields at the first two separators. ok is false when the line contains
// fewer than two separators and therefore cannot be an entry.
func SplitEntry(line string) (name, tag, content string, ok bool) {
	name, rest, found := strings.Cut(line, FieldSep)
	if !found {
		return "", "", "", false
	}
	tag, content, found = strings.Cut(rest, FieldSep)
	if !found {
		return "", "", "", false
	}
	return name, tag, content, true
}

// JoinEntry assembles an entry line from its three fields.
func JoinEntry(name, tag, content string) string {
	return name + FieldSep + tag + FieldSep + content
}

// SplitList splits encoded list content into its elements. Content without
// the delimiter yields a single element; in particular empty content yields
// one empty element, not an empty list.
func SplitList(content string) []string {
	return strings.Split(content, ListSep)
}

// JoinList joins list elements with the delimiter. An element containing
// the delimiter itself will not survive a round trip intact.
func JoinList(elems []string) string {
	return strings.Join(elems, ListSep)
}

// Lines yields the 1-based number and text of every newline-separated line
// in data, empty lines included. Only '\n' terminates a line; carriage
// returns and other control characters carry no structural meaning.
func Lines(data []byte) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		rest := string(data)
		for n := 1; ; n++ {
			line, more, found := strings.Cut(rest, "\n")
			if !yield(n, line) {
				return
			}
			if !found {
				return
			}
			rest = more
		}
	}
}
