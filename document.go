package pyson

import (
	"bytes"
	"fmt"

	"github.com/ProbablyComputingSquid/pyson-go/internal/wire"
)

// A Document is the ordered form of a parsed pyson text. Entries appear in
// source line order; names are unique when the Document came from
// ParseDocument, and Marshal re-checks uniqueness before writing, so edits
// between the two cannot smuggle a duplicate onto the wire.
type Document struct {
	Entries []*NamedValue
}

// ParseDocument parses a complete pyson text into a Document.
//
// Lines are split on '\n' alone and empty lines are skipped. The first
// invalid line aborts the parse with an *EntryError carrying its 1-based
// line number, and a name used by more than one entry fails with
// ErrDuplicateName. An empty input yields an empty Document.
func ParseDocument(data []byte) (*Document, error) {
	doc := &Document{}
	for n, line := range wire.Lines(data) {
		if line == "" {
			continue
		}
		nv, err := ParseEntry(line)
		if err != nil {
			return nil, &EntryError{Line: n, Err: err}
		}
		doc.Entries = append(doc.Entries, nv)
	}
	if err := uniqueNames(doc.Entries); err != nil {
		return nil, err
	}
	return doc, nil
}

// ParseDocumentMap parses a complete pyson text into a name-to-Value map,
// discarding entry order. It applies the same per-line and uniqueness rules
// as ParseDocument.
func ParseDocumentMap(data []byte) (map[string]Value, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	m := make(map[string]Value, len(doc.Entries))
	for _, nv := range doc.Entries {
		m[nv.name] = nv.value
	}
	return m, nil
}

// uniqueNames rejects a name used by more than one entry. It runs as a
// separate pass over parsed entries so the entry codec itself stays free of
// document state.
func uniqueNames(entries []*NamedValue) error {
	seen := make(map[string]struct{}, len(entries))
	for _, nv := range entries {
		if _, dup := seen[nv.name]; dup {
			return fmt.Errorf("%w: %q", ErrDuplicateName, nv.name)
		}
		seen[nv.name] = struct{}{}
	}
	return nil
}

// Get returns the entry with the given name, or nil when the Document has
// none. Lookup is linear; a Document is a small ordered list, not an index.
func (d *Document) Get(name string) *NamedValue {
	for _, nv := range d.Entries {
		if nv.name == name {
			return nv
		}
	}
	return nil
}

// Encode renders the Document in wire form: each entry's canonical line
// followed by a newline. An empty Document encodes to nil.
func (d *Document) Encode() []byte {
	if len(d.Entries) == 0 {
		return nil
	}
	var buf bytes.Buffer
	for _, nv := range d.Entries {
		buf.WriteString(nv.Encode())
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// String implements fmt.Stringer as the string form of Encode.
func (d *Document) String() string { return string(d.Encode()) }
