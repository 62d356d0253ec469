package pyson

import "github.com/ProbablyComputingSquid/pyson-go/internal/wire"

// IsValidEntry reports whether line parses as a single pyson entry. It
// never reports why; use ParseEntry when the cause matters.
func IsValidEntry(line string) bool {
	_, err := ParseEntry(line)
	return err == nil
}

// IsValidDocument reports whether every line of data is either empty or a
// valid entry on its own.
//
// The check is strictly line-by-line syntactic: it does not enforce the
// document-level unique-name invariant, so a text that ParseDocument
// rejects for a duplicate name still validates here.
func IsValidDocument(data []byte) bool {
	for _, line := range wire.Lines(data) {
		if line == "" {
			continue
		}
		if !IsValidEntry(line) {
			return false
		}
	}
	return true
}
