package pyson

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ParseFile reads and parses the pyson document at path. A missing file is
// reported as ErrFileNotFound; other read errors are returned as the
// operating system produced them, and parse failures surface unchanged from
// ParseDocument.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// WriteFile writes doc's wire form to path, creating the file with mode
// 0o644 when it does not exist and truncating it when it does.
func WriteFile(path string, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("pyson: cannot marshal nil *Document")
	}
	if err := uniqueNames(doc.Entries); err != nil {
		return err
	}
	return os.WriteFile(path, doc.Encode(), 0o644)
}
