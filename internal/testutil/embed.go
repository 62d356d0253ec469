// Package testutil carries fixture files shared by benchmarks across the
// test packages.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed testdata
var fixtures embed.FS

// ReadTestData returns the named fixture from the embedded testdata
// directory.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(fixtures, "testdata/"+name)
	if err != nil {
		return nil, fmt.Errorf("read test data %q: %w", name, err)
	}
	return data, nil
}
