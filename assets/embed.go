// Package assets ships default dictionaries inside the binary so the
// solver runs even when no data directory is configured.
package assets

import (
	"embed"
	"fmt"
)

//go:embed words-*.txt
var FS embed.FS

// Words returns the embedded `word frequency` list for a word length.
// Lengths without an embedded list return an fs.ErrNotExist error.
func Words(length int) ([]byte, error) {
	return FS.ReadFile(fmt.Sprintf("words-%d.txt", length))
}
