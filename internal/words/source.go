// internal/words/source.go
//
// Dictionary sources.
// Open resolution order:
//   1. The data file at path (typically DATA_DIR/words-L.txt).
//   2. The embedded default list for that length, if one ships with the binary.
//   3. An empty dictionary. Downstream code handles zero words.

package words

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/assets"
)

// Path returns the conventional dictionary file for a word length.
func Path(dir string, length int) string {
	return filepath.Join(dir, fmt.Sprintf("words-%d.txt", length))
}

// Open loads the dictionary at path, falling back to the embedded list and
// finally to an empty dictionary. Only an invalid length is an error.
func Open(path string, length int) (*Dictionary, error) {
	if !ValidLength(length) {
		return nil, fmt.Errorf("%w: %d", ErrLength, length)
	}

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		d, err := Load(f, length)
		if err == nil {
			log.Info().Str("path", path).Int("words", d.Len()).Msg("dictionary loaded")
			return d, nil
		}
		log.Warn().Err(err).Str("path", path).Msg("dictionary unreadable")
	} else {
		log.Debug().Err(err).Str("path", path).Msg("dictionary file not found")
	}

	if data, err := assets.Words(length); err == nil {
		d, err := Load(bytes.NewReader(data), length)
		if err == nil {
			log.Info().Int("length", length).Int("words", d.Len()).Msg("dictionary loaded from embedded defaults")
			return d, nil
		}
	}

	log.Warn().Int("length", length).Msg("no dictionary available; continuing with zero words")
	return &Dictionary{length: length}, nil
}
