// internal/words/words.go
//
// Weighted dictionary for the solver.
// Responsibilities:
//   - Parse `WORD frequency` records of one fixed length from a text stream.
//   - Derive each word's weight from its corpus frequency (weight = tanh(3f - 2) + 1).
//   - Keep words sorted so that a WordID is a stable index and lookups are binary searches.
//
// Notes:
//   - Words are normalised to uppercase ASCII; records of another length are skipped.
//   - Duplicate words keep their first record.
//   - A Dictionary is immutable once built.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// MaxLength is the longest supported word. 3^12 patterns still fit the
// dense per-guess bucket tables comfortably.
const MaxLength = 12

var (
	ErrIndex  = errors.New("words: index out of range")
	ErrLength = errors.New("words: unsupported word length")
)

// WordID is the position of a word in its Dictionary's sorted sequence.
type WordID int

// Word is a dictionary entry.
type Word struct {
	Text      string  `json:"text"`
	Frequency float64 `json:"frequency"`
	Weight    float64 `json:"weight"`
}

// Entry is one raw (text, frequency) record before normalisation.
type Entry struct {
	Text      string
	Frequency float64
}

// Weight maps a corpus frequency to a relative likelihood in (0, 2).
// Very common and very rare words saturate instead of dominating.
func Weight(frequency float64) float64 {
	return math.Tanh(frequency*3-2) + 1
}

// ValidLength reports whether words of length n are supported.
func ValidLength(n int) bool { return n >= 1 && n <= MaxLength }

// Dictionary is a sorted, weighted word list of one length.
type Dictionary struct {
	length int
	words  []Word
}

// New builds a dictionary from raw entries.
// Entries with the wrong length or non-letter characters are dropped.
func New(length int, entries []Entry) (*Dictionary, error) {
	if !ValidLength(length) {
		return nil, fmt.Errorf("%w: %d", ErrLength, length)
	}
	d := &Dictionary{length: length, words: make([]Word, 0, len(entries))}
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		text := strings.ToUpper(strings.TrimSpace(e.Text))
		if len(text) != length || !isLetters(text) {
			continue
		}
		if _, dup := seen[text]; dup {
			continue
		}
		seen[text] = struct{}{}
		d.words = append(d.words, Word{Text: text, Frequency: e.Frequency, Weight: Weight(e.Frequency)})
	}
	sort.Slice(d.words, func(i, j int) bool { return d.words[i].Text < d.words[j].Text })
	return d, nil
}

// Load reads whitespace separated `word frequency` records, one per line.
// Malformed lines are skipped; only read errors are returned.
func Load(r io.Reader, length int) (*Dictionary, error) {
	if !ValidLength(length) {
		return nil, fmt.Errorf("%w: %d", ErrLength, length)
	}
	var entries []Entry
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 2 {
			continue
		}
		if len(fields[0]) != length {
			continue
		}
		f, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			continue
		}
		entries = append(entries, Entry{Text: fields[0], Frequency: f})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read dictionary: %w", err)
	}
	return New(length, entries)
}

// Length is the number of letters in every word.
func (d *Dictionary) Length() int { return d.length }

// Len is the number of words.
func (d *Dictionary) Len() int { return len(d.words) }

// Word returns the word at id.
func (d *Dictionary) Word(id WordID) (Word, error) {
	if id < 0 || int(id) >= len(d.words) {
		return Word{}, fmt.Errorf("%w: %d (size %d)", ErrIndex, id, len(d.words))
	}
	return d.words[id], nil
}

// Text returns the text of the word at id.
func (d *Dictionary) Text(id WordID) (string, error) {
	w, err := d.Word(id)
	return w.Text, err
}

// Lookup finds a word by text (case-insensitive).
func (d *Dictionary) Lookup(text string) (WordID, bool) {
	text = strings.ToUpper(strings.TrimSpace(text))
	i := sort.Search(len(d.words), func(i int) bool { return d.words[i].Text >= text })
	if i < len(d.words) && d.words[i].Text == text {
		return WordID(i), true
	}
	return -1, false
}

// Weights returns a copy of the per-word weights, indexed by WordID.
func (d *Dictionary) Weights() []float64 {
	out := make([]float64, len(d.words))
	for i, w := range d.words {
		out[i] = w.Weight
	}
	return out
}

// Texts returns a copy of the word texts, indexed by WordID.
func (d *Dictionary) Texts() []string {
	out := make([]string, len(d.words))
	for i, w := range d.words {
		out[i] = w.Text
	}
	return out
}

// IDs returns every WordID in order.
func (d *Dictionary) IDs() []WordID {
	out := make([]WordID, len(d.words))
	for i := range out {
		out[i] = WordID(i)
	}
	return out
}

// Subset returns a new dictionary holding only the given words.
// WordIDs are reassigned in the result.
func (d *Dictionary) Subset(ids []WordID) (*Dictionary, error) {
	sub := &Dictionary{length: d.length, words: make([]Word, 0, len(ids))}
	for _, id := range ids {
		w, err := d.Word(id)
		if err != nil {
			return nil, err
		}
		sub.words = append(sub.words, w)
	}
	sort.Slice(sub.words, func(i, j int) bool { return sub.words[i].Text < sub.words[j].Text })
	return sub, nil
}

// isLetters reports whether s is all uppercase ASCII letters.
func isLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}
