package words

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Mask restricts which words may ever be guessed or be the secret.
//
//	'A'..'Z'  that letter at that position
//	'a'..'z'  that letter somewhere not already claimed
//	'.'       anything
//
// The zero Mask matches every word.
type Mask struct {
	pat string
}

// ParseMask cleans a raw mask for words of the given length. Input that is
// empty, all '.', of the wrong length or containing other characters
// disables masking; malformed input is logged and cleared.
func ParseMask(raw string, length int) Mask {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "." {
		return Mask{}
	}
	if len(raw) != length {
		log.Warn().Str("mask", raw).Int("length", length).Msg("mask length differs from word length; mask cleared")
		return Mask{}
	}
	letters := false
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case isUpper(c) || isLower(c):
			letters = true
		case c == '.':
		default:
			log.Warn().Str("mask", raw).Msg("mask contains invalid characters; mask cleared")
			return Mask{}
		}
	}
	if !letters {
		return Mask{}
	}
	return Mask{pat: raw}
}

// Active reports whether the mask filters anything.
func (m Mask) Active() bool { return m.pat != "" }

// String returns the cleaned mask, "" when inactive.
func (m Mask) String() string { return m.pat }

// Match reports whether text (uppercase, mask length) satisfies the mask.
func (m Mask) Match(text string) bool {
	if !m.Active() {
		return true
	}
	if len(text) != len(m.pat) {
		return false
	}
	used := make([]bool, len(text))
	for i := 0; i < len(m.pat); i++ {
		c := m.pat[i]
		if !isUpper(c) {
			continue
		}
		if text[i] != c {
			return false
		}
		used[i] = true
	}
	for i := 0; i < len(m.pat); i++ {
		c := m.pat[i]
		if !isLower(c) {
			continue
		}
		c -= 'a' - 'A'
		found := false
		for j := 0; j < len(text); j++ {
			if !used[j] && text[j] == c {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Filter returns, in WordID order, the words of d the mask accepts.
func (m Mask) Filter(d *Dictionary) []WordID {
	out := make([]WordID, 0, d.Len())
	for i, w := range d.words {
		if m.Match(w.Text) {
			out = append(out, WordID(i))
		}
	}
	return out
}

func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
