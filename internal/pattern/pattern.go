// internal/pattern/pattern.go
//
// Feedback patterns.
// A Pattern packs one base-3 digit per letter position, little-endian
// (digit i has place value 3^i):
//   0 = letter absent (after earlier matches are consumed)
//   1 = letter present elsewhere
//   2 = exact match
//
// Display syntax renders digit 0 as '.', digit 1 as the lowercase guess
// letter and digit 2 as the uppercase guess letter ("..A.." / "cRa..").

package pattern

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Absent  = 0
	Present = 1
	Exact   = 2
)

var (
	ErrSyntax = errors.New("pattern: invalid syntax")
	ErrRange  = errors.New("pattern: out of range")
)

// Pattern is the feedback code for one guess against one secret.
type Pattern uint32

// Count returns 3^length, the number of distinct patterns.
func Count(length int) uint32 {
	n := uint32(1)
	for i := 0; i < length; i++ {
		n *= 3
	}
	return n
}

// AllCorrect is the pattern of a guess equal to the secret.
func AllCorrect(length int) Pattern { return Pattern(Count(length) - 1) }

// Valid reports whether p can occur for words of the given length.
func (p Pattern) Valid(length int) bool { return uint32(p) < Count(length) }

// Digits expands p into its per-position digits.
func (p Pattern) Digits(length int) []int {
	out := make([]int, length)
	for i := range out {
		out[i] = int(p % 3)
		p /= 3
	}
	return out
}

// FromDigits packs per-position digits into a Pattern.
func FromDigits(digits []int) (Pattern, error) {
	var p, place Pattern = 0, 1
	for i, d := range digits {
		if d < Absent || d > Exact {
			return 0, fmt.Errorf("%w: digit %d at position %d", ErrSyntax, d, i)
		}
		p += Pattern(d) * place
		place *= 3
	}
	return p, nil
}

// Compute returns the pattern produced when guess is played against secret.
// Both must have the same length (at most 32). Exact matches are resolved first; each
// remaining secret letter then satisfies at most one guess position, left
// to right.
func Compute(secret, guess string) Pattern {
	n := len(guess)
	if len(secret) < n {
		n = len(secret)
	}
	var usedS, usedG [32]bool
	var p, place Pattern = 0, 1
	for i := 0; i < n; i++ {
		if guess[i] == secret[i] {
			usedS[i], usedG[i] = true, true
			p += Exact * place
		}
		place *= 3
	}
	place = 1
	for i := 0; i < n; i, place = i+1, place*3 {
		if usedG[i] {
			continue
		}
		for j := 0; j < n; j++ {
			if !usedS[j] && guess[i] == secret[j] {
				usedS[j] = true
				p += Present * place
				break
			}
		}
	}
	return p
}

// Render formats p in display syntax using the letters of guess.
func Render(guess string, p Pattern) string {
	var b strings.Builder
	b.Grow(len(guess))
	for i := 0; i < len(guess); i++ {
		c := guess[i]
		switch p % 3 {
		case Exact:
			b.WriteByte(upper(c))
		case Present:
			b.WriteByte(lower(c))
		default:
			b.WriteByte('.')
		}
		p /= 3
	}
	return b.String()
}

// Parse reads display syntax: '.' absent, lowercase present, uppercase
// exact. Letters are not checked against any particular guess.
func Parse(s string) (Pattern, error) {
	var p, place Pattern = 0, 1
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '.':
		case c >= 'a' && c <= 'z':
			p += Present * place
		case c >= 'A' && c <= 'Z':
			p += Exact * place
		default:
			return 0, fmt.Errorf("%w: %q at position %d", ErrSyntax, c, i)
		}
		place *= 3
	}
	return p, nil
}

// ParseLength is Parse with a required display length.
func ParseLength(s string, length int) (Pattern, error) {
	if len(s) != length {
		return 0, fmt.Errorf("%w: want %d characters, got %d", ErrSyntax, length, len(s))
	}
	return Parse(s)
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}
