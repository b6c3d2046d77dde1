package main

import (
	"strings"

	"github.com/TwiN/go-color"

	"github.com/robalobadob/wordle-solver/internal/pattern"
)

// colorize paints each letter of guess by its feedback digit.
func colorize(guess string, p pattern.Pattern) string {
	var b strings.Builder
	for i, d := range p.Digits(len(guess)) {
		letter := string(guess[i])
		switch d {
		case pattern.Exact:
			b.WriteString(color.Ize(color.Green, letter))
		case pattern.Present:
			b.WriteString(color.Ize(color.Yellow, letter))
		default:
			b.WriteString(color.Ize(color.Gray, letter))
		}
	}
	return b.String()
}

const patternHelp = `    .     -> letter absent
a,b,c,... -> letter present elsewhere
A,B,C,... -> letter in the right place
`
