package solver

import (
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Compatible reports whether word, as the secret, would have produced every step.
func (s *Solver) Compatible(word words.WordID, steps ...Step) bool {
	for _, st := range steps {
		if s.matrix.At(word, st.Guess) != st.Pattern {
			return false
		}
	}
	return true
}

// Filter keeps the candidates consistent with step. The input is not modified.
func (s *Solver) Filter(candidates []words.WordID, step Step) []words.WordID {
	col := s.matrix.Column(step.Guess)
	out := make([]words.WordID, 0, len(candidates))
	for _, c := range candidates {
		if col[c] == step.Pattern {
			out = append(out, c)
		}
	}
	return out
}

// FilterAll keeps the candidates consistent with every step.
// The result does not depend on the order of steps.
func (s *Solver) FilterAll(candidates []words.WordID, steps []Step) []words.WordID {
	out := make([]words.WordID, 0, len(candidates))
	for _, c := range candidates {
		if s.Compatible(c, steps...) {
			out = append(out, c)
		}
	}
	return out
}
