// internal/solver/entropy.go
//
// Entropy scoring.
//   Entropy(candidates)         weight-proportional entropy of the candidate set, in bits.
//   GuessEntropy(g, candidates) entropy of the pattern distribution g induces, in bits.
//   Score(g, candidates)        expected additional guesses to finish; lower is better.
//
// GuessEntropy credits every candidate with the guess's own weight, so the
// pattern distribution is uniform over candidates rather than weighted by
// each candidate's likelihood. Entropy(candidates) is weighted.

package solver

import (
	"math"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/pattern"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// TotalWeight sums the weights of candidates.
func (s *Solver) TotalWeight(candidates []words.WordID) float64 {
	total := 0.0
	for _, c := range candidates {
		total += s.weights[c]
	}
	return total
}

// Probability is the chance that id is the secret among candidates.
// It is 0 when the candidate weight is 0.
func (s *Solver) Probability(id words.WordID, candidates []words.WordID) float64 {
	total := s.TotalWeight(candidates)
	if total <= 0 || !s.valid(id) {
		return 0
	}
	return s.weights[id] / total
}

// Entropy of the weight distribution over candidates; 0 for an empty set.
func (s *Solver) Entropy(candidates []words.WordID) float64 {
	total := s.TotalWeight(candidates)
	if total <= 0 {
		return 0
	}
	h := 0.0
	for _, c := range candidates {
		if p := s.weights[c] / total; p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

// GuessEntropy of the pattern distribution guess induces over candidates.
func (s *Solver) GuessEntropy(guess words.WordID, candidates []words.WordID) float64 {
	return s.newScorer(candidates).guessEntropy(guess)
}

// Score estimates the guesses still needed after playing guess.
func (s *Solver) Score(guess words.WordID, candidates []words.WordID) float64 {
	return s.newScorer(candidates).score(guess)
}

// ScoreEach scores every guess against the same candidates, sharing one
// scorer; out[i] belongs to guesses[i].
func (s *Solver) ScoreEach(guesses, candidates []words.WordID) []float64 {
	sc := s.newScorer(candidates)
	out := make([]float64, len(guesses))
	for i, g := range guesses {
		out[i] = sc.score(g)
	}
	return out
}

// StepsEstimate maps the bits left after a guess to the guesses still
// needed to finish.
func StepsEstimate(bits float64) float64 {
	if bits <= 1 {
		return 1
	}
	return 0.9*math.Log(bits) + 1.5
}

// scorer evaluates guesses against one fixed candidate set. Shared fields
// are read-only; buckets and touched are per-goroutine scratch.
type scorer struct {
	s          *Solver
	candidates []words.WordID
	member     *bitset.BitSet
	total      float64
	base       float64

	buckets []uint32
	touched []pattern.Pattern
}

func (s *Solver) newScorer(candidates []words.WordID) *scorer {
	member := bitset.New(uint(len(s.texts)))
	for _, c := range candidates {
		member.Set(uint(c))
	}
	return &scorer{
		s:          s,
		candidates: candidates,
		member:     member,
		total:      s.TotalWeight(candidates),
		base:       s.Entropy(candidates),
	}
}

// fork returns a scorer sharing the read-only state with fresh scratch.
func (sc *scorer) fork() *scorer {
	return &scorer{s: sc.s, candidates: sc.candidates, member: sc.member, total: sc.total, base: sc.base}
}

func (sc *scorer) guessEntropy(guess words.WordID) float64 {
	n := len(sc.candidates)
	if n == 0 {
		return 0
	}
	if sc.buckets == nil {
		sc.buckets = make([]uint32, pattern.Count(sc.s.Length()))
	}
	col := sc.s.matrix.Column(guess)
	sc.touched = sc.touched[:0]
	for _, c := range sc.candidates {
		p := col[c]
		if sc.buckets[p] == 0 {
			sc.touched = append(sc.touched, p)
		}
		sc.buckets[p]++
	}
	h := 0.0
	for _, p := range sc.touched {
		q := float64(sc.buckets[p]) / float64(n)
		h -= q * math.Log2(q)
		sc.buckets[p] = 0
	}
	return h
}

func (sc *scorer) score(guess words.WordID) float64 {
	if len(sc.candidates) == 0 || sc.total <= 0 {
		return 0
	}
	entropyScore := StepsEstimate(sc.base-sc.guessEntropy(guess)) + 1
	if sc.member.Test(uint(guess)) {
		p := sc.s.weights[guess] / sc.total
		return p + (1-p)*entropyScore
	}
	return entropyScore
}
