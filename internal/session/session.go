// internal/session/session.go
//
// Solver session: the feedback history of one game being solved.
// Responsibilities:
//   - Hold the recorded steps and the candidate set they imply.
//   - Apply a step by filtering the current candidates.
//   - Roll back by re-filtering the initial set over the remaining history.
//   - Answer recommendation queries for the current candidates.
//
// The candidate slice is replaced wholesale on every change and never
// mutated in place. A mutex serialises access for shared (HTTP) use.

package session

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/robalobadob/wordle-solver/internal/metrics"
	"github.com/robalobadob/wordle-solver/internal/pattern"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var (
	ErrUnknownWord = errors.New("session: word not in dictionary")
	ErrNotAllowed  = errors.New("session: word excluded by the mask")
	ErrFinished    = errors.New("session: game finished")
)

// Candidate is a still-possible secret with its score and probability.
type Candidate struct {
	Word        words.WordID `json:"word"`
	Text        string       `json:"text"`
	Score       float64      `json:"score"`
	Probability float64      `json:"probability"`
}

// Session tracks the steps of one game and the remaining candidates.
type Session struct {
	mu         sync.Mutex
	solver     *solver.Solver
	steps      []solver.Step
	candidates []words.WordID
}

// New starts a session with no steps.
func New(s *solver.Solver) *Session {
	return &Session{solver: s, candidates: s.Initial()}
}

// Solver returns the engine behind the session.
func (s *Session) Solver() *solver.Solver { return s.solver }

// Reset forgets every step.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = nil
	s.candidates = s.solver.Initial()
}

// Apply records a step and narrows the candidates.
func (s *Session) Apply(step solver.Step) error {
	if _, err := s.solver.Dictionary().Word(step.Guess); err != nil {
		return err
	}
	if !step.Pattern.Valid(s.solver.Length()) {
		return fmt.Errorf("%w: %d", pattern.ErrRange, step.Pattern)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step)
	s.candidates = s.solver.Filter(s.candidates, step)
	metrics.StepsApplied.Inc()
	return nil
}

// ApplyText parses a played word and its display pattern, then applies them.
func (s *Session) ApplyText(guess, display string) (solver.Step, error) {
	id, err := s.Lookup(guess)
	if err != nil {
		return solver.Step{}, err
	}
	p, err := pattern.ParseLength(strings.TrimSpace(display), s.solver.Length())
	if err != nil {
		return solver.Step{}, err
	}
	step := solver.Step{Guess: id, Pattern: p}
	return step, s.Apply(step)
}

// Rollback drops up to n of the latest steps and returns how many were
// dropped. Candidates are re-derived from the initial set.
func (s *Session) Rollback(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > len(s.steps) {
		n = len(s.steps)
	}
	if n < 0 {
		n = 0
	}
	s.steps = s.steps[:len(s.steps)-n]
	s.candidates = s.solver.FilterAll(s.solver.Initial(), s.steps)
	return n
}

// Steps returns a copy of the recorded steps.
func (s *Session) Steps() []solver.Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]solver.Step(nil), s.steps...)
}

// Candidates returns the current candidate set. The slice must not be modified.
func (s *Session) Candidates() []words.WordID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.candidates
}

// CandidateCount is the number of remaining candidates.
func (s *Session) CandidateCount() int { return len(s.Candidates()) }

// Entropy of the remaining candidates, in bits.
func (s *Session) Entropy() float64 { return s.solver.Entropy(s.Candidates()) }

// BestChoice recommends the next guess.
func (s *Session) BestChoice() (solver.Result, error) { return s.solver.BestChoice(s.Candidates()) }

// TopWords returns the k best guesses.
func (s *Session) TopWords(k int) ([]solver.Result, error) {
	return s.solver.TopWords(s.Candidates(), k)
}

// Ranked lists up to limit candidates (all when limit <= 0) in WordID order
// with their score and probability of being the secret.
func (s *Session) Ranked(limit int) []Candidate {
	cands := s.Candidates()
	if limit <= 0 || limit > len(cands) {
		limit = len(cands)
	}
	shown := cands[:limit]
	scores := s.solver.ScoreEach(shown, cands)
	total := s.solver.TotalWeight(cands)
	out := make([]Candidate, 0, limit)
	for i, id := range shown {
		w, _ := s.solver.Dictionary().Word(id)
		c := Candidate{Word: id, Text: w.Text, Score: scores[i]}
		if total > 0 {
			c.Probability = w.Weight / total
		}
		out = append(out, c)
	}
	return out
}

// Lookup resolves a word's text to its WordID.
func (s *Session) Lookup(text string) (words.WordID, error) {
	id, ok := s.solver.Dictionary().Lookup(text)
	if !ok {
		return -1, fmt.Errorf("%w: %q", ErrUnknownWord, text)
	}
	return id, nil
}

// Text returns the text of a WordID.
func (s *Session) Text(id words.WordID) (string, error) { return s.solver.Dictionary().Text(id) }
