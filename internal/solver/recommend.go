// internal/solver/recommend.go
//
// Recommendation over the allowed-guess set.
// Every allowed word is scored (not only candidates: a non-candidate can
// split the candidates better). Scores are computed in parallel into
// disjoint slots and then reduced in WordID order, so ties always go to the
// first word and results do not depend on scheduling.

package solver

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/robalobadob/wordle-solver/internal/metrics"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// ErrExhausted means no word is consistent with the feedback given.
var ErrExhausted = errors.New("solver: no candidate left")

// BestChoice returns the guess with the lowest score. A single candidate is
// returned directly with score 0.
func (s *Solver) BestChoice(candidates []words.WordID) (Result, error) {
	switch len(candidates) {
	case 0:
		return Result{}, ErrExhausted
	case 1:
		return Result{Word: candidates[0], Score: 0}, nil
	}
	if len(s.allowed) == 0 {
		return Result{}, ErrExhausted
	}
	defer observe("best", time.Now())

	scores := s.scoreAllowed(candidates)
	best := Result{Word: s.allowed[0], Score: scores[0]}
	for i := 1; i < len(scores); i++ {
		if scores[i] < best.Score {
			best = Result{Word: s.allowed[i], Score: scores[i]}
		}
	}
	return best, nil
}

// TopWords returns the k lowest scoring guesses, ascending, ties in WordID order.
func (s *Solver) TopWords(candidates []words.WordID, k int) ([]Result, error) {
	if len(candidates) == 0 {
		return nil, ErrExhausted
	}
	if k <= 0 || len(s.allowed) == 0 {
		return []Result{}, nil
	}
	k = min(k, len(s.allowed))
	defer observe("top", time.Now())

	scores := s.scoreAllowed(candidates)
	top := make([]Result, 0, k+1)
	for i, score := range scores {
		if len(top) == k && score >= top[k-1].Score {
			continue
		}
		at := sort.Search(len(top), func(j int) bool { return top[j].Score > score })
		top = append(top, Result{})
		copy(top[at+1:], top[at:])
		top[at] = Result{Word: s.allowed[i], Score: score}
		if len(top) > k {
			top = top[:k]
		}
	}
	return top, nil
}

// scoreAllowed scores every allowed guess; scores[i] belongs to allowed[i].
func (s *Solver) scoreAllowed(candidates []words.WordID) []float64 {
	base := s.newScorer(candidates)
	scores := make([]float64, len(s.allowed))

	workers := s.workers
	if workers > len(s.allowed) {
		workers = len(s.allowed)
	}
	if workers <= 1 {
		for i, g := range s.allowed {
			scores[i] = base.score(g)
		}
		return scores
	}

	chunk := (len(s.allowed) + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < len(s.allowed); lo += chunk {
		hi := min(lo+chunk, len(s.allowed))
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			sc := base.fork()
			for i := lo; i < hi; i++ {
				scores[i] = sc.score(s.allowed[i])
			}
		}(lo, hi)
	}
	wg.Wait()
	return scores
}

func observe(kind string, start time.Time) {
	metrics.RecommendSeconds.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
