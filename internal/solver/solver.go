// internal/solver/solver.go
//
// Solver engine for one dictionary.
// Responsibilities:
//   - Apply the mask to get the allowed-guess set (also the initial candidates).
//   - Obtain the pattern matrix: load the unmasked cache, or build it.
//   - Expose filtering, entropy scoring and recommendation over WordIDs.
//
// Matrix policy:
//   - No mask: load the cache when asked; otherwise build and (optionally) save.
//   - Mask:    the unmasked cache is still usable; if it is not, the dictionary is
//              reduced to the masked words before building and nothing is saved.
//
// A Solver is immutable after New and safe for concurrent use.

package solver

import (
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/metrics"
	"github.com/robalobadob/wordle-solver/internal/pattern"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Step is one observed round of feedback.
type Step struct {
	Guess   words.WordID    `json:"guess"`
	Pattern pattern.Pattern `json:"pattern"`
}

// Result pairs a word with its score; lower is better.
type Result struct {
	Word  words.WordID `json:"word"`
	Score float64      `json:"score"`
}

// Options configures New.
type Options struct {
	Mask      words.Mask
	CachePath string
	LoadCache bool
	SaveCache bool
	// Workers bounds the goroutines used for the matrix build and guess scans.
	Workers int
	// Progress reports matrix build progress (columns done of total).
	Progress func(done, total int)
}

// Solver owns the dictionary, its pattern matrix and the allowed-guess set.
type Solver struct {
	dict    *words.Dictionary
	mask    words.Mask
	matrix  *pattern.Matrix
	weights []float64
	texts   []string
	allowed []words.WordID
	workers int
}

// New prepares a solver for dict.
func New(dict *words.Dictionary, opts Options) (*Solver, error) {
	if dict == nil {
		return nil, errors.New("solver: nil dictionary")
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	length := dict.Length()

	var matrix *pattern.Matrix
	if opts.LoadCache && opts.CachePath != "" && dict.Len() > 0 {
		m, err := pattern.LoadFile(opts.CachePath, dict.Texts(), length)
		switch {
		case err == nil:
			metrics.CacheLookups.WithLabelValues("hit").Inc()
			log.Info().Str("path", opts.CachePath).Int("words", dict.Len()).Msg("patterns loaded from cache")
			matrix = m
		default:
			metrics.CacheLookups.WithLabelValues("miss").Inc()
			log.Info().Err(err).Str("path", opts.CachePath).Msg("pattern cache unusable; regenerating")
		}
	} else {
		metrics.CacheLookups.WithLabelValues("skipped").Inc()
	}

	if matrix == nil {
		if opts.Mask.Active() {
			sub, err := dict.Subset(opts.Mask.Filter(dict))
			if err != nil {
				return nil, fmt.Errorf("mask dictionary: %w", err)
			}
			dict = sub
		}
		start := time.Now()
		matrix = pattern.Build(dict.Texts(), length, pattern.BuildOptions{
			Workers:  workers,
			Progress: opts.Progress,
		})
		elapsed := time.Since(start)
		metrics.MatrixBuildSeconds.Observe(elapsed.Seconds())
		log.Info().Int("words", dict.Len()).Dur("took", elapsed).Msg("pattern matrix generated")

		if !opts.Mask.Active() && opts.SaveCache && opts.CachePath != "" && dict.Len() > 0 {
			if err := pattern.SaveFile(opts.CachePath, matrix, dict.Texts()); err != nil {
				log.Warn().Err(err).Str("path", opts.CachePath).Msg("save pattern cache")
			} else {
				log.Info().Str("path", opts.CachePath).Msg("pattern cache saved")
			}
		}
	}
	metrics.MatrixWords.Set(float64(matrix.Size()))

	return &Solver{
		dict:    dict,
		mask:    opts.Mask,
		matrix:  matrix,
		weights: dict.Weights(),
		texts:   dict.Texts(),
		allowed: opts.Mask.Filter(dict),
		workers: workers,
	}, nil
}

// Dictionary returns the words the solver indexes (reduced when masked).
func (s *Solver) Dictionary() *words.Dictionary { return s.dict }

// Mask returns the active mask.
func (s *Solver) Mask() words.Mask { return s.mask }

// Matrix returns the pattern matrix.
func (s *Solver) Matrix() *pattern.Matrix { return s.matrix }

// Length is the word length.
func (s *Solver) Length() int { return s.dict.Length() }

// Allowed returns the mask-filtered words, in WordID order.
func (s *Solver) Allowed() []words.WordID {
	return append([]words.WordID(nil), s.allowed...)
}

// Initial returns the starting candidate set; it equals Allowed.
func (s *Solver) Initial() []words.WordID { return s.Allowed() }

// IsAllowed reports whether id is in the allowed-guess set.
func (s *Solver) IsAllowed(id words.WordID) bool {
	if !s.valid(id) {
		return false
	}
	return s.mask.Match(s.texts[id])
}

// Pattern returns the pattern of guess against secret.
func (s *Solver) Pattern(secret, guess words.WordID) (pattern.Pattern, error) {
	if !s.valid(secret) || !s.valid(guess) {
		return 0, fmt.Errorf("%w: (%d, %d) for %d words", words.ErrIndex, secret, guess, len(s.texts))
	}
	return s.matrix.At(secret, guess), nil
}

// Render formats a step in display syntax.
func (s *Solver) Render(step Step) (string, error) {
	if !s.valid(step.Guess) {
		return "", fmt.Errorf("%w: %d", words.ErrIndex, step.Guess)
	}
	return pattern.Render(s.texts[step.Guess], step.Pattern), nil
}

func (s *Solver) valid(id words.WordID) bool { return id >= 0 && int(id) < len(s.texts) }
