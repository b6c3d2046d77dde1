// internal/session/game.go
//
// Game: a hidden secret and the guesses played against it.
// Used for self-play simulation and for the HTTP "play against the solver's
// dictionary" mode. Secret selection takes an explicit random source.

package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// pickAttempts bounds the search for a sufficiently common secret.
const pickAttempts = 5000

// Status of a game.
type Status int

const (
	InProgress Status = iota
	Lost
	Won
)

func (s Status) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// MarshalText renders the status as its string form in JSON.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText parses the string form.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	case "playing":
		*s = InProgress
	default:
		return fmt.Errorf("session: unknown status %q", b)
	}
	return nil
}

// Game holds the secret and the steps played so far.
type Game struct {
	solver   *solver.Solver
	secret   words.WordID
	maxSteps int
	steps    []solver.Step
}

// NewGame starts a game; maxSteps <= 0 means unlimited. The secret must be
// in the allowed set, otherwise the solver could never reach it.
func NewGame(s *solver.Solver, secret words.WordID, maxSteps int) (*Game, error) {
	w, err := s.Dictionary().Word(secret)
	if err != nil {
		return nil, err
	}
	if !s.IsAllowed(secret) {
		return nil, fmt.Errorf("%w: %s", ErrNotAllowed, w.Text)
	}
	return &Game{solver: s, secret: secret, maxSteps: maxSteps}, nil
}

// PickSecret draws a random allowed word, preferring words whose frequency
// exceeds minFrequency. After pickAttempts draws the last one is used.
func PickSecret(s *solver.Solver, rng *rand.Rand, minFrequency float64) (words.WordID, error) {
	allowed := s.Allowed()
	if len(allowed) == 0 {
		return -1, solver.ErrExhausted
	}
	var id words.WordID
	for i := 0; i < pickAttempts; i++ {
		id = allowed[rng.IntN(len(allowed))]
		if w, _ := s.Dictionary().Word(id); w.Frequency > minFrequency {
			break
		}
	}
	return id, nil
}

// DailySecret returns the allowed word assigned to the date.
func DailySecret(s *solver.Solver, date time.Time, salt string) (words.WordID, error) {
	allowed := s.Allowed()
	if len(allowed) == 0 {
		return -1, solver.ErrExhausted
	}
	return allowed[daily.WordIndex(date, salt, len(allowed))], nil
}

// Guess plays id and returns the feedback step.
func (g *Game) Guess(id words.WordID) (solver.Step, error) {
	if g.Status() != InProgress {
		return solver.Step{}, ErrFinished
	}
	p, err := g.solver.Pattern(g.secret, id)
	if err != nil {
		return solver.Step{}, err
	}
	step := solver.Step{Guess: id, Pattern: p}
	g.steps = append(g.steps, step)
	return step, nil
}

// GuessText plays a word given by text.
func (g *Game) GuessText(text string) (solver.Step, error) {
	id, ok := g.solver.Dictionary().Lookup(text)
	if !ok {
		return solver.Step{}, fmt.Errorf("%w: %q", ErrUnknownWord, text)
	}
	return g.Guess(id)
}

// Status reports whether the game is won, lost or still running.
func (g *Game) Status() Status {
	if n := len(g.steps); n > 0 && g.steps[n-1].Guess == g.secret {
		return Won
	}
	if g.maxSteps > 0 && len(g.steps) >= g.maxSteps {
		return Lost
	}
	return InProgress
}

// Secret returns the hidden word.
func (g *Game) Secret() words.WordID { return g.secret }

// Steps returns a copy of the steps played.
func (g *Game) Steps() []solver.Step { return append([]solver.Step(nil), g.steps...) }

// MaxSteps is the step limit, 0 when unlimited.
func (g *Game) MaxSteps() int { return g.maxSteps }
