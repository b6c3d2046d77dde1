package session

import (
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Outcome of one self-played game.
type Outcome struct {
	Secret words.WordID  `json:"secret"`
	Steps  []solver.Step `json:"steps"`
	Status Status        `json:"status"`
}

// Simulate lets the solver play against secret until the game ends.
func Simulate(s *solver.Solver, secret words.WordID, maxSteps int) (Outcome, error) {
	game, err := NewGame(s, secret, maxSteps)
	if err != nil {
		return Outcome{}, err
	}
	sess := New(s)
	for game.Status() == InProgress {
		best, err := sess.BestChoice()
		if err != nil {
			return Outcome{Secret: secret, Steps: game.Steps(), Status: game.Status()}, err
		}
		step, err := game.Guess(best.Word)
		if err != nil {
			return Outcome{}, err
		}
		if err := sess.Apply(step); err != nil {
			return Outcome{}, err
		}
	}
	return Outcome{Secret: secret, Steps: game.Steps(), Status: game.Status()}, nil
}
