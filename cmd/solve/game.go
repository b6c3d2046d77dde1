package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

// runGame lets the user guess a secret picked by the solver.
func runGame(sv *solver.Solver, cfg config.Config, in io.Reader, out io.Writer) error {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	secret, err := session.PickSecret(sv, rng, cfg.MinSecretFrequency)
	if err != nil {
		return err
	}
	g, err := session.NewGame(sv, secret, guessLimit(cfg.MaxSteps))
	if err != nil {
		return err
	}

	sc := bufio.NewScanner(in)
	for g.Status() == session.InProgress {
		fmt.Fprintf(out, "Guess %d/%d: ", len(g.Steps())+1, g.MaxSteps())
		if !sc.Scan() {
			return sc.Err()
		}
		step, err := g.GuessText(strings.TrimSpace(sc.Text()))
		if errors.Is(err, session.ErrUnknownWord) {
			fmt.Fprintln(out, "Not in the dictionary.")
			continue
		}
		if err != nil {
			return err
		}
		text, _ := sv.Dictionary().Text(step.Guess)
		fmt.Fprintln(out, colorize(text, step.Pattern))
	}

	answer, _ := sv.Dictionary().Text(g.Secret())
	if g.Status() == session.Won {
		fmt.Fprintf(out, "Won in %d steps.\n", len(g.Steps()))
	} else {
		fmt.Fprintf(out, "Lost, the word was %s.\n", answer)
	}
	return nil
}

// guessLimit is the step limit for a human game.
func guessLimit(configured int) int {
	if configured <= 0 || configured > 6 {
		return 6
	}
	return configured
}
