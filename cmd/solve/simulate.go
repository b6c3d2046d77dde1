package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/history"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// runSimulate lets the solver play against one or more secrets and reports
// the average number of steps.
func runSimulate(sv *solver.Solver, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	all := fs.Bool("all", false, "play every allowed word")
	word := fs.String("word", "", "play this secret")
	today := fs.Bool("daily", false, "play today's daily word")
	n := fs.Int("n", 1, "number of random secrets")
	seed := fs.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	verbose := fs.Bool("v", false, "print every step")
	if err := fs.Parse(args); err != nil {
		return err
	}

	secrets, err := pickSecrets(sv, cfg, *all, *word, *today, *n, *seed)
	if err != nil {
		return err
	}

	hist, err := history.Open(cfg.DBPath)
	if err != nil {
		log.Warn().Err(err).Msg("history disabled")
		hist = nil
	} else {
		defer hist.Close()
	}

	var bar *progressbar.ProgressBar
	if len(secrets) > 1 {
		bar = progressbar.Default(int64(len(secrets)), "simulating")
	}
	total, won := 0, 0
	for _, secret := range secrets {
		o, err := session.Simulate(sv, secret, cfg.MaxSteps)
		if err != nil {
			return err
		}
		text, _ := sv.Dictionary().Text(secret)
		total += len(o.Steps)
		if o.Status == session.Won {
			won++
		}
		if *verbose || len(secrets) == 1 {
			printOutcome(sv, o, out)
		}
		if hist != nil {
			_, err := hist.Record(context.Background(), history.Run{
				Source:     "simulate",
				WordLength: sv.Length(),
				Mask:       sv.Mask().String(),
				Secret:     text,
				Steps:      len(o.Steps),
				Won:        o.Status == session.Won,
			})
			if err != nil {
				log.Warn().Err(err).Msg("record run")
			}
		}
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	fmt.Fprintf(out, "Average score: %.4f (%d/%d won)\n", float64(total)/float64(len(secrets)), won, len(secrets))
	return nil
}

func pickSecrets(sv *solver.Solver, cfg config.Config, all bool, word string, today bool, n int, seed uint64) ([]words.WordID, error) {
	switch {
	case all:
		return sv.Allowed(), nil
	case word != "":
		id, ok := sv.Dictionary().Lookup(word)
		if !ok {
			return nil, fmt.Errorf("%w: %q", session.ErrUnknownWord, word)
		}
		return []words.WordID{id}, nil
	case today:
		id, err := session.DailySecret(sv, time.Now(), cfg.DailySalt)
		if err != nil {
			return nil, err
		}
		return []words.WordID{id}, nil
	}
	rng := rand.New(rand.NewPCG(seed, seed>>1))
	out := make([]words.WordID, 0, max(n, 1))
	for i := 0; i < max(n, 1); i++ {
		id, err := session.PickSecret(sv, rng, cfg.MinSecretFrequency)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func printOutcome(sv *solver.Solver, o session.Outcome, out io.Writer) {
	cands := sv.Initial()
	for _, step := range o.Steps {
		text, _ := sv.Dictionary().Text(step.Guess)
		fmt.Fprintf(out, "%d candidates (%.2f bits) -> %s\n", len(cands), sv.Entropy(cands), colorize(text, step.Pattern))
		cands = sv.Filter(cands, step)
	}
	secret, _ := sv.Dictionary().Text(o.Secret)
	if o.Status == session.Won {
		fmt.Fprintf(out, "Won in %d steps.\n", len(o.Steps))
	} else {
		fmt.Fprintf(out, "Lost, the word was %s.\n", secret)
	}
}
