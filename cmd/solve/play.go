package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/pattern"
	"github.com/robalobadob/wordle-solver/internal/session"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// candidatesShown is how many candidates the "p" command lists.
const candidatesShown = 10

// resolver is what the interactive loop needs from a solving session.
type resolver interface {
	Reset()
	Apply(step solver.Step) error
	Rollback(n int) int
	Steps() []solver.Step
	CandidateCount() int
	Candidates() []words.WordID
	Entropy() float64
	BestChoice() (solver.Result, error)
	TopWords(k int) ([]solver.Result, error)
	Ranked(limit int) []session.Candidate
	Lookup(text string) (words.WordID, error)
	Text(id words.WordID) (string, error)
}

// errQuit ends the interactive loop.
var errQuit = errors.New("quit")

type terminal struct {
	res    resolver
	length int
	topN   int
	in     *bufio.Scanner
	out    io.Writer
}

func runPlay(sv *solver.Solver, cfg config.Config, in io.Reader, out io.Writer) error {
	t := &terminal{
		res:    session.New(sv),
		length: sv.Length(),
		topN:   cfg.TopN,
		in:     bufio.NewScanner(in),
		out:    out,
	}
	for {
		err := t.play()
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// play solves one game; it returns once a single candidate (or none) is left.
func (t *terminal) play() error {
	t.res.Reset()
	for t.res.CandidateCount() > 1 {
		best, err := t.res.BestChoice()
		if err != nil {
			return err
		}
		text, _ := t.res.Text(best.Word)
		fmt.Fprintf(t.out, "\n%d candidates (%.2f bits).\n", t.res.CandidateCount(), t.res.Entropy())
		fmt.Fprintf(t.out, "Best option: %s (%.2f steps).\n", text, best.Score+float64(len(t.res.Steps())))

		step, err := t.readStep()
		if err != nil {
			fmt.Fprintln(t.out, "Quit")
			return err
		}
		if err := t.res.Apply(step); err != nil {
			return err
		}
		guess, _ := t.res.Text(step.Guess)
		fmt.Fprintln(t.out, colorize(guess, step.Pattern))
	}

	switch cands := t.res.Candidates(); len(cands) {
	case 1:
		text, _ := t.res.Text(cands[0])
		fmt.Fprintf(t.out, "\nOnly word left: %s\n", text)
	case 0:
		fmt.Fprintln(t.out, "\nNo words left!")
	}
	return nil
}

// readStep prompts for a word (or a command) and then its feedback.
func (t *terminal) readStep() (solver.Step, error) {
	for {
		fmt.Fprint(t.out, "Enter the word played: ")
		tok, err := t.token()
		if err != nil {
			return solver.Step{}, err
		}
		switch strings.ToUpper(tok) {
		case "":
			fmt.Fprintln(t.out, "Enter \"q\" to quit, \"c\" to cancel the last step, \"p\" to list candidates, \"s\" for suggestions.")
			continue
		case "Q":
			return solver.Step{}, errQuit
		case "C":
			t.res.Rollback(1)
			fmt.Fprintln(t.out, "Last step cancelled.")
			continue
		case "P":
			t.printCandidates()
			continue
		case "S":
			t.printSuggestions()
			continue
		}
		if len(tok) != t.length {
			fmt.Fprintf(t.out, "Words have %d letters (not %d).\n", t.length, len(tok))
			continue
		}
		id, err := t.res.Lookup(tok)
		if err != nil {
			fmt.Fprintf(t.out, "%s is not in the dictionary.\n", strings.ToUpper(tok))
			continue
		}
		p, err := t.readPattern()
		if err != nil {
			return solver.Step{}, err
		}
		return solver.Step{Guess: id, Pattern: p}, nil
	}
}

func (t *terminal) readPattern() (pattern.Pattern, error) {
	for {
		fmt.Fprint(t.out, "Enter the feedback (./a/A): ")
		tok, err := t.token()
		if err != nil {
			return 0, err
		}
		switch {
		case tok == "":
			fmt.Fprint(t.out, "Enter \"q\" to quit.\n"+patternHelp)
			continue
		case tok == "q" || tok == "Q":
			return 0, errQuit
		}
		p, err := pattern.ParseLength(tok, t.length)
		if err != nil {
			fmt.Fprint(t.out, err.Error()+"\n"+patternHelp)
			continue
		}
		return p, nil
	}
}

func (t *terminal) printCandidates() {
	played := float64(len(t.res.Steps()))
	ranked := t.res.Ranked(candidatesShown)
	for _, c := range ranked {
		fmt.Fprintf(t.out, "%s (%.2f steps - %.1f%%)\n", c.Text, c.Score+played, c.Probability*100)
	}
	if more := t.res.CandidateCount() - len(ranked); more > 0 {
		fmt.Fprintf(t.out, "and %d more.\n", more)
	}
}

func (t *terminal) printSuggestions() {
	top, err := t.res.TopWords(t.topN)
	if err != nil {
		fmt.Fprintln(t.out, err)
		return
	}
	played := float64(len(t.res.Steps()))
	fmt.Fprintln(t.out, "Suggestions:")
	for _, r := range top {
		text, _ := t.res.Text(r.Word)
		fmt.Fprintf(t.out, "%s (%.2f steps)\n", text, r.Score+played)
	}
}

// token reads the next whitespace-trimmed line.
func (t *terminal) token() (string, error) {
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}
