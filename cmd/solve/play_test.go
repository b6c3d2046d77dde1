package main

import (
	"strings"
	"testing"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func testSolver(t *testing.T) *solver.Solver {
	t.Helper()
	var entries []words.Entry
	for _, w := range []string{"ABACK", "BLAST", "CRANE", "FLASK", "GRACE", "PLANT", "QUALM", "SHAFT", "SLATE", "TRACE"} {
		entries = append(entries, words.Entry{Text: w, Frequency: 20})
	}
	d, err := words.New(5, entries)
	if err != nil {
		t.Fatal(err)
	}
	sv, err := solver.New(d, solver.Options{Workers: 2})
	if err != nil {
		t.Fatal(err)
	}
	return sv
}

func play(t *testing.T, input string) string {
	t.Helper()
	var out strings.Builder
	if err := runPlay(testSolver(t), config.Default(), strings.NewReader(input), &out); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestPlaySolves(t *testing.T) {
	out := play(t, "crane\n..A..\nblast\nBLAST\n")
	for _, want := range []string{"10 candidates", "4 candidates (2.00 bits)", "Best option: BLAST", "Only word left: BLAST"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayCommands(t *testing.T) {
	out := play(t, strings.Join([]string{
		"crane", "..A..",
		"p",
		"s",
		"c",
		"toolong",
		"zzzzz",
		"slate", "..1..",
		"q",
	}, "\n"))
	if strings.Contains(out, "more.") {
		t.Errorf("four candidates should all be listed:\n%s", out)
	}
	for _, want := range []string{
		"QUALM (",
		"Suggestions:",
		"Last step cancelled.",
		"Words have 5 letters (not 7).",
		"ZZZZZ is not in the dictionary.",
		"letter in the right place",
		"Quit",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlayNoWordsLeft(t *testing.T) {
	out := play(t, "crane\n.....\n")
	// No word avoids every letter of CRANE.
	if !strings.Contains(out, "No words left!") {
		t.Errorf("output:\n%s", out)
	}
}
