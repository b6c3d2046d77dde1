package solver

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle-solver/internal/words"
)

func TestBestChoiceEdgeCases(t *testing.T) {
	s := newSolver(t, Options{})
	if _, err := s.BestChoice(nil); !errors.Is(err, ErrExhausted) {
		t.Errorf("BestChoice(empty) err = %v, want ErrExhausted", err)
	}
	crane := ids(t, s, "CRANE")
	got, err := s.BestChoice(crane)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Result{Word: crane[0], Score: 0}, got); diff != "" {
		t.Errorf("BestChoice(single) mismatch (-want +got):\n%s", diff)
	}
}

func TestBestChoiceTiesGoToFirstWord(t *testing.T) {
	s := newSolver(t, Options{})
	cands := ids(t, s, "BLAST", "FLASK", "QUALM", "SHAFT")
	got, err := s.BestChoice(cands)
	if err != nil {
		t.Fatal(err)
	}
	if got.Word != cands[0] || !near(got.Score, 1.75) {
		t.Errorf("BestChoice = %+v, want BLAST at 1.75", got)
	}
}

func TestBestChoiceIndependentOfWorkers(t *testing.T) {
	serial := newSolver(t, Options{Workers: 1})
	parallel := newSolver(t, Options{Workers: 7})
	for _, first := range serial.Initial() {
		for _, secret := range serial.Initial() {
			p, _ := serial.Pattern(secret, first)
			cands := serial.Filter(serial.Initial(), Step{Guess: first, Pattern: p})
			if len(cands) < 2 {
				continue
			}
			a, err := serial.BestChoice(cands)
			if err != nil {
				t.Fatal(err)
			}
			b, err := parallel.BestChoice(cands)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(a, b); diff != "" {
				t.Errorf("serial and parallel disagree (-serial +parallel):\n%s", diff)
			}
		}
	}
}

func TestTopWords(t *testing.T) {
	s := newSolver(t, Options{})
	cands := ids(t, s, "BLAST", "FLASK", "QUALM", "SHAFT")

	got, err := s.TopWords(cands, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := []words.WordID{cands[0], cands[1], cands[2]}
	gotIDs := make([]words.WordID, len(got))
	for i, r := range got {
		gotIDs[i] = r.Word
	}
	if diff := cmp.Diff(want, gotIDs); diff != "" {
		t.Errorf("TopWords order mismatch (-want +got):\n%s", diff)
	}

	best, _ := s.BestChoice(cands)
	if got[0] != best {
		t.Errorf("TopWords[0] = %+v, BestChoice = %+v", got[0], best)
	}
}

func TestTopWordsMatchesFullSort(t *testing.T) {
	s := newSolver(t, Options{Workers: 3})
	cands := s.Initial()[2:]

	all := make([]Result, 0, len(s.Allowed()))
	for _, g := range s.Allowed() {
		all = append(all, Result{Word: g, Score: s.Score(g, cands)})
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Score < all[j].Score })

	for _, k := range []int{1, 4, len(all), len(all) + 5} {
		got, err := s.TopWords(cands, k)
		if err != nil {
			t.Fatal(err)
		}
		want := all[:min(k, len(all))]
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("TopWords(k=%d) mismatch (-want +got):\n%s", k, diff)
		}
	}
}

func TestTopWordsEdgeCases(t *testing.T) {
	s := newSolver(t, Options{})
	if _, err := s.TopWords(nil, 3); !errors.Is(err, ErrExhausted) {
		t.Errorf("TopWords(empty) err = %v, want ErrExhausted", err)
	}
	got, err := s.TopWords(s.Initial(), 0)
	if err != nil || len(got) != 0 {
		t.Errorf("TopWords(k=0) = %v, %v; want empty", got, err)
	}
}

func TestTopWordsHugeK(t *testing.T) {
	s := newSolver(t, Options{})
	cands := s.Initial()
	want, err := s.TopWords(cands, len(s.Allowed()))
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []int{1 << 50, math.MaxInt} {
		got, err := s.TopWords(cands, k)
		if err != nil {
			t.Fatalf("TopWords(k=%d): %v", k, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("TopWords(k=%d) mismatch (-want +got):\n%s", k, diff)
		}
	}
}
