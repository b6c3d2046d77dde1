package pattern

import (
	"testing"

	"github.com/robalobadob/wordle-solver/internal/words"
)

var sample = []string{"ABACK", "BLAST", "CRANE", "FLASK", "GRACE", "PLANT", "QUALM", "SHAFT", "SLATE", "TRACE"}

func TestBuildMatchesCompute(t *testing.T) {
	var calls, last int
	m := Build(sample, 5, BuildOptions{
		Workers: 3,
		Progress: func(done, total int) {
			calls++
			last = done
			if total != len(sample) {
				t.Errorf("progress total = %d, want %d", total, len(sample))
			}
		},
	})
	if calls != len(sample) || last != len(sample) {
		t.Errorf("progress calls/last = %d/%d, want %d", calls, last, len(sample))
	}
	if m.Size() != len(sample) || m.Length() != 5 {
		t.Fatalf("Size/Length = %d/%d", m.Size(), m.Length())
	}
	for s := range sample {
		for g := range sample {
			want := Compute(sample[s], sample[g])
			if got := m.At(words.WordID(s), words.WordID(g)); got != want {
				t.Errorf("At(%s, %s) = %d, want %d", sample[s], sample[g], got, want)
			}
		}
		if m.At(words.WordID(s), words.WordID(s)) != AllCorrect(5) {
			t.Errorf("diagonal %d not all-correct", s)
		}
	}
}

func TestBuildWorkerCountIndependent(t *testing.T) {
	a := Build(sample, 5, BuildOptions{Workers: 1})
	b := Build(sample, 5, BuildOptions{Workers: 8})
	if !a.Equal(b) {
		t.Error("matrices differ between 1 and 8 workers")
	}
}

func TestColumn(t *testing.T) {
	m := Build(sample, 5, BuildOptions{Workers: 2})
	col := m.Column(2)
	for s := range sample {
		if col[s] != m.At(words.WordID(s), 2) {
			t.Errorf("Column(2)[%d] = %d, want %d", s, col[s], m.At(words.WordID(s), 2))
		}
	}
}

func TestAtPanicsOutOfRange(t *testing.T) {
	m := Build(sample[:2], 5, BuildOptions{})
	defer func() {
		if recover() == nil {
			t.Error("At(2, 0) did not panic")
		}
	}()
	m.At(2, 0)
}

func TestBuildEmpty(t *testing.T) {
	m := Build(nil, 5, BuildOptions{Workers: 4})
	if m.Size() != 0 {
		t.Errorf("Size = %d, want 0", m.Size())
	}
}
