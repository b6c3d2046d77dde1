package solver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/wordle-solver/internal/pattern"
	"github.com/robalobadob/wordle-solver/internal/words"
)

var sample = []string{"ABACK", "BLAST", "CRANE", "FLASK", "GRACE", "PLANT", "QUALM", "SHAFT", "SLATE", "TRACE"}

func sampleDict(t *testing.T, freq func(i int) float64) *words.Dictionary {
	t.Helper()
	entries := make([]words.Entry, len(sample))
	for i, w := range sample {
		f := 1.0
		if freq != nil {
			f = freq(i)
		}
		entries[i] = words.Entry{Text: w, Frequency: f}
	}
	d, err := words.New(5, entries)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func newSolver(t *testing.T, opts Options) *Solver {
	t.Helper()
	if opts.Workers == 0 {
		opts.Workers = 2
	}
	s, err := New(sampleDict(t, nil), opts)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func ids(t *testing.T, s *Solver, texts ...string) []words.WordID {
	t.Helper()
	out := make([]words.WordID, 0, len(texts))
	for _, w := range texts {
		id, ok := s.Dictionary().Lookup(w)
		if !ok {
			t.Fatalf("%s not in dictionary", w)
		}
		out = append(out, id)
	}
	return out
}

func step(t *testing.T, s *Solver, guess, display string) Step {
	t.Helper()
	p, err := pattern.ParseLength(display, 5)
	if err != nil {
		t.Fatal(err)
	}
	return Step{Guess: ids(t, s, guess)[0], Pattern: p}
}

func TestNewWithoutMask(t *testing.T) {
	s := newSolver(t, Options{})
	if diff := cmp.Diff(s.Dictionary().IDs(), s.Allowed()); diff != "" {
		t.Errorf("Allowed mismatch (-want +got):\n%s", diff)
	}
	if s.Matrix().Size() != len(sample) {
		t.Errorf("matrix size = %d, want %d", s.Matrix().Size(), len(sample))
	}
}

func TestMaskReducesDictionaryWithoutCache(t *testing.T) {
	path := pattern.CachePath(t.TempDir(), 5)
	s := newSolver(t, Options{Mask: words.ParseMask("S....", 5), CachePath: path, SaveCache: true})

	if diff := cmp.Diff([]string{"SHAFT", "SLATE"}, s.Dictionary().Texts()); diff != "" {
		t.Errorf("masked dictionary mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]words.WordID{0, 1}, s.Allowed()); diff != "" {
		t.Errorf("Allowed mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("masked solver saved a cache: %v", err)
	}
}

func TestCacheSaveAndReuse(t *testing.T) {
	path := pattern.CachePath(filepath.Join(t.TempDir(), "data"), 5)
	built := newSolver(t, Options{CachePath: path, SaveCache: true})

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(1 + len(sample)*len(sample)); info.Size() != want {
		t.Errorf("cache size = %d, want %d", info.Size(), want)
	}

	loaded := newSolver(t, Options{CachePath: path, LoadCache: true})
	if !loaded.Matrix().Equal(built.Matrix()) {
		t.Error("loaded matrix differs from built matrix")
	}

	// A mask on top of a usable cache keeps the full dictionary.
	masked := newSolver(t, Options{Mask: words.ParseMask("S....", 5), CachePath: path, LoadCache: true})
	if masked.Dictionary().Len() != len(sample) {
		t.Errorf("dictionary len = %d, want %d", masked.Dictionary().Len(), len(sample))
	}
	if diff := cmp.Diff(ids(t, masked, "SHAFT", "SLATE"), masked.Allowed()); diff != "" {
		t.Errorf("Allowed mismatch (-want +got):\n%s", diff)
	}
	if masked.IsAllowed(ids(t, masked, "CRANE")[0]) {
		t.Error("CRANE should not be allowed under S....")
	}
}

func TestCorruptCacheIsRebuilt(t *testing.T) {
	path := pattern.CachePath(t.TempDir(), 5)
	if err := os.WriteFile(path, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatal(err)
	}
	s := newSolver(t, Options{CachePath: path, LoadCache: true, SaveCache: true})
	want := pattern.Build(sample, 5, pattern.BuildOptions{})
	if !s.Matrix().Equal(want) {
		t.Error("rebuilt matrix differs")
	}
	if info, err := os.Stat(path); err != nil || info.Size() != int64(1+len(sample)*len(sample)) {
		t.Errorf("cache was not rewritten: %v", err)
	}
}

func TestCacheForOtherWordsIsRebuilt(t *testing.T) {
	path := pattern.CachePath(t.TempDir(), 5)
	newSolver(t, Options{CachePath: path, SaveCache: true})

	entries := make([]words.Entry, len(sample))
	for i, w := range sample {
		entries[i] = words.Entry{Text: w, Frequency: 1}
	}
	entries[0].Text = "ZESTY"
	d, err := words.New(5, entries)
	if err != nil {
		t.Fatal(err)
	}
	s, err := New(d, Options{Workers: 1, CachePath: path, LoadCache: true})
	if err != nil {
		t.Fatal(err)
	}
	want := pattern.Build(d.Texts(), 5, pattern.BuildOptions{})
	if !s.Matrix().Equal(want) {
		t.Error("matrix for a different word list was loaded from cache")
	}
}

func TestEmptyDictionary(t *testing.T) {
	d, _ := words.New(5, nil)
	s, err := New(d, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Allowed()) != 0 {
		t.Errorf("Allowed = %v, want empty", s.Allowed())
	}
	if _, err := s.BestChoice(s.Initial()); err != ErrExhausted {
		t.Errorf("BestChoice err = %v, want ErrExhausted", err)
	}
}

func TestPatternAndRender(t *testing.T) {
	s := newSolver(t, Options{})
	w := ids(t, s, "CRANE", "TRACE")
	p, err := s.Pattern(w[0], w[1])
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Render(Step{Guess: w[1], Pattern: p})
	if err != nil {
		t.Fatal(err)
	}
	if got != ".RAcE" {
		t.Errorf("Render = %q, want %q", got, ".RAcE")
	}
	if _, err := s.Pattern(-1, w[1]); err == nil {
		t.Error("Pattern(-1, ...) should fail")
	}
}
