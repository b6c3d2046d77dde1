// internal/pattern/matrix.go
//
// All-pairs pattern table.
// Responsibilities:
//   - Build matrix[secret][guess] for every ordered pair of words, in parallel.
//   - Serve bounds-checked lookups from a flat buffer indexed secret + guess*N.
//
// Notes:
//   - Built once, read-only afterwards; safe for concurrent readers.
//   - Each build worker owns whole guess columns, so writes never overlap.

package pattern

import (
	"fmt"
	"sync"

	"github.com/robalobadob/wordle-solver/internal/words"
)

// Matrix holds the pattern of every (secret, guess) pair.
type Matrix struct {
	n      int
	length int
	cells  []Pattern
}

// BuildOptions tunes Build.
type BuildOptions struct {
	// Workers is the number of goroutines; values below 1 mean 1.
	Workers int
	// Progress, when set, is called once per finished guess column.
	// Calls are serialised.
	Progress func(done, total int)
}

// Build computes the matrix for texts, which must all have the given length.
func Build(texts []string, length int, opts BuildOptions) *Matrix {
	n := len(texts)
	m := &Matrix{n: n, length: length, cells: make([]Pattern, n*n)}
	if n == 0 {
		return m
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var (
		mu   sync.Mutex
		done int
		wg   sync.WaitGroup
	)
	columns := make(chan int, workers)
	correct := AllCorrect(length)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for g := range columns {
				col := m.cells[g*n : (g+1)*n]
				guess := texts[g]
				for s := range col {
					if s == g {
						col[s] = correct
						continue
					}
					col[s] = Compute(texts[s], guess)
				}
				if opts.Progress != nil {
					mu.Lock()
					done++
					opts.Progress(done, n)
					mu.Unlock()
				}
			}
		}()
	}
	for g := 0; g < n; g++ {
		columns <- g
	}
	close(columns)
	wg.Wait()
	return m
}

// Size is the number of words on each side.
func (m *Matrix) Size() int { return m.n }

// Length is the word length the matrix was built for.
func (m *Matrix) Length() int { return m.length }

// At returns the pattern produced by guess when secret is the answer.
// An index outside [0, Size) is a caller bug and panics.
func (m *Matrix) At(secret, guess words.WordID) Pattern {
	if secret < 0 || int(secret) >= m.n || guess < 0 || int(guess) >= m.n {
		panic(fmt.Sprintf("pattern: matrix index (%d, %d) out of range for size %d", secret, guess, m.n))
	}
	return m.cells[int(secret)+int(guess)*m.n]
}

// Column returns the patterns of guess against every secret, indexed by
// secret. The slice aliases the matrix and must not be modified.
func (m *Matrix) Column(guess words.WordID) []Pattern {
	if guess < 0 || int(guess) >= m.n {
		panic(fmt.Sprintf("pattern: matrix column %d out of range for size %d", guess, m.n))
	}
	return m.cells[int(guess)*m.n : (int(guess)+1)*m.n]
}

// Equal reports whether both matrices hold identical tables.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.n != o.n || m.length != o.length {
		return false
	}
	for i, p := range m.cells {
		if o.cells[i] != p {
			return false
		}
	}
	return true
}
