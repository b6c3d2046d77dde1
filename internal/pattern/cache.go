// internal/pattern/cache.go
//
// Binary pattern cache.
// Layout:
//   byte 0      bytesPerEntry, the smallest width in 1..4 with 2^(8*width) >= 3^L
//   N*N entries little-endian unsigned integers of that width, entry[secret + guess*N]
//
// A cache is only valid for the unmasked dictionary it was generated from.
// SaveFile writes a `<path>.sum` file next to it holding the SHA-256 digest of
// the sorted word list, and LoadFile refuses a cache whose digest differs.
// Readers reject anything that does not match exactly; callers treat every
// failure as a miss and rebuild.

package pattern

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrCache = errors.New("pattern: cache invalid")

// BytesPerEntry returns the narrowest little-endian width able to hold
// every pattern of the given length.
func BytesPerEntry(length int) int {
	need := uint64(Count(length))
	for b := 1; b <= 4; b++ {
		if uint64(1)<<(8*b) >= need {
			return b
		}
	}
	return 4
}

// CachePath returns the conventional cache file for a word length.
func CachePath(dir string, length int) string {
	return filepath.Join(dir, fmt.Sprintf("words-%d-patterns.cache.bin", length))
}

// WriteTo serialises the matrix in cache layout.
func (m *Matrix) WriteTo(w io.Writer) (int64, error) {
	width := BytesPerEntry(m.length)
	bw := bufio.NewWriter(w)
	if err := bw.WriteByte(byte(width)); err != nil {
		return 0, err
	}
	written := int64(1)
	var buf [4]byte
	for _, p := range m.cells {
		v := uint32(p)
		for i := 0; i < width; i++ {
			buf[i] = byte(v >> (8 * i))
		}
		if _, err := bw.Write(buf[:width]); err != nil {
			return written, err
		}
		written += int64(width)
	}
	return written, bw.Flush()
}

// ReadMatrix decodes a cache for n words of the given length.
func ReadMatrix(r io.Reader, n, length int) (*Matrix, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header: %v", ErrCache, err)
	}
	width := int(header)
	if width < 1 || width > 4 || uint64(1)<<(8*width) < uint64(Count(length)) {
		return nil, fmt.Errorf("%w: width %d cannot hold %d patterns", ErrCache, width, Count(length))
	}

	m := &Matrix{n: n, length: length, cells: make([]Pattern, n*n)}
	limit := Count(length)
	buf := make([]byte, width)
	for i := range m.cells {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: truncated at entry %d of %d", ErrCache, i, n*n)
		}
		var v uint32
		for k := width - 1; k >= 0; k-- {
			v = v<<8 | uint32(buf[k])
		}
		if v >= limit {
			return nil, fmt.Errorf("%w: entry %d = %d exceeds %d", ErrCache, i, v, limit-1)
		}
		m.cells[i] = Pattern(v)
	}
	if _, err := br.ReadByte(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after %d entries", ErrCache, n*n)
	}

	correct := AllCorrect(length)
	for i := 0; i < n; i++ {
		if m.cells[i+i*n] != correct {
			return nil, fmt.Errorf("%w: diagonal entry %d is not all-correct", ErrCache, i)
		}
	}
	return m, nil
}

// Digest fingerprints a word list in the order given.
func Digest(texts []string) string {
	h := sha256.New()
	for _, t := range texts {
		io.WriteString(h, t)
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func digestPath(path string) string { return path + ".sum" }

// LoadFile reads the cache at path built for texts.
func LoadFile(path string, texts []string, length int) (*Matrix, error) {
	sum, err := os.ReadFile(digestPath(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCache, err)
	}
	if string(bytes.TrimSpace(sum)) != Digest(texts) {
		return nil, fmt.Errorf("%w: built for a different word list", ErrCache)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCache, err)
	}
	defer f.Close()
	return ReadMatrix(f, len(texts), length)
}

// SaveFile writes the matrix built for texts to path, then its digest file.
// Both are written atomically (temp file + rename).
func SaveFile(path string, m *Matrix, texts []string) error {
	if len(texts) != m.n {
		return fmt.Errorf("save cache: %d words for a matrix of %d", len(texts), m.n)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	if err := writeAtomic(path, func(w io.Writer) error {
		_, err := m.WriteTo(w)
		return err
	}); err != nil {
		return err
	}
	return writeAtomic(digestPath(path), func(w io.Writer) error {
		_, err := io.WriteString(w, Digest(texts)+"\n")
		return err
	})
}

func writeAtomic(path string, write func(io.Writer) error) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}
