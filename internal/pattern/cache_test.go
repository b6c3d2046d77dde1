package pattern

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestBytesPerEntry(t *testing.T) {
	tests := []struct{ length, want int }{
		{1, 1}, {5, 1}, {6, 2}, {10, 2}, {11, 3}, {12, 3},
	}
	for _, tt := range tests {
		if got := BytesPerEntry(tt.length); got != tt.want {
			t.Errorf("BytesPerEntry(%d) = %d, want %d", tt.length, got, tt.want)
		}
	}
}

func encode(t *testing.T, m *Matrix) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := m.WriteTo(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if int(n) != buf.Len() {
		t.Fatalf("WriteTo reported %d bytes, wrote %d", n, buf.Len())
	}
	return buf.Bytes()
}

func TestCacheRoundTrip(t *testing.T) {
	m := Build(sample, 5, BuildOptions{Workers: 2})
	data := encode(t, m)
	if want := 1 + len(sample)*len(sample); len(data) != want {
		t.Fatalf("encoded %d bytes, want %d", len(data), want)
	}
	if data[0] != 1 {
		t.Errorf("width byte = %d, want 1", data[0])
	}
	got, err := ReadMatrix(bytes.NewReader(data), len(sample), 5)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(m) {
		t.Error("decoded matrix differs")
	}
}

func TestCacheRoundTripWide(t *testing.T) {
	texts := []string{"ABCDEF", "FEDCBA", "AAAAAA"}
	m := Build(texts, 6, BuildOptions{})
	data := encode(t, m)
	if data[0] != 2 || len(data) != 1+2*9 {
		t.Fatalf("width/len = %d/%d, want 2/%d", data[0], len(data), 1+2*9)
	}
	got, err := ReadMatrix(bytes.NewReader(data), 3, 6)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(m) {
		t.Error("decoded matrix differs")
	}
}

func TestCacheRejects(t *testing.T) {
	m := Build(sample, 5, BuildOptions{})
	good := encode(t, m)
	n := len(sample)

	mutate := func(f func([]byte) []byte) []byte {
		return f(append([]byte(nil), good...))
	}
	tests := []struct {
		name string
		data []byte
		n    int
	}{
		{"empty", nil, n},
		{"truncated", good[:len(good)-1], n},
		{"trailing", mutate(func(b []byte) []byte { return append(b, 0) }), n},
		{"zero width", mutate(func(b []byte) []byte { b[0] = 0; return b }), n},
		{"wide width", mutate(func(b []byte) []byte { b[0] = 5; return b }), n},
		{"entry out of range", mutate(func(b []byte) []byte { b[1+1] = 243; return b }), n},
		{"bad diagonal", mutate(func(b []byte) []byte { b[1] = 0; return b }), n},
		{"more words", good, n + 1},
		{"fewer words", good, n - 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadMatrix(bytes.NewReader(tt.data), tt.n, 5); !errors.Is(err, ErrCache) {
				t.Errorf("err = %v, want ErrCache", err)
			}
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := CachePath(filepath.Join(t.TempDir(), "nested"), 5)
	m := Build(sample, 5, BuildOptions{Workers: 2})
	if err := SaveFile(path, m, sample); err != nil {
		t.Fatal(err)
	}
	for _, leftover := range []string{path + ".tmp", path + ".sum.tmp"} {
		if _, err := os.Stat(leftover); !os.IsNotExist(err) {
			t.Errorf("temp file %s left behind: %v", leftover, err)
		}
	}
	got, err := LoadFile(path, sample, 5)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(m) {
		t.Error("loaded matrix differs")
	}
	if _, err := LoadFile(path+".missing", sample, 5); !errors.Is(err, ErrCache) {
		t.Errorf("missing file err = %v, want ErrCache", err)
	}
	if err := SaveFile(path, m, sample[:3]); err == nil {
		t.Error("SaveFile with a mismatched word list should fail")
	}
}

func TestLoadFileRejectsOtherWordList(t *testing.T) {
	path := CachePath(t.TempDir(), 5)
	m := Build(sample, 5, BuildOptions{Workers: 1})
	if err := SaveFile(path, m, sample); err != nil {
		t.Fatal(err)
	}

	// Same size, one word swapped: the matrix itself would still pass every
	// structural check.
	other := append([]string(nil), sample...)
	other[len(other)-1] = "TRAIN"
	if _, err := LoadFile(path, other, 5); !errors.Is(err, ErrCache) {
		t.Errorf("other word list err = %v, want ErrCache", err)
	}

	if err := os.Remove(path + ".sum"); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path, sample, 5); !errors.Is(err, ErrCache) {
		t.Errorf("missing digest err = %v, want ErrCache", err)
	}
}

func TestDigest(t *testing.T) {
	if Digest(sample) != Digest(append([]string(nil), sample...)) {
		t.Error("Digest is not deterministic")
	}
	if Digest([]string{"AB", "C"}) == Digest([]string{"A", "BC"}) {
		t.Error("Digest ignores word boundaries")
	}
}
