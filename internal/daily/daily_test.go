package daily

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	d := time.Date(2024, 3, 2, 5, 0, 0, 0, loc) // 2024-03-01 19:00 UTC
	if got := DateKey(d); got != "2024-03-01" {
		t.Errorf("DateKey = %q, want 2024-03-01", got)
	}
}

func TestWordIndex(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if WordIndex(day, "salt", 0) != 0 {
		t.Error("WordIndex with n=0 should be 0")
	}
	seen := map[int]bool{}
	for i := 0; i < 60; i++ {
		d := day.AddDate(0, 0, i)
		idx := WordIndex(d, "salt", 97)
		if idx < 0 || idx >= 97 {
			t.Fatalf("WordIndex = %d out of range", idx)
		}
		if again := WordIndex(d.Add(23*time.Hour), "salt", 97); again != idx {
			t.Errorf("%s: index changed within the day (%d, %d)", DateKey(d), idx, again)
		}
		seen[idx] = true
	}
	if len(seen) < 10 {
		t.Errorf("only %d distinct indices over 60 days", len(seen))
	}
}
