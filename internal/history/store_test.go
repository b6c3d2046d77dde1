package history

import (
	"context"
	"math"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndSummary(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	runs := []Run{
		{Source: "simulate", WordLength: 5, Secret: "CRANE", Steps: 3, Won: true},
		{Source: "simulate", WordLength: 5, Secret: "SLATE", Steps: 4, Won: true},
		{Source: "game", WordLength: 5, Secret: "TRACE", Steps: 6, Won: false},
		{Source: "simulate", WordLength: 5, Mask: "S....", Secret: "SHAFT", Steps: 2, Won: true},
	}
	for _, r := range runs {
		if _, err := s.Record(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	sum, err := s.Summary(ctx, 5, "")
	if err != nil {
		t.Fatal(err)
	}
	if sum.Runs != 3 || sum.Wins != 2 || math.Abs(sum.AverageSteps-3.5) > 1e-9 {
		t.Errorf("Summary = %+v, want 3 runs, 2 wins, 3.5 steps", sum)
	}

	empty, err := s.Summary(ctx, 6, "")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Summary{}, empty); diff != "" {
		t.Errorf("empty Summary mismatch (-want +got):\n%s", diff)
	}
}

func TestRecent(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	for _, secret := range []string{"CRANE", "SLATE", "TRACE"} {
		if _, err := s.Record(ctx, Run{Source: "game", WordLength: 5, Secret: secret, Steps: 4, Won: true}); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	want := []Run{
		{ID: 3, Source: "game", WordLength: 5, Secret: "TRACE", Steps: 4, Won: true},
		{ID: 2, Source: "game", WordLength: 5, Secret: "SLATE", Steps: 4, Won: true},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(Run{}, "CreatedAt")); diff != "" {
		t.Errorf("Recent mismatch (-want +got):\n%s", diff)
	}
	for _, r := range got {
		if r.CreatedAt.IsZero() {
			t.Errorf("run %d has no creation time", r.ID)
		}
	}
}

func TestRecentHugeLimit(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)
	empty, err := s.Recent(ctx, 1<<60)
	if err != nil {
		t.Fatal(err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Recent on empty history = %#v, want empty slice", empty)
	}

	if _, err := s.Record(ctx, Run{Source: "simulate", WordLength: 5, Secret: "CRANE", Steps: 3, Won: true}); err != nil {
		t.Fatal(err)
	}
	got, err := s.Recent(ctx, math.MaxInt)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Secret != "CRANE" {
		t.Errorf("Recent(MaxInt) = %+v, want the single CRANE run", got)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open #%d: %v", i+1, err)
		}
		s.Close()
	}
}
