// internal/history/store.go
//
// Run history: one row per finished game, whether self-played by the
// simulator or played through the HTTP game endpoints.

package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Run is one finished game.
type Run struct {
	ID         int64     `json:"id"`
	Source     string    `json:"source"` // "simulate" | "game"
	WordLength int       `json:"wordLength"`
	Mask       string    `json:"mask"`
	Secret     string    `json:"secret"`
	Steps      int       `json:"steps"`
	Won        bool      `json:"won"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Summary aggregates runs for one (word length, mask).
type Summary struct {
	Runs         int     `json:"runs"`
	Wins         int     `json:"wins"`
	AverageSteps float64 `json:"averageSteps"`
}

// MaxRecent caps the rows Recent returns.
const MaxRecent = 500

// Store reads and writes runs.
type Store struct{ db *sql.DB }

// Open opens the database at path and applies migrations.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }

// Record inserts a run and returns its ID.
func (s *Store) Record(ctx context.Context, r Run) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT INTO runs (source, word_length, mask, secret, steps, won)
        VALUES (?, ?, ?, ?, ?, ?)`,
		r.Source, r.WordLength, r.Mask, r.Secret, r.Steps, r.Won,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	return res.LastInsertId()
}

// Summary aggregates every run for the word length and mask.
// Average steps only counts won runs.
func (s *Store) Summary(ctx context.Context, wordLength int, mask string) (Summary, error) {
	var out Summary
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
        SELECT COUNT(1),
               COALESCE(SUM(won), 0),
               AVG(CASE WHEN won = 1 THEN steps END)
        FROM runs
        WHERE word_length=? AND mask=?`, wordLength, mask,
	).Scan(&out.Runs, &out.Wins, &avg)
	if err != nil {
		return Summary{}, err
	}
	out.AverageSteps = avg.Float64
	return out, nil
}

// Recent returns the latest runs, newest first. Default limit is 20, at most
// MaxRecent rows are returned.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	limit = min(limit, MaxRecent)
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, source, word_length, mask, secret, steps, won, created_at
        FROM runs
        ORDER BY id DESC
        LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		var r Run
		var created string
		if err := rows.Scan(&r.ID, &r.Source, &r.WordLength, &r.Mask, &r.Secret, &r.Steps, &r.Won, &created); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, r)
	}
	return out, rows.Err()
}
