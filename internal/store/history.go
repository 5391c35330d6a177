package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Entry is one recorded search.
type Entry struct {
	ID          string    `json:"id"`
	Seq         int64     `json:"seq"`
	Query       string    `json:"query"`
	Scope       string    `json:"scope,omitempty"`
	ResultCount int       `json:"result_count"`
	ErrorCode   string    `json:"error_code,omitempty"`
	Corpus      string    `json:"corpus,omitempty"`
	RecordedAt  time.Time `json:"recorded_at"`
}

// Failed reports whether the search was rejected by the parser.
func (e Entry) Failed() bool {
	return e.ErrorCode != ""
}

// QueryCount is a query text with how often it was searched.
type QueryCount struct {
	Query string `json:"query"`
	Count int    `json:"count"`
}

// Record appends a search to the log and returns it with ID, Seq and
// RecordedAt filled in. A non-empty e.ID is kept; writing the same ID twice
// is a no-op that returns the stored entry.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = s.newID()
	}
	if e.RecordedAt.IsZero() {
		e.RecordedAt = s.now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches
		(id, seq, query, scope, result_count, error_code, corpus, recorded_at)
		VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM searches), ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.Query,
		e.Scope,
		e.ResultCount,
		e.ErrorCode,
		e.Corpus,
		e.RecordedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("record search: %w", err)
	}

	stored, err := s.get(ctx, e.ID)
	if err != nil {
		return Entry{}, fmt.Errorf("record search: %w", err)
	}
	return stored, nil
}

func (s *Store) get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, query, scope, result_count, error_code, corpus, recorded_at
		FROM searches
		WHERE id = ?
	`, id)
	return scanEntry(row)
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, query, scope, result_count, error_code, corpus, recorded_at
		FROM searches
		ORDER BY seq DESC, id DESC COLLATE BINARY
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent searches: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recent searches: %w", err)
	}
	return entries, nil
}

// TopQueries returns the most searched query texts that parsed
// successfully. Ties are broken by which query was first searched.
func (s *Store) TopQueries(ctx context.Context, limit int) ([]QueryCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT query, COUNT(*) AS n
		FROM searches
		WHERE error_code = ''
		GROUP BY query
		ORDER BY n DESC, MIN(seq) ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top searches: %w", err)
	}
	defer rows.Close()

	counts := []QueryCount{}
	for rows.Next() {
		var qc QueryCount
		if err := rows.Scan(&qc.Query, &qc.Count); err != nil {
			return nil, fmt.Errorf("scan top search: %w", err)
		}
		counts = append(counts, qc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top searches: %w", err)
	}
	return counts, nil
}

// Count returns the number of recorded searches.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM searches").Scan(&n); err != nil {
		return 0, fmt.Errorf("count searches: %w", err)
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		e          Entry
		recordedAt string
	)
	err := row.Scan(&e.ID, &e.Seq, &e.Query, &e.Scope, &e.ResultCount, &e.ErrorCode, &e.Corpus, &recordedAt)
	if err == sql.ErrNoRows {
		return Entry{}, fmt.Errorf("search entry not found: %w", err)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("scan search entry: %w", err)
	}
	e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
	}
	return e, nil
}
