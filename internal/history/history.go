// Package history keeps a persistent log of played tracks using SQLite.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store records playback attempts in a SQLite database.
type Store struct {
	db *sql.DB
}

// Entry is one recorded playback attempt.
type Entry struct {
	ID        int64
	TrackID   string
	Title     string
	Result    string
	StartedAt time.Time
}

// Open creates or opens the history database at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS plays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			track_id TEXT,
			title TEXT NOT NULL,
			result TEXT NOT NULL,
			started_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_started_at ON plays(started_at);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record logs one playback attempt. Satisfies playback.Recorder.
func (s *Store) Record(ctx context.Context, trackID, title, result string) error {
	query := `
		INSERT INTO plays (track_id, title, result, started_at)
		VALUES (?, ?, ?, ?)
	`

	if _, err := s.db.ExecContext(ctx, query, trackID, title, result, time.Now().Unix()); err != nil {
		return fmt.Errorf("failed to insert play: %w", err)
	}

	return nil
}

// Recent returns the most recent entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, COALESCE(track_id, ''), title, result, started_at
		FROM plays
		ORDER BY started_at DESC, id DESC
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query plays: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var startedUnix int64

		if err := rows.Scan(&e.ID, &e.TrackID, &e.Title, &e.Result, &startedUnix); err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}

		e.StartedAt = time.Unix(startedUnix, 0)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating plays: %w", err)
	}

	return entries, nil
}

// Clear removes all recorded plays and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM plays")
	if err != nil {
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// Count returns the number of recorded plays.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM plays").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count plays: %w", err)
	}

	return count, nil
}
