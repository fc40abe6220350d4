// Package history persists past searches and their outcomes in a
// local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/cratedig/cratedig/internal/db"
)

const (
	appName    = "cratedig"
	dbFileName = "history.db"
)

// Entry is one recorded search.
type Entry struct {
	ID             int64
	Artist         string
	Album          string
	Year           int
	QueriedAt      time.Time
	QueryCount     int
	CandidateCount int
	BestUsername   string
	BestDirectory  string
	BestScore      int
	Downloaded     bool
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens the store at path; an empty path uses the XDG data
// directory.
func Open(path string) (*Store, error) {
	if path == "" {
		var err error
		path, err = xdg.DataFile(filepath.Join(appName, dbFileName))
		if err != nil {
			return nil, fmt.Errorf("resolve history path: %w", err)
		}
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return &Store{db: sqlDB}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts a completed search and returns its ID.
func (s *Store) Record(ctx context.Context, e Entry) (int64, error) {
	queriedAt := e.QueriedAt
	if queriedAt.IsZero() {
		queriedAt = time.Now()
	}

	var id int64
	err := db.WithTxContext(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			INSERT INTO searches (
				artist, album, year, queried_at, query_count,
				candidate_count, best_username, best_directory, best_score, downloaded
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			e.Artist, e.Album, nullableInt(e.Year), queriedAt.Unix(),
			e.QueryCount, e.CandidateCount,
			nullableString(e.BestUsername), nullableString(e.BestDirectory),
			nullableInt(e.BestScore), boolToInt(e.Downloaded),
		)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("record search: %w", err)
	}
	return id, nil
}

// MarkDownloaded flags an entry after its download was queued.
func (s *Store) MarkDownloaded(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, `UPDATE searches SET downloaded = 1 WHERE id = ?`, id)
	return err
}

// List returns the most recent entries, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, artist, album, year, queried_at, query_count,
		       candidate_count, best_username, best_directory, best_score, downloaded
		FROM searches
		ORDER BY queried_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			year       sql.NullInt64
			queriedAt  int64
			username   sql.NullString
			directory  sql.NullString
			score      sql.NullInt64
			downloaded int
		)
		if err := rows.Scan(
			&e.ID, &e.Artist, &e.Album, &year, &queriedAt, &e.QueryCount,
			&e.CandidateCount, &username, &directory, &score, &downloaded,
		); err != nil {
			return nil, err
		}
		e.Year = int(db.NullInt64Value(year))
		e.QueriedAt = time.Unix(queriedAt, 0)
		e.BestUsername = db.NullStringValue(username)
		e.BestDirectory = db.NullStringValue(directory)
		e.BestScore = int(db.NullInt64Value(score))
		e.Downloaded = downloaded != 0
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func nullableInt(v int) any {
	if v == 0 {
		return nil
	}
	return v
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
