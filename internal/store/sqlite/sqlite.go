// Package sqlite implements the store driver on an embedded SQLite
// database. It is the default backend and requires no external server.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Register the pure-Go SQLite driver.
	_ "modernc.org/sqlite"
)

// timeLayout is a fixed-width UTC layout so stored timestamps compare
// correctly as strings in SQL.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// DB implements store.Driver backed by SQLite.
type DB struct {
	db *sql.DB
}

// NewDB opens (creating if needed) the SQLite database at path and applies
// the schema.
func NewDB(ctx context.Context, path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	// SQLite tolerates a single writer; keep the pool at one connection so
	// concurrent callers queue instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	d := &DB{db: db}
	if err := d.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			last_updated TEXT NOT NULL,
			experience_years INTEGER,
			technical_field TEXT,
			current_role TEXT,
			skill_levels TEXT,
			profile_data TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			session_id TEXT PRIMARY KEY,
			user_id TEXT,
			created_at TEXT NOT NULL,
			completed_at TEXT,
			status TEXT,
			target_company TEXT,
			target_role TEXT,
			difficulty_level TEXT,
			session_data TEXT,
			FOREIGN KEY (user_id) REFERENCES user_profiles (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS performance_metrics (
			metric_id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			recorded_at TEXT NOT NULL,
			category TEXT,
			metric_name TEXT,
			metric_value REAL,
			additional_data TEXT,
			FOREIGN KEY (session_id) REFERENCES sessions (session_id),
			FOREIGN KEY (user_id) REFERENCES user_profiles (user_id)
		)`,
		`CREATE TABLE IF NOT EXISTS learning_adaptations (
			adaptation_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			session_id TEXT NOT NULL,
			created_at TEXT NOT NULL,
			adaptation_type TEXT,
			previous_value TEXT,
			new_value TEXT,
			reason TEXT,
			effectiveness_score REAL,
			adaptation_data TEXT,
			FOREIGN KEY (user_id) REFERENCES user_profiles (user_id),
			FOREIGN KEY (session_id) REFERENCES sessions (session_id)
		)`,
		`CREATE TABLE IF NOT EXISTS question_performance (
			performance_id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			user_id TEXT NOT NULL,
			question_id TEXT,
			question_type TEXT,
			question_difficulty TEXT,
			topic_area TEXT,
			response_time_seconds INTEGER,
			accuracy_score REAL,
			completeness_score REAL,
			communication_score REAL,
			question_data TEXT,
			response_data TEXT,
			FOREIGN KEY (session_id) REFERENCES sessions (session_id),
			FOREIGN KEY (user_id) REFERENCES user_profiles (user_id)
		)`,
	}

	for _, statement := range statements {
		if _, err := d.db.ExecContext(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
