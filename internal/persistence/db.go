// Package persistence provides the SQLite session recorder: a best-effort,
// write-only history of runs and their events. Gameplay state itself is
// never persisted — the simulation is fully in-memory and single-session.
// See design doc Section 10.
package persistence

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/warren/internal/session"
)

// DB wraps a SQLite connection for session history.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path, creating
// parent directories as needed.
func Open(path string) (*DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory %s: %w", dir, err)
		}
	}
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_at TEXT NOT NULL,
		finished_at TEXT,
		final_score INTEGER,
		final_lives INTEGER,
		rescued INTEGER,
		lost INTEGER,
		game_over INTEGER
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		kind TEXT NOT NULL,
		detail TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SessionRow is one recorded run.
type SessionRow struct {
	ID         string  `db:"id"`
	Seed       int64   `db:"seed"`
	StartedAt  string  `db:"started_at"`
	FinishedAt *string `db:"finished_at"`
	FinalScore *int    `db:"final_score"`
	FinalLives *int    `db:"final_lives"`
	Rescued    *int    `db:"rescued"`
	Lost       *int    `db:"lost"`
	GameOver   *bool   `db:"game_over"`
}

// RecentSessions returns the newest n recorded runs.
func (db *DB) RecentSessions(n int) ([]SessionRow, error) {
	var rows []SessionRow
	err := db.conn.Select(&rows,
		`SELECT * FROM sessions ORDER BY started_at DESC LIMIT ?`, n)
	return rows, err
}

// SessionCount returns the number of recorded runs.
func (db *DB) SessionCount() (int, error) {
	var n int
	err := db.conn.Get(&n, `SELECT COUNT(*) FROM sessions`)
	return n, err
}

// Recorder writes one session's history. All writes are best-effort: a
// recorder failure logs a warning and never disturbs gameplay.
type Recorder struct {
	db *DB
	id uuid.UUID
}

// BeginSession inserts a new session row and returns its recorder.
func (db *DB) BeginSession(seed int64) (*Recorder, error) {
	id := uuid.New()
	_, err := db.conn.Exec(
		`INSERT INTO sessions (id, seed, started_at) VALUES (?, ?, ?)`,
		id.String(), seed, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("begin session: %w", err)
	}
	return &Recorder{db: db, id: id}, nil
}

// ID returns the recorder's session identity.
func (r *Recorder) ID() uuid.UUID {
	return r.id
}

// RecordEvent appends one session event.
func (r *Recorder) RecordEvent(ev session.Event) {
	_, err := r.db.conn.Exec(
		`INSERT INTO events (session_id, tick, kind, detail) VALUES (?, ?, ?, ?)`,
		r.id.String(), ev.Tick, ev.Kind, ev.Detail)
	if err != nil {
		slog.Warn("session recorder event write failed", "error", err)
	}
}

// EventCount returns the number of events recorded for this session.
func (r *Recorder) EventCount() (int, error) {
	var n int
	err := r.db.conn.Get(&n,
		`SELECT COUNT(*) FROM events WHERE session_id = ?`, r.id.String())
	return n, err
}

// Finish stamps the session row with its outcome.
func (r *Recorder) Finish(out session.Outcome) error {
	_, err := r.db.conn.Exec(
		`UPDATE sessions
		 SET finished_at = ?, final_score = ?, final_lives = ?,
		     rescued = ?, lost = ?, game_over = ?
		 WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339),
		out.Score, out.Lives, out.Rescued, out.Lost, out.GameOver,
		r.id.String())
	if err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}
