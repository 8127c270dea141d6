// Package storage provides SQLite-based persistence for game replays.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/arkanoid/internal/core"
)

// ErrNotFound is returned when a replay does not exist.
var ErrNotFound = errors.New("storage: replay not found")

// Store manages the SQLite database connection for the replay journal.
type Store struct {
	db *sql.DB
}

// ReplayRecord is one journaled game: the constants and seed it ran with,
// the intents applied to it and how it ended.
type ReplayRecord struct {
	ID         int64
	Seed       int64
	Difficulty string
	ConfigYAML []byte // full game configuration the session was built from
	Result     string // "won" or "lost"
	Score      int
	Total      int
	Ticks      uint64
	Inputs     []core.InputEvent
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		PRAGMA foreign_keys = ON;

		CREATE TABLE IF NOT EXISTS replays (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seed INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			config_yaml TEXT NOT NULL,
			result TEXT NOT NULL,
			score INTEGER NOT NULL,
			total INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);

		CREATE TABLE IF NOT EXISTS replay_inputs (
			replay_id INTEGER NOT NULL REFERENCES replays(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			tick INTEGER NOT NULL,
			action TEXT NOT NULL,
			PRIMARY KEY (replay_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay journals a finished game and its inputs in one transaction.
// Returns the ID of the inserted replay.
func (s *Store) SaveReplay(ctx context.Context, r ReplayRecord) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO replays (seed, difficulty, config_yaml, result, score, total, ticks)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Seed, r.Difficulty, string(r.ConfigYAML), r.Result, r.Score, r.Total,
		int64(r.Ticks), //#nosec G115 -- tick counts stay far below 2^63
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save replay: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO replay_inputs (replay_id, seq, tick, action) VALUES (?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare input insert: %w", err)
	}
	defer stmt.Close()

	for i, in := range r.Inputs {
		if _, err := stmt.ExecContext(ctx, id, i,
			int64(in.Tick), //#nosec G115 -- tick counts stay far below 2^63
			in.Action.String(),
		); err != nil {
			return 0, fmt.Errorf("storage: cannot save input %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit replay: %w", err)
	}
	return id, nil
}

// Replay retrieves a replay and its inputs by ID.
func (s *Store) Replay(ctx context.Context, id int64) (*ReplayRecord, error) {
	var r ReplayRecord
	var ticks int64
	var cfg string
	var createdAt any

	err := s.db.QueryRowContext(ctx,
		`SELECT id, seed, difficulty, config_yaml, result, score, total, ticks, created_at
		 FROM replays
		 WHERE id = ?`,
		id,
	).Scan(&r.ID, &r.Seed, &r.Difficulty, &cfg, &r.Result, &r.Score, &r.Total, &ticks, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("replay %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	r.ConfigYAML = []byte(cfg)
	r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	r.CreatedAt = parseTime(createdAt)

	inputs, err := s.inputs(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Inputs = inputs

	return &r, nil
}

func (s *Store) inputs(ctx context.Context, id int64) ([]core.InputEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tick, action
		 FROM replay_inputs
		 WHERE replay_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query inputs: %w", err)
	}
	defer rows.Close()

	var inputs []core.InputEvent
	for rows.Next() {
		var tick int64
		var name string
		if err := rows.Scan(&tick, &name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		action, err := core.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("storage: replay %d: %w", id, err)
		}
		inputs = append(inputs, core.InputEvent{
			Tick:   uint64(tick), //#nosec G115 -- stored from a uint64
			Action: action,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return inputs, nil
}

// ListReplays retrieves the most recent replays without their inputs.
// Results are ordered newest first.
func (s *Store) ListReplays(ctx context.Context, limit int) ([]ReplayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed, difficulty, result, score, total, ticks, created_at
		 FROM replays
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var records []ReplayRecord
	for rows.Next() {
		var r ReplayRecord
		var ticks int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Seed, &r.Difficulty, &r.Result, &r.Score, &r.Total, &ticks, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// DeleteReplay removes a replay and its inputs.
func (s *Store) DeleteReplay(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("replay %d: %w", id, ErrNotFound)
	}
	// Inputs go with the replay through ON DELETE CASCADE; clear them
	// explicitly in case the connection has foreign keys disabled.
	if _, err := s.db.ExecContext(ctx, "DELETE FROM replay_inputs WHERE replay_id = ?", id); err != nil {
		return fmt.Errorf("storage: cannot delete inputs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
