package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/color-lines/game/engine"
	"github.com/wricardo/color-lines/game/service"
)

// Seeds are stored as decimal text; SQLite integers are signed 64-bit.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sessions (
	id               TEXT PRIMARY KEY,
	config_name      TEXT NOT NULL,
	config           TEXT NOT NULL,
	seed             TEXT NOT NULL,
	moves            TEXT NOT NULL,
	score            INTEGER NOT NULL DEFAULT 0,
	game_over        INTEGER NOT NULL DEFAULT 0,
	created_at       INTEGER NOT NULL,
	last_accessed_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS results (
	id          TEXT PRIMARY KEY,
	session_id  TEXT NOT NULL UNIQUE,
	config_name TEXT NOT NULL,
	seed        TEXT NOT NULL,
	score       INTEGER NOT NULL,
	moves       INTEGER NOT NULL,
	finished_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS results_score ON results(score DESC, finished_at ASC);
`

// SQLitePersistence implements SessionPersistence and service.ResultStore on
// a SQLite database
type SQLitePersistence struct {
	db            *sql.DB
	configManager service.ConfigManager
}

// NewSQLitePersistence opens (and creates if missing) the database at dsn
// and applies the schema
func NewSQLitePersistence(dsn string, configManager service.ConfigManager) (*SQLitePersistence, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	log.Debug().Str("dsn", dsn).Msg("sqlite session store ready")

	return &SQLitePersistence{db: db, configManager: configManager}, nil
}

// openDB opens a SQLite file with busy timeout and WAL journaling
func openDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite3", dsn+sep+"_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	// One connection keeps ":memory:" databases shared and writes serialized.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	return db, nil
}

// Close closes the database
func (sp *SQLitePersistence) Close() error {
	return sp.db.Close()
}

// Save upserts a session row
func (sp *SQLitePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}
	data := newPersistedData(session)

	configJSON, err := json.Marshal(data.Config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	movesJSON, err := json.Marshal(data.Moves)
	if err != nil {
		return fmt.Errorf("failed to marshal moves: %w", err)
	}

	_, err = sp.db.Exec(`
		INSERT INTO sessions
			(id, config_name, config, seed, moves, score, game_over, created_at, last_accessed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			config_name = excluded.config_name,
			config = excluded.config,
			seed = excluded.seed,
			moves = excluded.moves,
			score = excluded.score,
			game_over = excluded.game_over,
			last_accessed_at = excluded.last_accessed_at`,
		data.ID, data.ConfigName, string(configJSON), strconv.FormatUint(data.Seed, 10), string(movesJSON),
		data.GameState.Score, data.GameState.GameOver,
		data.CreatedAt.UnixNano(), data.LastAccessedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", data.ID, err)
	}
	return nil
}

// Load reads a session row and replays it
func (sp *SQLitePersistence) Load(id string) (*service.Session, error) {
	var (
		data                  PersistedSessionData
		configJSON, movesJSON string
		seed                  string
		score                 int
		gameOver              bool
		createdAt, accessedAt int64
	)

	err := sp.db.QueryRow(`
		SELECT id, config_name, config, seed, moves, score, game_over, created_at, last_accessed_at
		FROM sessions WHERE id = ?`, id,
	).Scan(&data.ID, &data.ConfigName, &configJSON, &seed, &movesJSON, &score, &gameOver, &createdAt, &accessedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(configJSON), &data.Config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := json.Unmarshal([]byte(movesJSON), &data.Moves); err != nil {
		return nil, fmt.Errorf("failed to unmarshal moves: %w", err)
	}
	if data.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("bad seed %q: %w", seed, err)
	}
	data.CreatedAt = time.Unix(0, createdAt)
	data.LastAccessedAt = time.Unix(0, accessedAt)
	data.GameState = &engine.GameState{Score: score, GameOver: gameOver}

	return restore(&data, sp.configManager)
}

// Delete removes a session row
func (sp *SQLitePersistence) Delete(id string) error {
	res, err := sp.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListAll returns all persisted session IDs
func (sp *SQLitePersistence) ListAll() ([]string, error) {
	rows, err := sp.db.Query(`SELECT id FROM sessions ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Exists checks if a session row exists
func (sp *SQLitePersistence) Exists(id string) bool {
	ok, _ := sp.Lookup(id)
	return ok
}

// Lookup checks for a session row. Only a missing row reports false without
// an error.
func (sp *SQLitePersistence) Lookup(id string) (bool, error) {
	var one int
	err := sp.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?`, id).Scan(&one)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, fmt.Errorf("lookup session %s: %w", id, err)
	}
}

// RecordResult stores a finished game. A session is recorded once; later
// calls for the same session are ignored.
func (sp *SQLitePersistence) RecordResult(result *service.GameResult) error {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	if result.FinishedAt.IsZero() {
		result.FinishedAt = time.Now()
	}

	_, err := sp.db.Exec(`
		INSERT OR IGNORE INTO results
			(id, session_id, config_name, seed, score, moves, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		result.ID, result.SessionID, result.ConfigName, strconv.FormatUint(result.Seed, 10),
		result.Score, result.Moves, result.FinishedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to record result for %s: %w", result.SessionID, err)
	}
	return nil
}

// TopScores returns the best finished games, highest score first. Ties go
// to the earlier game. A limit of 0 or less means 10.
func (sp *SQLitePersistence) TopScores(limit int) ([]*service.GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := sp.db.Query(`
		SELECT id, session_id, config_name, seed, score, moves, finished_at
		FROM results
		ORDER BY score DESC, finished_at ASC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	out := make([]*service.GameResult, 0, limit)
	for rows.Next() {
		var (
			r          service.GameResult
			seed       string
			finishedAt int64
		)
		if err := rows.Scan(&r.ID, &r.SessionID, &r.ConfigName, &seed, &r.Score, &r.Moves, &finishedAt); err != nil {
			return nil, err
		}
		if r.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
			return nil, fmt.Errorf("bad seed %q: %w", seed, err)
		}
		r.FinishedAt = time.Unix(0, finishedAt)
		out = append(out, &r)
	}
	return out, rows.Err()
}
