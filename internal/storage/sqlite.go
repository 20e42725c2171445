// Package storage provides SQLite-based persistence for run scores and
// saved levels. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/color-dash/internal/level"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Ensure Store can back the level list.
var _ level.Store = (*Store)(nil)

// ScoreEntry represents a single finished run.
type ScoreEntry struct {
	ID        int64
	LevelID   string
	Distance  int
	CreatedAt time.Time
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

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			distance INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_level_id ON scores(level_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(level_id, distance DESC);

		CREATE TABLE IF NOT EXISTS levels (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			position INTEGER NOT NULL,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// parseTime handles both time.Time and string DATETIME values.
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

// SaveScore records the final distance of a run on the given level.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(levelID string, distance int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (level_id, distance) VALUES (?, ?)",
		levelID, distance,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

func (s *Store) queryScores(query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.LevelID, &e.Distance, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// TopScores retrieves the top N runs for the given level.
// Results are ordered by distance descending.
func (s *Store) TopScores(levelID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(
		`SELECT id, level_id, distance, created_at
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY distance DESC
		 LIMIT ?`,
		levelID, limit,
	)
}

// AllScores retrieves all runs for the given level (no limit).
func (s *Store) AllScores(levelID string) ([]ScoreEntry, error) {
	return s.queryScores(
		`SELECT id, level_id, distance, created_at
		 FROM scores
		 WHERE level_id = ?
		 ORDER BY distance DESC`,
		levelID,
	)
}

// HighScore returns the best distance for the given level.
// Returns 0 if no scores exist.
func (s *Store) HighScore(levelID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(distance) FROM scores WHERE level_id = ?",
		levelID,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// BestOverall returns the best distance across all levels.
func (s *Store) BestOverall() (int, error) {
	var best sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(distance) FROM scores").Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !best.Valid {
		return 0, nil
	}
	return int(best.Int64), nil
}

// ClearScores deletes all scores for the given level. An empty id clears
// every level.
func (s *Store) ClearScores(levelID string) error {
	var err error
	if levelID == "" {
		_, err = s.db.Exec("DELETE FROM scores")
	} else {
		_, err = s.db.Exec("DELETE FROM scores WHERE level_id = ?", levelID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID    string
	Runs       int
	Best       int
	Average    float64
	Total      int64
	LastPlayed time.Time
}

// GetLevelStats retrieves aggregated statistics for a specific level.
func (s *Store) GetLevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(distance), 0), COALESCE(AVG(distance), 0), COALESCE(SUM(distance), 0)
		 FROM scores WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Best, &stats.Average, &stats.Total)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE level_id = ? ORDER BY created_at DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllLevelStats retrieves statistics for every level that has been played.
func (s *Store) GetAllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), MAX(distance), AVG(distance), SUM(distance), MAX(created_at)
		 FROM scores
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Runs, &st.Best, &st.Average, &st.Total, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// LoadLevels returns the saved levels in their saved order.
func (s *Store) LoadLevels() ([]level.Level, error) {
	rows, err := s.db.Query("SELECT id, payload FROM levels ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query levels: %w", err)
	}
	defer rows.Close()

	var levels []level.Level
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("storage: cannot scan level: %w", err)
		}
		decoded, err := level.DecodeJSON([]byte(payload))
		if err != nil {
			return nil, fmt.Errorf("storage: level %s: %w", id, err)
		}
		levels = append(levels, decoded...)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return levels, nil
}

// SaveLevels replaces the saved level list in a single transaction.
func (s *Store) SaveLevels(levels []level.Level) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback() //nolint:errcheck
		}
	}()

	if _, err = tx.Exec("DELETE FROM levels"); err != nil {
		return fmt.Errorf("storage: cannot clear levels: %w", err)
	}

	for i, l := range levels {
		payload, merr := json.Marshal(l)
		if merr != nil {
			err = fmt.Errorf("storage: cannot encode level %s: %w", l.ID, merr)
			return err
		}
		if _, err = tx.Exec(
			"INSERT INTO levels (id, name, position, payload) VALUES (?, ?, ?, ?)",
			l.ID, l.Name, i, string(payload),
		); err != nil {
			return fmt.Errorf("storage: cannot save level %s: %w", l.ID, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit levels: %w", err)
	}
	return nil
}
