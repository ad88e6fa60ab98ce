package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/amishk599/careerforge/internal/model"
)

var _ model.Journal = (*SQLiteJournal)(nil)

// SQLiteJournal keeps a log of completed analyses and their roadmaps.
type SQLiteJournal struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteJournal opens (or creates) a SQLite database at dbPath and ensures
// the runs table exists.
func NewSQLiteJournal(dbPath string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS runs (
		id              TEXT PRIMARY KEY,
		created_at      INTEGER NOT NULL,
		job_description TEXT NOT NULL,
		match_score     INTEGER NOT NULL,
		result          TEXT NOT NULL,
		roadmap         TEXT
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}

	return &SQLiteJournal{db: db, now: time.Now}, nil
}

// RecordAnalysis stores a finished analysis and returns its run ID.
func (j *SQLiteJournal) RecordAnalysis(jobDescription string, result model.AnalysisResult) (string, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encoding analysis: %w", err)
	}

	id := uuid.NewString()
	_, err = j.db.Exec(
		"INSERT INTO runs (id, created_at, job_description, match_score, result) VALUES (?, ?, ?, ?, ?)",
		id, j.now().UnixMilli(), jobDescription, result.MatchScore, string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("recording analysis: %w", err)
	}
	return id, nil
}

// RecordRoadmap attaches the roadmap phases to an existing run.
func (j *SQLiteJournal) RecordRoadmap(id string, phases []model.RoadmapPhase) error {
	payload, err := json.Marshal(phases)
	if err != nil {
		return fmt.Errorf("encoding roadmap: %w", err)
	}

	res, err := j.db.Exec("UPDATE runs SET roadmap = ? WHERE id = ?", string(payload), id)
	if err != nil {
		return fmt.Errorf("recording roadmap for %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("recording roadmap: run %s not found", id)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (j *SQLiteJournal) Recent(limit int) ([]model.HistoryEntry, error) {
	rows, err := j.db.Query(
		"SELECT id, created_at, job_description, result, roadmap FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var entries []model.HistoryEntry
	for rows.Next() {
		var (
			e         model.HistoryEntry
			createdAt int64
			result    string
			roadmap   sql.NullString
		)
		if err := rows.Scan(&e.ID, &createdAt, &e.JobDescription, &result, &roadmap); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		e.CreatedAt = time.UnixMilli(createdAt)
		if err := json.Unmarshal([]byte(result), &e.Result); err != nil {
			return nil, fmt.Errorf("decoding run %s: %w", e.ID, err)
		}
		if roadmap.Valid {
			if err := json.Unmarshal([]byte(roadmap.String), &e.Roadmap); err != nil {
				return nil, fmt.Errorf("decoding roadmap for %s: %w", e.ID, err)
			}
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Cleanup deletes runs older than the given duration.
func (j *SQLiteJournal) Cleanup(olderThan time.Duration) error {
	cutoff := j.now().Add(-olderThan).UnixMilli()
	if _, err := j.db.Exec("DELETE FROM runs WHERE created_at < ?", cutoff); err != nil {
		return fmt.Errorf("cleaning up runs older than %v: %w", olderThan, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
