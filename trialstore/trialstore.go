/* ==================================================================================== *\
    trialstore.go

    Store: SQLite-backed persistence of per-trial outcomes, spec.md §6's
    "Persisted artifacts" given a concrete backing store. Opened the same
    way readers.go's SqliteReader opens a bdrmapit annotation database —
    database/sql plus the blank go-sqlite3 import for driver registration
    — just writing trial records instead of reading router annotations.
\* ==================================================================================== */

package trialstore

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Trial is one scenario/adoption/trial-index outcome record.
type Trial struct {
	ID              int64
	Scenario        string
	Settings        string
	AdoptionPercent float64
	TrialIndex      int
	Success         bool
	SnapshotDigest  string
}

// Store wraps a SQLite database holding trial outcomes.
type Store struct {
	db *sql.DB
}

// Open creates (if absent) and opens the trials table at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("trialstore: open %s: %w", path, err)
	}
	const schema = `
CREATE TABLE IF NOT EXISTS trials (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	scenario TEXT NOT NULL,
	settings TEXT NOT NULL,
	adoption_percent REAL NOT NULL,
	trial_index INTEGER NOT NULL,
	success INTEGER NOT NULL,
	snapshot_digest TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("trialstore: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record inserts one trial outcome, returning its assigned row ID.
func (s *Store) Record(t Trial) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO trials (scenario, settings, adoption_percent, trial_index, success, snapshot_digest)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.Scenario, t.Settings, t.AdoptionPercent, t.TrialIndex, t.Success, t.SnapshotDigest,
	)
	if err != nil {
		return 0, fmt.Errorf("trialstore: record trial: %w", err)
	}
	return res.LastInsertId()
}

// SuccessRate returns the fraction of recorded trials for (scenario,
// settings, adoptionPercent) whose success flag was true, mirroring the
// original's DataTracker::success_rate aggregate.
func (s *Store) SuccessRate(scenario, settings string, adoptionPercent float64) (float64, error) {
	row := s.db.QueryRow(
		`SELECT
			CAST(SUM(success) AS REAL) / COUNT(*)
		 FROM trials
		 WHERE scenario = ? AND settings = ? AND adoption_percent = ?`,
		scenario, settings, adoptionPercent,
	)
	var rate sql.NullFloat64
	if err := row.Scan(&rate); err != nil {
		return 0, fmt.Errorf("trialstore: success rate: %w", err)
	}
	if !rate.Valid {
		return 0, nil
	}
	return rate.Float64, nil
}

// Trials returns every recorded trial for (scenario, settings), ordered
// by adoption percentage then trial index — the shape a per-scenario
// summary report walks.
func (s *Store) Trials(scenario, settings string) ([]Trial, error) {
	rows, err := s.db.Query(
		`SELECT id, scenario, settings, adoption_percent, trial_index, success, snapshot_digest
		 FROM trials
		 WHERE scenario = ? AND settings = ?
		 ORDER BY adoption_percent, trial_index`,
		scenario, settings,
	)
	if err != nil {
		return nil, fmt.Errorf("trialstore: list trials: %w", err)
	}
	defer rows.Close()

	var out []Trial
	for rows.Next() {
		var t Trial
		if err := rows.Scan(&t.ID, &t.Scenario, &t.Settings, &t.AdoptionPercent, &t.TrialIndex, &t.Success, &t.SnapshotDigest); err != nil {
			return nil, fmt.Errorf("trialstore: scan trial: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
