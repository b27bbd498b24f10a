// Package store persists Deal Intelligence Objects to SQLite so a later
// run can diff against the most recent analysis of the same deal. The
// engine itself never touches this package; it belongs to the calling job
// layer.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/joelkehle/dealintel/internal/dealscreen"
)

const schema = `
CREATE TABLE IF NOT EXISTS deal_analyses (
	run_id     TEXT PRIMARY KEY,
	deal_id    TEXT NOT NULL,
	policy_id  TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	result     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deal_analyses_deal
	ON deal_analyses (deal_id, created_at DESC);
`

// Store is the SQLite-backed DIO store.
type Store struct {
	db *sqlx.DB
}

// Open creates or opens the store at dbPath.
func Open(dbPath string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Save persists one analysis result and returns its run id. The result
// JSON carries no control bytes: the engine's normalizer guarantees that,
// which is what keeps the JSON column ingestible.
func (s *Store) Save(dealID, policyID string, res dealscreen.Result) (string, error) {
	payload, err := json.Marshal(res)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}
	runID := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO deal_analyses (run_id, deal_id, policy_id, created_at, result) VALUES (?, ?, ?, ?, ?)`,
		runID, dealID, policyID, time.Now().UTC().Format(time.RFC3339Nano), string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("insert analysis: %w", err)
	}
	return runID, nil
}

// LatestSnapshot returns the diffable snapshot of the most recent analysis
// for a deal, or found=false when none exists.
func (s *Store) LatestSnapshot(dealID string) (*dealscreen.Snapshot, bool, error) {
	var payload string
	err := s.db.QueryRow(
		`SELECT result FROM deal_analyses WHERE deal_id = ? ORDER BY created_at DESC LIMIT 1`,
		dealID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query latest analysis: %w", err)
	}
	var res dealscreen.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return nil, false, fmt.Errorf("decode stored result: %w", err)
	}
	snap := res.Snapshot()
	return &snap, true, nil
}

// ListRuns returns run ids and timestamps for a deal, newest first.
func (s *Store) ListRuns(dealID string) ([]RunInfo, error) {
	rows, err := s.db.Query(
		`SELECT run_id, policy_id, created_at FROM deal_analyses WHERE deal_id = ? ORDER BY created_at DESC`,
		dealID,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var out []RunInfo
	for rows.Next() {
		var info RunInfo
		var createdAt string
		if err := rows.Scan(&info.RunID, &info.PolicyID, &createdAt); err != nil {
			return nil, err
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
		out = append(out, info)
	}
	return out, rows.Err()
}

// RunInfo identifies one stored analysis run.
type RunInfo struct {
	RunID     string    `json:"run_id"`
	PolicyID  string    `json:"policy_id"`
	CreatedAt time.Time `json:"created_at"`
}
