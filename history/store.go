// Package history records report runs in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var ErrRunNotFound = errors.New("run not found")

const (
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

type Run struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"account_id"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	Status          string    `json:"status"`
	Error           string    `json:"error,omitempty"`
	Total           int       `json:"total"`
	WithMessages    int       `json:"with_messages"`
	WithoutMessages int       `json:"without_messages"`
	Filename        string    `json:"filename,omitempty"`
	CSVPath         string    `json:"-"`
	Location        string    `json:"location,omitempty"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
}

const createRunsTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	account_id TEXT NOT NULL,
	range_from TEXT NOT NULL,
	range_to TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT NOT NULL DEFAULT '',
	total INTEGER NOT NULL DEFAULT 0,
	with_messages INTEGER NOT NULL DEFAULT 0,
	without_messages INTEGER NOT NULL DEFAULT 0,
	filename TEXT NOT NULL DEFAULT '',
	csv_path TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	started_at_utc TEXT NOT NULL,
	finished_at_utc TEXT NOT NULL
)`

const createRunsIndexSQL = `CREATE INDEX IF NOT EXISTS idx_runs_account_started ON runs(account_id, started_at_utc)`

const insertRunSQL = `
INSERT INTO runs (
	id,
	account_id,
	range_from,
	range_to,
	status,
	error,
	total,
	with_messages,
	without_messages,
	filename,
	csv_path,
	location,
	started_at_utc,
	finished_at_utc
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const selectRunColumns = `id, account_id, range_from, range_to, status, error, total,
	with_messages, without_messages, filename, csv_path, location, started_at_utc, finished_at_utc`

type Store struct {
	db *sql.DB
}

func Open(dbPath string) (*Store, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(createRunsTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}
	if _, err := db.Exec(createRunsIndexSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs index: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.AccountID,
		run.From,
		run.To,
		run.Status,
		run.Error,
		run.Total,
		run.WithMessages,
		run.WithoutMessages,
		run.Filename,
		run.CSVPath,
		run.Location,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectRunColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// List returns the most recent runs of an account first.
func (s *Store) List(ctx context.Context, accountID string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectRunColumns+` FROM runs WHERE account_id = ? ORDER BY started_at_utc DESC, id DESC LIMIT ?`,
		accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		run                 Run
		startedAt, finished string
	)
	err := sc.Scan(
		&run.ID,
		&run.AccountID,
		&run.From,
		&run.To,
		&run.Status,
		&run.Error,
		&run.Total,
		&run.WithMessages,
		&run.WithoutMessages,
		&run.Filename,
		&run.CSVPath,
		&run.Location,
		&startedAt,
		&finished,
	)
	if err != nil {
		return nil, err
	}
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at for %s: %w", run.ID, err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return nil, fmt.Errorf("parse finished_at for %s: %w", run.ID, err)
	}
	return &run, nil
}
