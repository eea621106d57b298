// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records pipeline runs in a SQLite database so that the
// CLI and the HTTP API can list what was analysed and when.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/techscope/pkg/types"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "data/history.db"

// timeLayout is fixed width so that started_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned by Latest when no run matches.
var ErrNotFound = errors.New("run not found")

// Run kinds.
const (
	KindTech  = "tech"
	KindPulse = "pulse"
)

// Run statuses.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// RunRecord is one pipeline execution.
type RunRecord struct {
	ID         string        `json:"id"`
	Kind       string        `json:"kind"`
	Technology string        `json:"technology"`
	Slug       string        `json:"slug"`
	Status     string        `json:"status"`
	Error      string        `json:"error,omitempty"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration_ns"`

	HypeStage types.HypeStage `json:"hype_stage,omitempty"`
	Maturity  float64         `json:"maturity_score"`
	Patents   int             `json:"patents"`
	Papers    int             `json:"papers"`
	Companies int             `json:"companies"`
	Funding   int             `json:"funding"`
	Market    int             `json:"market_reports"`
	News      int             `json:"news"`
	Alerts    int             `json:"alerts"`
}

// TechRun summarises a technology run. runErr is the pipeline failure, if
// any; res is the result that was exported (possibly a fallback).
func TechRun(slug string, res *types.TechResult, runErr error, started time.Time, elapsed time.Duration) RunRecord {
	r := RunRecord{
		Kind:       KindTech,
		Technology: res.Technology,
		Slug:       slug,
		Status:     StatusOK,
		StartedAt:  started,
		Duration:   elapsed,
		HypeStage:  res.HypeStage,
		Maturity:   res.Maturity,
		Patents:    len(res.Patents),
		Papers:     len(res.Papers),
		Companies:  len(res.Companies),
		Funding:    len(res.Funding),
		Market:     len(res.MarketReports),
		Alerts:     len(res.Alerts),
	}
	if runErr != nil {
		r.Status = StatusFailed
		r.Error = runErr.Error()
	}
	return r
}

// PulseRun summarises a global pulse run. res may be nil on failure.
func PulseRun(res *types.PulseResult, runErr error, started time.Time, elapsed time.Duration) RunRecord {
	r := RunRecord{
		Kind:      KindPulse,
		Slug:      "global",
		Status:    StatusOK,
		StartedAt: started,
		Duration:  elapsed,
	}
	if res != nil {
		r.News = res.Summary.NewsCount
		r.Patents = res.Summary.PatentCount
	}
	if runErr != nil {
		r.Status = StatusFailed
		r.Error = runErr.Error()
	}
	return r
}

// Store manages the run history database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the database at cfg.Path and creates the
// schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			technology TEXT NOT NULL,
			slug TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			started_at TEXT NOT NULL,
			duration_ns INTEGER NOT NULL,
			hype_stage TEXT,
			maturity REAL,
			patents INTEGER,
			papers INTEGER,
			companies INTEGER,
			funding INTEGER,
			market INTEGER,
			news INTEGER,
			alerts INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_slug ON runs(slug)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_technology ON runs(technology)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts r, assigning a UUID when r.ID is empty, and returns the
// stored record.
func (s *Store) Record(ctx context.Context, r RunRecord) (RunRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.StartedAt.IsZero() {
		r.StartedAt = time.Now()
	}
	r.StartedAt = r.StartedAt.UTC()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, technology, slug, status, error, started_at, duration_ns,
			hype_stage, maturity, patents, papers, companies, funding, market, news, alerts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Kind, r.Technology, r.Slug, r.Status, r.Error,
		r.StartedAt.Format(timeLayout), int64(r.Duration),
		string(r.HypeStage), r.Maturity, r.Patents, r.Papers, r.Companies,
		r.Funding, r.Market, r.News, r.Alerts,
	)
	if err != nil {
		return RunRecord{}, fmt.Errorf("inserting run: %w", err)
	}
	return r, nil
}

const selectColumns = `id, kind, technology, slug, status, error, started_at, duration_ns,
	hype_stage, maturity, patents, papers, companies, funding, market, news, alerts`

// List returns runs newest first. An empty technology lists every run; a
// limit of zero or less means 50.
func (s *Store) List(ctx context.Context, technology string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + selectColumns + ` FROM runs`
	var args []any
	if technology != "" {
		query += ` WHERE technology = ? OR slug = ?`
		args = append(args, technology, technology)
	}
	query += ` ORDER BY started_at DESC, seq DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	out := []RunRecord{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return out, nil
}

// Latest returns the newest run for slug.
func (s *Store) Latest(ctx context.Context, slug string) (RunRecord, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM runs WHERE slug = ? ORDER BY started_at DESC, seq DESC LIMIT 1`, slug)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return RunRecord{}, fmt.Errorf("%s: %w", slug, ErrNotFound)
	}
	return r, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (RunRecord, error) {
	var (
		r        RunRecord
		errText  sql.NullString
		hype     sql.NullString
		started  string
		duration int64
		maturity sql.NullFloat64
		counts   [7]sql.NullInt64
	)
	err := sc.Scan(&r.ID, &r.Kind, &r.Technology, &r.Slug, &r.Status, &errText, &started, &duration,
		&hype, &maturity, &counts[0], &counts[1], &counts[2], &counts[3], &counts[4], &counts[5], &counts[6])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return RunRecord{}, err
		}
		return RunRecord{}, fmt.Errorf("scanning run: %w", err)
	}
	t, err := time.Parse(timeLayout, started)
	if err != nil {
		return RunRecord{}, fmt.Errorf("parsing started_at %q: %w", started, err)
	}
	r.StartedAt = t
	r.Duration = time.Duration(duration)
	r.Error = errText.String
	r.HypeStage = types.HypeStage(hype.String)
	r.Maturity = maturity.Float64
	r.Patents = int(counts[0].Int64)
	r.Papers = int(counts[1].Int64)
	r.Companies = int(counts[2].Int64)
	r.Funding = int(counts[3].Int64)
	r.Market = int(counts[4].Int64)
	r.News = int(counts[5].Int64)
	r.Alerts = int(counts[6].Int64)
	return r, nil
}
