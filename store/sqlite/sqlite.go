/*
Package sqlite persists generated report runs.

PURPOSE:
  Every successful report generation is recorded as a run: when it ran, which
  sheet it read, the detected period, the holidays considered, row/warning
  counts, and the exported workbook bytes so the file can be re-downloaded
  later. The aggregation engine itself is stateless; this history is purely a
  convenience for the HTTP surface.

TABLES:
  report_runs: one row per generated report, workbook stored as a BLOB

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of SQLite's single-writer model.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): readers don't block and
  crash recovery is cleaner.

USAGE:
  store, err := sqlite.New("./data/attendance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). Use ":memory:" for tests.
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrRunNotFound is returned when a run ID has no record.
var ErrRunNotFound = errors.New("report run not found")

// ReportRun is one generated report.
type ReportRun struct {
	ID            string
	CreatedAt     time.Time
	Sheet         string
	Period        string
	Holidays      string // formatted list or the "(ninguno)" placeholder
	EmployeeCount int
	WarningCount  int
	Workbook      []byte // exported xlsx; omitted from listings
}

// Store is the SQLite-backed run history.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a store at the given database path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS report_runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		sheet TEXT NOT NULL,
		period TEXT NOT NULL,
		holidays TEXT NOT NULL,
		employee_count INTEGER NOT NULL,
		warning_count INTEGER NOT NULL,
		workbook BLOB NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_report_runs_created_at
		ON report_runs(created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun records a generated report.
func (s *Store) SaveRun(ctx context.Context, run ReportRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO report_runs
		(id, created_at, sheet, period, holidays, employee_count, warning_count, workbook)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	createdAt := run.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, query,
		run.ID,
		createdAt.UTC().Format(time.RFC3339),
		run.Sheet,
		run.Period,
		run.Holidays,
		run.EmployeeCount,
		run.WarningCount,
		run.Workbook,
	)
	if err != nil {
		return fmt.Errorf("failed to save report run: %w", err)
	}
	return nil
}

// ListRuns returns all runs, newest first, without workbook bytes.
func (s *Store) ListRuns(ctx context.Context) ([]ReportRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, created_at, sheet, period, holidays, employee_count, warning_count
		FROM report_runs
		ORDER BY created_at DESC, id DESC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list report runs: %w", err)
	}
	defer rows.Close()

	var runs []ReportRun
	for rows.Next() {
		var run ReportRun
		var createdAt string
		if err := rows.Scan(&run.ID, &createdAt, &run.Sheet, &run.Period,
			&run.Holidays, &run.EmployeeCount, &run.WarningCount); err != nil {
			return nil, fmt.Errorf("failed to scan report run: %w", err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun returns one run including its workbook bytes.
func (s *Store) GetRun(ctx context.Context, id string) (*ReportRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, created_at, sheet, period, holidays, employee_count, warning_count, workbook
		FROM report_runs
		WHERE id = ?
	`
	var run ReportRun
	var createdAt string
	err := s.db.QueryRowContext(ctx, query, id).Scan(&run.ID, &createdAt, &run.Sheet,
		&run.Period, &run.Holidays, &run.EmployeeCount, &run.WarningCount, &run.Workbook)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get report run: %w", err)
	}
	run.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &run, nil
}

// DeleteRun removes a run from the history.
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM report_runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRunNotFound
	}
	return nil
}
