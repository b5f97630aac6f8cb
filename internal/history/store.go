package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Status is the outcome of a recorded run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Removal is one asset path a run removed, or would have removed.
type Removal struct {
	Kind  string
	Title string
	Path  string
}

// Run is a persisted run record. Removals is only populated by Get.
type Run struct {
	ID         int64
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Status     Status
	Assets     int
	Unmatched  int
	Removed    int
	Error      string
	Removals   []Removal
}

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// Pragmas are per connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Record inserts a run and its removals in a single transaction.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	if strings.TrimSpace(run.RunID) == "" {
		return 0, errors.New("run id is required")
	}
	if run.Status == "" {
		run.Status = StatusCompleted
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(
		ctx,
		`INSERT INTO runs (
            run_id, started_at, finished_at, dry_run, status,
            assets, unmatched, removed, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID,
		run.StartedAt.UTC().Format(timeLayout),
		run.FinishedAt.UTC().Format(timeLayout),
		boolToInt(run.DryRun),
		string(run.Status),
		run.Assets,
		run.Unmatched,
		run.Removed,
		nullableString(run.Error),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	for _, removal := range run.Removals {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO removals (run_ref, kind, title, path) VALUES (?, ?, ?, ?)`,
			id, removal.Kind, removal.Title, removal.Path,
		); err != nil {
			return 0, fmt.Errorf("insert removal: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return id, nil
}

const runColumns = `id, run_id, started_at, finished_at, dry_run, status, assets, unmatched, removed, error_message`

// Recent returns up to limit runs, newest first. A non-positive limit returns
// every run.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns a run with its removals. A run id prefix is accepted as long as
// it is unambiguous. It returns nil when no run matches.
func (s *Store) Get(ctx context.Context, runID string) (*Run, error) {
	runID = strings.TrimSpace(runID)
	if runID == "" {
		return nil, errors.New("run id is required")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE run_id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		escapeLike(runID)+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		matches = append(matches, run)
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
	default:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", runID)
	}

	run := matches[0]
	removals, err := s.removals(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Removals = removals
	return &run, nil
}

// Prune deletes all but the newest keep runs and returns how many were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
            SELECT id FROM runs ORDER BY started_at DESC, id DESC LIMIT ?
        )`,
		keep,
	)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

func (s *Store) removals(ctx context.Context, ref int64) ([]Removal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT kind, title, path FROM removals WHERE run_ref = ? ORDER BY id`, ref)
	if err != nil {
		return nil, fmt.Errorf("list removals: %w", err)
	}
	defer rows.Close()

	var out []Removal
	for rows.Next() {
		var removal Removal
		if err := rows.Scan(&removal.Kind, &removal.Title, &removal.Path); err != nil {
			return nil, fmt.Errorf("scan removal: %w", err)
		}
		out = append(out, removal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate removals: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run        Run
		started    string
		finished   string
		dryRun     int
		status     string
		errMessage sql.NullString
	)
	if err := row.Scan(
		&run.ID, &run.RunID, &started, &finished, &dryRun, &status,
		&run.Assets, &run.Unmatched, &run.Removed, &errMessage,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished)
	run.DryRun = dryRun != 0
	run.Status = Status(status)
	run.Error = errMessage.String
	return run, nil
}

func parseTime(value string) time.Time {
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}
