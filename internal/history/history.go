// Package history records completed renames in a SQLite database under
// .modforge/ so they can be listed later.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/modforge/modforge/internal/rename"
	"github.com/modforge/modforge/internal/sqlutil"
)

// Dir is the per-project state directory. Content search never descends into it.
const Dir = ".modforge"

// FileName is the history database inside Dir.
const FileName = "history.db"

// CurrentDBVersion is the history schema version.
const CurrentDBVersion = 1

// Status of a recorded rename.
const (
	StatusCommitted        = "committed"
	StatusRolledBack       = "rolled_back"
	StatusValidationFailed = "validation_failed"
)

// Store is the history database handle.
type Store struct {
	db *sql.DB
}

// Entry is one recorded rename.
type Entry struct {
	ID         int64     `json:"id" yaml:"id"`
	Kind       string    `json:"kind" yaml:"kind"`
	OldName    string    `json:"old_name" yaml:"old_name"`
	NewName    string    `json:"new_name" yaml:"new_name"`
	Status     string    `json:"status" yaml:"status"`
	Operations int       `json:"operations" yaml:"operations"`
	Message    string    `json:"message,omitempty" yaml:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at" yaml:"created_at"`
}

// Path returns the database path for a project root.
func Path(projectRoot string) string {
	return filepath.Join(projectRoot, Dir, FileName)
}

// Open opens or creates the history database of a project.
func Open(projectRoot string) (*Store, error) {
	dir := filepath.Join(projectRoot, Dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s directory: %w", Dir, err)
	}

	db, err := sql.Open("sqlite", Path(projectRoot))
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenInMemory opens an in-memory database (for testing).
func OpenInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Each pooled connection would get its own empty memory database.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS renames (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,
			old_name TEXT NOT NULL,
			new_name TEXT NOT NULL,
			status TEXT NOT NULL,
			op_count INTEGER NOT NULL,
			message TEXT,
			created_at INTEGER NOT NULL      -- Unix timestamp
		);

		CREATE TABLE IF NOT EXISTS operations (
			rename_id INTEGER NOT NULL REFERENCES renames(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			kind TEXT NOT NULL,
			path TEXT NOT NULL,
			new_path TEXT,
			description TEXT,
			PRIMARY KEY (rename_id, seq)
		);

		CREATE INDEX IF NOT EXISTS idx_renames_created ON renames(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}

	_, err := s.db.Exec(`INSERT OR REPLACE INTO meta (key, value) VALUES ('version', ?)`,
		fmt.Sprintf("%d", CurrentDBVersion))
	if err != nil {
		return fmt.Errorf("failed to set history version: %w", err)
	}
	return nil
}

// Record stores a rename and its operations. CreatedAt defaults to now.
func (s *Store) Record(e Entry, ops []rename.OperationView) (int64, error) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO renames (kind, old_name, new_name, status, op_count, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Kind, e.OldName, e.NewName, e.Status, len(ops), e.Message, e.CreatedAt.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to record rename: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO operations (rename_id, seq, kind, path, new_path, description)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, op := range ops {
		if _, err := stmt.Exec(id, i, string(op.Kind), op.Path, nullable(op.NewPath), nullable(op.Description)); err != nil {
			return 0, fmt.Errorf("failed to record operation %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// List returns the most recent renames, newest first. limit <= 0 returns all.
func (s *Store) List(limit int) ([]Entry, error) {
	query := `SELECT id, kind, old_name, new_name, status, op_count, COALESCE(message, ''), created_at
		FROM renames ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (Entry, error) {
		return scanEntry(rows)
	})
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var e Entry
	var created int64
	if err := row.Scan(&e.ID, &e.Kind, &e.OldName, &e.NewName, &e.Status, &e.Operations, &e.Message, &created); err != nil {
		return Entry{}, err
	}
	e.CreatedAt = time.Unix(created, 0)
	return e, nil
}

// Get returns one recorded rename. The bool is false when id is unknown.
func (s *Store) Get(id int64) (Entry, bool, error) {
	e, err := scanEntry(s.db.QueryRow(`SELECT id, kind, old_name, new_name, status, op_count, COALESCE(message, ''), created_at
		FROM renames WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("failed to load rename %d: %w", id, err)
	}
	return e, true, nil
}

// Operations returns the recorded operations of one rename, in order.
func (s *Store) Operations(id int64) ([]rename.OperationView, error) {
	rows, err := s.db.Query(`
		SELECT kind, path, COALESCE(new_path, ''), COALESCE(description, '')
		FROM operations WHERE rename_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load operations: %w", err)
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (rename.OperationView, error) {
		var v rename.OperationView
		var kind string
		if err := rows.Scan(&kind, &v.Path, &v.NewPath, &v.Description); err != nil {
			return v, err
		}
		v.Kind = rename.OpKind(kind)
		return v, nil
	})
}

// StatusOf maps a run's outcome to a history status.
func StatusOf(res *rename.Result, validationErr error) string {
	switch {
	case res == nil || !res.Success:
		return StatusRolledBack
	case validationErr != nil:
		return StatusValidationFailed
	default:
		return StatusCommitted
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
