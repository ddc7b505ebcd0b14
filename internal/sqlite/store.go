// Package sqlite persists the project document in a SQLite database with
// the same whole-document Load and Save semantics as the JSON file store.
// Position columns preserve the insertion order the document guarantees.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/eward/timekeep/internal/domain/project"
	"github.com/eward/timekeep/internal/storage"
)

// Store is a SQLite-backed storage.Store.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at path and applies the schema.
// Use ":memory:" for an in-memory store in tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating: %w", err)
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS projects (
    name TEXT PRIMARY KEY,
    position INTEGER NOT NULL,
    total REAL NOT NULL DEFAULT 0,
    start REAL NOT NULL DEFAULT 0,
    active INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS project_days (
    project TEXT NOT NULL,
    day TEXT NOT NULL,
    position INTEGER NOT NULL,
    seconds REAL NOT NULL DEFAULT 0,
    PRIMARY KEY (project, day),
    FOREIGN KEY (project) REFERENCES projects(name) ON DELETE CASCADE
);
`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads all rows into a document ordered by position.
func (s *Store) Load(ctx context.Context) (*project.Document, error) {
	doc := project.NewDocument()

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, total, start, active FROM projects ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying projects: %v: %w", err, storage.ErrCorrupt)
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		proj := project.New()
		if err := rows.Scan(&name, &proj.Total, &proj.Start, &proj.Active); err != nil {
			return nil, fmt.Errorf("scanning project: %v: %w", err, storage.ErrCorrupt)
		}
		doc.Put(name, proj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %v: %w", err, storage.ErrCorrupt)
	}

	dayRows, err := s.db.QueryContext(ctx,
		`SELECT project, day, seconds FROM project_days ORDER BY project, position`)
	if err != nil {
		return nil, fmt.Errorf("querying day buckets: %v: %w", err, storage.ErrCorrupt)
	}
	defer dayRows.Close()

	for dayRows.Next() {
		var name, day string
		var seconds float64
		if err := dayRows.Scan(&name, &day, &seconds); err != nil {
			return nil, fmt.Errorf("scanning day bucket: %v: %w", err, storage.ErrCorrupt)
		}
		if proj, ok := doc.Get(name); ok {
			proj.Days.Add(day, seconds)
		}
	}
	if err := dayRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day buckets: %v: %w", err, storage.ErrCorrupt)
	}

	return doc, nil
}

// Save replaces all rows with doc's contents in one transaction.
func (s *Store) Save(ctx context.Context, doc *project.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM project_days`); err != nil {
		return fmt.Errorf("clearing day buckets: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM projects`); err != nil {
		return fmt.Errorf("clearing projects: %w", err)
	}

	for pos, name := range doc.Names() {
		proj, _ := doc.Get(name)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (name, position, total, start, active) VALUES (?, ?, ?, ?, ?)`,
			name, pos, proj.Total, proj.Start, proj.Active,
		); err != nil {
			return fmt.Errorf("inserting project %q: %w", name, err)
		}
		for dayPos, day := range proj.Days.Dates() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO project_days (project, day, position, seconds) VALUES (?, ?, ?, ?)`,
				name, day, dayPos, proj.Days.Get(day),
			); err != nil {
				return fmt.Errorf("inserting day %q for %q: %w", day, name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing save: %w", err)
	}
	return nil
}
