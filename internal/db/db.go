// Package db stores navigation builds in SQLite.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB with navchart-specific helpers.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every pooled connection to :memory: would be a separate database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return d, nil
}

// Path returns the database location.
func (d *DB) Path() string { return d.path }

func (d *DB) migrate() error {
	_, err := d.Exec(schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS builds (
    id TEXT PRIMARY KEY,
    source TEXT NOT NULL,
    node_count INTEGER NOT NULL,
    section_count INTEGER NOT NULL,
    started_at TEXT NOT NULL,
    duration_ms INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS nav_nodes (
    build_id TEXT NOT NULL REFERENCES builds(id) ON DELETE CASCADE,
    code TEXT NOT NULL,
    parent_code TEXT,
    position INTEGER NOT NULL,
    level INTEGER NOT NULL,
    variant TEXT NOT NULL CHECK(variant IN ('Simple','Hidden','Menued','DetachedMenued')),
    shows_in_nav INTEGER NOT NULL DEFAULT 0,
    has_landing_page INTEGER NOT NULL DEFAULT 0,
    has_section_nav INTEGER NOT NULL DEFAULT 0,
    title TEXT NOT NULL DEFAULT '',
    url TEXT NOT NULL DEFAULT '',
    leaf_pages INTEGER NOT NULL DEFAULT 0,
    levels_to_show INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (build_id, code)
);

CREATE INDEX IF NOT EXISTS idx_nav_nodes_parent ON nav_nodes(build_id, parent_code);
CREATE INDEX IF NOT EXISTS idx_nav_nodes_position ON nav_nodes(build_id, position);
`

// BuildRecord is one row of the builds table.
type BuildRecord struct {
	ID           string
	Source       string
	NodeCount    int
	SectionCount int
	StartedAt    time.Time
	Duration     time.Duration
}

// NodeRecord is one row of the nav_nodes table. Position is the node's pre-order index in
// the tree and ParentCode is empty for the root.
type NodeRecord struct {
	Code           string
	ParentCode     string
	Position       int
	Level          int
	Variant        string
	ShowsInNav     bool
	HasLandingPage bool
	HasSectionNav  bool
	Title          string
	URL            string
	LeafPages      int
	LevelsToShow   int
}

// SaveBuild inserts a build and its nodes in one transaction. Saving a build ID that
// already exists replaces it.
func (d *DB) SaveBuild(ctx context.Context, b BuildRecord, nodes []NodeRecord) error {
	tx, err := d.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM nav_nodes WHERE build_id = ?`, b.ID); err != nil {
		return fmt.Errorf("clearing nodes: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO builds (id, source, node_count, section_count, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		b.ID, b.Source, b.NodeCount, b.SectionCount, b.StartedAt.UTC().Format(time.RFC3339Nano), b.Duration.Milliseconds())
	if err != nil {
		return fmt.Errorf("inserting build: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nav_nodes (build_id, code, parent_code, position, level, variant,
		   shows_in_nav, has_landing_page, has_section_nav, title, url, leaf_pages, levels_to_show)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing node insert: %w", err)
	}
	defer stmt.Close()

	for _, n := range nodes {
		var parent sql.NullString
		if n.ParentCode != "" {
			parent = sql.NullString{String: n.ParentCode, Valid: true}
		}
		_, err := stmt.ExecContext(ctx, b.ID, n.Code, parent, n.Position, n.Level, n.Variant,
			n.ShowsInNav, n.HasLandingPage, n.HasSectionNav, n.Title, n.URL, n.LeafPages, n.LevelsToShow)
		if err != nil {
			return fmt.Errorf("inserting node %s: %w", n.Code, err)
		}
	}

	return tx.Commit()
}

// Builds lists stored builds, newest first.
func (d *DB) Builds(ctx context.Context) ([]BuildRecord, error) {
	rows, err := d.QueryContext(ctx,
		`SELECT id, source, node_count, section_count, started_at, duration_ms
		 FROM builds ORDER BY started_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BuildRecord
	for rows.Next() {
		var (
			b       BuildRecord
			started string
			ms      int64
		)
		if err := rows.Scan(&b.ID, &b.Source, &b.NodeCount, &b.SectionCount, &started, &ms); err != nil {
			return nil, err
		}
		b.StartedAt, err = time.Parse(time.RFC3339Nano, started)
		if err != nil {
			return nil, fmt.Errorf("build %s: bad started_at %q: %w", b.ID, started, err)
		}
		b.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, b)
	}
	return out, rows.Err()
}

// Nodes returns the nodes of a build in tree order.
func (d *DB) Nodes(ctx context.Context, buildID string) ([]NodeRecord, error) {
	rows, err := d.QueryContext(ctx,
		`SELECT code, parent_code, position, level, variant, shows_in_nav, has_landing_page,
		   has_section_nav, title, url, leaf_pages, levels_to_show
		 FROM nav_nodes WHERE build_id = ? ORDER BY position`, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NodeRecord
	for rows.Next() {
		var (
			n      NodeRecord
			parent sql.NullString
		)
		err := rows.Scan(&n.Code, &parent, &n.Position, &n.Level, &n.Variant, &n.ShowsInNav,
			&n.HasLandingPage, &n.HasSectionNav, &n.Title, &n.URL, &n.LeafPages, &n.LevelsToShow)
		if err != nil {
			return nil, err
		}
		n.ParentCode = parent.String
		out = append(out, n)
	}
	return out, rows.Err()
}
