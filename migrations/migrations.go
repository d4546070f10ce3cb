// Package migrations evolves the relational schema through strictly ordered
// revisions. Every revision names exactly one predecessor, checks live
// catalog metadata before touching structure, and backfills row data before
// tightening any constraint, so re-applying against a partially migrated
// database is always safe. Applied revision IDs are tracked in
// schema_migrations; failures abort the current revision unmodified.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

// Conn is the raw-statement execution surface a revision runs against.
// *sql.DB and *sql.Tx both satisfy it.
type Conn interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Revision is one step of the chain. Revises is empty only for the root;
// Down undoes Up's structural changes in reverse order. Data produced by a
// backfill is not reconstructable on downgrade and is accepted as lost.
type Revision struct {
	ID      string
	Revises string
	Up      func(ctx context.Context, c Conn) error
	Down    func(ctx context.Context, c Conn) error
}

const versionTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	id TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// orderRevisions arranges revisions into the single path they declare,
// rejecting duplicate IDs, forks and gaps.
func orderRevisions(revs []Revision) ([]Revision, error) {
	ids := make(map[string]bool, len(revs))
	byRevises := make(map[string]Revision, len(revs))
	for _, r := range revs {
		if ids[r.ID] {
			return nil, fmt.Errorf("duplicate revision id %q", r.ID)
		}
		ids[r.ID] = true
		if prev, ok := byRevises[r.Revises]; ok {
			return nil, fmt.Errorf("revisions %q and %q both revise %q", prev.ID, r.ID, r.Revises)
		}
		byRevises[r.Revises] = r
	}

	ordered := make([]Revision, 0, len(revs))
	cursor := ""
	for range revs {
		next, ok := byRevises[cursor]
		if !ok {
			return nil, fmt.Errorf("revision chain broken after %q", cursor)
		}
		ordered = append(ordered, next)
		cursor = next.ID
	}
	return ordered, nil
}

func appliedIDs(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT id FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		applied[id] = true
	}
	return applied, rows.Err()
}

// Apply runs every pending revision in chain order, one transaction per
// revision. Already-applied revisions are skipped.
func Apply(ctx context.Context, db *sql.DB) error {
	ordered, err := orderRevisions(All)
	if err != nil {
		return err
	}

	if _, err := db.ExecContext(ctx, versionTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	applied, err := appliedIDs(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}

	for _, rev := range ordered {
		if applied[rev.ID] {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := rev.Up(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("revision %s: %w", rev.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (id) VALUES ($1)`, rev.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("record revision %s: %w", rev.ID, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit revision %s: %w", rev.ID, err)
		}
		log.Printf("migrations: applied %s", rev.ID)
	}
	return nil
}

// Rollback undoes up to steps applied revisions, newest first.
func Rollback(ctx context.Context, db *sql.DB, steps int) error {
	ordered, err := orderRevisions(All)
	if err != nil {
		return err
	}

	applied, err := appliedIDs(ctx, db)
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}

	for i := len(ordered) - 1; i >= 0 && steps > 0; i-- {
		rev := ordered[i]
		if !applied[rev.ID] {
			continue
		}
		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		if err := rev.Down(ctx, tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("rollback revision %s: %w", rev.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM schema_migrations WHERE id = $1`, rev.ID); err != nil {
			tx.Rollback()
			return fmt.Errorf("unrecord revision %s: %w", rev.ID, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit rollback %s: %w", rev.ID, err)
		}
		log.Printf("migrations: rolled back %s", rev.ID)
		steps--
	}
	return nil
}

func hasTable(ctx context.Context, c Conn, table string) (bool, error) {
	var exists bool
	err := c.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = $1)`,
		table).Scan(&exists)
	return exists, err
}

func hasColumn(ctx context.Context, c Conn, table, column string) (bool, error) {
	var exists bool
	err := c.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1 AND column_name = $2)`,
		table, column).Scan(&exists)
	return exists, err
}

func hasIndex(ctx context.Context, c Conn, table, index string) (bool, error) {
	var exists bool
	err := c.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM pg_indexes WHERE schemaname = current_schema() AND tablename = $1 AND indexname = $2)`,
		table, index).Scan(&exists)
	return exists, err
}

// exec runs statements in order, stopping at the first failure.
func exec(ctx context.Context, c Conn, statements ...string) error {
	for _, stmt := range statements {
		if _, err := c.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%q: %w", stmt, err)
		}
	}
	return nil
}
