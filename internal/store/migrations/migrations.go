// Package migrations manages the database schema. Each migration runs at
// most once; applied versions are recorded in the schema_migrations table.
package migrations

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
)

type migration struct {
	version int
	name    string
	up      string
}

// Migrations run in order of version. Never reorder or edit an entry that
// has shipped; add a new version instead.
var all = []migration{
	{
		version: 1,
		name:    "create translations table",
		up: `
			CREATE TABLE IF NOT EXISTS translations (
				id TEXT PRIMARY KEY,
				dialect TEXT NOT NULL,
				pipeline TEXT,
				prql TEXT NOT NULL,
				generated_sql TEXT,
				status TEXT NOT NULL,
				error TEXT,
				duration_ms BIGINT,
				created_at TIMESTAMP NOT NULL DEFAULT now()
			)
		`,
	},
	{
		version: 2,
		name:    "index translations by creation time",
		up: `
			CREATE INDEX IF NOT EXISTS idx_translations_created_at
			ON translations (created_at)
		`,
	},
}

// Run applies all pending migrations. It is safe to call on every startup.
func Run(ctx context.Context, db *sql.DB) error {
	logger := zap.S().Named("migrations")

	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range all {
		if applied[m.version] {
			continue
		}

		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", m.version, m.name, err)
		}
		logger.Infow("applied migration", "version", m.version, "name", m.name)
	}

	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("querying applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scanning migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating migration versions: %w", err)
	}
	return applied, nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, m.up); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}
	return tx.Commit()
}
