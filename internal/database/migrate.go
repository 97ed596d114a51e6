package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"slices"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

//go:embed schema/*.sql
var schemaFS embed.FS

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migrate applies every schema file that is not yet recorded in
// schema_migrations, in file name order, each in its own transaction.
func Migrate(ctx context.Context, dbURL string) error {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("cannot open migration connection, %w", err)
	}
	defer db.Close()

	if _, err = db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("cannot create schema_migrations, %w", err)
	}

	files, err := fs.Glob(schemaFS, "schema/*.sql")
	if err != nil {
		return err
	}
	slices.Sort(files)

	for _, file := range files {
		applied, err := isApplied(ctx, db, file)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		if err = applyMigration(ctx, db, file); err != nil {
			return err
		}
		log.WithField("migration", file).Info("applied migration")
	}
	return nil
}

func isApplied(ctx context.Context, db *sql.DB, version string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(
		ctx,
		"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)",
		version,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("cannot check migration %s, %w", version, err)
	}
	return exists, nil
}

func applyMigration(ctx context.Context, db *sql.DB, file string) error {
	stmt, err := schemaFS.ReadFile(file)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("cannot begin migration %s, %w", file, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, string(stmt)); err != nil {
		return fmt.Errorf("migration %s failed, %w", file, err)
	}
	if _, err = tx.ExecContext(
		ctx,
		"INSERT INTO schema_migrations (version) VALUES ($1)",
		file,
	); err != nil {
		return fmt.Errorf("cannot record migration %s, %w", file, err)
	}
	return tx.Commit()
}
