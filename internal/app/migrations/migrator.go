package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/yigit/jobly/internal/db"
	"github.com/yigit/jobly/internal/pkg/logger"
)

//go:embed sql/*.sql
var embedded embed.FS

// Files returns the schema migrations shipped with the binary
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		panic(err)
	}
	return sub
}

// Conn is what the migrator needs: plain queries plus transactions
type Conn interface {
	db.DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Migrator manages database migrations
type Migrator struct {
	db Conn
}

// NewMigrator creates a new migrator
func NewMigrator(conn Conn) *Migrator {
	return &Migrator{db: conn}
}

func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`)
	if err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// versionOf extracts the version prefix: "001_schema.sql" => "001"
func versionOf(name string) string {
	base := path.Base(name)
	version, _, _ := strings.Cut(base, "_")
	return strings.TrimSuffix(version, ".sql")
}

// apply runs one migration file and records it in the same transaction
func (m *Migrator) apply(ctx context.Context, fsys fs.FS, name string) error {
	version := versionOf(name)

	applied, err := m.isMigrationApplied(ctx, version)
	if err != nil {
		return err
	}
	if applied {
		logger.Debug().Str("migration", name).Msg("Migration already applied, skipping")
		return nil
	}

	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", name, err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("migration %s failed: %w", name, err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		_ = tx.Rollback(ctx)
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", name, err)
	}

	logger.Info().Str("migration", name).Msg("Migration applied")
	return nil
}

// Migrate applies every not-yet-applied .sql file of fsys in lexical order
func (m *Migrator) Migrate(ctx context.Context, fsys fs.FS) error {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return err
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("failed to read migration directory: %w", err)
	}

	var sqlFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			sqlFiles = append(sqlFiles, entry.Name())
		}
	}
	sort.Strings(sqlFiles)

	for _, name := range sqlFiles {
		if err := m.apply(ctx, fsys, name); err != nil {
			return err
		}
	}
	return nil
}
