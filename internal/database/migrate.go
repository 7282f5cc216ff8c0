package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"ai-quizzer/internal/logger"

	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations/oracle/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

func migrationDir(driver string) string {
	if driver == DriverSQLite {
		return "migrations/sqlite"
	}
	return "migrations/oracle"
}

// RunMigrations applies every embedded up migration that is not yet
// recorded in SCHEMA_MIGRATIONS. Files are read through the golang-migrate
// iofs source; statements inside a file are separated by semicolons.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver string) (int, error) {
	src, err := iofs.New(migrationFS, migrationDir(driver))
	if err != nil {
		return 0, fmt.Errorf("could not open migrations source: %w", err)
	}
	defer src.Close()

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return 0, err
	}

	count := 0
	version, err := src.First()
	for err == nil {
		if _, done := applied[version]; !done {
			if err := applyVersion(ctx, db, src, version); err != nil {
				return count, err
			}
			count++
		}
		version, err = src.Next(version)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return count, fmt.Errorf("could not iterate migrations: %w", err)
	}

	logger.Get().Info("Migrations completed successfully", zap.Int("applied", count))
	return count, nil
}

func applyVersion(ctx context.Context, db *sqlx.DB, src source.Driver, version uint) error {
	r, identifier, err := src.ReadUp(version)
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}
	body, err := io.ReadAll(r)
	r.Close()
	if err != nil {
		return fmt.Errorf("could not read migration %d: %w", version, err)
	}

	for _, stmt := range SplitStatements(string(body)) {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("could not execute migration %d_%s: %w", version, identifier, err)
		}
	}

	_, err = db.ExecContext(ctx,
		db.Rebind("INSERT INTO SCHEMA_MIGRATIONS (VERSION, APPLIED_AT) VALUES (?, ?)"),
		int64(version), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("could not record migration %d: %w", version, err)
	}

	logger.Get().Info("Executed migration", zap.Uint("version", version), zap.String("name", identifier))
	return nil
}

func appliedVersions(ctx context.Context, db *sqlx.DB) (map[uint]struct{}, error) {
	var versions []int64
	err := db.SelectContext(ctx, &versions, "SELECT VERSION FROM SCHEMA_MIGRATIONS")
	if err != nil {
		// First run: the bookkeeping table does not exist yet.
		if _, createErr := db.ExecContext(ctx,
			"CREATE TABLE SCHEMA_MIGRATIONS (VERSION NUMBER(19) PRIMARY KEY, APPLIED_AT TIMESTAMP NOT NULL)"); createErr != nil {
			return nil, fmt.Errorf("could not read or create SCHEMA_MIGRATIONS: %v (create: %w)", err, createErr)
		}
	}

	applied := make(map[uint]struct{}, len(versions))
	for _, v := range versions {
		applied[uint(v)] = struct{}{}
	}
	return applied, nil
}

// SplitStatements splits a migration file into executable statements,
// dropping blank statements and full-line -- comments.
func SplitStatements(body string) []string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		lines = append(lines, line)
	}

	var stmts []string
	for _, part := range strings.Split(strings.Join(lines, "\n"), ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}
