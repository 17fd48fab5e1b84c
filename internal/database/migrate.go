package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

// MigrationStatus reports the schema version after a migration run
type MigrationStatus struct {
	Version uint
	Dirty   bool
	Applied bool
}

// Migrate applies every pending up migration found at sourceURL
// (e.g. "file://migrations").
func Migrate(databaseURL, sourceURL string, logger *zap.Logger) (MigrationStatus, error) {
	return run(databaseURL, sourceURL, logger, func(m *migrate.Migrate) error { return m.Up() })
}

// MigrateDown rolls back the given number of migrations
func MigrateDown(databaseURL, sourceURL string, steps int, logger *zap.Logger) (MigrationStatus, error) {
	if steps <= 0 {
		return MigrationStatus{}, fmt.Errorf("steps must be positive, got %d", steps)
	}
	return run(databaseURL, sourceURL, logger, func(m *migrate.Migrate) error { return m.Steps(-steps) })
}

func run(databaseURL, sourceURL string, logger *zap.Logger, apply func(*migrate.Migrate) error) (MigrationStatus, error) {
	var status MigrationStatus
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return status, fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return status, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
	if err != nil {
		return status, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = apply(m)
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return status, fmt.Errorf("failed to apply migrations: %w", err)
	}
	status.Applied = err == nil

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return status, fmt.Errorf("failed to get migration version: %w", err)
	}
	status.Version = version
	status.Dirty = dirty

	if dirty {
		return status, fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	}

	if status.Applied {
		logger.Info("migrations applied", zap.Uint("version", version))
	} else {
		logger.Info("database schema is up to date", zap.Uint("version", version))
	}
	return status, nil
}
