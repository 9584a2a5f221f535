package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationStatus reports the schema version before and after a run.
type MigrationStatus struct {
	From  uint
	To    uint
	Dirty bool
}

// RunMigrations applies every pending migration to the database at url.
// A separate connection is used so the GORM pool is not disturbed.
func RunMigrations(url string) (*MigrationStatus, error) {
	m, closeFn, err := newMigrator(url)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	status := &MigrationStatus{}
	status.From, _, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	status.To, status.Dirty, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("failed to read schema version: %w", err)
	}

	slog.Info("Migrations applied", "from", status.From, "to", status.To)
	return status, nil
}

// RollbackMigrations reverts the given number of migrations.
func RollbackMigrations(url string, steps int) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}

	m, closeFn, err := newMigrator(url)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}

	slog.Info("Migrations rolled back", "steps", steps)
	return nil
}

func newMigrator(url string) (*migrate.Migrate, func(), error) {
	sqlDB, err := sql.Open("postgres", url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open migration database: %w", err)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, func() { m.Close() }, nil
}
