package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

// MigrationsTable version table of the caritas schema
const MigrationsTable = "caritas_schema_migrations"

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrDirtySchema a previous migration stopped halfway and needs manual repair
var ErrDirtySchema = errors.New("database schema is dirty")

// zapMigrateLogger routes golang-migrate progress lines to zap
type zapMigrateLogger struct {
	logger *zap.Logger
}

func (l zapMigrateLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l zapMigrateLogger) Verbose() bool {
	return l.logger.Core().Enabled(zap.DebugLevel)
}

// RunMigrations brings the schema (groups, beneficiaries, attendance,
// service days, holidays and their seed rows) to the latest version.
// A dirty schema is refused before anything is applied.
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return fmt.Errorf("create migrate driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	m.Log = zapMigrateLogger{logger: logger.Named("migrate")}

	from, dirty, err := schemaVersion(m)
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("%w at version %d, fix it and force the version before starting", ErrDirtySchema, from)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations from version %d: %w", from, err)
	}

	to, _, err := schemaVersion(m)
	if err != nil {
		return err
	}

	if to == from {
		logger.Info("database schema up to date", zap.Uint("version", to))
	} else {
		logger.Info("database schema migrated",
			zap.Uint("from_version", from),
			zap.Uint("to_version", to),
			zap.String("table", MigrationsTable),
		)
	}

	return nil
}

// schemaVersion reports version 0 on a fresh database
func schemaVersion(m *migrate.Migrate) (uint, bool, error) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read schema version: %w", err)
	}
	return version, dirty, nil
}
