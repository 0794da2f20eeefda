package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	MigrateGorm = "gorm"
	MigrateSQL  = "sql"
)

// Migrate brings the schema up to date. Mode "sql" applies the embedded
// postgres migrations through golang-migrate and needs a URL-form DSN;
// anything else falls back to gorm AutoMigrate of models.
func Migrate(db *gorm.DB, driver, mode, dsn string, models ...any) error {
	if mode == MigrateSQL {
		if driver != "postgres" {
			return fmt.Errorf("sql migrations only ship for postgres, got %q", driver)
		}
		return RunSQLMigrations(dsn)
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func RunSQLMigrations(databaseURL string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
