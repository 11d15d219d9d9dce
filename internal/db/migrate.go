package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies all pending embedded migrations to the database behind connString.
func RunMigrations(connString string) (err error) {
	sqlDB, err := sql.Open("postgres", connString)
	if err != nil {
		return fmt.Errorf("open migrations db: %w", err)
	}

	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create migration source driver: %w", err)
	}

	dbDriver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		_ = sqlDB.Close()
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		err = multierr.Combine(err, srcErr, dbErr)
	}()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.Debugln("db migrations: already up to date")
			return nil
		}
		return fmt.Errorf("run migrations: %w", err)
	}

	version, _, _ := m.Version()
	log.Infof("db migrations: applied, schema version %d", version)
	return nil
}
