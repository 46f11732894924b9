// Package migrations applies the embedded schema to PostgreSQL or SQLite.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed sql/postgres/*.sql sql/sqlite/*.sql
var files embed.FS

// Source returns the embedded migration source for driver.
func Source(driver string) (source.Driver, error) {
	switch driver {
	case "postgres", "sqlite":
		return iofs.New(files, "sql/"+driver)
	default:
		return nil, fmt.Errorf("migrations: unsupported driver %q", driver)
	}
}

// Apply brings the database at dsn up to the latest schema version. It opens
// and closes its own connection; an already current schema is not an error.
func Apply(ctx context.Context, driver, dsn string) error {
	src, err := Source(driver)
	if err != nil {
		return err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		_ = src.Close()
		return fmt.Errorf("migrations: open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = src.Close()
		_ = db.Close()
		return fmt.Errorf("migrations: ping %s: %w", driver, err)
	}

	var target database.Driver
	switch driver {
	case "postgres":
		target, err = postgres.WithInstance(db, &postgres.Config{})
	case "sqlite":
		target, err = sqlite.WithInstance(db, &sqlite.Config{})
	}
	if err != nil {
		_ = src.Close()
		_ = db.Close()
		return fmt.Errorf("migrations: %s driver: %w", driver, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		_ = src.Close()
		_ = target.Close()
		return fmt.Errorf("migrations: init: %w", err)
	}

	upErr := m.Up()
	srcErr, dbErr := m.Close()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: up: %w", upErr)
	}
	if srcErr != nil {
		return fmt.Errorf("migrations: close source: %w", srcErr)
	}
	if dbErr != nil {
		return fmt.Errorf("migrations: close database: %w", dbErr)
	}
	return nil
}
