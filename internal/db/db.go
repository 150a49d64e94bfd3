// internal/db/db.go
package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/codr1/Pitchside/internal/config"
	"github.com/codr1/Pitchside/internal/db/queries"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

type DB struct {
	*sql.DB
	Queries *queries.Queries
	Driver  string
}

// New opens a SQLite database for the given data source name, ensures SQLite
// foreign keys are enabled in the DSN, applies embedded migrations, and
// returns a DB with queries bound to the connection.
func New(dataSourceName string) (*DB, error) {
	dataSourceName = ensureForeignKeysEnabledDSN(dataSourceName)
	sqlDB, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	return prepare(sqlDB, config.DriverSQLite)
}

// NewFromConfig opens the configured database and applies migrations.
// It supports "sqlite" (creates the database directory if needed) and
// "postgres" for a hosted instance reached through lib/pq.
func NewFromConfig(cfg *config.Config) (*DB, error) {
	var sqlDB *sql.DB
	var err error

	switch cfg.Database.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Filename), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
		sqlDB, err = sql.Open("sqlite3", ensureForeignKeysEnabledDSN(cfg.Database.Filename))

	case config.DriverPostgres:
		sqlDB, err = sql.Open("postgres", cfg.Database.URL)

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Database.Driver)
	}

	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	return prepare(sqlDB, cfg.Database.Driver)
}

func prepare(sqlDB *sql.DB, driver string) (*DB, error) {
	if driver == config.DriverSQLite {
		// SQLite allows a single writer; serialize through one connection.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := runMigrations(sqlDB, driver); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error running migrations: %w", err)
	}

	return &DB{
		DB:      sqlDB,
		Queries: queries.New(sqlDB),
		Driver:  driver,
	}, nil
}

// ensureForeignKeysEnabledDSN adds `_fk=1` to a SQLite DSN unless it is already set.
func ensureForeignKeysEnabledDSN(dataSourceName string) string {
	if strings.Contains(dataSourceName, "_fk=") {
		return dataSourceName
	}
	if strings.Contains(dataSourceName, "?") {
		return dataSourceName + "&_fk=1"
	}
	return dataSourceName + "?_fk=1"
}

// runMigrations applies the embedded migrations for driver. A "no change"
// result is not treated as an error.
func runMigrations(sqlDB *sql.DB, driver string) error {
	var (
		dbDriver database.Driver
		dbName   string
		err      error
	)
	switch driver {
	case config.DriverSQLite:
		dbName = "sqlite3"
		dbDriver, err = sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	case config.DriverPostgres:
		dbName = "postgres"
		dbDriver, err = postgres.WithInstance(sqlDB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}
	if err != nil {
		return fmt.Errorf("could not create migrate driver: %w", err)
	}

	source, err := iofs.New(migrationsFS, "migrations/"+driver)
	if err != nil {
		return fmt.Errorf("could not create source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dbName, dbDriver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

// WithTx creates a new DB instance with the given transaction
func (db *DB) WithTx(tx *sql.Tx) *DB {
	return &DB{
		DB:      db.DB,
		Queries: queries.New(tx),
		Driver:  db.Driver,
	}
}

// BeginTx starts a transaction
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return tx, nil
}

// RunInTx runs the given function in a transaction
func (db *DB) RunInTx(ctx context.Context, fn func(*DB) error) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	txDB := db.WithTx(tx)
	if err := fn(txDB); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("error rolling back: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing: %w", err)
	}

	return nil
}
