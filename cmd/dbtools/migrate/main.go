// cmd/dbtools/migrate/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var (
		driver         = flag.String("driver", "sqlite", "Database driver (sqlite, postgres)")
		dbTarget       = flag.String("db", "", "SQLite database path or Postgres URL")
		migrationsPath = flag.String("migrations", "", "Migrations directory (default internal/db/migrations/<driver>)")
		command        = flag.String("command", "", "Command to run (up, down, version)")
	)
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if *dbTarget == "" || *command == "" {
		flag.Usage()
		os.Exit(1)
	}
	if *migrationsPath == "" {
		*migrationsPath = filepath.Join("internal", "db", "migrations", *driver)
	}

	absMigrations, err := filepath.Abs(*migrationsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid migrations path")
	}
	if _, err := os.Stat(absMigrations); os.IsNotExist(err) {
		log.Fatal().Str("path", absMigrations).Msg("Migrations directory does not exist")
	}

	databaseURL, err := databaseURL(*driver, *dbTarget)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid database target")
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absMigrations), databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Migration init failed")
	}
	defer m.Close()

	switch *command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Migration up failed")
		}
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("Migration down failed")
		}
	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("Get version failed")
		}
		fmt.Printf("Version: %d, Dirty: %v\n", version, dirty)
		return
	default:
		log.Fatal().Str("command", *command).Msg("Unknown command")
	}
	log.Info().Str("command", *command).Str("driver", *driver).Msg("Migration complete")
}

func databaseURL(driver, target string) (string, error) {
	switch driver {
	case "sqlite":
		absDB, err := filepath.Abs(target)
		if err != nil {
			return "", err
		}
		if err := os.MkdirAll(filepath.Dir(absDB), 0755); err != nil {
			return "", fmt.Errorf("create database directory: %w", err)
		}
		return "sqlite3://" + filepath.ToSlash(absDB) + "?_foreign_keys=on", nil
	case "postgres":
		if !strings.HasPrefix(target, "postgres://") && !strings.HasPrefix(target, "postgresql://") {
			return "", fmt.Errorf("postgres target must be a postgres:// URL")
		}
		return target, nil
	default:
		return "", fmt.Errorf("unsupported driver %q", driver)
	}
}
