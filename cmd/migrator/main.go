// Command migrator applies goose SQL migrations against the platform's
// Postgres database. It reads the same PG_* environment variables as the API
// service.
package main

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, or version")
		dir     = flag.String("dir", "db/migrations", "Directory containing migration files")
	)
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().
		Timestamp().
		Str("component", "migrator").
		Logger()

	dsn, err := dsnFromEnv()
	if err != nil {
		logger.Fatal().Err(err).Msg("database configuration incomplete")
	}

	migrationDir, err := filepath.Abs(*dir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", *dir).Msg("cannot resolve migration directory")
	}
	if _, err := os.Stat(migrationDir); err != nil {
		logger.Fatal().Err(err).Str("dir", migrationDir).Msg("migration directory not readable")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database connection failed")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("database is not reachable")
	}
	logger.Info().Str("dir", migrationDir).Str("command", *command).Msg("running migrations")

	goose.SetTableName("goose_db_version")

	switch *command {
	case "up":
		err = goose.Up(db, migrationDir)
	case "down":
		err = goose.Down(db, migrationDir)
	case "status":
		err = goose.Status(db, migrationDir)
	case "version":
		err = goose.Version(db, migrationDir)
	default:
		logger.Fatal().Str("command", *command).Msg("unknown command; use up, down, status, or version")
	}
	if err != nil {
		logger.Fatal().Err(err).Str("command", *command).Msg("migration command failed")
	}
	logger.Info().Str("command", *command).Msg("done")
}

// dsnFromEnv builds the connection string from the PG_* variables shared
// with internal/config.
func dsnFromEnv() (string, error) {
	required := func(key string) (string, error) {
		v := os.Getenv(key)
		if v == "" {
			return "", fmt.Errorf("%s environment variable is required", key)
		}
		return v, nil
	}
	optional := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	user, err := required("PG_USER")
	if err != nil {
		return "", err
	}
	password, err := required("PG_PASSWORD")
	if err != nil {
		return "", err
	}
	database, err := required("PG_DATABASE")
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		optional("PG_HOST", "localhost"),
		optional("PG_PORT", "5432"),
		user, password, database,
		optional("PG_SSL_MODE", "disable"),
	), nil
}
