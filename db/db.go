// Package db opens the SQLite database used for LLM usage accounting.
package db

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/sahadev/jyotish/ai/tracker"
	"github.com/sahadev/jyotish/errors"
	"github.com/sahadev/jyotish/logger"
)

// Open opens a SQLite database at the specified path with WAL mode,
// foreign keys and a busy timeout, and ensures the usage schema.
func Open(path string) (*sql.DB, error) {
	database, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	// WAL allows concurrent reads during writes
	if _, err := database.Exec("PRAGMA journal_mode = WAL"); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to enable WAL mode")
	}

	if _, err := database.Exec("PRAGMA foreign_keys = ON"); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to enable foreign keys")
	}

	if _, err := database.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to set busy timeout")
	}

	if err := tracker.EnsureSchema(database); err != nil {
		database.Close()
		return nil, errors.Wrap(err, "failed to ensure usage schema")
	}

	logger.Infow("Database opened",
		"path", path,
		"wal_mode", true,
	)

	return database, nil
}
