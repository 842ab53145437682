package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// Open opens the SQLite database at databasePath, creating its directory when
// needed. An in-memory database is pinned to one connection so every query
// sees the same schema.
func Open(databasePath string) (*sql.DB, error) {
	if databasePath != memoryPath {
		if err := os.MkdirAll(filepath.Dir(databasePath), 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	database, err := sql.Open("sqlite", databasePath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if databasePath == memoryPath {
		database.SetMaxOpenConns(1)
	}

	pragmas := []struct {
		statement   string
		description string
	}{
		{"PRAGMA journal_mode=WAL", "setting WAL mode"},
		{"PRAGMA foreign_keys=ON", "enabling foreign keys"},
		{"PRAGMA busy_timeout=5000", "setting busy timeout"},
	}
	for _, pragma := range pragmas {
		if _, err := database.Exec(pragma.statement); err != nil {
			database.Close()
			return nil, fmt.Errorf("%s: %w", pragma.description, err)
		}
	}

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return database, nil
}
