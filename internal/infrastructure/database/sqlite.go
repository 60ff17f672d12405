package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InMemory names a database that lives only as long as its connection
const InMemory = ":memory:"

// ConnectSQLite opens a SQLite database in WAL mode. An in-memory database
// lives in a single connection, so the pool is capped to one.
func ConnectSQLite(dbName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(500)", dbName))
	if err != nil {
		return nil, err
	}

	if dbName == InMemory {
		db.SetMaxOpenConns(1)
	}

	return db, nil
}
