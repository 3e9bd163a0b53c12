package db

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/marcboeker/go-duckdb"
)

var (
	dbInstance *sql.DB
	dbOnce     sync.Once
	dbErr      error
)

// GetDB returns the process-wide in-memory DuckDB connection.
func GetDB() (*sql.DB, error) {
	dbOnce.Do(func() {
		dbInstance, dbErr = Open()
	})
	return dbInstance, dbErr
}

// Open starts a fresh in-memory DuckDB database.
func Open() (*sql.DB, error) {
	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, fmt.Errorf("failed to open DuckDB: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to DuckDB: %w", err)
	}

	return db, nil
}

// QuoteLiteral renders s as a SQL string literal. Table functions such as
// read_csv take their path as a literal, not a bind parameter.
func QuoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
