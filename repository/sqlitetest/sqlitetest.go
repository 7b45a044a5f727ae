// Package sqlitetest opens throwaway SQLite databases holding the schools
// table, for tests of code that talks to the repository.
package sqlitetest

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

const schoolsTable = `CREATE TABLE schools (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	contact TEXT NOT NULL,
	image TEXT NULL,
	email_id TEXT NOT NULL
)`

// Open returns a pool of at most maxOpen connections to a fresh database
// file in t's temp dir. The pool is closed when the test ends.
func Open(t testing.TB, maxOpen int) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schools.db")
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(maxOpen)
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(schoolsTable); err != nil {
		t.Fatalf("create schools table: %v", err)
	}
	return db
}

// Count returns the number of rows in the schools table.
func Count(t testing.TB, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM schools").Scan(&n); err != nil {
		t.Fatalf("count schools: %v", err)
	}
	return n
}
