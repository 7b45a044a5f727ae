package driver

import (
	"context"
	"database/sql"
)

// SchoolsTable is the MySQL definition of the schools table.
const SchoolsTable = `CREATE TABLE IF NOT EXISTS schools (
	id INT AUTO_INCREMENT PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	city TEXT NOT NULL,
	state TEXT NOT NULL,
	contact VARCHAR(20) NOT NULL,
	image LONGTEXT NULL,
	email_id TEXT NOT NULL
)`

// EnsureSchema creates the schools table when it is missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, SchoolsTable)
	return err
}
