package repository

import (
	"context"
	"database/sql"

	"school-directory/models"
)

const (
	insertSchool = "INSERT INTO schools (name, address, city, state, contact, image, email_id) VALUES (?, ?, ?, ?, ?, ?, ?)"
	selectAll    = "SELECT id, name, address, city, state, contact, image, email_id FROM schools ORDER BY id DESC"
	deleteByID   = "DELETE FROM schools WHERE id = ?"
)

// SchoolRepository stores schools in a SQL database. Every operation holds
// one pooled connection for its duration and releases it on return.
type SchoolRepository struct {
	db *sql.DB
}

func NewSchoolRepository(db *sql.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// Create validates input and inserts a row, returning the generated id.
func (r *SchoolRepository) Create(ctx context.Context, input models.SchoolInput, image *string) (int64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, &models.StoreError{Op: "create", Err: err}
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, insertSchool,
		input.Name, input.Address, input.City, input.State, input.Contact, image, input.EmailID)
	if err != nil {
		return 0, &models.StoreError{Op: "create", Err: err}
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, &models.StoreError{Op: "create", Err: err}
	}
	return id, nil
}

// ListAll returns every school, newest first.
func (r *SchoolRepository) ListAll(ctx context.Context) ([]models.School, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, &models.StoreError{Op: "list", Err: err}
	}
	defer conn.Close()

	rows, err := conn.QueryContext(ctx, selectAll)
	if err != nil {
		return nil, &models.StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	schools := make([]models.School, 0)
	for rows.Next() {
		var s models.School
		var image sql.NullString
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.City, &s.State, &s.Contact, &image, &s.EmailID); err != nil {
			return nil, &models.StoreError{Op: "list", Err: err}
		}
		if image.Valid {
			s.Image = &image.String
		}
		schools = append(schools, s)
	}
	if err := rows.Err(); err != nil {
		return nil, &models.StoreError{Op: "list", Err: err}
	}
	return schools, nil
}

// DeleteByID removes the school with id. It reports false when no row matched.
func (r *SchoolRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return false, &models.StoreError{Op: "delete", Err: err}
	}
	defer conn.Close()

	result, err := conn.ExecContext(ctx, deleteByID, id)
	if err != nil {
		return false, &models.StoreError{Op: "delete", Err: err}
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, &models.StoreError{Op: "delete", Err: err}
	}
	return n > 0, nil
}

// Ping checks that a connection can be acquired.
func (r *SchoolRepository) Ping(ctx context.Context) error {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return &models.StoreError{Op: "ping", Err: err}
	}
	defer conn.Close()
	if err := conn.PingContext(ctx); err != nil {
		return &models.StoreError{Op: "ping", Err: err}
	}
	return nil
}
