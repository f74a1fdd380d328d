package customer

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles customer database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new customer repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Upsert creates or refreshes a customer keyed by email. The booking
// wizard calls this on every booking so returning customers keep one row.
func (r *Repository) Upsert(ctx context.Context, name, email, phone string) (*Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	query := `
		INSERT INTO customers (id, name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name, phone = COALESCE(NULLIF(EXCLUDED.phone, ''), customers.phone), updated_at = now()
		RETURNING *
	`
	var c Customer
	err := r.db.GetContext(ctx, &c, query,
		uuid.New(), name, email, sql.NullString{String: phone, Valid: phone != ""}, time.Now(),
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID returns a customer by ID; nil when not found
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	query := `SELECT * FROM customers WHERE id = $1`
	var c Customer
	err := r.db.GetContext(ctx, &c, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &c, err
}

// GetByEmail returns a customer by email; nil when not found
func (r *Repository) GetByEmail(ctx context.Context, email string) (*Customer, error) {
	query := `SELECT * FROM customers WHERE email = lower($1)`
	var c Customer
	err := r.db.GetContext(ctx, &c, query, strings.TrimSpace(email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &c, err
}

// List returns all customers newest first
func (r *Repository) List(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	err := r.db.SelectContext(ctx, &customers, `SELECT * FROM customers ORDER BY created_at DESC`)
	return customers, err
}

// Update saves a modified customer
func (r *Repository) Update(ctx context.Context, c *Customer) error {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, notes = $4, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Phone, c.Notes)
	return err
}

// Delete removes a customer
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = $1`, id)
	return err
}

// Count returns the total number of customers
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM customers`)
	return count, err
}
