package staff

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles staff database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new staff repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new staff member
func (r *Repository) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO staff_members (id, name, title, bio, email, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Title, m.Bio, m.Email, m.IsActive, m.CreatedAt, m.UpdatedAt,
	)
	return err
}

// GetByID returns a staff member by ID; nil when not found
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Member, error) {
	query := `SELECT * FROM staff_members WHERE id = $1`
	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &m, err
}

// List returns staff members, optionally active only
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]Member, error) {
	query := `SELECT * FROM staff_members ORDER BY name`
	if activeOnly {
		query = `SELECT * FROM staff_members WHERE is_active = true ORDER BY name`
	}
	var members []Member
	err := r.db.SelectContext(ctx, &members, query)
	return members, err
}

// Update saves a modified staff member
func (r *Repository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE staff_members
		SET name = $2, title = $3, bio = $4, email = $5, is_active = $6, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Title, m.Bio, m.Email, m.IsActive)
	return err
}

// Delete removes a staff member
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM staff_members WHERE id = $1`, id)
	return err
}
