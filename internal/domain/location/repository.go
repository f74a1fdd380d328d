package location

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles location database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new location repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new location
func (r *Repository) Create(ctx context.Context, l *Location) error {
	query := `
		INSERT INTO locations (id, name, address, description, extra_fee, working_hours, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Address, l.Description, l.ExtraFee, l.WorkingHours, l.IsActive, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

// GetByID returns a location by ID; nil when not found
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	query := `SELECT * FROM locations WHERE id = $1`
	var l Location
	err := r.db.GetContext(ctx, &l, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &l, err
}

// List returns locations, optionally active only
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]Location, error) {
	query := `SELECT * FROM locations ORDER BY name`
	if activeOnly {
		query = `SELECT * FROM locations WHERE is_active = true ORDER BY name`
	}
	var locations []Location
	err := r.db.SelectContext(ctx, &locations, query)
	return locations, err
}

// Update saves a modified location
func (r *Repository) Update(ctx context.Context, l *Location) error {
	query := `
		UPDATE locations
		SET name = $2, address = $3, description = $4, extra_fee = $5, working_hours = $6, is_active = $7, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.Name, l.Address, l.Description, l.ExtraFee, l.WorkingHours, l.IsActive,
	)
	return err
}

// Delete removes a location
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, id)
	return err
}
