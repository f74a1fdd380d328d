package announcement

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles announcement database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new announcement repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new announcement
func (r *Repository) Create(ctx context.Context, a *Announcement) error {
	query := `
		INSERT INTO announcements (id, title, body, starts_at, ends_at, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Title, a.Body, a.StartsAt, a.EndsAt, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// GetByID returns an announcement by ID; nil when not found
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Announcement, error) {
	query := `SELECT * FROM announcements WHERE id = $1`
	var a Announcement
	err := r.db.GetContext(ctx, &a, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &a, err
}

// ListPublished returns announcements visible at the given time.
func (r *Repository) ListPublished(ctx context.Context, at time.Time) ([]Announcement, error) {
	query := `
		SELECT * FROM announcements
		WHERE is_active = true
		  AND (starts_at IS NULL OR starts_at <= $1)
		  AND (ends_at IS NULL OR ends_at >= $1)
		ORDER BY created_at DESC
	`
	var announcements []Announcement
	err := r.db.SelectContext(ctx, &announcements, query, at)
	return announcements, err
}

// List returns all announcements newest first
func (r *Repository) List(ctx context.Context) ([]Announcement, error) {
	var announcements []Announcement
	err := r.db.SelectContext(ctx, &announcements, `SELECT * FROM announcements ORDER BY created_at DESC`)
	return announcements, err
}

// Update saves a modified announcement
func (r *Repository) Update(ctx context.Context, a *Announcement) error {
	query := `
		UPDATE announcements
		SET title = $2, body = $3, starts_at = $4, ends_at = $5, is_active = $6, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Title, a.Body, a.StartsAt, a.EndsAt, a.IsActive)
	return err
}

// Delete removes an announcement
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	return err
}
