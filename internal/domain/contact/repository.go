package contact

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles contact message database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new contact repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new message
func (r *Repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO contact_messages (id, name, email, subject, body, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Email, m.Subject, m.Body, m.IsRead, m.CreatedAt,
	)
	return err
}

// GetByID returns a message by ID; nil when not found
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Message, error) {
	query := `SELECT * FROM contact_messages WHERE id = $1`
	var m Message
	err := r.db.GetContext(ctx, &m, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &m, err
}

// List returns all messages newest first
func (r *Repository) List(ctx context.Context) ([]Message, error) {
	var messages []Message
	err := r.db.SelectContext(ctx, &messages, `SELECT * FROM contact_messages ORDER BY created_at DESC`)
	return messages, err
}

// MarkRead flags a message as read
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = true WHERE id = $1`, id)
	return err
}

// Delete removes a message
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	return err
}

// CountUnread returns the number of unread messages
func (r *Repository) CountUnread(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM contact_messages WHERE is_read = false`)
	return count, err
}
