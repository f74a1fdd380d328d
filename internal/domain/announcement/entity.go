package announcement

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Announcement is a studio notice shown on the public site during its
// publish window. A null bound leaves that side of the window open.
type Announcement struct {
	ID        uuid.UUID    `db:"id"`
	Title     string       `db:"title"`
	Body      string       `db:"body"`
	StartsAt  sql.NullTime `db:"starts_at"`
	EndsAt    sql.NullTime `db:"ends_at"`
	IsActive  bool         `db:"is_active"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

// PublishedAt reports whether the announcement is visible at t.
func (a *Announcement) PublishedAt(t time.Time) bool {
	if !a.IsActive {
		return false
	}
	if a.StartsAt.Valid && t.Before(a.StartsAt.Time) {
		return false
	}
	if a.EndsAt.Valid && t.After(a.EndsAt.Time) {
		return false
	}
	return true
}

// AnnouncementResponse for API responses
type AnnouncementResponse struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Body     string     `json:"body"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	IsActive bool       `json:"is_active"`
}

// ToResponse converts entity to response
func (a *Announcement) ToResponse() *AnnouncementResponse {
	resp := &AnnouncementResponse{
		ID:       a.ID.String(),
		Title:    a.Title,
		Body:     a.Body,
		IsActive: a.IsActive,
	}
	if a.StartsAt.Valid {
		t := a.StartsAt.Time
		resp.StartsAt = &t
	}
	if a.EndsAt.Valid {
		t := a.EndsAt.Time
		resp.EndsAt = &t
	}
	return resp
}

type CreateAnnouncementRequest struct {
	Title    string     `json:"title" validate:"required,min=2,max=300"`
	Body     string     `json:"body" validate:"required,max=10000"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
	IsActive *bool      `json:"is_active"`
}

type UpdateAnnouncementRequest struct {
	Title    *string    `json:"title,omitempty" validate:"omitempty,min=2,max=300"`
	Body     *string    `json:"body,omitempty" validate:"omitempty,max=10000"`
	StartsAt *time.Time `json:"starts_at,omitempty"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	IsActive *bool      `json:"is_active,omitempty"`
}
