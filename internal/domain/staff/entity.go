package staff

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Member is a studio photographer or assistant shown on the public site.
type Member struct {
	ID        uuid.UUID      `db:"id"`
	Name      string         `db:"name"`
	Title     string         `db:"title"`
	Bio       sql.NullString `db:"bio"`
	Email     string         `db:"email"`
	IsActive  bool           `db:"is_active"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

// MemberResponse for API responses
type MemberResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Bio      string `json:"bio,omitempty"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}

// ToResponse converts entity to response
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:       m.ID.String(),
		Name:     m.Name,
		Title:    m.Title,
		Bio:      m.Bio.String,
		Email:    m.Email,
		IsActive: m.IsActive,
	}
}

type CreateMemberRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=200"`
	Title    string `json:"title" validate:"required,min=2,max=200"`
	Bio      string `json:"bio" validate:"max=2000"`
	Email    string `json:"email" validate:"required,email"`
	IsActive *bool  `json:"is_active"`
}

type UpdateMemberRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Title    *string `json:"title,omitempty" validate:"omitempty,min=2,max=200"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	IsActive *bool   `json:"is_active,omitempty"`
}
