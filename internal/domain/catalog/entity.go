package catalog

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Category groups packages on the public site (portraits, weddings, ...).
type Category struct {
	ID           uuid.UUID      `db:"id"`
	Name         string         `db:"name"`
	Slug         string         `db:"slug"`
	Description  sql.NullString `db:"description"`
	DisplayOrder int            `db:"display_order"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// Package is a bookable session offering with a fixed duration.
type Package struct {
	ID              uuid.UUID      `db:"id"`
	CategoryID      uuid.UUID      `db:"category_id"`
	Name            string         `db:"name"`
	Description     sql.NullString `db:"description"`
	Price           float64        `db:"price"`
	DurationMinutes int            `db:"duration_minutes"`
	IsActive        bool           `db:"is_active"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// Addon is an optional extra sold on top of a package.
type Addon struct {
	ID          uuid.UUID      `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	Price       float64        `db:"price"`
	IsActive    bool           `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// CategoryResponse for API responses
type CategoryResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"display_order"`
	IsActive     bool   `json:"is_active"`
}

// ToResponse converts entity to response
func (c *Category) ToResponse() *CategoryResponse {
	return &CategoryResponse{
		ID:           c.ID.String(),
		Name:         c.Name,
		Slug:         c.Slug,
		Description:  c.Description.String,
		DisplayOrder: c.DisplayOrder,
		IsActive:     c.IsActive,
	}
}

// PackageResponse for API responses
type PackageResponse struct {
	ID              string  `json:"id"`
	CategoryID      string  `json:"category_id"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	IsActive        bool    `json:"is_active"`
}

// ToResponse converts entity to response
func (p *Package) ToResponse() *PackageResponse {
	return &PackageResponse{
		ID:              p.ID.String(),
		CategoryID:      p.CategoryID.String(),
		Name:            p.Name,
		Description:     p.Description.String,
		Price:           p.Price,
		DurationMinutes: p.DurationMinutes,
		IsActive:        p.IsActive,
	}
}

// AddonResponse for API responses
type AddonResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	IsActive    bool    `json:"is_active"`
}

// ToResponse converts entity to response
func (a *Addon) ToResponse() *AddonResponse {
	return &AddonResponse{
		ID:          a.ID.String(),
		Name:        a.Name,
		Description: a.Description.String,
		Price:       a.Price,
		IsActive:    a.IsActive,
	}
}
