package catalog

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles catalog database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new catalog repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ---------- CATEGORIES ----------

// CreateCategory inserts a new category
func (r *Repository) CreateCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, display_order, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Slug, c.Description, c.DisplayOrder, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil && strings.Contains(err.Error(), "categories_slug_key") {
		return ErrSlugTaken
	}
	return err
}

// GetCategoryByID returns a category by ID; nil when not found
func (r *Repository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	query := `SELECT * FROM categories WHERE id = $1`
	var c Category
	err := r.db.GetContext(ctx, &c, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &c, err
}

// ListCategories returns categories ordered for display.
// When activeOnly is set, inactive categories are filtered out.
func (r *Repository) ListCategories(ctx context.Context, activeOnly bool) ([]Category, error) {
	query := `SELECT * FROM categories ORDER BY display_order, name`
	if activeOnly {
		query = `SELECT * FROM categories WHERE is_active = true ORDER BY display_order, name`
	}
	var categories []Category
	err := r.db.SelectContext(ctx, &categories, query)
	return categories, err
}

// UpdateCategory saves a modified category
func (r *Repository) UpdateCategory(ctx context.Context, c *Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, description = $4, display_order = $5, is_active = $6, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Description, c.DisplayOrder, c.IsActive)
	if err != nil && strings.Contains(err.Error(), "categories_slug_key") {
		return ErrSlugTaken
	}
	return err
}

// DeleteCategory removes a category. Fails with ErrCategoryInUse when
// packages still reference it.
func (r *Repository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM packages WHERE category_id = $1`, id); err != nil {
		return err
	}
	if count > 0 {
		return ErrCategoryInUse
	}
	_, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return err
}

// ---------- PACKAGES ----------

// CreatePackage inserts a new package
func (r *Repository) CreatePackage(ctx context.Context, p *Package) error {
	query := `
		INSERT INTO packages (id, category_id, name, description, price, duration_minutes, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.DurationMinutes, p.IsActive, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// GetPackageByID returns a package by ID; nil when not found
func (r *Repository) GetPackageByID(ctx context.Context, id uuid.UUID) (*Package, error) {
	query := `SELECT * FROM packages WHERE id = $1`
	var p Package
	err := r.db.GetContext(ctx, &p, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &p, err
}

// ListPackages returns packages, optionally restricted to a category
// and to active rows only.
func (r *Repository) ListPackages(ctx context.Context, categoryID *uuid.UUID, activeOnly bool) ([]Package, error) {
	query := `SELECT * FROM packages WHERE 1=1`
	args := []interface{}{}
	if categoryID != nil {
		args = append(args, *categoryID)
		query += ` AND category_id = $1`
	}
	if activeOnly {
		query += ` AND is_active = true`
	}
	query += ` ORDER BY price, name`

	var packages []Package
	err := r.db.SelectContext(ctx, &packages, query, args...)
	return packages, err
}

// UpdatePackage saves a modified package
func (r *Repository) UpdatePackage(ctx context.Context, p *Package) error {
	query := `
		UPDATE packages
		SET category_id = $2, name = $3, description = $4, price = $5, duration_minutes = $6, is_active = $7, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.CategoryID, p.Name, p.Description, p.Price, p.DurationMinutes, p.IsActive)
	return err
}

// DeletePackage removes a package
func (r *Repository) DeletePackage(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = $1`, id)
	return err
}

// ---------- ADD-ONS ----------

// CreateAddon inserts a new add-on
func (r *Repository) CreateAddon(ctx context.Context, a *Addon) error {
	query := `
		INSERT INTO addons (id, name, description, price, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		a.ID, a.Name, a.Description, a.Price, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

// GetAddonByID returns an add-on by ID; nil when not found
func (r *Repository) GetAddonByID(ctx context.Context, id uuid.UUID) (*Addon, error) {
	query := `SELECT * FROM addons WHERE id = $1`
	var a Addon
	err := r.db.GetContext(ctx, &a, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &a, err
}

// GetAddonsByIDs returns the add-ons matching the given IDs.
func (r *Repository) GetAddonsByIDs(ctx context.Context, ids []uuid.UUID) ([]Addon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT * FROM addons WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	var addons []Addon
	err = r.db.SelectContext(ctx, &addons, r.db.Rebind(query), args...)
	return addons, err
}

// ListAddons returns add-ons, optionally active only
func (r *Repository) ListAddons(ctx context.Context, activeOnly bool) ([]Addon, error) {
	query := `SELECT * FROM addons ORDER BY name`
	if activeOnly {
		query = `SELECT * FROM addons WHERE is_active = true ORDER BY name`
	}
	var addons []Addon
	err := r.db.SelectContext(ctx, &addons, query)
	return addons, err
}

// UpdateAddon saves a modified add-on
func (r *Repository) UpdateAddon(ctx context.Context, a *Addon) error {
	query := `
		UPDATE addons
		SET name = $2, description = $3, price = $4, is_active = $5, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.Description, a.Price, a.IsActive)
	return err
}

// DeleteAddon removes an add-on
func (r *Repository) DeleteAddon(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM addons WHERE id = $1`, id)
	return err
}
