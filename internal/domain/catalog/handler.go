package catalog

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/validator"
)

// Handler handles catalog HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new catalog handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// ---------- CATEGORIES ----------

// ListCategories handles GET /categories (public, active only)
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	h.listCategories(w, r, true)
}

// AdminListCategories handles GET /admin/categories (all rows)
func (h *Handler) AdminListCategories(w http.ResponseWriter, r *http.Request) {
	h.listCategories(w, r, false)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	categories, err := h.repo.ListCategories(r.Context(), activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("List categories failed")
		response.InternalError(w)
		return
	}

	resp := make([]*CategoryResponse, len(categories))
	for i := range categories {
		resp[i] = categories[i].ToResponse()
	}
	response.OK(w, resp)
}

// GetCategory handles GET /categories/{id}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	c, err := h.repo.GetCategoryByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get category failed")
		response.InternalError(w)
		return
	}
	if c == nil {
		response.NotFound(w, ErrCategoryNotFound.Error())
		return
	}

	response.OK(w, c.ToResponse())
}

// CreateCategory handles POST /admin/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now()
	c := &Category{
		ID:           uuid.New(),
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  nullString(req.Description),
		DisplayOrder: req.DisplayOrder,
		IsActive:     boolOr(req.IsActive, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.repo.CreateCategory(r.Context(), c); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(w, ErrSlugTaken.Error())
			return
		}
		log.Error().Err(err).Msg("Create category failed")
		response.InternalError(w)
		return
	}

	log.Info().Str("category_id", c.ID.String()).Str("slug", c.Slug).Msg("Category created")
	response.Created(w, c.ToResponse())
}

// UpdateCategory handles PUT /admin/categories/{id}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	var req UpdateCategoryRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.repo.GetCategoryByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get category failed")
		response.InternalError(w)
		return
	}
	if c == nil {
		response.NotFound(w, ErrCategoryNotFound.Error())
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Slug != nil {
		c.Slug = *req.Slug
	}
	if req.Description != nil {
		c.Description = nullString(*req.Description)
	}
	if req.DisplayOrder != nil {
		c.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := h.repo.UpdateCategory(r.Context(), c); err != nil {
		if errors.Is(err, ErrSlugTaken) {
			response.Conflict(w, ErrSlugTaken.Error())
			return
		}
		log.Error().Err(err).Msg("Update category failed")
		response.InternalError(w)
		return
	}

	response.OK(w, c.ToResponse())
}

// DeleteCategory handles DELETE /admin/categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid category ID")
		return
	}

	if err := h.repo.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, ErrCategoryInUse) {
			response.Conflict(w, ErrCategoryInUse.Error())
			return
		}
		log.Error().Err(err).Msg("Delete category failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// ---------- PACKAGES ----------

// ListPackages handles GET /packages (public, active only). Supports
// ?category_id= filtering for the booking wizard.
func (h *Handler) ListPackages(w http.ResponseWriter, r *http.Request) {
	h.listPackages(w, r, true)
}

// AdminListPackages handles GET /admin/packages (all rows)
func (h *Handler) AdminListPackages(w http.ResponseWriter, r *http.Request) {
	h.listPackages(w, r, false)
}

func (h *Handler) listPackages(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	var categoryID *uuid.UUID
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid category ID")
			return
		}
		categoryID = &id
	}

	packages, err := h.repo.ListPackages(r.Context(), categoryID, activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("List packages failed")
		response.InternalError(w)
		return
	}

	resp := make([]*PackageResponse, len(packages))
	for i := range packages {
		resp[i] = packages[i].ToResponse()
	}
	response.OK(w, resp)
}

// GetPackage handles GET /packages/{id}
func (h *Handler) GetPackage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid package ID")
		return
	}

	p, err := h.repo.GetPackageByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get package failed")
		response.InternalError(w)
		return
	}
	if p == nil {
		response.NotFound(w, ErrPackageNotFound.Error())
		return
	}

	response.OK(w, p.ToResponse())
}

// CreatePackage handles POST /admin/packages
func (h *Handler) CreatePackage(w http.ResponseWriter, r *http.Request) {
	var req CreatePackageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	categoryID, _ := uuid.Parse(req.CategoryID)
	category, err := h.repo.GetCategoryByID(r.Context(), categoryID)
	if err != nil {
		log.Error().Err(err).Msg("Get category failed")
		response.InternalError(w)
		return
	}
	if category == nil {
		response.NotFound(w, ErrCategoryNotFound.Error())
		return
	}

	now := time.Now()
	p := &Package{
		ID:              uuid.New(),
		CategoryID:      categoryID,
		Name:            req.Name,
		Description:     nullString(req.Description),
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		IsActive:        boolOr(req.IsActive, true),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.repo.CreatePackage(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("Create package failed")
		response.InternalError(w)
		return
	}

	log.Info().Str("package_id", p.ID.String()).Str("name", p.Name).Msg("Package created")
	response.Created(w, p.ToResponse())
}

// UpdatePackage handles PUT /admin/packages/{id}
func (h *Handler) UpdatePackage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid package ID")
		return
	}

	var req UpdatePackageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p, err := h.repo.GetPackageByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get package failed")
		response.InternalError(w)
		return
	}
	if p == nil {
		response.NotFound(w, ErrPackageNotFound.Error())
		return
	}

	if req.CategoryID != nil {
		categoryID, _ := uuid.Parse(*req.CategoryID)
		category, err := h.repo.GetCategoryByID(r.Context(), categoryID)
		if err != nil {
			log.Error().Err(err).Msg("Get category failed")
			response.InternalError(w)
			return
		}
		if category == nil {
			response.NotFound(w, ErrCategoryNotFound.Error())
			return
		}
		p.CategoryID = categoryID
	}
	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = nullString(*req.Description)
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.DurationMinutes != nil {
		p.DurationMinutes = *req.DurationMinutes
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := h.repo.UpdatePackage(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("Update package failed")
		response.InternalError(w)
		return
	}

	response.OK(w, p.ToResponse())
}

// DeletePackage handles DELETE /admin/packages/{id}
func (h *Handler) DeletePackage(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid package ID")
		return
	}

	if err := h.repo.DeletePackage(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Delete package failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// ---------- ADD-ONS ----------

// ListAddons handles GET /addons (public, active only)
func (h *Handler) ListAddons(w http.ResponseWriter, r *http.Request) {
	h.listAddons(w, r, true)
}

// AdminListAddons handles GET /admin/addons (all rows)
func (h *Handler) AdminListAddons(w http.ResponseWriter, r *http.Request) {
	h.listAddons(w, r, false)
}

func (h *Handler) listAddons(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	addons, err := h.repo.ListAddons(r.Context(), activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("List addons failed")
		response.InternalError(w)
		return
	}

	resp := make([]*AddonResponse, len(addons))
	for i := range addons {
		resp[i] = addons[i].ToResponse()
	}
	response.OK(w, resp)
}

// CreateAddon handles POST /admin/addons
func (h *Handler) CreateAddon(w http.ResponseWriter, r *http.Request) {
	var req CreateAddonRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	now := time.Now()
	a := &Addon{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: nullString(req.Description),
		Price:       req.Price,
		IsActive:    boolOr(req.IsActive, true),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.repo.CreateAddon(r.Context(), a); err != nil {
		log.Error().Err(err).Msg("Create addon failed")
		response.InternalError(w)
		return
	}

	response.Created(w, a.ToResponse())
}

// UpdateAddon handles PUT /admin/addons/{id}
func (h *Handler) UpdateAddon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid addon ID")
		return
	}

	var req UpdateAddonRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.repo.GetAddonByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get addon failed")
		response.InternalError(w)
		return
	}
	if a == nil {
		response.NotFound(w, ErrAddonNotFound.Error())
		return
	}

	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Description != nil {
		a.Description = nullString(*req.Description)
	}
	if req.Price != nil {
		a.Price = *req.Price
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	if err := h.repo.UpdateAddon(r.Context(), a); err != nil {
		log.Error().Err(err).Msg("Update addon failed")
		response.InternalError(w)
		return
	}

	response.OK(w, a.ToResponse())
}

// DeleteAddon handles DELETE /admin/addons/{id}
func (h *Handler) DeleteAddon(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid addon ID")
		return
	}

	if err := h.repo.DeleteAddon(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Delete addon failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
