package announcement

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/validator"
)

var ErrAnnouncementNotFound = errors.New("announcement not found")

// Handler handles announcement HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new announcement handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// ListPublished handles GET /announcements (public)
func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.repo.ListPublished(r.Context(), time.Now())
	if err != nil {
		log.Error().Err(err).Msg("List announcements failed")
		response.InternalError(w)
		return
	}

	resp := make([]*AnnouncementResponse, len(announcements))
	for i := range announcements {
		resp[i] = announcements[i].ToResponse()
	}
	response.OK(w, resp)
}

// AdminList handles GET /admin/announcements (all rows)
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("List announcements failed")
		response.InternalError(w)
		return
	}

	resp := make([]*AnnouncementResponse, len(announcements))
	for i := range announcements {
		resp[i] = announcements[i].ToResponse()
	}
	response.OK(w, resp)
}

// Create handles POST /admin/announcements
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateAnnouncementRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}
	if req.StartsAt != nil && req.EndsAt != nil && req.EndsAt.Before(*req.StartsAt) {
		response.BadRequest(w, "ends_at must not precede starts_at")
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	a := &Announcement{
		ID:        uuid.New(),
		Title:     req.Title,
		Body:      req.Body,
		StartsAt:  nullTime(req.StartsAt),
		EndsAt:    nullTime(req.EndsAt),
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(r.Context(), a); err != nil {
		log.Error().Err(err).Msg("Create announcement failed")
		response.InternalError(w)
		return
	}

	response.Created(w, a.ToResponse())
}

// Update handles PUT /admin/announcements/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid announcement ID")
		return
	}

	var req UpdateAnnouncementRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	a, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get announcement failed")
		response.InternalError(w)
		return
	}
	if a == nil {
		response.NotFound(w, ErrAnnouncementNotFound.Error())
		return
	}

	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Body != nil {
		a.Body = *req.Body
	}
	if req.StartsAt != nil {
		a.StartsAt = nullTime(req.StartsAt)
	}
	if req.EndsAt != nil {
		a.EndsAt = nullTime(req.EndsAt)
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}
	if a.StartsAt.Valid && a.EndsAt.Valid && a.EndsAt.Time.Before(a.StartsAt.Time) {
		response.BadRequest(w, "ends_at must not precede starts_at")
		return
	}

	if err := h.repo.Update(r.Context(), a); err != nil {
		log.Error().Err(err).Msg("Update announcement failed")
		response.InternalError(w)
		return
	}

	response.OK(w, a.ToResponse())
}

// Delete handles DELETE /admin/announcements/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid announcement ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Delete announcement failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// PublicRoutes returns the public announcements router.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListPublished)
	return r
}

// AdminRoutes returns the announcement management router (staff and admin).
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Get("/", h.AdminList)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
