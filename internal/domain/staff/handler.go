package staff

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/validator"
)

var ErrMemberNotFound = errors.New("staff member not found")

// Handler handles staff HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new staff handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// List handles GET /staff (public, active only)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// AdminList handles GET /admin/staff (all rows)
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	members, err := h.repo.List(r.Context(), activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("List staff failed")
		response.InternalError(w)
		return
	}

	resp := make([]*MemberResponse, len(members))
	for i := range members {
		resp[i] = members[i].ToResponse()
	}
	response.OK(w, resp)
}

// Create handles POST /admin/staff
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMemberRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	now := time.Now()
	m := &Member{
		ID:        uuid.New(),
		Name:      req.Name,
		Title:     req.Title,
		Bio:       sql.NullString{String: req.Bio, Valid: req.Bio != ""},
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(r.Context(), m); err != nil {
		log.Error().Err(err).Msg("Create staff member failed")
		response.InternalError(w)
		return
	}

	response.Created(w, m.ToResponse())
}

// Update handles PUT /admin/staff/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid staff ID")
		return
	}

	var req UpdateMemberRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	m, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get staff member failed")
		response.InternalError(w)
		return
	}
	if m == nil {
		response.NotFound(w, ErrMemberNotFound.Error())
		return
	}

	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Title != nil {
		m.Title = *req.Title
	}
	if req.Bio != nil {
		m.Bio = sql.NullString{String: *req.Bio, Valid: *req.Bio != ""}
	}
	if req.Email != nil {
		m.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.IsActive != nil {
		m.IsActive = *req.IsActive
	}

	if err := h.repo.Update(r.Context(), m); err != nil {
		log.Error().Err(err).Msg("Update staff member failed")
		response.InternalError(w)
		return
	}

	response.OK(w, m.ToResponse())
}

// Delete handles DELETE /admin/staff/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid staff ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Delete staff member failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// PublicRoutes returns the public staff router.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	return r
}

// AdminRoutes returns the staff management router (admin only).
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireAdmin())

	r.Get("/", h.AdminList)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
