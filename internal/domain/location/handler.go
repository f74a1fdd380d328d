package location

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/validator"
)

// Handler handles location HTTP requests
type Handler struct {
	repo *Repository
}

// NewHandler creates a new location handler
func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func hoursFromInput(in *WorkingHoursInput) NullWorkingHours {
	if in == nil {
		return NullWorkingHours{}
	}
	return NullWorkingHours{
		Hours: WorkingHours{Start: in.Start, End: in.End},
		Valid: true,
	}
}

// List handles GET /locations (public, active only)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// AdminList handles GET /admin/locations (all rows)
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	locations, err := h.repo.List(r.Context(), activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("List locations failed")
		response.InternalError(w)
		return
	}

	resp := make([]*LocationResponse, len(locations))
	for i := range locations {
		resp[i] = locations[i].ToResponse()
	}
	response.OK(w, resp)
}

// Get handles GET /locations/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid location ID")
		return
	}

	l, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get location failed")
		response.InternalError(w)
		return
	}
	if l == nil {
		response.NotFound(w, ErrLocationNotFound.Error())
		return
	}

	response.OK(w, l.ToResponse())
}

// Create handles POST /admin/locations
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLocationRequest
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
	l := &Location{
		ID:           uuid.New(),
		Name:         req.Name,
		Address:      nullString(req.Address),
		Description:  nullString(req.Description),
		ExtraFee:     req.ExtraFee,
		WorkingHours: hoursFromInput(req.WorkingHours),
		IsActive:     isActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.repo.Create(r.Context(), l); err != nil {
		log.Error().Err(err).Msg("Create location failed")
		response.InternalError(w)
		return
	}

	log.Info().Str("location_id", l.ID.String()).Str("name", l.Name).Msg("Location created")
	response.Created(w, l.ToResponse())
}

// Update handles PUT /admin/locations/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid location ID")
		return
	}

	var req UpdateLocationRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	l, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get location failed")
		response.InternalError(w)
		return
	}
	if l == nil {
		response.NotFound(w, ErrLocationNotFound.Error())
		return
	}

	if req.Name != nil {
		l.Name = *req.Name
	}
	if req.Address != nil {
		l.Address = nullString(*req.Address)
	}
	if req.Description != nil {
		l.Description = nullString(*req.Description)
	}
	if req.ExtraFee != nil {
		l.ExtraFee = *req.ExtraFee
	}
	if req.WorkingHours != nil {
		l.WorkingHours = hoursFromInput(req.WorkingHours)
	} else if req.ClearHours {
		l.WorkingHours = NullWorkingHours{}
	}
	if req.IsActive != nil {
		l.IsActive = *req.IsActive
	}

	if err := h.repo.Update(r.Context(), l); err != nil {
		log.Error().Err(err).Msg("Update location failed")
		response.InternalError(w)
		return
	}

	response.OK(w, l.ToResponse())
}

// Delete handles DELETE /admin/locations/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid location ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Delete location failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// PublicRoutes returns the public location router.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)

	return r
}

// AdminRoutes returns the location management router (staff and admin).
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
