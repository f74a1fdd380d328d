package customer

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/tableview"
	"github.com/lumenstudio/lumen-api/internal/pkg/validator"
)

var ErrCustomerNotFound = errors.New("customer not found")

// Handler handles customer HTTP requests (admin only).
type Handler struct {
	repo  *Repository
	table *tableview.Engine[Customer]
}

// NewHandler creates a new customer handler
func NewHandler(repo *Repository) (*Handler, error) {
	table, err := tableview.New(
		[]tableview.Column[Customer]{
			{Key: "name", Title: "Name", Sortable: true, Value: func(c Customer) any { return c.Name }},
			{Key: "email", Title: "Email", Sortable: true, Value: func(c Customer) any { return c.Email }},
			{Key: "phone", Title: "Phone", Value: func(c Customer) any { return c.Phone.String }},
			{Key: "created_at", Title: "Since", Sortable: true, Value: func(c Customer) any { return c.CreatedAt }},
		},
		func(c Customer) string { return c.ID.String() },
	)
	if err != nil {
		return nil, fmt.Errorf("customer table: %w", err)
	}
	return &Handler{repo: repo, table: table}, nil
}

// List handles GET /admin/customers with search/sort/pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("List customers failed")
		response.InternalError(w)
		return
	}

	result := h.table.View(customers, tableview.ParseQuery(r.URL.Query()))
	response.WithMeta(w, result.Rows, result.Meta)
}

// Export handles GET /admin/customers/export as CSV.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	customers, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("List customers failed")
		response.InternalError(w)
		return
	}

	body := h.table.ExportCSV(customers, tableview.ParseQuery(r.URL.Query()))
	w.Header().Set("Content-Type", tableview.CSVContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+tableview.ExportFilename(time.Now()))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Get handles GET /admin/customers/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get customer failed")
		response.InternalError(w)
		return
	}
	if c == nil {
		response.NotFound(w, ErrCustomerNotFound.Error())
		return
	}

	response.OK(w, c.ToResponse())
}

// Update handles PUT /admin/customers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	var req UpdateCustomerRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get customer failed")
		response.InternalError(w)
		return
	}
	if c == nil {
		response.NotFound(w, ErrCustomerNotFound.Error())
		return
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = sql.NullString{String: *req.Phone, Valid: *req.Phone != ""}
	}
	if req.Notes != nil {
		c.Notes = sql.NullString{String: *req.Notes, Valid: *req.Notes != ""}
	}

	if err := h.repo.Update(r.Context(), c); err != nil {
		log.Error().Err(err).Msg("Update customer failed")
		response.InternalError(w)
		return
	}

	response.OK(w, c.ToResponse())
}

// Delete handles DELETE /admin/customers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid customer ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Delete customer failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// AdminRoutes returns the customer management router (staff and admin).
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Get("/", h.List)
	r.Get("/export", h.Export)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}
