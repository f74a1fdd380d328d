package settings

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/validator"
)

// UpdateRequest carries the admin's policy edit. Omitted (null) fields
// reset the knob to "unset", which resolves to the built-in default.
type UpdateRequest struct {
	WorkingHoursStart         *string `json:"working_hours_start" validate:"omitempty,hhmm"`
	WorkingHoursEnd           *string `json:"working_hours_end" validate:"omitempty,hhmm"`
	SlotIntervalMinutes       *int    `json:"slot_interval_minutes" validate:"omitempty,gt=0"`
	MinimumBookingHours       *int    `json:"minimum_booking_hours" validate:"omitempty,gte=0"`
	MaximumAdvanceBookingDays *int    `json:"maximum_advance_booking_days" validate:"omitempty,gte=0"`
}

// PolicyResponse exposes both the stored values and the resolved effective
// policy so the admin UI can show which knobs are defaulted.
type PolicyResponse struct {
	Stored   UpdateRequest `json:"stored"`
	Resolved Resolved      `json:"resolved"`
}

// Handler handles booking-policy HTTP requests.
type Handler struct {
	service *Service
}

// NewHandler creates a new settings handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Get handles GET /admin/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.Raw(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Load settings failed")
		response.InternalError(w)
		return
	}

	resp := PolicyResponse{Resolved: p.Resolve()}
	if p != nil {
		resp.Stored = UpdateRequest{
			WorkingHoursStart:         p.WorkingHoursStart,
			WorkingHoursEnd:           p.WorkingHoursEnd,
			SlotIntervalMinutes:       p.SlotIntervalMinutes,
			MinimumBookingHours:       p.MinimumBookingHours,
			MaximumAdvanceBookingDays: p.MaximumAdvanceBookingDays,
		}
	}

	response.OK(w, resp)
}

// Update handles PUT /admin/settings
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	p := &Policy{
		WorkingHoursStart:         req.WorkingHoursStart,
		WorkingHoursEnd:           req.WorkingHoursEnd,
		SlotIntervalMinutes:       req.SlotIntervalMinutes,
		MinimumBookingHours:       req.MinimumBookingHours,
		MaximumAdvanceBookingDays: req.MaximumAdvanceBookingDays,
	}

	if err := h.service.Update(r.Context(), p); err != nil {
		log.Error().Err(err).Msg("Update settings failed")
		response.InternalError(w)
		return
	}

	response.OK(w, PolicyResponse{Stored: req, Resolved: p.Resolve()})
}

// Routes returns the settings router (admin only).
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireAdmin())

	r.Get("/", h.Get)
	r.Put("/", h.Update)

	return r
}
