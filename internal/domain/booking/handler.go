package booking

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/robokassa"
	"github.com/lumenstudio/lumen-api/internal/pkg/tableview"
	"github.com/lumenstudio/lumen-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service     *Service
	frontendURL string
	table       *tableview.Engine[Booking]
}

// NewHandler creates a new booking handler
func NewHandler(service *Service, frontendURL string) (*Handler, error) {
	table, err := tableview.New(
		[]tableview.Column[Booking]{
			{Key: "inv_id", Title: "Invoice", Sortable: true, Value: func(b Booking) any { return b.InvID }},
			{Key: "date", Title: "Date", Sortable: true, Value: func(b Booking) any { return b.Date }},
			{Key: "start_time", Title: "Start", Sortable: true, Value: func(b Booking) any { return b.StartTime }},
			{Key: "status", Title: "Status", Sortable: true, Value: func(b Booking) any { return string(b.Status) }},
			{Key: "payment", Title: "Payment", Value: func(b Booking) any { return string(b.PaymentStatus) }},
			{Key: "total", Title: "Total", Sortable: true,
				Value:  func(b Booking) any { return b.Total },
				Render: func(b Booking) string { return fmt.Sprintf("%.2f", b.Total) }},
			{Key: "created_at", Title: "Created", Sortable: true, Value: func(b Booking) any { return b.CreatedAt }},
		},
		func(b Booking) string { return b.ID.String() },
		tableview.WithActions(
			tableview.Action[Booking]{
				Key: "confirm", Label: "Confirm", Variant: tableview.VariantSuccess,
				Hidden: func(b Booking) bool { return b.Status != StatusPending },
			},
			tableview.Action[Booking]{
				Key: "complete", Label: "Complete", Variant: tableview.VariantPrimary,
				Hidden: func(b Booking) bool { return b.Status != StatusConfirmed },
			},
			tableview.Action[Booking]{
				Key: "cancel", Label: "Cancel", Variant: tableview.VariantDanger,
				Hidden: func(b Booking) bool {
					return b.Status == StatusCompleted || b.Status == StatusCancelled
				},
			},
		),
	)
	if err != nil {
		return nil, err
	}
	return &Handler{service: service, frontendURL: frontendURL, table: table}, nil
}

// Availability handles GET /bookings/availability?date=&location_id=&package_id=
func (h *Handler) Availability(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		response.BadRequest(w, "date must be YYYY-MM-DD")
		return
	}

	var locationID, packageID *uuid.UUID
	if raw := r.URL.Query().Get("location_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid location ID")
			return
		}
		locationID = &id
	}
	if raw := r.URL.Query().Get("package_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(w, "Invalid package ID")
			return
		}
		packageID = &id
	}

	resp, err := h.service.Availability(r.Context(), date, locationID, packageID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, resp)
}

// Quote handles POST /bookings/quote
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	resp, err := h.service.QuoteFor(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, resp)
}

// Create handles POST /bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, paymentURL, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Created(w, CreateBookingResponse{
		Booking:    b.ToResponse(),
		PaymentURL: paymentURL,
	})
}

// Webhook handles POST /webhooks/robokassa/result. The gateway expects a
// plain "OK<InvId>" body on success and retries otherwise.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	payload, err := robokassa.ParseWebhookForm(r.Form)
	if err != nil {
		log.Warn().Err(err).Msg("Malformed payment webhook")
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	ack, err := h.service.HandleResult(r.Context(), payload)
	if err != nil {
		log.Warn().Err(err).Int64("inv_id", payload.InvID).Msg("Payment webhook rejected")
		http.Error(w, "rejected", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(ack))
}

// PaymentSuccess handles GET /webhooks/robokassa/success and redirects
// the customer to the frontend confirmation page.
func (h *Handler) PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	payload, err := robokassa.ParseWebhookForm(r.URL.Query())
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/booking/failed", http.StatusFound)
		return
	}

	b, err := h.service.HandleSuccess(r.Context(), payload)
	if err != nil {
		log.Warn().Err(err).Int64("inv_id", payload.InvID).Msg("Payment success redirect rejected")
		http.Redirect(w, r, h.frontendURL+"/booking/failed", http.StatusFound)
		return
	}

	http.Redirect(w, r, h.frontendURL+"/booking/success?id="+b.ID.String(), http.StatusFound)
}

// PaymentFail handles GET /webhooks/robokassa/fail.
func (h *Handler) PaymentFail(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.frontendURL+"/booking/failed", http.StatusFound)
}

// List handles GET /admin/bookings with search/sort/pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("List bookings failed")
		response.InternalError(w)
		return
	}

	result := h.table.View(bookings, tableview.ParseQuery(r.URL.Query()))
	response.WithMeta(w, result.Rows, result.Meta)
}

// Export handles GET /admin/bookings/export as CSV. The export covers
// the filtered and sorted set regardless of pagination.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("List bookings failed")
		response.InternalError(w)
		return
	}

	body := h.table.ExportCSV(bookings, tableview.ParseQuery(r.URL.Query()))
	w.Header().Set("Content-Type", tableview.CSVContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+tableview.ExportFilename(time.Now()))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Get handles GET /admin/bookings/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	b, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, b.ToResponse())
}

// UpdateStatus handles PATCH /admin/bookings/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking ID")
		return
	}

	var req UpdateStatusRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	b, err := h.service.UpdateStatus(r.Context(), id, req.Status, req.Reason)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.OK(w, b.ToResponse())
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound),
		errors.Is(err, ErrPackageNotFound),
		errors.Is(err, ErrLocationNotFound),
		errors.Is(err, ErrAddonNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrSlotUnavailable),
		errors.Is(err, ErrSlotTaken):
		response.Conflict(w, err.Error())
	case errors.Is(err, ErrDateInPast),
		errors.Is(err, ErrDateTooFar),
		errors.Is(err, ErrInvalidTransition),
		errors.Is(err, ErrCancelReasonNeeded):
		response.BadRequest(w, err.Error())
	default:
		log.Error().Err(err).Msg("Booking request failed")
		response.InternalError(w)
	}
}

// PublicRoutes returns the booking wizard router.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()

	r.Get("/availability", h.Availability)
	r.Post("/quote", h.Quote)
	r.Post("/", h.Create)

	return r
}

// WebhookRoutes returns the payment gateway callback router.
func (h *Handler) WebhookRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/result", h.Webhook)
	r.Get("/success", h.PaymentSuccess)
	r.Get("/fail", h.PaymentFail)

	return r
}

// AdminRoutes returns the booking management router (staff and admin).
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Get("/", h.List)
	r.Get("/export", h.Export)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}/status", h.UpdateStatus)

	return r
}
