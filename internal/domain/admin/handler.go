package admin

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/domain/booking"
	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
)

// BookingCounters yields booking dashboard totals
type BookingCounters interface {
	Counters(ctx context.Context) (*booking.DashboardCounters, error)
}

// MessageCounter yields the unread inbox total
type MessageCounter interface {
	CountUnread(ctx context.Context) (int, error)
}

// CustomerCounter yields the customer total
type CustomerCounter interface {
	Count(ctx context.Context) (int, error)
}

// Dashboard is the admin overview payload.
type Dashboard struct {
	BookingsToday   int     `json:"bookings_today"`
	PendingBookings int     `json:"pending_bookings"`
	PaidRevenue     float64 `json:"paid_revenue"`
	UnreadMessages  int     `json:"unread_messages"`
	TotalCustomers  int     `json:"total_customers"`
}

// Handler serves the back-office dashboard.
type Handler struct {
	bookings  BookingCounters
	messages  MessageCounter
	customers CustomerCounter
}

// NewHandler creates a new admin handler
func NewHandler(bookings BookingCounters, messages MessageCounter, customers CustomerCounter) *Handler {
	return &Handler{bookings: bookings, messages: messages, customers: customers}
}

// GetDashboard handles GET /admin/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	counters, err := h.bookings.Counters(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Dashboard booking counters failed")
		response.InternalError(w)
		return
	}

	unread, err := h.messages.CountUnread(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Dashboard unread count failed")
		response.InternalError(w)
		return
	}

	customers, err := h.customers.Count(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Dashboard customer count failed")
		response.InternalError(w)
		return
	}

	response.OK(w, Dashboard{
		BookingsToday:   counters.BookingsToday,
		PendingBookings: counters.PendingBookings,
		PaidRevenue:     counters.PaidRevenue,
		UnreadMessages:  unread,
		TotalCustomers:  customers,
	})
}

// Routes returns the dashboard router (staff and admin).
func (h *Handler) Routes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Get("/", h.GetDashboard)

	return r
}
