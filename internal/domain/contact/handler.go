package contact

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lumenstudio/lumen-api/internal/domain/notify"
	"github.com/lumenstudio/lumen-api/internal/middleware"
	"github.com/lumenstudio/lumen-api/internal/pkg/email"
	"github.com/lumenstudio/lumen-api/internal/pkg/response"
	"github.com/lumenstudio/lumen-api/internal/pkg/tableview"
	"github.com/lumenstudio/lumen-api/internal/pkg/validator"
)

var ErrMessageNotFound = errors.New("message not found")

// Handler handles contact form HTTP requests
type Handler struct {
	repo   *Repository
	mailer *email.Service
	events notify.Publisher
	table  *tableview.Engine[Message]
}

// NewHandler creates a new contact handler
func NewHandler(repo *Repository, mailer *email.Service, events notify.Publisher) (*Handler, error) {
	table, err := tableview.New(
		[]tableview.Column[Message]{
			{Key: "name", Title: "Name", Sortable: true, Value: func(m Message) any { return m.Name }},
			{Key: "email", Title: "Email", Value: func(m Message) any { return m.Email }},
			{Key: "subject", Title: "Subject", Value: func(m Message) any { return m.Subject }},
			{Key: "read", Title: "Read", Sortable: true, Value: func(m Message) any { return m.IsRead }},
			{Key: "created_at", Title: "Received", Sortable: true, Value: func(m Message) any { return m.CreatedAt }},
		},
		func(m Message) string { return m.ID.String() },
	)
	if err != nil {
		return nil, err
	}
	return &Handler{repo: repo, mailer: mailer, events: events, table: table}, nil
}

// Create handles POST /contact (public)
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := response.DecodeJSON(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	m := &Message{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   req.Subject,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}

	if err := h.repo.Create(r.Context(), m); err != nil {
		log.Error().Err(err).Msg("Create contact message failed")
		response.InternalError(w)
		return
	}

	h.mailer.SendContactAck(m.Email, m.Name, m.Subject)
	h.events.Publish(notify.NewEvent(notify.EventContactMessage, map[string]string{
		"id":      m.ID.String(),
		"name":    m.Name,
		"subject": m.Subject,
	}))

	log.Info().Str("message_id", m.ID.String()).Msg("Contact message received")
	response.Created(w, m.ToResponse())
}

// List handles GET /admin/messages with search/sort/pagination.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	messages, err := h.repo.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("List contact messages failed")
		response.InternalError(w)
		return
	}

	result := h.table.View(messages, tableview.ParseQuery(r.URL.Query()))
	response.WithMeta(w, result.Rows, result.Meta)
}

// Get handles GET /admin/messages/{id} and marks the message read.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid message ID")
		return
	}

	m, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Msg("Get contact message failed")
		response.InternalError(w)
		return
	}
	if m == nil {
		response.NotFound(w, ErrMessageNotFound.Error())
		return
	}

	if !m.IsRead {
		if err := h.repo.MarkRead(r.Context(), id); err != nil {
			log.Error().Err(err).Msg("Mark message read failed")
		} else {
			m.IsRead = true
		}
	}

	response.OK(w, m.ToResponse())
}

// Delete handles DELETE /admin/messages/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid message ID")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Delete contact message failed")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// PublicRoutes returns the public contact router.
func (h *Handler) PublicRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Create)
	return r
}

// AdminRoutes returns the inbox router (staff and admin).
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)
	r.Use(middleware.RequireStaff())

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Delete("/{id}", h.Delete)

	return r
}
