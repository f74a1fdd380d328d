package email

import (
	"bytes"
	"context"
	"html/template"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sender sends a single rendered email.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
}

// Service renders templates and sends email asynchronously through a queue
// so request handlers never block on the provider API.
type Service struct {
	client    Sender
	templates map[string]*template.Template
	queue     chan *queuedEmail
	wg        sync.WaitGroup
}

type queuedEmail struct {
	To           string
	Subject      string
	TemplateName string
	Data         interface{}
}

// NewService creates the email service and starts its worker.
func NewService(client Sender) *Service {
	s := &Service{
		client:    client,
		templates: make(map[string]*template.Template),
		queue:     make(chan *queuedEmail, 100),
	}

	s.loadTemplates()

	s.wg.Add(1)
	go s.worker()

	return s
}

func (s *Service) loadTemplates() {
	contents := map[string]string{
		"booking_confirmation": BookingConfirmationTemplate,
		"booking_paid":         BookingPaidTemplate,
		"contact_ack":          ContactAckTemplate,
	}

	for name, content := range contents {
		tmpl, err := template.New(name).Parse(BaseTemplate)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Failed to parse base email template")
			continue
		}
		tmpl, err = tmpl.Parse(content)
		if err != nil {
			log.Error().Err(err).Str("template", name).Msg("Failed to parse email template")
			continue
		}
		s.templates[name] = tmpl
	}
}

func (s *Service) worker() {
	defer s.wg.Done()
	for q := range s.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := s.send(ctx, q); err != nil {
			log.Error().Err(err).
				Str("to", q.To).
				Str("template", q.TemplateName).
				Msg("Failed to send email")
		}
		cancel()
	}
}

func (s *Service) send(ctx context.Context, q *queuedEmail) error {
	tmpl, ok := s.templates[q.TemplateName]
	if !ok {
		log.Warn().Str("template", q.TemplateName).Msg("Unknown email template, skipping")
		return nil
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, q.Data); err != nil {
		return err
	}

	return s.client.Send(ctx, &Message{
		To:      q.To,
		Subject: q.Subject,
		HTML:    buf.String(),
	})
}

// enqueue drops the email when the queue is saturated rather than blocking
// the caller; a lost notification is preferable to a stuck request.
func (s *Service) enqueue(q *queuedEmail) {
	select {
	case s.queue <- q:
	default:
		log.Warn().Str("to", q.To).Str("template", q.TemplateName).Msg("Email queue full, dropping message")
	}
}

// Close drains the queue and stops the worker.
func (s *Service) Close() {
	close(s.queue)
	s.wg.Wait()
}

// BookingDetails is the template payload for booking emails.
type BookingDetails struct {
	CustomerName string
	PackageName  string
	Date         string
	StartTime    string
	LocationName string
	Total        string
	PaymentURL   string
}

// SendBookingConfirmation queues the booking-confirmation email.
func (s *Service) SendBookingConfirmation(to string, details BookingDetails) {
	s.enqueue(&queuedEmail{
		To:           to,
		Subject:      "Your Lumen Studio booking",
		TemplateName: "booking_confirmation",
		Data:         details,
	})
}

// SendBookingPaid queues the payment-received email.
func (s *Service) SendBookingPaid(to string, details BookingDetails) {
	s.enqueue(&queuedEmail{
		To:           to,
		Subject:      "Payment received, booking confirmed",
		TemplateName: "booking_paid",
		Data:         details,
	})
}

// SendContactAck queues the contact-form acknowledgment email.
func (s *Service) SendContactAck(to, name, subject string) {
	s.enqueue(&queuedEmail{
		To:           to,
		Subject:      "We received your message",
		TemplateName: "contact_ack",
		Data: map[string]string{
			"Name":    name,
			"Subject": subject,
		},
	})
}
