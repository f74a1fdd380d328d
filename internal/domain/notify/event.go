package notify

import "time"

// EventType for admin feed messages
type EventType string

const (
	EventBookingCreated EventType = "booking.created"
	EventBookingPaid    EventType = "booking.paid"
	EventContactMessage EventType = "contact.received"
)

// Event is one admin feed entry. Data is a small JSON-friendly payload,
// never a full entity.
type Event struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
	At   time.Time   `json:"at"`
}

// NewEvent builds an event stamped with the current time.
func NewEvent(typ EventType, data interface{}) Event {
	return Event{Type: typ, Data: data, At: time.Now()}
}

// Publisher is the side of the hub services talk to.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards events. Used in tests and when the feed is
// disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
