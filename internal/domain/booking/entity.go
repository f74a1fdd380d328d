package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus tracks the RoboKassa invoice.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// Booking is one reserved session slot.
type Booking struct {
	ID            uuid.UUID      `db:"id"`
	InvID         int64          `db:"inv_id"`
	CustomerID    uuid.UUID      `db:"customer_id"`
	PackageID     uuid.UUID      `db:"package_id"`
	LocationID    uuid.NullUUID  `db:"location_id"`
	Date          string         `db:"date"`       // YYYY-MM-DD in studio TZ
	StartTime     string         `db:"start_time"` // HH:MM
	Total         float64        `db:"total"`
	Status        Status         `db:"status"`
	PaymentStatus PaymentStatus  `db:"payment_status"`
	CancelReason  sql.NullString `db:"cancel_reason"`
	PaidAt        sql.NullTime   `db:"paid_at"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`

	AddonIDs []uuid.UUID `db:"-"`
}

// CanTransition reports whether the booking may move to the target status.
// Completed and cancelled are terminal.
func (b *Booking) CanTransition(to Status) bool {
	switch b.Status {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCompleted || to == StatusCancelled
	default:
		return false
	}
}

// BookingResponse for API responses
type BookingResponse struct {
	ID            string    `json:"id"`
	InvID         int64     `json:"inv_id"`
	CustomerID    string    `json:"customer_id"`
	PackageID     string    `json:"package_id"`
	LocationID    string    `json:"location_id,omitempty"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	Total         float64   `json:"total"`
	Status        Status    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CancelReason  string    `json:"cancel_reason,omitempty"`
	AddonIDs      []string  `json:"addon_ids,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToResponse converts entity to response
func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID.String(),
		InvID:         b.InvID,
		CustomerID:    b.CustomerID.String(),
		PackageID:     b.PackageID.String(),
		Date:          b.Date,
		StartTime:     b.StartTime,
		Total:         b.Total,
		Status:        b.Status,
		PaymentStatus: string(b.PaymentStatus),
		CancelReason:  b.CancelReason.String,
		CreatedAt:     b.CreatedAt,
	}
	if b.LocationID.Valid {
		resp.LocationID = b.LocationID.UUID.String()
	}
	for _, id := range b.AddonIDs {
		resp.AddonIDs = append(resp.AddonIDs, id.String())
	}
	return resp
}
