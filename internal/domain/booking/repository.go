package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository handles booking database operations
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new booking repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// NextInvID reserves a gateway invoice number. RoboKassa requires a
// positive integer unique per payment, so a sequence backs it.
func (r *Repository) NextInvID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT nextval('booking_inv_seq')`)
	return id, err
}

// Create inserts a booking and its add-on links in one transaction.
func (r *Repository) Create(ctx context.Context, b *Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO bookings (id, inv_id, customer_id, package_id, location_id, date, start_time,
			total, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.ExecContext(ctx, query,
		b.ID, b.InvID, b.CustomerID, b.PackageID, b.LocationID, b.Date, b.StartTime,
		b.Total, b.Status, b.PaymentStatus, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return err
	}

	for _, addonID := range b.AddonIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO booking_addons (booking_id, addon_id) VALUES ($1, $2)`,
			b.ID, addonID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID returns a booking with its add-ons; nil when not found
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bookings WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadAddons(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// GetByInvID returns a booking by gateway invoice number; nil when not found
func (r *Repository) GetByInvID(ctx context.Context, invID int64) (*Booking, error) {
	var b Booking
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bookings WHERE inv_id = $1`, invID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.loadAddons(ctx, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *Repository) loadAddons(ctx context.Context, b *Booking) error {
	return r.db.SelectContext(ctx, &b.AddonIDs,
		`SELECT addon_id FROM booking_addons WHERE booking_id = $1`, b.ID)
}

// List returns all bookings newest first
func (r *Repository) List(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, `SELECT * FROM bookings ORDER BY created_at DESC`)
	return bookings, err
}

// TakenTimes returns start times already reserved for a date. Cancelled
// bookings release their slot.
func (r *Repository) TakenTimes(ctx context.Context, date string, locationID uuid.NullUUID) ([]string, error) {
	query := `
		SELECT start_time FROM bookings
		WHERE date = $1 AND status != 'cancelled'
		  AND (location_id = $2 OR ($2 IS NULL AND location_id IS NULL))
	`
	var times []string
	err := r.db.SelectContext(ctx, &times, query, date, locationID)
	return times, err
}

// UpdateStatus saves a status change with an optional cancel reason.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status, reason sql.NullString) error {
	query := `
		UPDATE bookings
		SET status = $2, cancel_reason = $3, updated_at = now()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, status, reason)
	return err
}

// MarkPaid flips payment state and confirms the booking. Safe to call
// twice; the guard keeps the first paid_at.
func (r *Repository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error {
	query := `
		UPDATE bookings
		SET payment_status = 'paid', status = 'confirmed', paid_at = COALESCE(paid_at, $2), updated_at = now()
		WHERE id = $1 AND payment_status != 'paid'
	`
	_, err := r.db.ExecContext(ctx, query, id, at)
	return err
}

// DashboardCounters aggregates the admin overview numbers.
type DashboardCounters struct {
	BookingsToday   int     `db:"bookings_today"`
	PendingBookings int     `db:"pending_bookings"`
	PaidRevenue     float64 `db:"paid_revenue"`
}

// Counters returns booking totals for the admin dashboard.
func (r *Repository) Counters(ctx context.Context, today string) (*DashboardCounters, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE date = $1 AND status != 'cancelled') AS bookings_today,
			COUNT(*) FILTER (WHERE status = 'pending') AS pending_bookings,
			COALESCE(SUM(total) FILTER (WHERE payment_status = 'paid'), 0) AS paid_revenue
		FROM bookings
	`
	var c DashboardCounters
	err := r.db.GetContext(ctx, &c, query, today)
	return &c, err
}
