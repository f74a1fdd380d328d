package settings

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// Repository handles booking-policy database operations.
// The policy lives in a single row with id = 1.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a new settings repository
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the policy row; nil when nothing was ever configured.
func (r *Repository) Get(ctx context.Context) (*Policy, error) {
	query := `SELECT * FROM booking_policy WHERE id = 1`
	var p Policy
	err := r.db.GetContext(ctx, &p, query)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return &p, err
}

// Upsert replaces the policy row. Nil fields are stored as NULL, which
// Resolve later treats as "use the default".
func (r *Repository) Upsert(ctx context.Context, p *Policy) error {
	query := `
		INSERT INTO booking_policy (id, working_hours_start, working_hours_end, slot_interval_minutes, minimum_booking_hours, maximum_advance_booking_days, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, now())
		ON CONFLICT (id) DO UPDATE SET
			working_hours_start = EXCLUDED.working_hours_start,
			working_hours_end = EXCLUDED.working_hours_end,
			slot_interval_minutes = EXCLUDED.slot_interval_minutes,
			minimum_booking_hours = EXCLUDED.minimum_booking_hours,
			maximum_advance_booking_days = EXCLUDED.maximum_advance_booking_days,
			updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query,
		p.WorkingHoursStart,
		p.WorkingHoursEnd,
		p.SlotIntervalMinutes,
		p.MinimumBookingHours,
		p.MaximumAdvanceBookingDays,
	)
	return err
}
