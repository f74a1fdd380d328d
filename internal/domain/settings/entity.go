package settings

import "time"

// Defaults applied when a policy knob is unset. An explicitly stored zero
// is respected; only NULL falls back.
const (
	DefaultWorkingHoursStart         = "09:00"
	DefaultWorkingHoursEnd           = "17:00"
	DefaultSlotIntervalMinutes       = 120
	DefaultMinimumBookingHours       = 1
	DefaultMaximumAdvanceBookingDays = 90
)

// Policy is the singleton booking-policy row. Numeric knobs are pointers so
// "deliberately zero" and "never configured" stay distinguishable.
type Policy struct {
	ID                        int       `db:"id"`
	WorkingHoursStart         *string   `db:"working_hours_start"`
	WorkingHoursEnd           *string   `db:"working_hours_end"`
	SlotIntervalMinutes       *int      `db:"slot_interval_minutes"`
	MinimumBookingHours       *int      `db:"minimum_booking_hours"`
	MaximumAdvanceBookingDays *int      `db:"maximum_advance_booking_days"`
	UpdatedAt                 time.Time `db:"updated_at"`
}

// Resolved is a policy with every knob defaulted, ready for slot math.
type Resolved struct {
	WorkingHoursStart         string `json:"working_hours_start"`
	WorkingHoursEnd           string `json:"working_hours_end"`
	SlotIntervalMinutes       int    `json:"slot_interval_minutes"`
	MinimumBookingHours       int    `json:"minimum_booking_hours"`
	MaximumAdvanceBookingDays int    `json:"maximum_advance_booking_days"`
}

// Resolve applies defaults for nil knobs only.
func (p *Policy) Resolve() Resolved {
	r := Resolved{
		WorkingHoursStart:         DefaultWorkingHoursStart,
		WorkingHoursEnd:           DefaultWorkingHoursEnd,
		SlotIntervalMinutes:       DefaultSlotIntervalMinutes,
		MinimumBookingHours:       DefaultMinimumBookingHours,
		MaximumAdvanceBookingDays: DefaultMaximumAdvanceBookingDays,
	}
	if p == nil {
		return r
	}
	if p.WorkingHoursStart != nil {
		r.WorkingHoursStart = *p.WorkingHoursStart
	}
	if p.WorkingHoursEnd != nil {
		r.WorkingHoursEnd = *p.WorkingHoursEnd
	}
	if p.SlotIntervalMinutes != nil {
		r.SlotIntervalMinutes = *p.SlotIntervalMinutes
	}
	if p.MinimumBookingHours != nil {
		r.MinimumBookingHours = *p.MinimumBookingHours
	}
	if p.MaximumAdvanceBookingDays != nil {
		r.MaximumAdvanceBookingDays = *p.MaximumAdvanceBookingDays
	}
	return r
}

// DefaultResolved is the policy with nothing configured.
func DefaultResolved() Resolved {
	return (*Policy)(nil).Resolve()
}
