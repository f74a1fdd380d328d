package location

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// WorkingHours is a per-location shooting window stored as jsonb.
// Both fields are HH:MM. An empty value means the location never opens.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IsZero reports whether no window is set.
func (w WorkingHours) IsZero() bool {
	return w.Start == "" && w.End == ""
}

// Value implements driver.Valuer for jsonb storage
func (w WorkingHours) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan implements sql.Scanner for jsonb storage
func (w *WorkingHours) Scan(src interface{}) error {
	if src == nil {
		*w = WorkingHours{}
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("working hours: unexpected type %T", src)
	}
	return json.Unmarshal(b, w)
}

// NullWorkingHours is a nullable jsonb working-hours column.
type NullWorkingHours struct {
	Hours WorkingHours
	Valid bool
}

// Value implements driver.Valuer
func (n NullWorkingHours) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Hours.Value()
}

// Scan implements sql.Scanner
func (n *NullWorkingHours) Scan(src interface{}) error {
	if src == nil {
		n.Hours, n.Valid = WorkingHours{}, false
		return nil
	}
	if err := n.Hours.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Location is a studio or outdoor shooting place. ExtraFee is added to
// the booking total when positive.
type Location struct {
	ID           uuid.UUID        `db:"id"`
	Name         string           `db:"name"`
	Address      sql.NullString   `db:"address"`
	Description  sql.NullString   `db:"description"`
	ExtraFee     float64          `db:"extra_fee"`
	WorkingHours NullWorkingHours `db:"working_hours"`
	IsActive     bool             `db:"is_active"`
	CreatedAt    time.Time        `db:"created_at"`
	UpdatedAt    time.Time        `db:"updated_at"`
}

// Window returns the location's shooting window when one is set.
// The second return is false when the location has no jsonb override,
// in which case the studio-wide policy applies. A stored but empty
// window means the location is closed.
func (l *Location) Window() (WorkingHours, bool) {
	if !l.WorkingHours.Valid {
		return WorkingHours{}, false
	}
	return l.WorkingHours.Hours, true
}

// LocationResponse for API responses
type LocationResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Address      string        `json:"address,omitempty"`
	Description  string        `json:"description,omitempty"`
	ExtraFee     float64       `json:"extra_fee"`
	WorkingHours *WorkingHours `json:"working_hours,omitempty"`
	IsActive     bool          `json:"is_active"`
}

// ToResponse converts entity to response
func (l *Location) ToResponse() *LocationResponse {
	resp := &LocationResponse{
		ID:          l.ID.String(),
		Name:        l.Name,
		Address:     l.Address.String,
		Description: l.Description.String,
		ExtraFee:    l.ExtraFee,
		IsActive:    l.IsActive,
	}
	if l.WorkingHours.Valid {
		hours := l.WorkingHours.Hours
		resp.WorkingHours = &hours
	}
	return resp
}
