package location

// WorkingHoursInput mirrors the jsonb window on write requests.
// Sending {"start":"","end":""} stores an explicit closed window.
type WorkingHoursInput struct {
	Start string `json:"start" validate:"omitempty,hhmm"`
	End   string `json:"end" validate:"omitempty,hhmm"`
}

type CreateLocationRequest struct {
	Name         string             `json:"name" validate:"required,min=2,max=200"`
	Address      string             `json:"address" validate:"max=500"`
	Description  string             `json:"description" validate:"max=2000"`
	ExtraFee     float64            `json:"extra_fee" validate:"gte=0"`
	WorkingHours *WorkingHoursInput `json:"working_hours"`
	IsActive     *bool              `json:"is_active"`
}

type UpdateLocationRequest struct {
	Name         *string            `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Address      *string            `json:"address,omitempty" validate:"omitempty,max=500"`
	Description  *string            `json:"description,omitempty" validate:"omitempty,max=2000"`
	ExtraFee     *float64           `json:"extra_fee,omitempty" validate:"omitempty,gte=0"`
	WorkingHours *WorkingHoursInput `json:"working_hours,omitempty"`
	ClearHours   bool               `json:"clear_working_hours,omitempty"`
	IsActive     *bool              `json:"is_active,omitempty"`
}
