package booking

// AvailabilityResponse lists bookable start times for one date.
type AvailabilityResponse struct {
	Date            string   `json:"date"`
	Times           []string `json:"times"`
	DurationMinutes int      `json:"duration_minutes"`
}

type QuoteRequest struct {
	PackageID  string   `json:"package_id" validate:"required,uuid"`
	LocationID string   `json:"location_id" validate:"omitempty,uuid"`
	AddonIDs   []string `json:"addon_ids" validate:"omitempty,dive,uuid"`
}

// QuoteResponse breaks the total down per line.
type QuoteResponse struct {
	PackagePrice float64 `json:"package_price"`
	AddonsPrice  float64 `json:"addons_price"`
	LocationFee  float64 `json:"location_fee"`
	Total        float64 `json:"total"`
}

type CreateBookingRequest struct {
	CustomerName  string   `json:"customer_name" validate:"required,min=2,max=200"`
	CustomerEmail string   `json:"customer_email" validate:"required,email"`
	CustomerPhone string   `json:"customer_phone" validate:"omitempty,max=50"`
	PackageID     string   `json:"package_id" validate:"required,uuid"`
	LocationID    string   `json:"location_id" validate:"omitempty,uuid"`
	AddonIDs      []string `json:"addon_ids" validate:"omitempty,dive,uuid"`
	Date          string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime     string   `json:"start_time" validate:"required,hhmm"`
}

// CreateBookingResponse returns the stored booking plus the gateway
// redirect the customer must follow to pay.
type CreateBookingResponse struct {
	Booking    *BookingResponse `json:"booking"`
	PaymentURL string           `json:"payment_url"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,booking_status"`
	Reason string `json:"reason" validate:"max=1000"`
}
