package booking

import "errors"

var (
	ErrBookingNotFound    = errors.New("booking not found")
	ErrPackageNotFound    = errors.New("package not found")
	ErrLocationNotFound   = errors.New("location not found")
	ErrAddonNotFound      = errors.New("addon not found")
	ErrSlotUnavailable    = errors.New("requested time is not available")
	ErrSlotTaken          = errors.New("requested time is already booked")
	ErrDateTooFar         = errors.New("date is beyond the advance booking limit")
	ErrDateInPast         = errors.New("date is in the past")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrInvalidSignature   = errors.New("invalid payment signature")
	ErrAmountMismatch     = errors.New("payment amount mismatch")
	ErrPaymentInitFailed  = errors.New("payment initialization failed")
	ErrCancelReasonNeeded = errors.New("cancellation requires a reason")
)
