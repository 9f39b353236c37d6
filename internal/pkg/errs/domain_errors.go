package errs

import "errors"

// Domain-specific sentinel errors shared across usecase layers
var (
	// Property errors
	ErrPropertyNotFound = errors.New("property not found")
	ErrPropertyInactive = errors.New("property is not active")

	// Booking errors
	ErrBookingNotFound        = errors.New("booking not found")
	ErrBookingConflict        = errors.New("booking conflict")
	ErrInvalidTimeSlot        = errors.New("invalid time slot")
	ErrDurationBelowMinimum   = errors.New("duration below property minimum")
	ErrInvalidStateTransition = errors.New("invalid booking state transition")

	// Authorization errors
	ErrForbidden = errors.New("actor is not allowed to perform this operation")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrStorageFailure = errors.New("storage operation failed")
)
