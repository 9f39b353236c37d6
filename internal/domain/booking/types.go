package booking

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsActive reports whether the booking still occupies its interval.
// Only active bookings participate in overlap checks.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled || next == StatusCompleted
	default:
		return false
	}
}

// CancelledBy identifies which party triggered a cancellation, relative to
// the booking: the guest who made it, the host of the property, or an admin.
type CancelledBy string

const (
	CancelledByGuest CancelledBy = "guest"
	CancelledByHost  CancelledBy = "host"
	CancelledByAdmin CancelledBy = "admin"
)

func (c CancelledBy) String() string {
	return string(c)
}

type PricingType string

const (
	PricingHourly PricingType = "hourly"
	PricingDaily  PricingType = "daily"
)
