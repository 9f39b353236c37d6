package booking

import "time"

// Refund tiers for guest cancellations, keyed by hours until the booking
// starts. Host and admin cancellations always refund in full.
const (
	fullRefundCutoffHours = 24
	halfRefundCutoffHours = 12
)

// CancellationOutcome is the computed policy decision. It is handed to the
// payment collaborator; the engine itself never moves money.
type CancellationOutcome struct {
	RefundEligible   bool
	RefundPercentage int
	HoursUntilStart  float64
	CancelledBy      CancelledBy
}

// EvaluateCancellation is pure. hoursUntilStart may be negative when the
// booking already started; the outcome is still deterministic (no refund
// for guests, full refund for hosts).
func EvaluateCancellation(startTime, now time.Time, by CancelledBy) CancellationOutcome {
	hoursUntilStart := startTime.Sub(now).Hours()

	outcome := CancellationOutcome{
		HoursUntilStart: hoursUntilStart,
		CancelledBy:     by,
	}

	if by == CancelledByHost || by == CancelledByAdmin {
		outcome.RefundEligible = true
		outcome.RefundPercentage = 100
		return outcome
	}

	switch {
	case hoursUntilStart > fullRefundCutoffHours:
		outcome.RefundEligible = true
		outcome.RefundPercentage = 100
	case hoursUntilStart > halfRefundCutoffHours:
		outcome.RefundEligible = true
		outcome.RefundPercentage = 50
	default:
		outcome.RefundEligible = false
		outcome.RefundPercentage = 0
	}

	return outcome
}
