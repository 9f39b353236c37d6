package booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InvalidTransitionError names the attempted transition and the status the
// booking was actually in. It is never swallowed; callers surface it.
type InvalidTransitionError struct {
	BookingID uuid.UUID
	From      Status
	To        Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("booking %s: cannot transition from %s to %s", e.BookingID, e.From, e.To)
}

// Booking is a single reservation of a property for a half-open interval.
// The total price is derived once at creation and never mutated afterwards.
// Bookings are never deleted, only state-transitioned.
type Booking struct {
	id                 uuid.UUID
	propertyID         uuid.UUID
	guestID            uuid.UUID
	slot               TimeSlot
	status             Status
	totalPrice         Money
	pricingType        PricingType
	unitPrice          Money
	units              int32
	cancelledBy        *CancelledBy
	cancelledAt        *time.Time
	cancellationReason *string
	createdAt          time.Time
	updatedAt          time.Time
}

// NewBooking creates a pending booking with the given quote. Availability
// is the coordinator's concern, not the entity's.
func NewBooking(propertyID, guestID uuid.UUID, slot TimeSlot, quote Quote, now time.Time) *Booking {
	return &Booking{
		id:          uuid.New(),
		propertyID:  propertyID,
		guestID:     guestID,
		slot:        slot,
		status:      StatusPending,
		totalPrice:  quote.Total,
		pricingType: quote.PricingType,
		unitPrice:   quote.UnitPrice,
		units:       quote.Units,
		createdAt:   now,
		updatedAt:   now,
	}
}

func ReconstructBooking(
	id, propertyID, guestID uuid.UUID,
	slot TimeSlot,
	status Status,
	totalPrice Money,
	pricingType PricingType,
	unitPrice Money,
	units int32,
	cancelledBy *CancelledBy,
	cancelledAt *time.Time,
	cancellationReason *string,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		propertyID:         propertyID,
		guestID:            guestID,
		slot:               slot,
		status:             status,
		totalPrice:         totalPrice,
		pricingType:        pricingType,
		unitPrice:          unitPrice,
		units:              units,
		cancelledBy:        cancelledBy,
		cancelledAt:        cancelledAt,
		cancellationReason: cancellationReason,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (b *Booking) transitionTo(next Status, now time.Time) error {
	if !b.status.CanTransitionTo(next) {
		return &InvalidTransitionError{BookingID: b.id, From: b.status, To: next}
	}
	b.status = next
	b.updatedAt = now
	return nil
}

func (b *Booking) Confirm(now time.Time) error {
	return b.transitionTo(StatusConfirmed, now)
}

func (b *Booking) Cancel(by CancelledBy, reason *string, now time.Time) error {
	if err := b.transitionTo(StatusCancelled, now); err != nil {
		return err
	}
	b.cancelledBy = &by
	b.cancelledAt = &now
	b.cancellationReason = reason
	return nil
}

// Complete is driven by the external scheduling sweep once the interval has
// passed.
func (b *Booking) Complete(now time.Time) error {
	if now.Before(b.slot.End()) {
		return &InvalidTransitionError{BookingID: b.id, From: b.status, To: StatusCompleted}
	}
	return b.transitionTo(StatusCompleted, now)
}

func (b *Booking) IsActive() bool {
	return b.status.IsActive()
}

func (b *Booking) ID() uuid.UUID               { return b.id }
func (b *Booking) PropertyID() uuid.UUID       { return b.propertyID }
func (b *Booking) GuestID() uuid.UUID          { return b.guestID }
func (b *Booking) Slot() TimeSlot              { return b.slot }
func (b *Booking) Status() Status              { return b.status }
func (b *Booking) TotalPrice() Money           { return b.totalPrice }
func (b *Booking) PricingType() PricingType    { return b.pricingType }
func (b *Booking) UnitPrice() Money            { return b.unitPrice }
func (b *Booking) Units() int32                { return b.units }
func (b *Booking) CancelledBy() *CancelledBy   { return b.cancelledBy }
func (b *Booking) CancelledAt() *time.Time     { return b.cancelledAt }
func (b *Booking) CancellationReason() *string { return b.cancellationReason }
func (b *Booking) CreatedAt() time.Time        { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time        { return b.updatedAt }
