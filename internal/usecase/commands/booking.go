package commands

import (
	"context"
	"errors"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/metrics"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateBookingParams struct {
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	StartTime  time.Time
	EndTime    time.Time
}

type CancelBookingResult struct {
	Booking      *queries.BookingView
	Cancellation booking.CancellationOutcome
}

// BookingCommands orchestrates create/confirm/cancel against storage. The
// create path re-checks availability and inserts inside one transaction
// holding a lock on the property row, so two concurrent overlapping
// creates end with exactly one success and one conflict.
type BookingCommands interface {
	Create(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error)
	Confirm(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) (*queries.BookingView, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, actor shared.Actor, reason *string) (*CancelBookingResult, error)
	// Complete is invoked by the external scheduling sweep once a
	// booking's interval has passed.
	Complete(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) (*queries.BookingView, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, bookingQueries queries.BookingQueries, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		clock:          clk,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, params CreateBookingParams) (*queries.BookingView, error) {
	prop, err := c.loadProperty(ctx, params.PropertyID)
	if err != nil {
		return nil, err
	}
	if !prop.IsActive() {
		return nil, errs.ErrPropertyInactive
	}

	slot, err := booking.NewTimeSlot(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	quote, err := booking.CalculateQuote(prop.RateCard(), slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDurationBelowMinimum)
	}

	entity := booking.NewBooking(params.PropertyID, params.GuestID, slot, quote, c.clock.Now())

	// Lock, re-check, insert: one atomic unit. The pre-transaction quote
	// and validation stay outside to keep the critical section short.
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if lockErr := tx.Bookings().LockProperty(ctx, params.PropertyID); lockErr != nil {
			return lockErr
		}

		windows, winErr := tx.Bookings().ActiveWindows(ctx, params.PropertyID, uuid.Nil)
		if winErr != nil {
			return winErr
		}

		if conflict := booking.FirstConflict(slot, windows, uuid.Nil); conflict != nil {
			return errs.Wrapf(errs.ErrBookingConflict, "property %s slot %s conflicts with booking %s",
				params.PropertyID, slot, conflict.BookingID)
		}

		return tx.Bookings().Insert(ctx, entity)
	})
	if err != nil {
		mapped := c.mapStorageErr(err)
		if errors.Is(mapped, errs.ErrBookingConflict) {
			metrics.IncBookingConflict()
		}
		return nil, mapped
	}

	metrics.IncBookingCreated()

	return c.bookingQueries.GetByIDSystem(ctx, entity.ID())
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) (*queries.BookingView, error) {
	snap, err := c.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	prop, err := c.loadProperty(ctx, snap.PropertyID)
	if err != nil {
		return nil, err
	}
	if !canConfirm(actor, prop) {
		return nil, errs.ErrForbidden
	}

	now := c.clock.Now()
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, casErr := tx.Bookings().UpdateStatusCAS(ctx, bookingID,
			[]booking.Status{booking.StatusPending},
			shared.StatusChange{NewStatus: booking.StatusConfirmed, UpdatedAt: now},
		)
		if casErr != nil {
			return casErr
		}
		if !ok {
			return c.invalidTransition(ctx, tx, bookingID, booking.StatusConfirmed)
		}
		return nil
	})
	if err != nil {
		return nil, c.mapStorageErr(err)
	}

	metrics.IncBookingTransition(booking.StatusConfirmed.String())

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID uuid.UUID, actor shared.Actor, reason *string) (*CancelBookingResult, error) {
	snap, err := c.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	prop, err := c.loadProperty(ctx, snap.PropertyID)
	if err != nil {
		return nil, err
	}
	by, allowed := cancellingParty(actor, prop, snap)
	if !allowed {
		return nil, errs.ErrForbidden
	}

	now := c.clock.Now()
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, casErr := tx.Bookings().UpdateStatusCAS(ctx, bookingID,
			[]booking.Status{booking.StatusPending, booking.StatusConfirmed},
			shared.StatusChange{
				NewStatus:          booking.StatusCancelled,
				CancelledBy:        &by,
				CancelledAt:        &now,
				CancellationReason: reason,
				UpdatedAt:          now,
			},
		)
		if casErr != nil {
			return casErr
		}
		if !ok {
			return c.invalidTransition(ctx, tx, bookingID, booking.StatusCancelled)
		}
		return nil
	})
	if err != nil {
		return nil, c.mapStorageErr(err)
	}

	metrics.IncBookingTransition(booking.StatusCancelled.String())

	// The outcome is computed, not executed; the payment collaborator
	// consumes it.
	outcome := booking.EvaluateCancellation(snap.StartTime, now, by)

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	return &CancelBookingResult{Booking: view, Cancellation: outcome}, nil
}

func (c *bookingCommandsImpl) Complete(ctx context.Context, bookingID uuid.UUID, actor shared.Actor) (*queries.BookingView, error) {
	if !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}

	if _, err := c.loadBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	now := c.clock.Now()
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		ok, casErr := tx.Bookings().MarkCompletedCAS(ctx, bookingID, now)
		if casErr != nil {
			return casErr
		}
		if !ok {
			return c.invalidTransition(ctx, tx, bookingID, booking.StatusCompleted)
		}
		return nil
	})
	if err != nil {
		return nil, c.mapStorageErr(err)
	}

	metrics.IncBookingTransition(booking.StatusCompleted.String())

	return c.bookingQueries.GetByIDSystem(ctx, bookingID)
}

// invalidTransition re-reads the row inside the transaction so the error
// names the status that made the CAS guard fail.
func (c *bookingCommandsImpl) invalidTransition(ctx context.Context, tx shared.Tx, bookingID uuid.UUID, attempted booking.Status) error {
	current := booking.Status("unknown")
	if snap, readErr := tx.Reads().BookingByID(ctx, bookingID); readErr == nil {
		current = snap.Status
	}
	return errs.Mark(
		&booking.InvalidTransitionError{BookingID: bookingID, From: current, To: attempted},
		errs.ErrInvalidStateTransition,
	)
}

// loadProperty hydrates the domain entity from its storage snapshot so the
// command paths share one source of rate card and ownership checks.
func (c *bookingCommandsImpl) loadProperty(ctx context.Context, id uuid.UUID) (*property.Property, error) {
	snap, err := c.uow.CommandReads().PropertyByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPropertyNotFound)
		}
		return nil, c.mapStorageErr(err)
	}

	prop, err := property.NewProperty(snap.ID, snap.HostID, snap.Name,
		snap.PricePerHourCents, snap.PricePerDayCents, snap.MinBookingHours, snap.IsActive)
	if err != nil {
		return nil, errs.Wrapf(err, "stored property %s is invalid", id)
	}
	return prop, nil
}

func (c *bookingCommandsImpl) loadBooking(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	snap, err := c.uow.CommandReads().BookingByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, c.mapStorageErr(err)
	}
	return snap, nil
}

func (c *bookingCommandsImpl) mapStorageErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, errs.ErrBookingConflict),
		errors.Is(err, errs.ErrInvalidStateTransition):
		return err
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrBookingConflict)
	case infra.IsKind(err, infra.KindTimeout):
		return errs.Mark(err, errs.ErrStorageFailure)
	default:
		return errs.Mark(err, errs.ErrStorageFailure)
	}
}

// canConfirm: only the host of the booked property or an admin may confirm.
func canConfirm(actor shared.Actor, prop *property.Property) bool {
	return actor.IsAdmin() || prop.IsOwnedBy(actor.ID)
}

// cancellingParty collapses the scattered per-route role checks into one
// capability predicate: guest owner, property host, or admin.
func cancellingParty(actor shared.Actor, prop *property.Property, snap *shared.BookingSnapshot) (booking.CancelledBy, bool) {
	switch {
	case actor.IsAdmin():
		return booking.CancelledByAdmin, true
	case prop.IsOwnedBy(actor.ID):
		return booking.CancelledByHost, true
	case actor.ID == snap.GuestID:
		return booking.CancelledByGuest, true
	default:
		return "", false
	}
}
