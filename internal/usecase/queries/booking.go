package queries

import (
	"context"
	"fmt"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindByGuest(ctx context.Context, guestID uuid.UUID) ([]*BookingListItem, error)
	FindByHost(ctx context.Context, hostID uuid.UUID) ([]*BookingListItem, error)
	FindAll(ctx context.Context, limit int32) ([]*BookingListItem, error)
	FindUpcoming(ctx context.Context, from, to time.Time) ([]*BookingListItem, error)
	ActiveWindows(ctx context.Context, propertyID uuid.UUID, exclude uuid.UUID) ([]booking.Window, error)
}

type PropertyReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PropertyView, error)
}

type BookingQueries interface {
	// CheckAvailability is a pure read; correctness under concurrent
	// writers is the coordinator's job, not this query's.
	CheckAvailability(ctx context.Context, propertyID uuid.UUID, start, end time.Time, exclude uuid.UUID) (*AvailabilityResult, error)
	QuotePrice(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (*PriceQuote, error)
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	ListForActor(ctx context.Context, actor shared.Actor) ([]*BookingListItem, error)
	ListUpcoming(ctx context.Context, actor shared.Actor, hoursAhead int) ([]*BookingListItem, error)
	// GetByIDSystem bypasses actor scoping for internal read-after-write.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error)
}

const defaultListLimit = 100

type bookingQueriesImpl struct {
	bookings   BookingReadStore
	properties PropertyReadStore
	clock      clock.Clock
}

func NewBookingQueries(bookings BookingReadStore, properties PropertyReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{
		bookings:   bookings,
		properties: properties,
		clock:      clk,
	}
}

func (q *bookingQueriesImpl) CheckAvailability(ctx context.Context, propertyID uuid.UUID, start, end time.Time, exclude uuid.UUID) (*AvailabilityResult, error) {
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	if _, err := q.findProperty(ctx, propertyID); err != nil {
		return nil, err
	}

	windows, err := q.bookings.ActiveWindows(ctx, propertyID, exclude)
	if err != nil {
		return nil, markStorage(err)
	}

	if conflict := booking.FirstConflict(slot, windows, exclude); conflict != nil {
		reason := fmt.Sprintf("overlaps existing booking %s covering %s", conflict.BookingID, conflict.Slot)
		return &AvailabilityResult{Available: false, Reason: &reason}, nil
	}

	return &AvailabilityResult{Available: true}, nil
}

func (q *bookingQueriesImpl) QuotePrice(ctx context.Context, propertyID uuid.UUID, start, end time.Time) (*PriceQuote, error) {
	slot, err := booking.NewTimeSlot(start, end)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidTimeSlot)
	}

	view, err := q.findProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}

	prop, err := property.NewProperty(view.ID, view.HostID, view.Name,
		view.PricePerHourCents, view.PricePerDayCents, view.MinBookingHours, view.IsActive)
	if err != nil {
		return nil, errs.Wrapf(err, "stored property %s is invalid", propertyID)
	}

	quote, err := booking.CalculateQuote(prop.RateCard(), slot)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDurationBelowMinimum)
	}

	return &PriceQuote{
		TotalCents:     quote.Total.Cents(),
		PricingType:    string(quote.PricingType),
		UnitPriceCents: quote.UnitPrice.Cents(),
		Units:          quote.Units,
	}, nil
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, markStorage(err)
	}

	if !actor.IsAdmin() && actor.ID != view.GuestID && actor.ID != view.HostID {
		return nil, errs.ErrForbidden
	}

	return view, nil
}

func (q *bookingQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrBookingNotFound)
		}
		return nil, markStorage(err)
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForActor(ctx context.Context, actor shared.Actor) ([]*BookingListItem, error) {
	var (
		items []*BookingListItem
		err   error
	)

	switch {
	case actor.IsAdmin():
		items, err = q.bookings.FindAll(ctx, defaultListLimit)
	case actor.Role == user.RoleHost:
		items, err = q.bookings.FindByHost(ctx, actor.ID)
	default:
		items, err = q.bookings.FindByGuest(ctx, actor.ID)
	}

	if err != nil {
		return nil, markStorage(err)
	}
	return items, nil
}

func (q *bookingQueriesImpl) ListUpcoming(ctx context.Context, actor shared.Actor, hoursAhead int) ([]*BookingListItem, error) {
	if !actor.IsAdmin() {
		return nil, errs.ErrForbidden
	}
	if hoursAhead <= 0 {
		hoursAhead = 24
	}

	now := q.clock.Now()
	items, err := q.bookings.FindUpcoming(ctx, now, now.Add(time.Duration(hoursAhead)*time.Hour))
	if err != nil {
		return nil, markStorage(err)
	}
	return items, nil
}

func (q *bookingQueriesImpl) findProperty(ctx context.Context, propertyID uuid.UUID) (*PropertyView, error) {
	view, err := q.properties.FindByID(ctx, propertyID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrPropertyNotFound)
		}
		return nil, markStorage(err)
	}
	return view, nil
}

func markStorage(err error) error {
	return errs.Mark(err, errs.ErrStorageFailure)
}
