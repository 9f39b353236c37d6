//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/domain/property"
	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/usecase/commands"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	lockErr      error
	lockedIDs    []uuid.UUID
	windows      []booking.Window
	windowsErr   error
	inserted     []*booking.Booking
	insertErr    error
	casOK        bool
	casErr       error
	lastExpected []booking.Status
	lastChange   shared.StatusChange
	completeOK   bool
	completeErr  error
}

func (f *fakeBookingRepo) LockProperty(_ context.Context, propertyID uuid.UUID) error {
	if f.lockErr != nil {
		return f.lockErr
	}
	f.lockedIDs = append(f.lockedIDs, propertyID)
	return nil
}

func (f *fakeBookingRepo) ActiveWindows(_ context.Context, _ uuid.UUID, _ uuid.UUID) ([]booking.Window, error) {
	return f.windows, f.windowsErr
}

func (f *fakeBookingRepo) Insert(_ context.Context, b *booking.Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, b)
	return nil
}

func (f *fakeBookingRepo) UpdateStatusCAS(_ context.Context, _ uuid.UUID, expected []booking.Status, change shared.StatusChange) (bool, error) {
	f.lastExpected = expected
	f.lastChange = change
	return f.casOK, f.casErr
}

func (f *fakeBookingRepo) MarkCompletedCAS(_ context.Context, _ uuid.UUID, _ time.Time) (bool, error) {
	return f.completeOK, f.completeErr
}

type fakeReads struct {
	property    *shared.PropertySnapshot
	propertyErr error
	booking     *shared.BookingSnapshot
	bookingErr  error
}

func (f *fakeReads) PropertyByID(_ context.Context, _ uuid.UUID) (*shared.PropertySnapshot, error) {
	if f.propertyErr != nil {
		return nil, f.propertyErr
	}
	return f.property, nil
}

func (f *fakeReads) BookingByID(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	return f.booking, nil
}

type fakeTx struct {
	repo  *fakeBookingRepo
	reads *fakeReads
}

func (f *fakeTx) Bookings() shared.BookingRepository { return f.repo }
func (f *fakeTx) Reads() shared.CommandReads         { return f.reads }

type fakeUoW struct {
	tx fakeTx
}

func (f *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &f.tx)
}

func (f *fakeUoW) CommandReads() shared.CommandReads { return f.tx.reads }

type fakeBookingQueries struct {
	view *queries.BookingView
	err  error
}

func (f *fakeBookingQueries) CheckAvailability(context.Context, uuid.UUID, time.Time, time.Time, uuid.UUID) (*queries.AvailabilityResult, error) {
	panic("not used")
}

func (f *fakeBookingQueries) QuotePrice(context.Context, uuid.UUID, time.Time, time.Time) (*queries.PriceQuote, error) {
	panic("not used")
}

func (f *fakeBookingQueries) GetByID(context.Context, shared.Actor, uuid.UUID) (*queries.BookingView, error) {
	panic("not used")
}

func (f *fakeBookingQueries) ListForActor(context.Context, shared.Actor) ([]*queries.BookingListItem, error) {
	panic("not used")
}

func (f *fakeBookingQueries) ListUpcoming(context.Context, shared.Actor, int) ([]*queries.BookingListItem, error) {
	panic("not used")
}

func (f *fakeBookingQueries) GetByIDSystem(context.Context, uuid.UUID) (*queries.BookingView, error) {
	return f.view, f.err
}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", errors.New("no rows"), infra.KindNotFound)
}

type commandFixture struct {
	commands commands.BookingCommands
	repo     *fakeBookingRepo
	reads    *fakeReads
	clock    *clock.MockClock
	builder  *builder.BookingBuilder
}

func newCommandFixture(t *testing.T) *commandFixture {
	t.Helper()

	bb := builder.NewBookingBuilder()
	repo := &fakeBookingRepo{casOK: true, completeOK: true}
	reads := &fakeReads{
		property: bb.BuildPropertySnapshot(),
		booking:  bb.BuildSnapshot(),
	}
	uow := &fakeUoW{tx: fakeTx{repo: repo, reads: reads}}
	clk := clock.NewMockClock(bb.CreatedAt)
	q := &fakeBookingQueries{view: bb.BuildView()}

	return &commandFixture{
		commands: commands.NewBookingCommands(uow, q, clk),
		repo:     repo,
		reads:    reads,
		clock:    clk,
		builder:  bb,
	}
}

func (f *commandFixture) createParams() commands.CreateBookingParams {
	return commands.CreateBookingParams{
		PropertyID: f.builder.PropertyID,
		GuestID:    f.builder.GuestID,
		StartTime:  f.builder.StartTime,
		EndTime:    f.builder.EndTime,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success locks property and inserts", func(t *testing.T) {
		f := newCommandFixture(t)

		view, err := f.commands.Create(ctx, f.createParams())
		require.NoError(t, err)
		require.NotNil(t, view)

		require.Len(t, f.repo.lockedIDs, 1)
		assert.Equal(t, f.builder.PropertyID, f.repo.lockedIDs[0])
		require.Len(t, f.repo.inserted, 1)
		assert.Equal(t, booking.StatusPending, f.repo.inserted[0].Status())
		assert.Equal(t, int64(10000), f.repo.inserted[0].TotalPrice().Cents())
	})

	t.Run("property not found", func(t *testing.T) {
		f := newCommandFixture(t)
		f.reads.propertyErr = notFoundErr()

		_, err := f.commands.Create(ctx, f.createParams())
		require.ErrorIs(t, err, errs.ErrPropertyNotFound)
		assert.Empty(t, f.repo.inserted)
	})

	t.Run("inactive property", func(t *testing.T) {
		f := newCommandFixture(t)
		f.reads.property.IsActive = false

		_, err := f.commands.Create(ctx, f.createParams())
		require.ErrorIs(t, err, errs.ErrPropertyInactive)
	})

	t.Run("invalid time slot", func(t *testing.T) {
		f := newCommandFixture(t)
		params := f.createParams()
		params.EndTime = params.StartTime

		_, err := f.commands.Create(ctx, params)
		require.ErrorIs(t, err, errs.ErrInvalidTimeSlot)
	})

	t.Run("duration below property minimum", func(t *testing.T) {
		f := newCommandFixture(t)
		min := int32(4)
		f.reads.property.MinBookingHours = &min

		_, err := f.commands.Create(ctx, f.createParams())
		require.ErrorIs(t, err, errs.ErrDurationBelowMinimum)
	})

	t.Run("corrupt property row is surfaced", func(t *testing.T) {
		f := newCommandFixture(t)
		f.reads.property.PricePerHourCents = 0

		_, err := f.commands.Create(ctx, f.createParams())
		require.ErrorIs(t, err, property.ErrNonPositiveRate)
		assert.Empty(t, f.repo.inserted)
	})

	t.Run("overlap inside transaction is a conflict", func(t *testing.T) {
		f := newCommandFixture(t)
		f.repo.windows = []booking.Window{
			{BookingID: uuid.New(), Slot: f.builder.Slot()},
		}

		_, err := f.commands.Create(ctx, f.createParams())
		require.ErrorIs(t, err, errs.ErrBookingConflict)
		assert.Empty(t, f.repo.inserted)
	})

	t.Run("touching slot is not a conflict", func(t *testing.T) {
		f := newCommandFixture(t)
		earlier, slotErr := booking.NewTimeSlot(
			f.builder.StartTime.Add(-2*time.Hour), f.builder.StartTime)
		require.NoError(t, slotErr)
		f.repo.windows = []booking.Window{{BookingID: uuid.New(), Slot: earlier}}

		_, err := f.commands.Create(ctx, f.createParams())
		require.NoError(t, err)
		require.Len(t, f.repo.inserted, 1)
	})
}

func TestConfirmBooking(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	t.Run("host confirms pending booking", func(t *testing.T) {
		f := newCommandFixture(t)
		actor := shared.Actor{ID: f.builder.HostID, Role: user.RoleHost}

		view, err := f.commands.Confirm(ctx, bookingID, actor)
		require.NoError(t, err)
		require.NotNil(t, view)

		assert.Equal(t, []booking.Status{booking.StatusPending}, f.repo.lastExpected)
		assert.Equal(t, booking.StatusConfirmed, f.repo.lastChange.NewStatus)
	})

	t.Run("admin may confirm", func(t *testing.T) {
		f := newCommandFixture(t)
		actor := shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		_, err := f.commands.Confirm(ctx, bookingID, actor)
		require.NoError(t, err)
	})

	t.Run("guest may not confirm", func(t *testing.T) {
		f := newCommandFixture(t)
		actor := shared.Actor{ID: f.builder.GuestID, Role: user.RoleGuest}

		_, err := f.commands.Confirm(ctx, bookingID, actor)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("host of a different property may not confirm", func(t *testing.T) {
		f := newCommandFixture(t)
		f.reads.property.HostID = uuid.New()
		actor := shared.Actor{ID: f.builder.HostID, Role: user.RoleHost}

		_, err := f.commands.Confirm(ctx, bookingID, actor)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("status guard failure maps to invalid transition", func(t *testing.T) {
		f := newCommandFixture(t)
		f.repo.casOK = false
		f.reads.booking.Status = booking.StatusCancelled
		actor := shared.Actor{ID: f.builder.HostID, Role: user.RoleHost}

		_, err := f.commands.Confirm(ctx, bookingID, actor)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)

		var transitionErr *booking.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, booking.StatusCancelled, transitionErr.From)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newCommandFixture(t)
		f.reads.bookingErr = notFoundErr()
		actor := shared.Actor{ID: f.builder.HostID, Role: user.RoleHost}

		_, err := f.commands.Confirm(ctx, bookingID, actor)
		require.ErrorIs(t, err, errs.ErrBookingNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	t.Run("guest thirty hours ahead gets full refund", func(t *testing.T) {
		f := newCommandFixture(t)
		f.clock.Set(f.builder.StartTime.Add(-30 * time.Hour))
		actor := shared.Actor{ID: f.builder.GuestID, Role: user.RoleGuest}

		result, err := f.commands.Cancel(ctx, bookingID, actor, nil)
		require.NoError(t, err)

		assert.True(t, result.Cancellation.RefundEligible)
		assert.Equal(t, 100, result.Cancellation.RefundPercentage)
		assert.Equal(t, booking.CancelledByGuest, result.Cancellation.CancelledBy)
		assert.Equal(t,
			[]booking.Status{booking.StatusPending, booking.StatusConfirmed},
			f.repo.lastExpected)
		require.NotNil(t, f.repo.lastChange.CancelledBy)
		assert.Equal(t, booking.CancelledByGuest, *f.repo.lastChange.CancelledBy)
	})

	t.Run("guest eighteen hours ahead gets half refund", func(t *testing.T) {
		f := newCommandFixture(t)
		f.clock.Set(f.builder.StartTime.Add(-18 * time.Hour))
		actor := shared.Actor{ID: f.builder.GuestID, Role: user.RoleGuest}

		result, err := f.commands.Cancel(ctx, bookingID, actor, nil)
		require.NoError(t, err)
		assert.Equal(t, 50, result.Cancellation.RefundPercentage)
	})

	t.Run("guest five hours ahead gets nothing", func(t *testing.T) {
		f := newCommandFixture(t)
		f.clock.Set(f.builder.StartTime.Add(-5 * time.Hour))
		actor := shared.Actor{ID: f.builder.GuestID, Role: user.RoleGuest}

		result, err := f.commands.Cancel(ctx, bookingID, actor, nil)
		require.NoError(t, err)
		assert.False(t, result.Cancellation.RefundEligible)
		assert.Equal(t, 0, result.Cancellation.RefundPercentage)
	})

	t.Run("host two hours ahead refunds in full", func(t *testing.T) {
		f := newCommandFixture(t)
		f.clock.Set(f.builder.StartTime.Add(-2 * time.Hour))
		actor := shared.Actor{ID: f.builder.HostID, Role: user.RoleHost}

		result, err := f.commands.Cancel(ctx, bookingID, actor, nil)
		require.NoError(t, err)
		assert.True(t, result.Cancellation.RefundEligible)
		assert.Equal(t, 100, result.Cancellation.RefundPercentage)
		assert.Equal(t, booking.CancelledByHost, result.Cancellation.CancelledBy)
	})

	t.Run("cancellation reason is persisted", func(t *testing.T) {
		f := newCommandFixture(t)
		actor := shared.Actor{ID: f.builder.GuestID, Role: user.RoleGuest}
		reason := "change of plans"

		_, err := f.commands.Cancel(ctx, bookingID, actor, &reason)
		require.NoError(t, err)
		require.NotNil(t, f.repo.lastChange.CancellationReason)
		assert.Equal(t, reason, *f.repo.lastChange.CancellationReason)
	})

	t.Run("unrelated user may not cancel", func(t *testing.T) {
		f := newCommandFixture(t)
		actor := shared.Actor{ID: uuid.New(), Role: user.RoleGuest}

		_, err := f.commands.Cancel(ctx, bookingID, actor, nil)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("cancel of terminal booking is invalid transition", func(t *testing.T) {
		f := newCommandFixture(t)
		f.repo.casOK = false
		f.reads.booking.Status = booking.StatusCompleted
		actor := shared.Actor{ID: f.builder.GuestID, Role: user.RoleGuest}

		_, err := f.commands.Cancel(ctx, bookingID, actor, nil)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}

func TestCompleteBooking(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	t.Run("admin completes confirmed booking", func(t *testing.T) {
		f := newCommandFixture(t)
		f.reads.booking.Status = booking.StatusConfirmed
		f.clock.Set(f.builder.EndTime.Add(time.Hour))
		actor := shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		view, err := f.commands.Complete(ctx, bookingID, actor)
		require.NoError(t, err)
		require.NotNil(t, view)
	})

	t.Run("non-admin may not complete", func(t *testing.T) {
		f := newCommandFixture(t)
		actor := shared.Actor{ID: f.builder.HostID, Role: user.RoleHost}

		_, err := f.commands.Complete(ctx, bookingID, actor)
		require.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("guard failure maps to invalid transition", func(t *testing.T) {
		f := newCommandFixture(t)
		f.repo.completeOK = false
		actor := shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}

		_, err := f.commands.Complete(ctx, bookingID, actor)
		require.ErrorIs(t, err, errs.ErrInvalidStateTransition)
	})
}
