//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBooking(t *testing.T) {
	b, err := builder.NewBookingBuilder().BuildDomain()
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, booking.StatusPending, b.Status())
	assert.True(t, b.IsActive())
	assert.Nil(t, b.CancelledBy())
	assert.Nil(t, b.CancelledAt())
	assert.Equal(t, b.CreatedAt(), b.UpdatedAt())
	// Two-hour slot at 50.00/h
	assert.Equal(t, int64(10000), b.TotalPrice().Cents())
}

func TestBookingTransitions(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	newPending := func(t *testing.T) *booking.Booking {
		t.Helper()
		b, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		return b
	}

	t.Run("pending to confirmed", func(t *testing.T) {
		b := newPending(t)
		require.NoError(t, b.Confirm(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())
		assert.Equal(t, now, b.UpdatedAt())
	})

	t.Run("pending to cancelled records party and reason", func(t *testing.T) {
		b := newPending(t)
		reason := "plans changed"
		require.NoError(t, b.Cancel(booking.CancelledByGuest, &reason, now))

		assert.Equal(t, booking.StatusCancelled, b.Status())
		require.NotNil(t, b.CancelledBy())
		assert.Equal(t, booking.CancelledByGuest, *b.CancelledBy())
		require.NotNil(t, b.CancelledAt())
		assert.Equal(t, now, *b.CancelledAt())
		require.NotNil(t, b.CancellationReason())
		assert.Equal(t, reason, *b.CancellationReason())
		assert.False(t, b.IsActive())
	})

	t.Run("confirmed to completed after end", func(t *testing.T) {
		b := newPending(t)
		require.NoError(t, b.Confirm(now))

		afterEnd := b.Slot().End().Add(time.Minute)
		require.NoError(t, b.Complete(afterEnd))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("complete before end is rejected", func(t *testing.T) {
		b := newPending(t)
		require.NoError(t, b.Confirm(now))

		beforeEnd := b.Slot().End().Add(-time.Minute)
		err := b.Complete(beforeEnd)
		require.Error(t, err)

		var transitionErr *booking.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, booking.StatusCompleted, transitionErr.To)
		assert.Equal(t, booking.StatusConfirmed, b.Status())
	})

	t.Run("cancelled booking cannot be confirmed", func(t *testing.T) {
		b := newPending(t)
		require.NoError(t, b.Cancel(booking.CancelledByHost, nil, now))

		err := b.Confirm(now)
		var transitionErr *booking.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, booking.StatusCancelled, transitionErr.From)
		assert.Equal(t, booking.StatusConfirmed, transitionErr.To)
	})

	t.Run("double cancel is rejected", func(t *testing.T) {
		b := newPending(t)
		require.NoError(t, b.Cancel(booking.CancelledByGuest, nil, now))

		err := b.Cancel(booking.CancelledByGuest, nil, now)
		var transitionErr *booking.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		b := newPending(t)
		afterEnd := b.Slot().End().Add(time.Minute)

		err := b.Complete(afterEnd)
		var transitionErr *booking.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, booking.StatusPending, transitionErr.From)
	})
}

func TestStatusCanTransitionTo(t *testing.T) {
	cases := []struct {
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{booking.StatusPending, booking.StatusConfirmed, true},
		{booking.StatusPending, booking.StatusCancelled, true},
		{booking.StatusPending, booking.StatusCompleted, false},
		{booking.StatusConfirmed, booking.StatusCancelled, true},
		{booking.StatusConfirmed, booking.StatusCompleted, true},
		{booking.StatusConfirmed, booking.StatusPending, false},
		{booking.StatusCancelled, booking.StatusConfirmed, false},
		{booking.StatusCancelled, booking.StatusCancelled, false},
		{booking.StatusCompleted, booking.StatusCancelled, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransitionTo(c.to),
			"%s -> %s", c.from, c.to)
	}
}
