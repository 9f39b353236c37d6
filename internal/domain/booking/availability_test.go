//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirstConflict(t *testing.T) {
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	window := func(id uuid.UUID, from, to time.Duration) booking.Window {
		t.Helper()
		slot, err := booking.NewTimeSlot(start.Add(from), start.Add(to))
		require.NoError(t, err)
		return booking.Window{BookingID: id, Slot: slot}
	}

	candidate, err := booking.NewTimeSlot(start, start.Add(2*time.Hour))
	require.NoError(t, err)

	t.Run("empty schedule is available", func(t *testing.T) {
		assert.Nil(t, booking.FirstConflict(candidate, nil, uuid.Nil))
		assert.True(t, booking.IsAvailable(candidate, nil, uuid.Nil))
	})

	t.Run("overlapping window is reported", func(t *testing.T) {
		id := uuid.New()
		existing := []booking.Window{window(id, time.Hour, 3*time.Hour)}

		conflict := booking.FirstConflict(candidate, existing, uuid.Nil)
		require.NotNil(t, conflict)
		assert.Equal(t, id, conflict.BookingID)
		assert.False(t, booking.IsAvailable(candidate, existing, uuid.Nil))
	})

	t.Run("back-to-back windows are available", func(t *testing.T) {
		existing := []booking.Window{
			window(uuid.New(), -2*time.Hour, 0),
			window(uuid.New(), 2*time.Hour, 4*time.Hour),
		}

		assert.Nil(t, booking.FirstConflict(candidate, existing, uuid.Nil))
	})

	t.Run("excluded booking is skipped", func(t *testing.T) {
		id := uuid.New()
		existing := []booking.Window{window(id, time.Hour, 3*time.Hour)}

		assert.Nil(t, booking.FirstConflict(candidate, existing, id))
		assert.True(t, booking.IsAvailable(candidate, existing, id))
	})

	t.Run("first of several conflicts is returned", func(t *testing.T) {
		first := uuid.New()
		second := uuid.New()
		existing := []booking.Window{
			window(first, 0, time.Hour),
			window(second, time.Hour, 2*time.Hour),
		}

		conflict := booking.FirstConflict(candidate, existing, uuid.Nil)
		require.NotNil(t, conflict)
		assert.Equal(t, first, conflict.BookingID)
	})
}
