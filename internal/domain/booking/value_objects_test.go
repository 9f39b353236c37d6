//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)

func TestNewTimeSlot(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		slot, err := booking.NewTimeSlot(base, base.Add(2*time.Hour))
		require.NoError(t, err)

		assert.Equal(t, base, slot.Start())
		assert.Equal(t, base.Add(2*time.Hour), slot.End())
		assert.InDelta(t, 2.0, slot.Hours(), 1e-9)
	})

	t.Run("normalizes to UTC", func(t *testing.T) {
		tokyo := time.FixedZone("JST", 9*3600)
		slot, err := booking.NewTimeSlot(base.In(tokyo), base.Add(time.Hour).In(tokyo))
		require.NoError(t, err)

		assert.Equal(t, time.UTC, slot.Start().Location())
		assert.True(t, slot.Start().Equal(base))
	})

	t.Run("rejects zero times", func(t *testing.T) {
		_, err := booking.NewTimeSlot(time.Time{}, base)
		require.ErrorIs(t, err, booking.ErrZeroTime)

		_, err = booking.NewTimeSlot(base, time.Time{})
		require.ErrorIs(t, err, booking.ErrZeroTime)
	})

	t.Run("rejects start equal to end", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base, base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
	})

	t.Run("rejects start after end", func(t *testing.T) {
		_, err := booking.NewTimeSlot(base.Add(time.Hour), base)
		require.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
	})
}

func TestTimeSlotOverlaps(t *testing.T) {
	mustSlot := func(start, end time.Time) booking.TimeSlot {
		t.Helper()
		slot, err := booking.NewTimeSlot(start, end)
		require.NoError(t, err)
		return slot
	}

	a := mustSlot(base, base.Add(2*time.Hour))

	cases := []struct {
		name     string
		other    booking.TimeSlot
		overlaps bool
	}{
		{
			name:     "identical slots overlap",
			other:    mustSlot(base, base.Add(2*time.Hour)),
			overlaps: true,
		},
		{
			name:     "partial overlap at tail",
			other:    mustSlot(base.Add(time.Hour), base.Add(3*time.Hour)),
			overlaps: true,
		},
		{
			name:     "contained slot overlaps",
			other:    mustSlot(base.Add(30*time.Minute), base.Add(time.Hour)),
			overlaps: true,
		},
		{
			name:     "containing slot overlaps",
			other:    mustSlot(base.Add(-time.Hour), base.Add(3*time.Hour)),
			overlaps: true,
		},
		{
			name:     "touching at end does not overlap",
			other:    mustSlot(base.Add(2*time.Hour), base.Add(4*time.Hour)),
			overlaps: false,
		},
		{
			name:     "touching at start does not overlap",
			other:    mustSlot(base.Add(-2*time.Hour), base),
			overlaps: false,
		},
		{
			name:     "disjoint slots do not overlap",
			other:    mustSlot(base.Add(5*time.Hour), base.Add(6*time.Hour)),
			overlaps: false,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.overlaps, a.Overlaps(c.other))
			// Overlap is symmetric
			assert.Equal(t, c.overlaps, c.other.Overlaps(a))
		})
	}
}

func TestMoney(t *testing.T) {
	m := booking.NewMoney(5000)

	assert.Equal(t, int64(5000), m.Cents())
	assert.Equal(t, int64(15000), m.MulUnits(3).Cents())
	assert.False(t, m.IsNegative())
	assert.True(t, booking.NewMoney(-1).IsNegative())
}
