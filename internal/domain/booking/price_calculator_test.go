//go:build unit

package booking_test

import (
	"testing"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Standard card used across cases: 50.00 per hour, 100.00 per day.
func standardRateCard() booking.RateCard {
	return booking.RateCard{
		PricePerHourCents: 5000,
		PricePerDayCents:  10000,
	}
}

func slotOfHours(t *testing.T, hours float64) booking.TimeSlot {
	t.Helper()
	start := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	slot, err := booking.NewTimeSlot(start, start.Add(time.Duration(hours*float64(time.Hour))))
	require.NoError(t, err)
	return slot
}

func TestCalculateQuote(t *testing.T) {
	cases := []struct {
		name        string
		hours       float64
		wantTotal   int64
		wantType    booking.PricingType
		wantUnits   int32
		wantPerUnit int64
	}{
		{
			name:        "two hours bills hourly",
			hours:       2,
			wantTotal:   10000,
			wantType:    booking.PricingHourly,
			wantUnits:   2,
			wantPerUnit: 5000,
		},
		{
			name:        "partial hour rounds up",
			hours:       1.5,
			wantTotal:   10000,
			wantType:    booking.PricingHourly,
			wantUnits:   2,
			wantPerUnit: 5000,
		},
		{
			name:        "just under a day stays hourly",
			hours:       23.5,
			wantTotal:   120000,
			wantType:    booking.PricingHourly,
			wantUnits:   24,
			wantPerUnit: 5000,
		},
		{
			name:        "exactly one day bills daily",
			hours:       24,
			wantTotal:   10000,
			wantType:    booking.PricingDaily,
			wantUnits:   1,
			wantPerUnit: 10000,
		},
		{
			name:        "thirty hours bills two days",
			hours:       30,
			wantTotal:   20000,
			wantType:    booking.PricingDaily,
			wantUnits:   2,
			wantPerUnit: 10000,
		},
		{
			name:        "exactly two days bills two days",
			hours:       48,
			wantTotal:   20000,
			wantType:    booking.PricingDaily,
			wantUnits:   2,
			wantPerUnit: 10000,
		},
		{
			name:        "two days and one minute bills three days",
			hours:       48 + 1.0/60,
			wantTotal:   30000,
			wantType:    booking.PricingDaily,
			wantUnits:   3,
			wantPerUnit: 10000,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			quote, err := booking.CalculateQuote(standardRateCard(), slotOfHours(t, c.hours))
			require.NoError(t, err)

			assert.Equal(t, c.wantTotal, quote.Total.Cents())
			assert.Equal(t, c.wantType, quote.PricingType)
			assert.Equal(t, c.wantUnits, quote.Units)
			assert.Equal(t, c.wantPerUnit, quote.UnitPrice.Cents())
		})
	}

	t.Run("duration below property minimum", func(t *testing.T) {
		min := int32(4)
		rc := standardRateCard()
		rc.MinBookingHours = &min

		_, err := booking.CalculateQuote(rc, slotOfHours(t, 2))
		require.ErrorIs(t, err, booking.ErrDurationBelowMinimum)
	})

	t.Run("duration at property minimum succeeds", func(t *testing.T) {
		min := int32(4)
		rc := standardRateCard()
		rc.MinBookingHours = &min

		quote, err := booking.CalculateQuote(rc, slotOfHours(t, 4))
		require.NoError(t, err)
		assert.Equal(t, int64(20000), quote.Total.Cents())
	})

	t.Run("non-positive rates rejected", func(t *testing.T) {
		rc := booking.RateCard{PricePerHourCents: 0, PricePerDayCents: 10000}
		_, err := booking.CalculateQuote(rc, slotOfHours(t, 2))
		require.ErrorIs(t, err, booking.ErrNonPositiveRate)

		rc = booking.RateCard{PricePerHourCents: 5000, PricePerDayCents: -1}
		_, err = booking.CalculateQuote(rc, slotOfHours(t, 2))
		require.ErrorIs(t, err, booking.ErrNonPositiveRate)
	})
}
