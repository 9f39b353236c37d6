//go:build unit

package property_test

import (
	"strings"
	"testing"

	"stayhub/internal/domain/property"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProperty(t *testing.T) {
	id := uuid.New()
	hostID := uuid.New()

	t.Run("valid property", func(t *testing.T) {
		p, err := property.NewProperty(id, hostID, "Harbour Loft", 5000, 10000, nil, true)
		require.NoError(t, err)

		assert.Equal(t, id, p.ID())
		assert.Equal(t, hostID, p.HostID())
		assert.Equal(t, "Harbour Loft", p.Name())
		assert.True(t, p.IsActive())
		assert.True(t, p.IsOwnedBy(hostID))
		assert.False(t, p.IsOwnedBy(uuid.New()))
	})

	t.Run("name is trimmed", func(t *testing.T) {
		p, err := property.NewProperty(id, hostID, "  Harbour Loft  ", 5000, 10000, nil, true)
		require.NoError(t, err)
		assert.Equal(t, "Harbour Loft", p.Name())
	})

	t.Run("rate card reflects pricing fields", func(t *testing.T) {
		min := int32(4)
		p, err := property.NewProperty(id, hostID, "Harbour Loft", 5000, 10000, &min, true)
		require.NoError(t, err)

		rc := p.RateCard()
		assert.Equal(t, int64(5000), rc.PricePerHourCents)
		assert.Equal(t, int64(10000), rc.PricePerDayCents)
		require.NotNil(t, rc.MinBookingHours)
		assert.Equal(t, int32(4), *rc.MinBookingHours)
	})

	cases := []struct {
		name     string
		propName string
		perHour  int64
		perDay   int64
		minHours *int32
		errIs    error
	}{
		{
			name:     "empty name",
			propName: "",
			perHour:  5000,
			perDay:   10000,
			errIs:    property.ErrEmptyPropertyName,
		},
		{
			name:     "whitespace only name",
			propName: "   ",
			perHour:  5000,
			perDay:   10000,
			errIs:    property.ErrEmptyPropertyName,
		},
		{
			name:     "name too long",
			propName: strings.Repeat("a", property.MaxPropertyNameLength+1),
			perHour:  5000,
			perDay:   10000,
			errIs:    property.ErrPropertyNameTooLong,
		},
		{
			name:     "zero hourly rate",
			propName: "Harbour Loft",
			perHour:  0,
			perDay:   10000,
			errIs:    property.ErrNonPositiveRate,
		},
		{
			name:     "negative daily rate",
			propName: "Harbour Loft",
			perHour:  5000,
			perDay:   -1,
			errIs:    property.ErrNonPositiveRate,
		},
		{
			name:     "zero minimum hours",
			propName: "Harbour Loft",
			perHour:  5000,
			perDay:   10000,
			minHours: func() *int32 { v := int32(0); return &v }(),
			errIs:    property.ErrInvalidMinHours,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p, err := property.NewProperty(id, hostID, c.propName, c.perHour, c.perDay, c.minHours, true)
			require.Nil(t, p)
			require.ErrorIs(t, err, c.errIs)
		})
	}
}
