package booking

import (
	"errors"
	"math"
)

var (
	ErrNonPositiveRate      = errors.New("rate card prices must be positive")
	ErrDurationBelowMinimum = errors.New("duration is below the property minimum")
)

const hoursPerDay = 24

// RateCard carries a property's pricing inputs. It is resolved once at the
// storage boundary and passed into the pure quote function.
type RateCard struct {
	PricePerHourCents int64
	PricePerDayCents  int64
	MinBookingHours   *int32
}

func (rc RateCard) Validate() error {
	if rc.PricePerHourCents <= 0 || rc.PricePerDayCents <= 0 {
		return ErrNonPositiveRate
	}
	return nil
}

// Quote is the deterministic price breakdown for a slot. Units always round
// up: a partial hour or day is billed as a full unit.
type Quote struct {
	Total       Money
	PricingType PricingType
	UnitPrice   Money
	Units       int32
}

func CalculateQuote(rc RateCard, slot TimeSlot) (Quote, error) {
	if err := rc.Validate(); err != nil {
		return Quote{}, err
	}

	hours := slot.Hours()
	if rc.MinBookingHours != nil && hours < float64(*rc.MinBookingHours) {
		return Quote{}, ErrDurationBelowMinimum
	}

	if hours >= hoursPerDay {
		units := int32(math.Ceil(hours / hoursPerDay))
		unitPrice := NewMoney(rc.PricePerDayCents)
		return Quote{
			Total:       unitPrice.MulUnits(units),
			PricingType: PricingDaily,
			UnitPrice:   unitPrice,
			Units:       units,
		}, nil
	}

	units := int32(math.Ceil(hours))
	unitPrice := NewMoney(rc.PricePerHourCents)
	return Quote{
		Total:       unitPrice.MulUnits(units),
		PricingType: PricingHourly,
		UnitPrice:   unitPrice,
		Units:       units,
	}, nil
}
