//go:build unit || e2e

package builder

import (
	"time"

	dombooking "stayhub/internal/domain/booking"
	reqdto "stayhub/internal/handler/dto/request"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	PropertyID        uuid.UUID
	PropertyName      string
	HostID            uuid.UUID
	GuestID           uuid.UUID
	StartTime         time.Time
	EndTime           time.Time
	Status            dombooking.Status
	PricePerHourCents int64
	PricePerDayCents  int64
	MinBookingHours   *int32
	CreatedAt         time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		PropertyID:        uuid.New(),
		PropertyName:      "Harbour Loft",
		HostID:            uuid.New(),
		GuestID:           uuid.New(),
		StartTime:         now.Add(48 * time.Hour),
		EndTime:           now.Add(50 * time.Hour),
		Status:            dombooking.StatusPending,
		PricePerHourCents: 5000,
		PricePerDayCents:  10000,
		CreatedAt:         now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) Slot() dombooking.TimeSlot {
	slot, err := dombooking.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		panic("builder produced invalid slot: " + err.Error())
	}
	return slot
}

func (b *BookingBuilder) RateCard() dombooking.RateCard {
	return dombooking.RateCard{
		PricePerHourCents: b.PricePerHourCents,
		PricePerDayCents:  b.PricePerDayCents,
		MinBookingHours:   b.MinBookingHours,
	}
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	slot, err := dombooking.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	quote, err := dombooking.CalculateQuote(b.RateCard(), slot)
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(b.PropertyID, b.GuestID, slot, quote, b.CreatedAt), nil
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		PropertyID: b.PropertyID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	quote, _ := dombooking.CalculateQuote(b.RateCard(), b.Slot())
	return &queries.BookingView{
		ID:              uuid.New(),
		PropertyID:      b.PropertyID,
		PropertyName:    b.PropertyName,
		HostID:          b.HostID,
		GuestID:         b.GuestID,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          b.Status.String(),
		TotalPriceCents: quote.Total.Cents(),
		PricingType:     string(quote.PricingType),
		UnitPriceCents:  quote.UnitPrice.Cents(),
		Units:           quote.Units,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:         uuid.New(),
		PropertyID: b.PropertyID,
		GuestID:    b.GuestID,
		Status:     b.Status,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
	}
}

func (b *BookingBuilder) BuildPropertySnapshot() *shared.PropertySnapshot {
	return &shared.PropertySnapshot{
		ID:                b.PropertyID,
		HostID:            b.HostID,
		Name:              b.PropertyName,
		PricePerHourCents: b.PricePerHourCents,
		PricePerDayCents:  b.PricePerDayCents,
		MinBookingHours:   b.MinBookingHours,
		IsActive:          true,
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithSlot(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithDuration(d time.Duration) *BookingBuilder {
	b.EndTime = b.StartTime.Add(d)
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithGuestID(id uuid.UUID) *BookingBuilder {
	b.GuestID = id
	return b
}

func (b *BookingBuilder) WithHostID(id uuid.UUID) *BookingBuilder {
	b.HostID = id
	return b
}

func (b *BookingBuilder) WithRates(perHourCents, perDayCents int64) *BookingBuilder {
	b.PricePerHourCents = perHourCents
	b.PricePerDayCents = perDayCents
	return b
}

func (b *BookingBuilder) WithMinBookingHours(hours int32) *BookingBuilder {
	b.MinBookingHours = &hours
	return b
}
