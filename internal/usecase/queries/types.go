package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	PropertyID         uuid.UUID  `json:"property_id"`
	PropertyName       string     `json:"property_name"`
	HostID             uuid.UUID  `json:"host_id"`
	GuestID            uuid.UUID  `json:"guest_id"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	Status             string     `json:"status"`
	TotalPriceCents    int64      `json:"total_price_cents"`
	PricingType        string     `json:"pricing_type"`
	UnitPriceCents     int64      `json:"unit_price_cents"`
	Units              int32      `json:"units"`
	CancelledBy        *string    `json:"cancelled_by,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	PropertyID      uuid.UUID `json:"property_id"`
	PropertyName    string    `json:"property_name"`
	GuestID         uuid.UUID `json:"guest_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type PropertyView struct {
	ID                uuid.UUID `json:"id"`
	HostID            uuid.UUID `json:"host_id"`
	Name              string    `json:"name"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	PricePerDayCents  int64     `json:"price_per_day_cents"`
	MinBookingHours   *int32    `json:"min_booking_hours,omitempty"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type AvailabilityResult struct {
	Available bool    `json:"available"`
	Reason    *string `json:"reason,omitempty"`
}

type PriceQuote struct {
	TotalCents     int64  `json:"total_cents"`
	PricingType    string `json:"pricing_type"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Units          int32  `json:"units"`
}

type AuthorizedUserView struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
}
