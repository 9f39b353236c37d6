package property

import (
	"errors"
	"strings"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

var (
	ErrEmptyPropertyName   = errors.New("property name cannot be empty")
	ErrPropertyNameTooLong = errors.New("property name is too long (max 255 characters)")
	ErrNonPositiveRate     = errors.New("hourly and daily rates must be positive")
	ErrInvalidMinHours     = errors.New("minimum booking hours must be at least 1")
)

const MaxPropertyNameLength = 255

// Property is the bookable resource. The booking engine only reads it; the
// host-facing catalogue owns writes.
type Property struct {
	id                uuid.UUID
	hostID            uuid.UUID
	name              string
	pricePerHourCents int64
	pricePerDayCents  int64
	minBookingHours   *int32
	isActive          bool
	createdAt         time.Time
	updatedAt         time.Time
}

func NewProperty(id, hostID uuid.UUID, name string, pricePerHourCents, pricePerDayCents int64, minBookingHours *int32, isActive bool) (*Property, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyPropertyName
	}
	if len(name) > MaxPropertyNameLength {
		return nil, ErrPropertyNameTooLong
	}
	if pricePerHourCents <= 0 || pricePerDayCents <= 0 {
		return nil, ErrNonPositiveRate
	}
	if minBookingHours != nil && *minBookingHours < 1 {
		return nil, ErrInvalidMinHours
	}

	return &Property{
		id:                id,
		hostID:            hostID,
		name:              name,
		pricePerHourCents: pricePerHourCents,
		pricePerDayCents:  pricePerDayCents,
		minBookingHours:   minBookingHours,
		isActive:          isActive,
	}, nil
}

func (p *Property) RateCard() booking.RateCard {
	return booking.RateCard{
		PricePerHourCents: p.pricePerHourCents,
		PricePerDayCents:  p.pricePerDayCents,
		MinBookingHours:   p.minBookingHours,
	}
}

func (p *Property) IsOwnedBy(userID uuid.UUID) bool {
	return p.hostID == userID
}

func (p *Property) ID() uuid.UUID            { return p.id }
func (p *Property) HostID() uuid.UUID        { return p.hostID }
func (p *Property) Name() string             { return p.name }
func (p *Property) PricePerHourCents() int64 { return p.pricePerHourCents }
func (p *Property) PricePerDayCents() int64  { return p.pricePerDayCents }
func (p *Property) MinBookingHours() *int32  { return p.minBookingHours }
func (p *Property) IsActive() bool           { return p.isActive }
func (p *Property) CreatedAt() time.Time     { return p.createdAt }
func (p *Property) UpdatedAt() time.Time     { return p.updatedAt }
