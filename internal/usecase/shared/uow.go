package shared

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"

	"github.com/google/uuid"
)

// UnitOfWork scopes repository access to a single transaction. Within runs
// fn in a read-committed transaction and retries serialization failures
// with bounded backoff.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: direct access for validation reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Reads() CommandReads
}

// BookingRepository is the write side. LockProperty + ActiveWindows +
// Insert inside one Tx form the atomic check-then-insert unit that keeps
// two overlapping bookings from both reaching pending.
type BookingRepository interface {
	LockProperty(ctx context.Context, propertyID uuid.UUID) error
	ActiveWindows(ctx context.Context, propertyID uuid.UUID, exclude uuid.UUID) ([]booking.Window, error)
	Insert(ctx context.Context, b *booking.Booking) error
	// UpdateStatusCAS applies change only when the row's current status is
	// one of expected; returns false when the guard did not match.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, expected []booking.Status, change StatusChange) (bool, error)
	// MarkCompletedCAS transitions confirmed bookings whose interval has
	// passed; the end-time guard lives in the same statement as the write.
	MarkCompletedCAS(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
}

type StatusChange struct {
	NewStatus          booking.Status
	CancelledBy        *booking.CancelledBy
	CancelledAt        *time.Time
	CancellationReason *string
	UpdatedAt          time.Time
}

type CommandReads interface {
	PropertyByID(ctx context.Context, id uuid.UUID) (*PropertySnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
}

// PropertySnapshot is the storage-boundary view of a property used by
// command validation.
type PropertySnapshot struct {
	ID                uuid.UUID
	HostID            uuid.UUID
	Name              string
	PricePerHourCents int64
	PricePerDayCents  int64
	MinBookingHours   *int32
	IsActive          bool
}

// BookingSnapshot is the storage-boundary view of a booking used by
// command validation; ownership questions go through the property.
type BookingSnapshot struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	GuestID    uuid.UUID
	Status     booking.Status
	StartTime  time.Time
	EndTime    time.Time
}
