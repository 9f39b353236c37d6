package repository

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
)

// BookingRepository is the write side. It is always handed the DBTX of the
// transaction it must run in; the unit of work owns transaction scope.
type BookingRepository struct {
	dbtx db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{dbtx: dbtx}
}

// LockProperty takes a row lock on the property for the duration of the
// enclosing transaction, serializing concurrent create attempts for the
// same property.
func (r *BookingRepository) LockProperty(ctx context.Context, propertyID uuid.UUID) error {
	const query = `SELECT id FROM properties WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := r.dbtx.QueryRow(ctx, query, propertyID).Scan(&id); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("property not found for lock", err, infra.KindNotFound)
		}
		return infra.WrapRepoErr("failed to lock property", err, infra.ClassifyPgError(err))
	}
	return nil
}

func (r *BookingRepository) ActiveWindows(ctx context.Context, propertyID uuid.UUID, exclude uuid.UUID) ([]booking.Window, error) {
	const query = `
		SELECT id, start_time, end_time
		FROM bookings
		WHERE property_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND ($2::uuid IS NULL OR id <> $2)`

	var excludeArg *uuid.UUID
	if exclude != uuid.Nil {
		excludeArg = &exclude
	}

	rows, err := r.dbtx.Query(ctx, query, propertyID, pgconv.UUIDPtrToPgtype(excludeArg))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load active booking windows", err, infra.ClassifyPgError(err))
	}
	defer rows.Close()

	var windows []booking.Window
	for rows.Next() {
		var (
			id         uuid.UUID
			start, end time.Time
		)
		if err := rows.Scan(&id, &start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking window", err)
		}
		slot, slotErr := booking.NewTimeSlot(start, end)
		if slotErr != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid interval", slotErr)
		}
		windows = append(windows, booking.Window{BookingID: id, Slot: slot})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking windows", err, infra.ClassifyPgError(err))
	}

	return windows, nil
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	const query = `
		INSERT INTO bookings (
			id, property_id, guest_id, start_time, end_time, status,
			total_price_cents, pricing_type, unit_price_cents, units,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.dbtx.Exec(ctx, query,
		b.ID(),
		b.PropertyID(),
		b.GuestID(),
		b.Slot().Start(),
		b.Slot().End(),
		b.Status().String(),
		b.TotalPrice().Cents(),
		string(b.PricingType()),
		b.UnitPrice().Cents(),
		b.Units(),
		b.CreatedAt(),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert booking", err, infra.ClassifyPgError(err))
	}
	return nil
}

// UpdateStatusCAS conditions the write on the row's current status so that
// of two racing transitions exactly one succeeds.
func (r *BookingRepository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, expected []booking.Status, change shared.StatusChange) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = $2,
		    cancelled_by = $3,
		    cancelled_at = $4,
		    cancellation_reason = $5,
		    updated_at = $6
		WHERE id = $1 AND status = ANY($7)`

	var cancelledBy *string
	if change.CancelledBy != nil {
		s := change.CancelledBy.String()
		cancelledBy = &s
	}

	expectedStrs := make([]string, len(expected))
	for i, s := range expected {
		expectedStrs[i] = s.String()
	}

	tag, err := r.dbtx.Exec(ctx, query,
		id,
		change.NewStatus.String(),
		pgconv.StringPtrToPgtype(cancelledBy),
		pgconv.TimePtrToPgtype(change.CancelledAt),
		pgconv.StringPtrToPgtype(change.CancellationReason),
		change.UpdatedAt,
		expectedStrs,
	)
	if err != nil {
		return false, infra.WrapRepoErr("failed to update booking status", err, infra.ClassifyPgError(err))
	}

	return tag.RowsAffected() > 0, nil
}

// MarkCompletedCAS keeps the end-time guard in the same statement as the
// write so a sweep never completes a booking that is still running.
func (r *BookingRepository) MarkCompletedCAS(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	const query = `
		UPDATE bookings
		SET status = 'completed', updated_at = $2
		WHERE id = $1 AND status = 'confirmed' AND end_time <= $2`

	tag, err := r.dbtx.Exec(ctx, query, id, now)
	if err != nil {
		return false, infra.WrapRepoErr("failed to complete booking", err, infra.ClassifyPgError(err))
	}

	return tag.RowsAffected() > 0, nil
}
