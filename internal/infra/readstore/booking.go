package readstore

import (
	"context"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/infra/repository"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const bookingViewColumns = `
	b.id, b.property_id, p.name, p.host_id, b.guest_id,
	b.start_time, b.end_time, b.status,
	b.total_price_cents, b.pricing_type, b.unit_price_cents, b.units,
	b.cancelled_by, b.cancelled_at, b.cancellation_reason,
	b.created_at, b.updated_at`

const bookingListColumns = `
	b.id, b.property_id, p.name, b.guest_id,
	b.start_time, b.end_time, b.status, b.total_price_cents, b.created_at`

// BookingReadStore serves the query side. The property join is resolved
// here, once, into typed views; nothing downstream re-reads joined rows.
type BookingReadStore struct {
	dbtx db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{dbtx: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query := `
		SELECT ` + bookingViewColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.id = $1`

	row := r.dbtx.QueryRow(ctx, query, id)
	view, err := scanBookingView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err, infra.ClassifyPgError(err))
	}

	return view, nil
}

// SnapshotByID backs command-side validation.
func (r *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, property_id, guest_id, status, start_time, end_time
		FROM bookings
		WHERE id = $1`

	var (
		snap   shared.BookingSnapshot
		status string
	)
	err := r.dbtx.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.PropertyID, &snap.GuestID,
		&status, &snap.StartTime, &snap.EndTime,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load booking snapshot", err, infra.ClassifyPgError(err))
	}
	snap.Status = booking.Status(status)

	return &snap, nil
}

func (r *BookingReadStore) FindByGuest(ctx context.Context, guestID uuid.UUID) ([]*queries.BookingListItem, error) {
	query := `
		SELECT ` + bookingListColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.guest_id = $1
		ORDER BY b.created_at DESC`

	return r.queryList(ctx, query, guestID)
}

func (r *BookingReadStore) FindByHost(ctx context.Context, hostID uuid.UUID) ([]*queries.BookingListItem, error) {
	query := `
		SELECT ` + bookingListColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE p.host_id = $1
		ORDER BY b.created_at DESC`

	return r.queryList(ctx, query, hostID)
}

func (r *BookingReadStore) FindAll(ctx context.Context, limit int32) ([]*queries.BookingListItem, error) {
	query := `
		SELECT ` + bookingListColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		ORDER BY b.created_at DESC
		LIMIT $1`

	return r.queryList(ctx, query, limit)
}

func (r *BookingReadStore) FindUpcoming(ctx context.Context, from, to time.Time) ([]*queries.BookingListItem, error) {
	query := `
		SELECT ` + bookingListColumns + `
		FROM bookings b
		JOIN properties p ON p.id = b.property_id
		WHERE b.status IN ('pending', 'confirmed')
		  AND b.start_time >= $1 AND b.start_time < $2
		ORDER BY b.start_time ASC`

	return r.queryList(ctx, query, from, to)
}

// ActiveWindows delegates to the write repository so the overlap query has
// a single definition for both the availability read and the in-tx re-check.
func (r *BookingReadStore) ActiveWindows(ctx context.Context, propertyID uuid.UUID, exclude uuid.UUID) ([]booking.Window, error) {
	return repository.NewBookingRepository(r.dbtx).ActiveWindows(ctx, propertyID, exclude)
}

func (r *BookingReadStore) queryList(ctx context.Context, query string, args ...any) ([]*queries.BookingListItem, error) {
	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err, infra.ClassifyPgError(err))
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		item := &queries.BookingListItem{}
		if err := rows.Scan(
			&item.ID, &item.PropertyID, &item.PropertyName, &item.GuestID,
			&item.StartTime, &item.EndTime, &item.Status, &item.TotalPriceCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err, infra.ClassifyPgError(err))
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view        queries.BookingView
		cancelledBy pgtype.Text
		cancelledAt pgtype.Timestamptz
		reason      pgtype.Text
	)

	err := row.Scan(
		&view.ID, &view.PropertyID, &view.PropertyName, &view.HostID, &view.GuestID,
		&view.StartTime, &view.EndTime, &view.Status,
		&view.TotalPriceCents, &view.PricingType, &view.UnitPriceCents, &view.Units,
		&cancelledBy, &cancelledAt, &reason,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.CancelledBy = pgconv.StringPtrFromPgtype(cancelledBy)
	view.CancelledAt = pgconv.TimePtrFromPgtype(cancelledAt)
	view.CancellationReason = pgconv.StringPtrFromPgtype(reason)

	return &view, nil
}
