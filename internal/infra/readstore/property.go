package readstore

import (
	"context"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"
	"stayhub/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type PropertyReadStore struct {
	dbtx db.DBTX
}

func NewPropertyReadStore(dbtx db.DBTX) *PropertyReadStore {
	return &PropertyReadStore{dbtx: dbtx}
}

func (r *PropertyReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PropertyView, error) {
	const query = `
		SELECT id, host_id, name, price_per_hour_cents, price_per_day_cents,
		       min_booking_hours, is_active, created_at, updated_at
		FROM properties
		WHERE id = $1`

	var (
		view     queries.PropertyView
		minHours pgtype.Int4
	)
	err := r.dbtx.QueryRow(ctx, query, id).Scan(
		&view.ID, &view.HostID, &view.Name,
		&view.PricePerHourCents, &view.PricePerDayCents,
		&minHours, &view.IsActive, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find property by ID", err, infra.ClassifyPgError(err))
	}
	view.MinBookingHours = pgconv.Int32PtrFromPgtype(minHours)

	return &view, nil
}

func (r *PropertyReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.PropertySnapshot, error) {
	const query = `
		SELECT id, host_id, name, price_per_hour_cents, price_per_day_cents,
		       min_booking_hours, is_active
		FROM properties
		WHERE id = $1`

	var (
		snap     shared.PropertySnapshot
		minHours pgtype.Int4
	)
	err := r.dbtx.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.HostID, &snap.Name,
		&snap.PricePerHourCents, &snap.PricePerDayCents,
		&minHours, &snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("property not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to load property snapshot", err, infra.ClassifyPgError(err))
	}
	snap.MinBookingHours = pgconv.Int32PtrFromPgtype(minHours)

	return &snap, nil
}
