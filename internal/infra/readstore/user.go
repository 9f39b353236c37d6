package readstore

import (
	"context"
	"strings"

	"stayhub/internal/infra"
	"stayhub/internal/infra/db"
	"stayhub/internal/pkg/pgconv"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserReadStore struct {
	dbtx db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{dbtx: dbtx}
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error) {
	const query = `
		SELECT id, email, role, hashed_password, is_active
		FROM users
		WHERE email = $1`

	return r.scanUser(r.dbtx.QueryRow(ctx, query, strings.ToLower(email)))
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `
		SELECT id, email, role, hashed_password, is_active
		FROM users
		WHERE id = $1`

	return r.scanUser(r.dbtx.QueryRow(ctx, query, id))
}

func (r *UserReadStore) scanUser(row rowScanner) (*queries.AuthorizedUserView, error) {
	var view queries.AuthorizedUserView
	err := row.Scan(&view.ID, &view.Email, &view.Role, &view.HashedPassword, &view.IsActive)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err, infra.ClassifyPgError(err))
	}
	return &view, nil
}
