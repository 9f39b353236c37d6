package commands

import (
	"context"

	"stayhub/internal/domain/user"
	"stayhub/internal/infra"
	"stayhub/internal/pkg/errs"
	"stayhub/internal/pkg/jwt"
	"stayhub/internal/pkg/password"
	"stayhub/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrUserInactive       = errs.New("user account is inactive")
)

// UserReadStore provides the read-only user rows the engine needs for
// authentication. User provisioning lives outside this service.
type UserReadStore interface {
	FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error)
}

type LoginResult struct {
	Token string
	User  *queries.AuthorizedUserView
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
}

type authCommandsImpl struct {
	users      UserReadStore
	jwtService *jwt.Service
}

func NewAuthCommands(users UserReadStore, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	view, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}

	if !view.IsActive {
		return nil, ErrUserInactive
	}

	if err := password.Verify(view.HashedPassword, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(view.Role)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	token, err := a.jwtService.GenerateToken(view.ID, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, User: view}, nil
}

func (a *authCommandsImpl) Me(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	view, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, errs.ErrStorageFailure)
	}
	return view, nil
}
