package shared

import (
	"stayhub/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == user.RoleAdmin
}
