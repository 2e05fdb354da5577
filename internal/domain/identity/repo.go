package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	List(ctx context.Context, limit, offset int) ([]*User, int, error)
	// ListExpiredSuspensions returns disabled users whose suspension end has
	// passed.
	ListExpiredSuspensions(ctx context.Context, now time.Time) ([]*User, error)
}

type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*Role, error)
	RolesForUser(ctx context.Context, userID uuid.UUID) ([]Role, error)
	PermissionsForUser(ctx context.Context, userID uuid.UUID) ([]Permission, error)
	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
}
