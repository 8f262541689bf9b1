package repository

import (
	"context"
	"errors"

	"healthcare-portal/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDuplicate is returned when a unique index rejects a write.
var ErrDuplicate = errors.New("duplicate record")

// UserRepository persists accounts. Finders return (nil, nil) when nothing matches.
// List methods order by creation time, newest first.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindAll(ctx context.Context) ([]entity.User, error)
	FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
}
