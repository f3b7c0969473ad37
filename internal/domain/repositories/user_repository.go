package repositories

import (
	"context"

	"github.com/google/uuid"

	"task-service/internal/domain/entities"
)

// UserRepository persists users. Find methods return (nil, nil) when no row
// matches; callers decide whether absence is an error.
type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindById(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)

	// DeleteWithTasks removes the user and every task they own as a single
	// transaction: both succeed or neither happened.
	DeleteWithTasks(ctx context.Context, id uuid.UUID) error
}
