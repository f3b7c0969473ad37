package interfaces

import (
	"context"

	"github.com/google/uuid"

	"task-service/internal/application/command"
	"task-service/internal/application/common"
	"task-service/internal/domain/entities"
)

type UserService interface {
	Create(ctx context.Context, cmd *command.CreateUserCommand) (*command.CreateUserCommandResult, error)
	Login(ctx context.Context, cmd *command.LoginUserCommand) (*command.LoginUserCommandResult, error)
	Logout(ctx context.Context, user *entities.User, token string) error
	LogoutAll(ctx context.Context, user *entities.User) error
	Update(ctx context.Context, user *entities.User, cmd *command.UpdateUserCommand) (*common.UserResult, error)
	Delete(ctx context.Context, user *entities.User) (*common.UserResult, error)
	SetAvatar(ctx context.Context, user *entities.User, image []byte) error
	DeleteAvatar(ctx context.Context, user *entities.User) error
	Avatar(ctx context.Context, id uuid.UUID) ([]byte, error)
}
