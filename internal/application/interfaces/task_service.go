package interfaces

import (
	"context"

	"github.com/google/uuid"

	"task-service/internal/application/command"
	"task-service/internal/application/common"
	"task-service/internal/domain/repositories"
)

type TaskService interface {
	Create(ctx context.Context, owner uuid.UUID, cmd *command.CreateTaskCommand) (*common.TaskResult, error)
	List(ctx context.Context, owner uuid.UUID, opts *repositories.TaskListOptions) ([]*common.TaskResult, error)
	Get(ctx context.Context, owner, id uuid.UUID) (*common.TaskResult, error)
	Update(ctx context.Context, owner, id uuid.UUID, cmd *command.UpdateTaskCommand) (*common.TaskResult, error)
	Delete(ctx context.Context, owner, id uuid.UUID) (*common.TaskResult, error)
}
