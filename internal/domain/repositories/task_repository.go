package repositories

import (
	"context"

	"github.com/google/uuid"

	"task-service/internal/domain/entities"
)

// TaskListOptions shapes an owner-scoped list read. Nil Limit/Skip mean
// "no limit"/"no skip", which is not the same as zero.
type TaskListOptions struct {
	Completed *bool
	SortField string
	SortDesc  bool
	Limit     *int
	Skip      *int
}

// TaskRepository persists tasks. Every read and write is filtered by owner
// at the query level, so a task belonging to someone else is
// indistinguishable from one that does not exist.
type TaskRepository interface {
	Create(ctx context.Context, task *entities.ValidatedTask) (*entities.Task, error)
	FindForOwner(ctx context.Context, owner uuid.UUID, opts *TaskListOptions) ([]*entities.Task, error)
	FindOne(ctx context.Context, owner, id uuid.UUID) (*entities.Task, error)
	Update(ctx context.Context, task *entities.ValidatedTask) (*entities.Task, error)
	Delete(ctx context.Context, owner, id uuid.UUID) (*entities.Task, error)
}
