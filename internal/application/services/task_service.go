package services

import (
	"context"

	"github.com/google/uuid"

	"task-service/internal/application/command"
	"task-service/internal/application/common"
	"task-service/internal/application/interfaces"
	"task-service/internal/application/mapper"
	"task-service/internal/domain/apperrors"
	"task-service/internal/domain/entities"
	"task-service/internal/domain/repositories"
)

// TaskService implements owner-scoped task CRUD. The owner id always comes
// from the authenticated session; there is no path where a client-supplied
// id selects whose tasks are touched.
type TaskService struct {
	taskRepo repositories.TaskRepository
}

func NewTaskService(taskRepo repositories.TaskRepository) interfaces.TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func (s *TaskService) Create(ctx context.Context, owner uuid.UUID, cmd *command.CreateTaskCommand) (*common.TaskResult, error) {
	task := entities.NewTask(owner, cmd.Description)
	task.Completed = cmd.Completed

	validatedTask, err := entities.NewValidatedTask(task)
	if err != nil {
		return nil, err
	}

	createdTask, err := s.taskRepo.Create(ctx, validatedTask)
	if err != nil {
		return nil, err
	}
	return mapper.NewTaskResultFromEntity(createdTask), nil
}

func (s *TaskService) List(ctx context.Context, owner uuid.UUID, opts *repositories.TaskListOptions) ([]*common.TaskResult, error) {
	tasks, err := s.taskRepo.FindForOwner(ctx, owner, opts)
	if err != nil {
		return nil, err
	}
	return mapper.NewTaskResultsFromEntities(tasks), nil
}

func (s *TaskService) Get(ctx context.Context, owner, id uuid.UUID) (*common.TaskResult, error) {
	task, err := s.taskRepo.FindOne(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("task not found")
	}
	return mapper.NewTaskResultFromEntity(task), nil
}

func (s *TaskService) Update(ctx context.Context, owner, id uuid.UUID, cmd *command.UpdateTaskCommand) (*common.TaskResult, error) {
	task, err := s.taskRepo.FindOne(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("task not found")
	}

	if cmd.Description != nil {
		task.SetDescription(*cmd.Description)
	}
	if cmd.Completed != nil {
		task.SetCompleted(*cmd.Completed)
	}

	validatedTask, err := entities.NewValidatedTask(task)
	if err != nil {
		return nil, err
	}

	updatedTask, err := s.taskRepo.Update(ctx, validatedTask)
	if err != nil {
		return nil, err
	}
	return mapper.NewTaskResultFromEntity(updatedTask), nil
}

func (s *TaskService) Delete(ctx context.Context, owner, id uuid.UUID) (*common.TaskResult, error) {
	task, err := s.taskRepo.Delete(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperrors.NotFound("task not found")
	}
	return mapper.NewTaskResultFromEntity(task), nil
}
