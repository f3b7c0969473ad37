package gormdb

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"task-service/internal/domain/apperrors"
	"task-service/internal/domain/entities"
	"task-service/internal/domain/repositories"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *entities.ValidatedTask) (*entities.Task, error) {
	model := newTaskModel(task.GetTask())
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, apperrors.Internal("creating task", err)
	}
	return model.toEntity(), nil
}

// FindForOwner applies filter, sort, skip and limit in that order, always
// on top of the owner scope.
func (r *TaskRepository) FindForOwner(ctx context.Context, owner uuid.UUID, opts *repositories.TaskListOptions) ([]*entities.Task, error) {
	tx := r.db.WithContext(ctx).Where("owner_id = ?", owner)

	if opts != nil {
		if opts.Completed != nil {
			tx = tx.Where("completed = ?", *opts.Completed)
		}
		if opts.SortField != "" {
			tx = tx.Order(clause.OrderByColumn{
				Column: clause.Column{Name: opts.SortField},
				Desc:   opts.SortDesc,
			})
		}
		if opts.Skip != nil {
			tx = tx.Offset(*opts.Skip)
		}
		if opts.Limit != nil {
			tx = tx.Limit(*opts.Limit)
		}
	}

	var models []TaskModel
	if err := tx.Find(&models).Error; err != nil {
		return nil, apperrors.Internal("listing tasks", err)
	}

	tasks := make([]*entities.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, models[i].toEntity())
	}
	return tasks, nil
}

// FindOne filters on both id and owner, so another user's task looks
// exactly like a missing one.
func (r *TaskRepository) FindOne(ctx context.Context, owner, id uuid.UUID) (*entities.Task, error) {
	var model TaskModel
	err := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("looking up task", err)
	}
	return model.toEntity(), nil
}

func (r *TaskRepository) Update(ctx context.Context, task *entities.ValidatedTask) (*entities.Task, error) {
	model := newTaskModel(task.GetTask())
	err := r.db.WithContext(ctx).Model(&TaskModel{Id: model.Id}).
		Select("description", "completed", "updated_at").
		Where("owner_id = ?", model.OwnerId).
		Updates(model).Error
	if err != nil {
		return nil, apperrors.Internal("updating task", err)
	}
	return r.FindOne(ctx, model.OwnerId, model.Id)
}

func (r *TaskRepository) Delete(ctx context.Context, owner, id uuid.UUID) (*entities.Task, error) {
	task, err := r.FindOne(ctx, owner, id)
	if err != nil || task == nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner).Delete(&TaskModel{})
	if result.Error != nil {
		return nil, apperrors.Internal("deleting task", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return task, nil
}
