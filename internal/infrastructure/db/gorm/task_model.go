package gormdb

import (
	"time"

	"github.com/google/uuid"

	"task-service/internal/domain/entities"
)

type TaskModel struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Description string    `gorm:"not null"`
	Completed   bool      `gorm:"default:false"`
	OwnerId     uuid.UUID `gorm:"type:uuid;index;not null"`
}

func (TaskModel) TableName() string {
	return "tasks"
}

func newTaskModel(task *entities.Task) *TaskModel {
	return &TaskModel{
		Id:          task.Id,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
		Description: task.Description,
		Completed:   task.Completed,
		OwnerId:     task.OwnerId,
	}
}

func (m *TaskModel) toEntity() *entities.Task {
	return &entities.Task{
		Id:          m.Id,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		Description: m.Description,
		Completed:   m.Completed,
		OwnerId:     m.OwnerId,
	}
}
