package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"task-service/internal/domain/apperrors"
)

type Task struct {
	Id          uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Description string
	Completed   bool
	OwnerId     uuid.UUID
}

// NewTask builds a task for owner. The owner always comes from the
// authenticated session, never from request input.
func NewTask(owner uuid.UUID, description string) *Task {
	now := time.Now()
	t := &Task{
		Id:          uuid.New(),
		CreatedAt:   now,
		UpdatedAt:   now,
		Description: description,
		Completed:   false,
		OwnerId:     owner,
	}
	t.Normalize()
	return t
}

func (t *Task) Normalize() {
	t.Description = strings.TrimSpace(t.Description)
}

var taskConstraints = []func(*Task) string{
	func(t *Task) string {
		if t.Description == "" {
			return "description is required"
		}
		return ""
	},
	func(t *Task) string {
		if t.OwnerId == uuid.Nil {
			return "owner is required"
		}
		return ""
	},
}

func (t *Task) validate() error {
	for _, check := range taskConstraints {
		if msg := check(t); msg != "" {
			return apperrors.Validation(msg)
		}
	}
	return nil
}

func (t *Task) SetDescription(description string) {
	t.Description = description
	t.Normalize()
	t.UpdatedAt = time.Now()
}

func (t *Task) SetCompleted(completed bool) {
	t.Completed = completed
	t.UpdatedAt = time.Now()
}
