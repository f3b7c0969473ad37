package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-service/internal/domain/apperrors"
)

func TestNewTask(t *testing.T) {
	owner := uuid.New()
	task := NewTask(owner, "  buy milk  ")

	assert.Equal(t, "buy milk", task.Description)
	assert.False(t, task.Completed)
	assert.Equal(t, owner, task.OwnerId)

	_, err := NewValidatedTask(task)
	assert.NoError(t, err)
}

func TestTaskValidation(t *testing.T) {
	t.Run("description required", func(t *testing.T) {
		_, err := NewValidatedTask(NewTask(uuid.New(), "   "))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})

	t.Run("owner required", func(t *testing.T) {
		_, err := NewValidatedTask(NewTask(uuid.Nil, "buy milk"))
		require.Error(t, err)
		assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	})
}
