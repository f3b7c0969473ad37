package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-service/internal/application/command"
	"task-service/internal/application/interfaces"
	"task-service/internal/domain/repositories"
	"task-service/internal/infrastructure"
	gormdb "task-service/internal/infrastructure/db/gorm"
)

type testEnv struct {
	userService interfaces.UserService
	taskService interfaces.TaskService
	userRepo    repositories.UserRepository
	taskRepo    repositories.TaskRepository
	mailer      *recordingMailer
}

// recordingMailer captures outgoing mail; failWith simulates a broken
// provider.
type recordingMailer struct {
	welcomes     []string
	cancelations []string
	failWith     error
}

func (m *recordingMailer) SendWelcome(_ context.Context, email, _ string) error {
	m.welcomes = append(m.welcomes, email)
	return m.failWith
}

func (m *recordingMailer) SendCancelation(_ context.Context, email, _ string) error {
	m.cancelations = append(m.cancelations, email)
	return m.failWith
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gormdb.Open("sqlite", dsn)
	require.NoError(t, err)

	userRepo := gormdb.NewUserRepository(db)
	taskRepo := gormdb.NewTaskRepository(db)
	mailer := &recordingMailer{}

	userService := NewUserService(
		userRepo,
		infrastructure.NewJWTService("test-secret", time.Hour),
		infrastructure.NewAvatarService(),
		infrastructure.NewDisabledRedisService(),
		mailer,
		infrastructure.NewRateLimiter(time.Minute, 1000),
	)

	return &testEnv{
		userService: userService,
		taskService: NewTaskService(taskRepo),
		userRepo:    userRepo,
		taskRepo:    taskRepo,
		mailer:      mailer,
	}
}

func (e *testEnv) signup(t *testing.T, name, email string) *command.CreateUserCommandResult {
	t.Helper()
	result, err := e.userService.Create(context.Background(), &command.CreateUserCommand{
		Name:     name,
		Email:    email,
		Password: "secret123",
	})
	require.NoError(t, err)
	return result
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))
	return buf.Bytes()
}
