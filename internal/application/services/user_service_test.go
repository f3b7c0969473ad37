package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-service/internal/application/command"
	"task-service/internal/domain/apperrors"
	"task-service/internal/infrastructure"
)

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	result := env.signup(t, "Mike", "Mike@Example.COM")

	assert.Equal(t, "Mike", result.User.Name)
	assert.Equal(t, "mike@example.com", result.User.Email, "email is lowercased")
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, []string{"mike@example.com"}, env.mailer.welcomes, "welcome mail is attempted")

	stored, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secret123", stored.Password, "plaintext never reaches the store")
	assert.NoError(t, stored.CheckPassword("secret123"))
	assert.Equal(t, []string{result.Token}, stored.Tokens, "signup issues the first session token")
}

func TestCreateUserValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  command.CreateUserCommand
		kind apperrors.Kind
	}{
		{"short password", command.CreateUserCommand{Name: "M", Email: "a@b.com", Password: "short"}, apperrors.KindValidation},
		{"password contains password", command.CreateUserCommand{Name: "M", Email: "a@b.com", Password: "password1"}, apperrors.KindValidation},
		{"bad email", command.CreateUserCommand{Name: "M", Email: "nope", Password: "secret123"}, apperrors.KindValidation},
		{"missing name", command.CreateUserCommand{Email: "a@b.com", Password: "secret123"}, apperrors.KindValidation},
		{"negative age", command.CreateUserCommand{Name: "M", Email: "a@b.com", Password: "secret123", Age: -3}, apperrors.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.userService.Create(ctx, &tt.cmd)
			require.Error(t, err)
			assert.Equal(t, tt.kind, apperrors.KindOf(err))
		})
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Mike", "mike@example.com")

	_, err := env.userService.Create(context.Background(), &command.CreateUserCommand{
		Name:     "Imposter",
		Email:    "mike@example.com",
		Password: "secret456",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestCreateUserSurvivesMailFailure(t *testing.T) {
	env := newTestEnv(t)
	env.mailer.failWith = errors.New("smtp down")

	result, err := env.userService.Create(context.Background(), &command.CreateUserCommand{
		Name:     "Mike",
		Email:    "mike@example.com",
		Password: "secret123",
	})
	require.NoError(t, err, "mail failure never aborts signup")
	assert.NotEmpty(t, result.Token)
}

func TestLoginGrowsTokenSetByOne(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	signup := env.signup(t, "Mike", "mike@example.com")

	login, err := env.userService.Login(ctx, &command.LoginUserCommand{
		Email:    "mike@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotEqual(t, signup.Token, login.Token)

	stored, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)
	assert.Equal(t, []string{signup.Token, login.Token}, stored.Tokens, "set grows by one, newest last")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")

	_, wrongPassword := env.userService.Login(ctx, &command.LoginUserCommand{
		Email:    "mike@example.com",
		Password: "wrongpass",
	})
	_, noSuchUser := env.userService.Login(ctx, &command.LoginUserCommand{
		Email:    "ghost@example.com",
		Password: "secret123",
	})

	require.Error(t, wrongPassword)
	require.Error(t, noSuchUser)
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(wrongPassword))
	assert.Equal(t, apperrors.KindAuth, apperrors.KindOf(noSuchUser))
	assert.Equal(t, wrongPassword.Error(), noSuchUser.Error(),
		"missing user and wrong password must be indistinguishable")
}

func TestLogoutRemovesOnlyPresentedToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")

	first, err := env.userService.Login(ctx, &command.LoginUserCommand{Email: "mike@example.com", Password: "secret123"})
	require.NoError(t, err)
	second, err := env.userService.Login(ctx, &command.LoginUserCommand{Email: "mike@example.com", Password: "secret123"})
	require.NoError(t, err)

	user, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)
	require.NoError(t, env.userService.Logout(ctx, user, first.Token))

	stored, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)
	assert.NotContains(t, stored.Tokens, first.Token)
	assert.Contains(t, stored.Tokens, second.Token, "other sessions stay valid")
}

func TestLogoutAllEmptiesTokenSet(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")

	for i := 0; i < 2; i++ {
		_, err := env.userService.Login(ctx, &command.LoginUserCommand{Email: "mike@example.com", Password: "secret123"})
		require.NoError(t, err)
	}

	user, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)
	require.NoError(t, env.userService.LogoutAll(ctx, user))

	stored, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)
	assert.Empty(t, stored.Tokens)
}

func TestUpdateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")

	user, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)

	name, age := "Michael", 30
	result, err := env.userService.Update(ctx, user, &command.UpdateUserCommand{Name: &name, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "Michael", result.Name)
	assert.Equal(t, 30, result.Age)
}

func TestUpdateUserPasswordIsRehashed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")

	user, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)

	newPassword := "freshsecret9"
	_, err = env.userService.Update(ctx, user, &command.UpdateUserCommand{Password: &newPassword})
	require.NoError(t, err)

	stored, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, newPassword, stored.Password)
	assert.NoError(t, stored.CheckPassword(newPassword))
	assert.Error(t, stored.CheckPassword("secret123"))
}

func TestUpdateUserRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")

	user, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)

	bad := "password1"
	_, err = env.userService.Update(ctx, user, &command.UpdateUserCommand{Password: &bad})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestUpdateUserEmailConflict(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")
	env.signup(t, "Jess", "jess@example.com")

	user, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)

	taken := "jess@example.com"
	_, err = env.userService.Update(ctx, user, &command.UpdateUserCommand{Email: &taken})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestDeleteUserCascadesTasks(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")

	user, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := env.taskService.Create(ctx, user.Id, &command.CreateTaskCommand{Description: "task"})
		require.NoError(t, err)
	}

	result, err := env.userService.Delete(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, user.Id, result.Id)
	assert.Equal(t, []string{"mike@example.com"}, env.mailer.cancelations)

	gone, err := env.userRepo.FindById(ctx, user.Id)
	require.NoError(t, err)
	assert.Nil(t, gone)

	tasks, err := env.taskRepo.FindForOwner(ctx, user.Id, nil)
	require.NoError(t, err)
	assert.Empty(t, tasks, "no tasks remain for the deleted owner")
}

func TestAvatarLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "Mike", "mike@example.com")

	user, err := env.userRepo.FindByEmail(ctx, "mike@example.com")
	require.NoError(t, err)

	_, err = env.userService.Avatar(ctx, user.Id)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err), "no avatar yet")

	require.NoError(t, env.userService.SetAvatar(ctx, user, pngBytes(t, 400, 300)))

	avatar, err := env.userService.Avatar(ctx, user.Id)
	require.NoError(t, err)
	assert.NotEmpty(t, avatar)

	err = env.userService.SetAvatar(ctx, user, []byte("not an image"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	require.NoError(t, env.userService.DeleteAvatar(ctx, user))
	_, err = env.userService.Avatar(ctx, user.Id)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = env.userService.Avatar(ctx, user.Id)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err), "missing avatar and missing user look alike")
}

func TestSignupRateLimit(t *testing.T) {
	env := newTestEnv(t)

	// A dedicated tight limiter so the test does not fight the default.
	limited := NewUserService(
		env.userRepo,
		infrastructure.NewJWTService("test-secret", time.Hour),
		infrastructure.NewAvatarService(),
		infrastructure.NewDisabledRedisService(),
		env.mailer,
		infrastructure.NewRateLimiter(time.Hour, 1),
	)

	ctx := context.Background()
	cmd := &command.LoginUserCommand{Email: "mike@example.com", Password: "secret123"}

	_, first := limited.Login(ctx, cmd)
	assert.NotEqual(t, apperrors.KindRateLimited, apperrors.KindOf(first))

	_, second := limited.Login(ctx, cmd)
	require.Error(t, second)
	assert.Equal(t, apperrors.KindRateLimited, apperrors.KindOf(second))
}
