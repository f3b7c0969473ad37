// Package services contains the application services orchestrating
// validation, persistence and side effects for users and tasks.
package services

import (
	"context"
	"log"
	"strings"

	"github.com/google/uuid"

	"task-service/internal/application/command"
	"task-service/internal/application/common"
	"task-service/internal/application/interfaces"
	"task-service/internal/application/mapper"
	"task-service/internal/domain/apperrors"
	"task-service/internal/domain/entities"
	"task-service/internal/domain/repositories"
	"task-service/internal/infrastructure"
)

type UserService struct {
	userRepo      repositories.UserRepository
	jwtService    *infrastructure.JWTService
	avatarService *infrastructure.AvatarService
	redisService  *infrastructure.RedisService
	mailer        infrastructure.Mailer
	rateLimiter   *infrastructure.RateLimiter
}

func NewUserService(
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	avatarService *infrastructure.AvatarService,
	redisService *infrastructure.RedisService,
	mailer infrastructure.Mailer,
	rateLimiter *infrastructure.RateLimiter,
) interfaces.UserService {
	return &UserService{
		userRepo:      userRepo,
		jwtService:    jwtService,
		avatarService: avatarService,
		redisService:  redisService,
		mailer:        mailer,
		rateLimiter:   rateLimiter,
	}
}

// Create registers a user, attempts the welcome email and issues the first
// session token.
func (s *UserService) Create(ctx context.Context, cmd *command.CreateUserCommand) (*command.CreateUserCommandResult, error) {
	if !s.rateLimiter.Allow("signup:" + cmd.Email) {
		return nil, apperrors.RateLimited("too many signup attempts, please try again later")
	}

	if err := entities.ValidatePassword(cmd.Password); err != nil {
		return nil, err
	}

	newUser := entities.NewUser(cmd.Name, cmd.Email, cmd.Password, cmd.Age)
	validatedUser, err := entities.NewValidatedUser(newUser)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, newUser.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("email already in use")
	}

	if err := newUser.HashPassword(); err != nil {
		return nil, apperrors.Internal("hashing password", err)
	}

	createdUser, err := s.userRepo.Create(ctx, validatedUser)
	if err != nil {
		return nil, err
	}

	// Dispatch is attempted before responding, but a failure is only logged.
	if err := s.mailer.SendWelcome(ctx, createdUser.Email, createdUser.Name); err != nil {
		log.Printf("failed to send welcome email to %s: %v", createdUser.Email, err)
	}

	token, err := s.issueToken(ctx, createdUser)
	if err != nil {
		return nil, err
	}

	return &command.CreateUserCommandResult{
		User:  mapper.NewUserResultFromEntity(createdUser),
		Token: token,
	}, nil
}

// Login verifies credentials and appends a fresh token to the active set.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, cmd *command.LoginUserCommand) (*command.LoginUserCommandResult, error) {
	if !s.rateLimiter.Allow("login:" + cmd.Email) {
		return nil, apperrors.RateLimited("too many login attempts, please try again later")
	}

	user, err := s.findByCredentials(ctx, cmd.Email, cmd.Password)
	if err != nil {
		return nil, err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &command.LoginUserCommandResult{
		User:  mapper.NewUserResultFromEntity(user),
		Token: token,
	}, nil
}

func (s *UserService) findByCredentials(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.Auth("unable to login")
	}
	if err := user.CheckPassword(password); err != nil {
		return nil, apperrors.Auth("unable to login")
	}
	return user, nil
}

// issueToken signs a token, appends it to the user's active set and
// persists before returning. The redis cache write is best-effort.
func (s *UserService) issueToken(ctx context.Context, user *entities.User) (string, error) {
	token, err := s.jwtService.GenerateToken(user.Id)
	if err != nil {
		return "", apperrors.Internal("signing token", err)
	}

	user.AddToken(token)
	if _, err := s.persist(ctx, user); err != nil {
		return "", err
	}

	if err := s.redisService.SetToken(ctx, token, user.Id.String(), infrastructure.DefaultTokenValidity); err != nil {
		log.Printf("failed to cache token: %v", err)
	}
	return token, nil
}

// Logout revokes exactly the presented token; other sessions stay valid.
func (s *UserService) Logout(ctx context.Context, user *entities.User, token string) error {
	user.RemoveToken(token)
	if _, err := s.persist(ctx, user); err != nil {
		return err
	}
	if err := s.redisService.DeleteToken(ctx, token); err != nil {
		log.Printf("failed to evict token from cache: %v", err)
	}
	return nil
}

// LogoutAll clears the active token set, revoking every session.
func (s *UserService) LogoutAll(ctx context.Context, user *entities.User) error {
	tokens := user.Tokens
	user.ClearTokens()
	if _, err := s.persist(ctx, user); err != nil {
		return err
	}
	if err := s.redisService.DeleteToken(ctx, tokens...); err != nil {
		log.Printf("failed to evict tokens from cache: %v", err)
	}
	return nil
}

// Update applies a whitelisted PATCH to the authenticated user. A password
// change is re-validated and re-hashed; an email change re-checks
// uniqueness.
func (s *UserService) Update(ctx context.Context, user *entities.User, cmd *command.UpdateUserCommand) (*common.UserResult, error) {
	if cmd.Name != nil {
		user.Name = *cmd.Name
	}
	if cmd.Email != nil {
		user.Email = *cmd.Email
	}
	if cmd.Age != nil {
		user.Age = *cmd.Age
	}
	if cmd.Password != nil {
		if err := entities.ValidatePassword(*cmd.Password); err != nil {
			return nil, err
		}
		user.Password = *cmd.Password
	}
	user.Normalize()

	if cmd.Password != nil {
		if err := user.HashPassword(); err != nil {
			return nil, apperrors.Internal("hashing password", err)
		}
	}

	if cmd.Email != nil {
		existing, err := s.userRepo.FindByEmail(ctx, user.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.Id != user.Id {
			return nil, apperrors.Conflict("email already in use")
		}
	}

	updated, err := s.persist(ctx, user)
	if err != nil {
		return nil, err
	}
	return mapper.NewUserResultFromEntity(updated), nil
}

// Delete removes the account and cascades to all owned tasks, then attempts
// the cancelation email.
func (s *UserService) Delete(ctx context.Context, user *entities.User) (*common.UserResult, error) {
	if err := s.userRepo.DeleteWithTasks(ctx, user.Id); err != nil {
		return nil, err
	}

	if err := s.redisService.DeleteToken(ctx, user.Tokens...); err != nil {
		log.Printf("failed to evict tokens from cache: %v", err)
	}
	if err := s.mailer.SendCancelation(ctx, user.Email, user.Name); err != nil {
		log.Printf("failed to send cancelation email to %s: %v", user.Email, err)
	}

	return mapper.NewUserResultFromEntity(user), nil
}

// SetAvatar normalizes the upload to a 250x250 PNG and stores it.
func (s *UserService) SetAvatar(ctx context.Context, user *entities.User, image []byte) error {
	normalized, err := s.avatarService.Normalize(image)
	if err != nil {
		return err
	}
	user.SetAvatar(normalized)
	_, err = s.persist(ctx, user)
	return err
}

func (s *UserService) DeleteAvatar(ctx context.Context, user *entities.User) error {
	user.SetAvatar(nil)
	_, err := s.persist(ctx, user)
	return err
}

// Avatar returns the stored PNG bytes for any user id. Missing user and
// missing avatar are the same not-found.
func (s *UserService) Avatar(ctx context.Context, id uuid.UUID) ([]byte, error) {
	user, err := s.userRepo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || len(user.Avatar) == 0 {
		return nil, apperrors.NotFound("avatar not found")
	}
	return user.Avatar, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) persist(ctx context.Context, user *entities.User) (*entities.User, error) {
	validated, err := entities.NewValidatedUser(user)
	if err != nil {
		return nil, err
	}
	return s.userRepo.Update(ctx, validated)
}
