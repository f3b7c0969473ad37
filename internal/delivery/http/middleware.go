package httpdelivery

import (
	"strings"

	"github.com/labstack/echo/v4"

	"task-service/internal/domain/apperrors"
	"task-service/internal/domain/entities"
	"task-service/internal/domain/repositories"
	"task-service/internal/infrastructure"
)

const (
	contextUserKey  = "auth.user"
	contextTokenKey = "auth.token"
)

// AuthRequired resolves the acting identity from the bearer token. The
// token must carry a valid signature, be unexpired and still be present in
// the user's active session set. Any failure rejects the request outright;
// no partial identity reaches a handler.
func AuthRequired(
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	redisService *infrastructure.RedisService,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return apperrors.Auth("please authenticate")
			}
			token := strings.TrimPrefix(header, "Bearer ")

			userID, err := jwtService.ParseToken(token)
			if err != nil {
				return apperrors.Auth("please authenticate")
			}

			ctx := c.Request().Context()

			// Cache fast path: a cached binding to a different user means a
			// forged or stale token.
			if cachedID, err := redisService.GetToken(ctx, token); err == nil && cachedID != "" {
				if cachedID != userID.String() {
					return apperrors.Auth("please authenticate")
				}
			}

			user, err := userRepo.FindById(ctx, userID)
			if err != nil {
				return err
			}
			if user == nil || !user.HasToken(token) {
				return apperrors.Auth("please authenticate")
			}

			c.Set(contextUserKey, user)
			c.Set(contextTokenKey, token)
			return next(c)
		}
	}
}

func currentUser(c echo.Context) *entities.User {
	user, _ := c.Get(contextUserKey).(*entities.User)
	return user
}

func currentToken(c echo.Context) string {
	token, _ := c.Get(contextTokenKey).(string)
	return token
}
