// Package httpdelivery exposes the application services over HTTP using
// echo. All request and response bodies are JSON except the avatar bytes
// endpoint.
package httpdelivery

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"task-service/internal/application/interfaces"
	"task-service/internal/domain/apperrors"
	"task-service/internal/domain/repositories"
	"task-service/internal/infrastructure"
)

type Server struct {
	echo *echo.Echo
}

func NewServer(
	userService interfaces.UserService,
	taskService interfaces.TaskService,
	userRepo repositories.UserRepository,
	jwtService *infrastructure.JWTService,
	redisService *infrastructure.RedisService,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = errorHandler
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("2M"))

	userHandler := NewUserHandler(userService)
	taskHandler := NewTaskHandler(taskService)
	auth := AuthRequired(userRepo, jwtService, redisService)

	e.POST("/users", userHandler.Register)
	e.POST("/users/login", userHandler.Login)
	e.POST("/users/logout", userHandler.Logout, auth)
	e.POST("/users/logoutAll", userHandler.LogoutAll, auth)
	e.GET("/users/me", userHandler.Me, auth)
	e.PATCH("/users/me", userHandler.UpdateMe, auth)
	e.DELETE("/users/me", userHandler.DeleteMe, auth)
	e.POST("/users/me/avatar", userHandler.UploadAvatar, auth)
	e.DELETE("/users/me/avatar", userHandler.DeleteAvatar, auth)
	e.GET("/users/:id/avatar", userHandler.GetAvatar)

	e.POST("/tasks", taskHandler.Create, auth)
	e.GET("/tasks", taskHandler.List, auth)
	e.GET("/tasks/:id", taskHandler.Get, auth)
	e.PATCH("/tasks/:id", taskHandler.Update, auth)
	e.DELETE("/tasks/:id", taskHandler.Delete, auth)

	return &Server{echo: e}
}

func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Handler exposes the routing tree, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// errorHandler maps the error taxonomy onto HTTP statuses. Internal details
// never reach the client.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	} else {
		switch apperrors.KindOf(err) {
		case apperrors.KindValidation:
			status, message = http.StatusBadRequest, err.Error()
		case apperrors.KindAuth:
			status, message = http.StatusUnauthorized, err.Error()
		case apperrors.KindNotFound:
			status, message = http.StatusNotFound, err.Error()
		case apperrors.KindConflict:
			status, message = http.StatusConflict, err.Error()
		case apperrors.KindRateLimited:
			status, message = http.StatusTooManyRequests, err.Error()
		}
	}

	if err := c.JSON(status, echo.Map{"error": message}); err != nil {
		c.Logger().Error(err)
	}
}
