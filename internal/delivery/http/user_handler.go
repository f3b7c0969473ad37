package httpdelivery

import (
	"io"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"task-service/internal/application/command"
	"task-service/internal/application/interfaces"
	"task-service/internal/application/mapper"
	"task-service/internal/domain/apperrors"
)

const maxAvatarBytes = 1 << 20

// avatarExtensions mirrors the accepted upload types: jpg, jpeg or png.
var avatarExtensions = regexp.MustCompile(`(?i)\.(jpe?g|png)$`)

type UserHandler struct {
	userService interfaces.UserService
}

func NewUserHandler(userService interfaces.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) Register(c echo.Context) error {
	var cmd command.CreateUserCommand
	if err := c.Bind(&cmd); err != nil {
		return apperrors.Validation("invalid request body")
	}

	result, err := h.userService.Create(c.Request().Context(), &cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

func (h *UserHandler) Login(c echo.Context) error {
	var cmd command.LoginUserCommand
	if err := c.Bind(&cmd); err != nil {
		return apperrors.Validation("invalid request body")
	}

	result, err := h.userService.Login(c.Request().Context(), &cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) Logout(c echo.Context) error {
	if err := h.userService.Logout(c.Request().Context(), currentUser(c), currentToken(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *UserHandler) LogoutAll(c echo.Context) error {
	if err := h.userService.LogoutAll(c.Request().Context(), currentUser(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *UserHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, mapper.NewUserResultFromEntity(currentUser(c)))
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.Validation("invalid request body")
	}

	cmd, err := command.ParseUpdateUserCommand(body)
	if err != nil {
		return err
	}

	result, err := h.userService.Update(c.Request().Context(), currentUser(c), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *UserHandler) DeleteMe(c echo.Context) error {
	result, err := h.userService.Delete(c.Request().Context(), currentUser(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// UploadAvatar reads the multipart field "avatar" ("avatars" is accepted
// as well for older clients), enforces the size and extension limits, and
// stores the normalized image.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		fileHeader, err = c.FormFile("avatars")
	}
	if err != nil {
		return apperrors.Validation("please upload an avatar file")
	}

	if fileHeader.Size > maxAvatarBytes {
		return apperrors.Validation("avatar must be smaller than 1MB")
	}
	if !avatarExtensions.MatchString(fileHeader.Filename) {
		return apperrors.Validation("please upload a JPG, JPEG or PNG image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.Validation("please upload a valid avatar file")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		return apperrors.Internal("reading avatar upload", err)
	}

	if err := h.userService.SetAvatar(c.Request().Context(), currentUser(c), data); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

func (h *UserHandler) DeleteAvatar(c echo.Context) error {
	if err := h.userService.DeleteAvatar(c.Request().Context(), currentUser(c)); err != nil {
		return err
	}
	return c.NoContent(http.StatusOK)
}

// GetAvatar serves the stored PNG publicly. A malformed id behaves like a
// missing user.
func (h *UserHandler) GetAvatar(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperrors.NotFound("avatar not found")
	}

	avatar, err := h.userService.Avatar(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", avatar)
}
