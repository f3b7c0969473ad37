package httpdelivery

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"task-service/internal/application/command"
	"task-service/internal/application/interfaces"
	"task-service/internal/application/query"
	"task-service/internal/domain/apperrors"
)

type TaskHandler struct {
	taskService interfaces.TaskService
}

func NewTaskHandler(taskService interfaces.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) Create(c echo.Context) error {
	var cmd command.CreateTaskCommand
	if err := c.Bind(&cmd); err != nil {
		return apperrors.Validation("invalid request body")
	}

	result, err := h.taskService.Create(c.Request().Context(), currentUser(c).Id, &cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, result)
}

// List handles GET /tasks?completed=&sortBy=&limit=&skip=.
func (h *TaskHandler) List(c echo.Context) error {
	opts := query.ParseTaskListOptions(c.QueryParams())

	results, err := h.taskService.List(c.Request().Context(), currentUser(c).Id, opts)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

func (h *TaskHandler) Get(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	result, err := h.taskService.Get(c.Request().Context(), currentUser(c).Id, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) Update(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return apperrors.Validation("invalid request body")
	}
	cmd, err := command.ParseUpdateTaskCommand(body)
	if err != nil {
		return err
	}

	result, err := h.taskService.Update(c.Request().Context(), currentUser(c).Id, id, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}

	result, err := h.taskService.Delete(c.Request().Context(), currentUser(c).Id, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}

// taskID parses the :id segment. A malformed id is indistinguishable from a
// missing task.
func taskID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NotFound("task not found")
	}
	return id, nil
}
