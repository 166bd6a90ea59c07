package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "taskdeck.app/taskdeck/internal/errors"
	"taskdeck.app/taskdeck/internal/http/validators"
	model "taskdeck.app/taskdeck/internal/models"
	"taskdeck.app/taskdeck/internal/services"
)

// Handler is the HTTP command surface the presentation layer consumes.
type Handler struct {
	store *services.StoreService
	auth  *services.AuthService
}

func NewHandler(store *services.StoreService, auth *services.AuthService) *Handler {
	return &Handler{
		store: store,
		auth:  auth,
	}
}

func (h *Handler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSignUp(validators.SignUpFields(req)); err != nil {
		return err
	}

	user, session, err := h.auth.SignUp(c.Request().Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":    user,
		"session": session,
	})
}

func (h *Handler) SignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateSignIn(validators.SignInFields(req)); err != nil {
		return err
	}

	session, err := h.auth.SignIn(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"session": session})
}

func (h *Handler) SignOut(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// ListTasks returns the filtered task view. Query params, when present,
// update the controller's search and filter state first.
func (h *Handler) ListTasks(c echo.Context) error {
	params := c.QueryParams()

	if params.Has("q") {
		h.store.SetSearchQuery(params.Get("q"))
	}

	var patch model.FiltersPatch
	if params.Has("status") {
		status := params.Get("status")
		patch.Status = &status
	}
	if params.Has("priority") {
		priority := params.Get("priority")
		patch.Priority = &priority
	}
	if params.Has("tags") {
		tags := splitTags(params.Get("tags"))
		patch.Tags = &tags
	}
	if patch.Status != nil || patch.Priority != nil || patch.Tags != nil {
		h.store.SetFilters(patch)
	}

	tasks := h.store.FilteredTasks()
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// SearchTasks queries the durable collection directly instead of the
// cached view.
func (h *Handler) SearchTasks(c echo.Context) error {
	tasks := h.store.SearchTasks(c.Request().Context(), c.QueryParam("q"))
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *Handler) CreateTask(c echo.Context) error {
	var draft model.TaskDraft
	if err := c.Bind(&draft); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.store.CreateTask(c.Request().Context(), draft)
	if err != nil {
		return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	var patch model.TaskPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	task, err := h.store.UpdateTask(c.Request().Context(), id, patch)
	if err != nil {
		return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
	}
	if task == nil {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	deleted := h.store.DeleteTask(c.Request().Context(), id)
	return c.JSON(http.StatusOK, echo.Map{"deleted": deleted})
}

func (h *Handler) ShareTask(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "task id is required")
	}

	var req ShareTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.UserID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	task, err := h.store.ShareTask(c.Request().Context(), id, req.UserID)
	if err != nil {
		return echo.NewHTTPError(apperrors.StatusCode(err), err.Error())
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListSharedTasks(c echo.Context) error {
	tasks := h.store.SharedTasks()
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tasks),
		"tasks": tasks,
	})
}

// ResolveSharedTask resolves an unlisted-link task id. Knowing the id is
// the read capability; no ownership check is applied.
func (h *Handler) ResolveSharedTask(c echo.Context) error {
	id := c.QueryParam("taskId")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "taskId is required")
	}

	task := h.store.GetTask(c.Request().Context(), id)
	if task == nil {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListNotifications(c echo.Context) error {
	notifications := h.store.Notifications()
	return c.JSON(http.StatusOK, echo.Map{
		"count":         len(notifications),
		"notifications": notifications,
	})
}

func (h *Handler) MarkNotificationRead(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "notification id is required")
	}

	h.store.MarkNotificationRead(c.Request().Context(), id)
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) MarkAllNotificationsRead(c echo.Context) error {
	h.store.MarkAllNotificationsRead(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Analytics(c echo.Context) error {
	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "days must be a positive integer")
		}
		days = parsed
	}

	return c.JSON(http.StatusOK, h.store.Analytics(c.Request().Context(), days))
}

// Export streams the backup snapshot as a downloadable JSON document.
func (h *Handler) Export(c echo.Context) error {
	snapshot := h.store.Export(c.Request().Context())

	filename := fmt.Sprintf("task-manager-backup-%s.json", snapshot.ExportDate.Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))

	return c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var patch model.UserPatch
	if err := c.Bind(&patch); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	user := h.store.UpdateUserProfile(c.Request().Context(), patch)
	if user == nil {
		return echo.NewHTTPError(http.StatusNotFound, "user not found")
	}

	return c.JSON(http.StatusOK, user)
}

func (h *Handler) Refresh(c echo.Context) error {
	h.store.RefreshData(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) ClearData(c echo.Context) error {
	h.store.ClearData(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

func splitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}
