package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "taskdeck.app/taskdeck/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.POST("/auth/signup", h.SignUp)
	e.POST("/auth/signin", h.SignIn)
	e.POST("/auth/signout", h.SignOut)

	e.GET("/tasks", h.ListTasks)
	e.GET("/tasks/search", h.SearchTasks)
	e.POST("/tasks", h.CreateTask)
	e.PATCH("/tasks/:id", h.UpdateTask)
	e.DELETE("/tasks/:id", h.DeleteTask)
	e.POST("/tasks/:id/share", h.ShareTask)

	e.GET("/shared", h.ListSharedTasks)
	e.GET("/shared/task", h.ResolveSharedTask)

	e.GET("/notifications", h.ListNotifications)
	e.POST("/notifications/:id/read", h.MarkNotificationRead)
	e.POST("/notifications/read-all", h.MarkAllNotificationsRead)

	e.GET("/analytics", h.Analytics)
	e.GET("/export", h.Export)
	e.PATCH("/profile", h.UpdateProfile)
	e.POST("/refresh", h.Refresh)
	e.DELETE("/data", h.ClearData)
}
