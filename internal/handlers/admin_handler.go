package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AdminHandler serves the admin-only surface. Routes are mounted behind
// middleware.RequireAdmin; mutating services check the role again.
type AdminHandler struct {
	commentService      *services.CommentService
	postService         *services.PostService
	notificationService *services.NotificationService
	counterService      *services.CounterService
	statsService        *services.StatsService
}

func NewAdminHandler(
	commentService *services.CommentService,
	postService *services.PostService,
	notificationService *services.NotificationService,
	counterService *services.CounterService,
	statsService *services.StatsService,
) *AdminHandler {
	return &AdminHandler{
		commentService:      commentService,
		postService:         postService,
		notificationService: notificationService,
		counterService:      counterService,
		statsService:        statsService,
	}
}

// RegisterAdminRoutes registers admin routes on a group already guarded by RequireAdmin
func (h *AdminHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/stats", h.GetStats)
	g.GET("/comments", h.GetAllComments)
	g.DELETE("/comments/:id", h.DeleteComment)
	g.GET("/posts", h.GetPosts)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/reconcile", h.ReconcilePost)
	g.POST("/reconcile", h.ReconcileAll)
	g.GET("/notifications", h.GetAllNotifications)
	g.GET("/notifications/stats", h.GetNotificationStats)
	g.PUT("/notifications/:id/read", h.MarkNotificationRead)
	g.POST("/broadcast", h.Broadcast)
}

func (h *AdminHandler) GetStats(c echo.Context) error {
	stats, err := h.statsService.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, stats)
}

func (h *AdminHandler) GetAllComments(c echo.Context) error {
	comments, err := h.commentService.ListAllComments(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return paginated(c, "comments", comments)
}

// DeleteComment physically removes a comment
func (h *AdminHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "id", "comment")
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), user, commentID, services.AdminHardDelete); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetPosts lists every post; ?active=true|false narrows by state
func (h *AdminHandler) GetPosts(c echo.Context) error {
	var active *bool
	if raw := c.QueryParam("active"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid active filter")
		}
		active = &v
	}

	posts, err := h.postService.ListAdmin(c.Request().Context(), active)
	if err != nil {
		return httpError(err)
	}
	return paginated(c, "posts", posts)
}

func (h *AdminHandler) DeletePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.postService.Delete(c.Request().Context(), user, c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) ReconcilePost(c echo.Context) error {
	counters, err := h.counterService.ReconcilePost(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, counters)
}

func (h *AdminHandler) ReconcileAll(c echo.Context) error {
	n, err := h.counterService.ReconcileAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"reconciled": n})
}

func (h *AdminHandler) GetAllNotifications(c echo.Context) error {
	notifications, err := h.notificationService.ListAll(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return paginated(c, "notifications", notifications)
}

func (h *AdminHandler) GetNotificationStats(c echo.Context) error {
	stats, err := h.notificationService.Stats(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, stats)
}

// MarkNotificationRead marks any user's notification read
func (h *AdminHandler) MarkNotificationRead(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	notificationID, err := parseIDParam(c, "id", "notification")
	if err != nil {
		return err
	}

	result, err := h.notificationService.AdminMarkRead(c.Request().Context(), user, notificationID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Notification " + strconv.FormatUint(uint64(notificationID), 10) + " marked as read",
		"data":    result,
	})
}

// Broadcast sends a notification to every active user
func (h *AdminHandler) Broadcast(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.BroadcastRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	n, err := h.notificationService.Broadcast(c.Request().Context(), user, req.Type, req.Message)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Notification sent to " + strconv.Itoa(n) + " users",
		"data":    echo.Map{"recipients": n, "notification_type": models.NormalizeBroadcastType(req.Type)},
	})
}
