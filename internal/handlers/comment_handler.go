package handlers

import (
	"net/http"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentService *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:id/comments", h.CreateComment)
	g.GET("/posts/:id/comments", h.GetCommentsByPostID)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	// Content is trimmed and validated by the service.
	comment, err := h.commentService.AddComment(c.Request().Context(), user, c.Param("id"), req.Content)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusCreated, comment)
}

// GetCommentsByPostID lists the active comments on a post, newest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	comments, err := h.commentService.ListComments(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return paginated(c, "comments", comments)
}

// DeleteComment soft-deletes the current user's own comment
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	commentID, err := parseIDParam(c, "id", "comment")
	if err != nil {
		return err
	}

	if err := h.commentService.DeleteComment(c.Request().Context(), user, commentID, services.OwnerSoftDelete); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
