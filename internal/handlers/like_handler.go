package handlers

import (
	"net/http"

	"github.com/anonto42/socialconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeService *services.LikeService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeService *services.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.LikePost)
	g.DELETE("/posts/:id/like", h.UnlikePost)
	g.GET("/posts/:id/like", h.GetUserLikeStatusForPost)
	g.GET("/posts/:id/likes", h.GetLikesForPost)
}

// LikePost likes a post. Liking twice answers 200 with the current state.
func (h *LikeHandler) LikePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.likeService.Like(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	status, message := http.StatusCreated, "Post liked"
	if !result.Created {
		status, message = http.StatusOK, "Post already liked"
	}
	return c.JSON(status, echo.Map{"success": true, "message": message, "data": result})
}

// UnlikePost removes the current user's like
func (h *LikeHandler) UnlikePost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	result, err := h.likeService.Unlike(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, result)
}

// GetUserLikeStatusForPost reports whether the current user liked the post
func (h *LikeHandler) GetUserLikeStatusForPost(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	status, err := h.likeService.LikeStatus(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, status)
}

// GetLikesForPost lists the likes on a post, newest first
func (h *LikeHandler) GetLikesForPost(c echo.Context) error {
	likes, err := h.likeService.ListLikes(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return paginated(c, "likes", likes)
}
