package handlers

import (
	"net/http"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followService *services.FollowService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followService *services.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
	g.GET("/users/:id/follow", h.GetFollowStatus)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

// FollowUser follows a user. Following twice answers 200 instead of 201.
func (h *FollowHandler) FollowUser(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	result, err := h.followService.Follow(c.Request().Context(), user, targetID)
	if err != nil {
		return httpError(err)
	}

	status, message := http.StatusCreated, "Now following user"
	if !result.Created {
		status, message = http.StatusOK, "Already following this user"
	}
	return c.JSON(status, echo.Map{
		"success": true,
		"message": message,
		"data":    echo.Map{"following": true, "follow": result.Follow},
	})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	if err := h.followService.Unfollow(c.Request().Context(), user.ID, targetID); err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"following": false})
}

// GetFollowStatus reports whether the current user follows :id
func (h *FollowHandler) GetFollowStatus(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	targetID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}

	following, err := h.followService.IsFollowing(c.Request().Context(), user.ID, targetID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, echo.Map{"following": following})
}

// GetFollowers lists the users following :id, newest first
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	follows, err := h.followService.ListFollowers(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	users := make([]models.UserCompact, 0, len(follows))
	for _, f := range follows {
		if f.Follower != nil {
			users = append(users, f.Follower.ToCompact())
		}
	}
	return paginated(c, "followers", users)
}

// GetFollowing lists the users :id follows, newest first
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	follows, err := h.followService.ListFollowing(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}

	users := make([]models.UserCompact, 0, len(follows))
	for _, f := range follows {
		if f.Following != nil {
			users = append(users, f.Following.ToCompact())
		}
	}
	return paginated(c, "following", users)
}
