package handlers

import (
	"net/http"

	"github.com/anonto42/socialconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler serves profiles. Account management belongs to the identity service.
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetOwnProfile)
	g.GET("/users/:id", h.GetProfile)
}

// GetOwnProfile retrieves the authenticated user's profile
func (h *UserHandler) GetOwnProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProfile(c.Request().Context(), user.ID, user.ID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, profile)
}

// GetProfile retrieves another user's profile, subject to their privacy setting
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	userID, err := parseIDParam(c, "id", "user")
	if err != nil {
		return err
	}
	profile, err := h.userService.GetProfile(c.Request().Context(), user.ID, userID)
	if err != nil {
		return httpError(err)
	}
	return ok(c, http.StatusOK, profile)
}
