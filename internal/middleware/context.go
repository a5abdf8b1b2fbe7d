package middleware

import (
	"context"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/labstack/echo/v4"
)

// CurrentUserKey is the echo.Context key holding the authenticated *models.User.
const CurrentUserKey = "currentUser"

// UserLookup resolves authenticated identities to active users.
type UserLookup interface {
	GetActiveUser(ctx context.Context, userID uint) (*models.User, error)
	GetActiveUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error)
}

// CurrentUser returns the user stored by one of the auth middlewares, or nil.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(CurrentUserKey).(*models.User)
	return user
}
