package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feedService *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feedService *services.FeedService) *FeedHandler {
	return &FeedHandler{feedService: feedService}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/posts", h.GetPosts)
}

// GetFeed returns the current user's timeline: their own posts and those of
// everyone they follow.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	posts, err := h.feedService.PersonalFeed(c.Request().Context(), user.ID)
	if err != nil {
		return httpError(err)
	}
	return paginated(c, "posts", posts)
}

// GetPosts returns the global feed, filtered by ?author_id, ?category and ?q.
func (h *FeedHandler) GetPosts(c echo.Context) error {
	filter := models.PostFilter{
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("q"),
	}
	if raw := c.QueryParam("author_id"); raw != "" {
		authorID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid author ID")
		}
		filter.AuthorID = uint(authorID)
	}

	posts, err := h.feedService.GlobalFeed(c.Request().Context(), filter)
	if err != nil {
		return httpError(err)
	}
	return paginated(c, "posts", posts)
}
