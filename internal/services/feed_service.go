package services

import (
	"context"
	"slices"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/labstack/gommon/log"
)

// FeedItem is a post together with its author.
type FeedItem struct {
	models.Post
	Author *models.UserCompact `json:"author,omitempty"`
}

// FeedService assembles timelines. It keeps no state between calls, so a
// follow or unfollow shows up on the next request.
type FeedService struct {
	follows repositories.FollowRepository
	posts   repositories.PostRepository
	users   repositories.UserRepository
	logger  *log.Logger
}

func NewFeedService(
	follows repositories.FollowRepository,
	posts repositories.PostRepository,
	users repositories.UserRepository,
	logger *log.Logger,
) *FeedService {
	return &FeedService{follows: follows, posts: posts, users: users, logger: logger}
}

// PersonalFeed returns active posts by userID and everyone userID follows,
// newest first. Privacy settings do not apply here.
func (s *FeedService) PersonalFeed(ctx context.Context, userID uint) ([]FeedItem, error) {
	authorIDs, err := s.follows.GetFollowingIDs(ctx, userID)
	if err != nil {
		return nil, storeFailure(s.logger, "get following ids", err)
	}
	authorIDs = append(authorIDs, userID)

	posts, err := s.posts.ListPosts(ctx, models.PostFilter{AuthorIDs: authorIDs})
	if err != nil {
		return nil, storeFailure(s.logger, "list feed posts", err)
	}
	return s.withAuthors(ctx, posts)
}

// GlobalFeed returns active posts matching the optional author, category and
// content filters, newest first.
func (s *FeedService) GlobalFeed(ctx context.Context, filter models.PostFilter) ([]FeedItem, error) {
	if filter.Category != "" && !slices.Contains(models.PostCategories, filter.Category) {
		return nil, errorx.New(errorx.Validation, "category must be one of: %v", models.PostCategories)
	}
	filter.Active = nil
	filter.IncludeInactive = false

	posts, err := s.posts.ListPosts(ctx, filter)
	if err != nil {
		return nil, storeFailure(s.logger, "list posts", err)
	}
	return s.withAuthors(ctx, posts)
}

func (s *FeedService) withAuthors(ctx context.Context, posts []models.Post) ([]FeedItem, error) {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		if !slices.Contains(ids, p.AuthorID) {
			ids = append(ids, p.AuthorID)
		}
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, storeFailure(s.logger, "get post authors", err)
	}
	authors := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		authors[users[i].ID] = users[i].ToCompact()
	}

	items := make([]FeedItem, len(posts))
	for i, p := range posts {
		items[i] = FeedItem{Post: p}
		if a, ok := authors[p.AuthorID]; ok {
			items[i].Author = &a
		}
	}
	return items, nil
}
