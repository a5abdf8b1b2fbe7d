package services

import (
	"context"
	"errors"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/labstack/gommon/log"
)

var (
	errPostNotFound = errorx.New(errorx.NotFound, "Post not found")
	errUserNotFound = errorx.New(errorx.NotFound, "User not found")
	errAdminOnly    = errorx.New(errorx.Forbidden, "Admin access required")
)

// storeFailure logs err and hides it behind errorx.Unknown.
func storeFailure(logger *log.Logger, op string, err error) error {
	logger.Errorf("Cannot %s: %v", op, err)
	return errorx.Unknown
}

// notFoundOr maps repositories.ErrNotFound to notFound and any other store
// error to errorx.Unknown.
func notFoundOr(logger *log.Logger, op string, err error, notFound error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return notFound
	}
	return storeFailure(logger, op, err)
}

// activePost loads a post and treats soft-deleted posts as absent.
func activePost(ctx context.Context, logger *log.Logger, posts repositories.PostRepository, postID string) (*models.Post, error) {
	post, err := posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, notFoundOr(logger, "get post", err, errPostNotFound)
	}
	if !post.IsActive {
		return nil, errPostNotFound
	}
	return post, nil
}

// activeUser loads a user and treats inactive accounts as absent.
func activeUser(ctx context.Context, logger *log.Logger, users repositories.UserRepository, userID uint) (*models.User, error) {
	user, err := users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, notFoundOr(logger, "get user", err, errUserNotFound)
	}
	if !user.IsActive {
		return nil, errUserNotFound
	}
	return user, nil
}
