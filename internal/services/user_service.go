package services

import (
	"context"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/labstack/gommon/log"
)

type UserService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
	posts   repositories.PostRepository
	logger  *log.Logger
}

func NewUserService(
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	posts repositories.PostRepository,
	logger *log.Logger,
) *UserService {
	return &UserService{users: users, follows: follows, posts: posts, logger: logger}
}

// CanViewProfile applies the owner's privacy setting. It only gates profile
// viewing; feeds ignore it.
func CanViewProfile(owner *models.User, viewerID uint, viewerFollowsOwner bool) bool {
	if owner.ID == viewerID {
		return true
	}
	switch owner.PrivacySetting {
	case models.PrivacyPrivate:
		return false
	case models.PrivacyFollowersOnly:
		return viewerFollowsOwner
	default:
		return true
	}
}

// GetActiveUser is the identity lookup used by the auth middleware.
func (s *UserService) GetActiveUser(ctx context.Context, userID uint) (*models.User, error) {
	return activeUser(ctx, s.logger, s.users, userID)
}

func (s *UserService) GetActiveUserByFirebaseUID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, uid)
	if err != nil {
		return nil, notFoundOr(s.logger, "get user by firebase uid", err, errUserNotFound)
	}
	if !user.IsActive {
		return nil, errUserNotFound
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*models.Profile, error) {
	user, err := activeUser(ctx, s.logger, s.users, userID)
	if err != nil {
		return nil, err
	}

	isFollowing := false
	if viewerID != userID {
		if isFollowing, err = s.follows.IsFollowing(ctx, viewerID, userID); err != nil {
			return nil, storeFailure(s.logger, "check follow", err)
		}
	}
	if !CanViewProfile(user, viewerID, isFollowing) {
		return nil, errorx.New(errorx.Forbidden, "This profile is not visible to you")
	}

	profile := &models.Profile{User: *user, IsFollowing: isFollowing}
	if profile.FollowersCount, err = s.follows.GetFollowersCount(ctx, userID); err != nil {
		return nil, storeFailure(s.logger, "count followers", err)
	}
	if profile.FollowingCount, err = s.follows.GetFollowingCount(ctx, userID); err != nil {
		return nil, storeFailure(s.logger, "count following", err)
	}
	if profile.PostsCount, err = s.posts.CountActiveByAuthor(ctx, userID); err != nil {
		return nil, storeFailure(s.logger, "count posts", err)
	}
	return profile, nil
}
