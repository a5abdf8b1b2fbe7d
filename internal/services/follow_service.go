package services

import (
	"context"

	"github.com/anonto42/socialconnect/backend/internal/metrics"
	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/labstack/gommon/log"
)

// FollowResult tells a first follow apart from a repeat.
type FollowResult struct {
	Follow  *models.Follow
	Created bool
}

type FollowService struct {
	follows  repositories.FollowRepository
	users    repositories.UserRepository
	notifier Notifier
	logger   *log.Logger
}

func NewFollowService(
	follows repositories.FollowRepository,
	users repositories.UserRepository,
	notifier Notifier,
	logger *log.Logger,
) *FollowService {
	return &FollowService{follows: follows, users: users, notifier: notifier, logger: logger}
}

// Follow creates the edge follower -> targetID. Repeating it is a no-op and
// only the first creation notifies the target.
func (s *FollowService) Follow(ctx context.Context, follower *models.User, targetID uint) (*FollowResult, error) {
	if follower.ID == targetID {
		return nil, errorx.New(errorx.SelfReference, "You cannot follow yourself")
	}
	if _, err := activeUser(ctx, s.logger, s.users, targetID); err != nil {
		return nil, err
	}

	follow := &models.Follow{FollowerID: follower.ID, FollowingID: targetID}
	created, err := s.follows.CreateFollow(ctx, follow)
	if err != nil {
		return nil, storeFailure(s.logger, "create follow", err)
	}
	if !created {
		existing, err := s.follows.GetFollow(ctx, follower.ID, targetID)
		if err != nil {
			return nil, storeFailure(s.logger, "get follow", err)
		}
		return &FollowResult{Follow: existing}, nil
	}

	metrics.EngagementActions.WithLabelValues("follow").Inc()
	s.notifier.NotifyFollow(ctx, follower, targetID)
	return &FollowResult{Follow: follow, Created: true}, nil
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, targetID uint) error {
	if err := s.follows.DeleteFollow(ctx, followerID, targetID); err != nil {
		return notFoundOr(s.logger, "delete follow", err,
			errorx.New(errorx.NotFound, "You are not following this user"))
	}
	metrics.EngagementActions.WithLabelValues("unfollow").Inc()
	return nil
}

// ListFollowers returns the edges pointing at userID, newest first, with
// Follower populated.
func (s *FollowService) ListFollowers(ctx context.Context, userID uint) ([]models.Follow, error) {
	if _, err := activeUser(ctx, s.logger, s.users, userID); err != nil {
		return nil, err
	}
	follows, err := s.follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, storeFailure(s.logger, "get followers", err)
	}
	return follows, nil
}

// ListFollowing returns the edges leaving userID, newest first, with
// Following populated.
func (s *FollowService) ListFollowing(ctx context.Context, userID uint) ([]models.Follow, error) {
	if _, err := activeUser(ctx, s.logger, s.users, userID); err != nil {
		return nil, err
	}
	follows, err := s.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, storeFailure(s.logger, "get following", err)
	}
	return follows, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	ok, err := s.follows.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return false, storeFailure(s.logger, "check follow", err)
	}
	return ok, nil
}

func (s *FollowService) FollowCounts(ctx context.Context, userID uint) (followers, following int64, err error) {
	if followers, err = s.follows.GetFollowersCount(ctx, userID); err != nil {
		return 0, 0, storeFailure(s.logger, "count followers", err)
	}
	if following, err = s.follows.GetFollowingCount(ctx, userID); err != nil {
		return 0, 0, storeFailure(s.logger, "count following", err)
	}
	return followers, following, nil
}
