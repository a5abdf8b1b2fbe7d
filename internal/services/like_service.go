package services

import (
	"context"

	"github.com/anonto42/socialconnect/backend/internal/metrics"
	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/labstack/gommon/log"
)

// LikeResult reports the state after a like or unlike.
type LikeResult struct {
	Liked     bool  `json:"is_liked"`
	Created   bool  `json:"-"`
	LikeCount int64 `json:"like_count"`
}

type LikeService struct {
	likes    repositories.LikeRepository
	posts    repositories.PostRepository
	counters *CounterService
	notifier Notifier
	logger   *log.Logger
}

func NewLikeService(
	likes repositories.LikeRepository,
	posts repositories.PostRepository,
	counters *CounterService,
	notifier Notifier,
	logger *log.Logger,
) *LikeService {
	return &LikeService{likes: likes, posts: posts, counters: counters, notifier: notifier, logger: logger}
}

// Like is idempotent. Only the first like recounts the post and notifies its
// author, and never when the author likes their own post.
func (s *LikeService) Like(ctx context.Context, user *models.User, postID string) (*LikeResult, error) {
	post, err := activePost(ctx, s.logger, s.posts, postID)
	if err != nil {
		return nil, err
	}

	created, err := s.likes.CreateLike(ctx, &models.Like{UserID: user.ID, PostID: post.ID})
	if err != nil {
		return nil, storeFailure(s.logger, "create like", err)
	}
	if !created {
		count, err := s.likes.CountByPostID(ctx, post.ID)
		if err != nil {
			return nil, storeFailure(s.logger, "count likes", err)
		}
		return &LikeResult{Liked: true, LikeCount: count}, nil
	}

	count, err := s.counters.RecountLikes(ctx, post.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "recount likes", err)
	}
	metrics.EngagementActions.WithLabelValues("like").Inc()
	s.notifier.NotifyLike(ctx, user, post)
	return &LikeResult{Liked: true, Created: true, LikeCount: count}, nil
}

func (s *LikeService) Unlike(ctx context.Context, userID uint, postID string) (*LikeResult, error) {
	post, err := activePost(ctx, s.logger, s.posts, postID)
	if err != nil {
		return nil, err
	}
	if err := s.likes.DeleteLike(ctx, post.ID, userID); err != nil {
		return nil, notFoundOr(s.logger, "delete like", err,
			errorx.New(errorx.NotFound, "You have not liked this post"))
	}

	count, err := s.counters.RecountLikes(ctx, post.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "recount likes", err)
	}
	metrics.EngagementActions.WithLabelValues("unlike").Inc()
	return &LikeResult{Liked: false, LikeCount: count}, nil
}

// LikeStatus is read-only.
func (s *LikeService) LikeStatus(ctx context.Context, userID uint, postID string) (*models.LikeStatus, error) {
	post, err := activePost(ctx, s.logger, s.posts, postID)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.HasUserLikedPost(ctx, post.ID, userID)
	if err != nil {
		return nil, storeFailure(s.logger, "check like", err)
	}
	count, err := s.likes.CountByPostID(ctx, post.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "count likes", err)
	}
	return &models.LikeStatus{PostID: post.ID, Liked: liked, LikeCount: count}, nil
}

// ListLikes returns the likes on an active post, newest first.
func (s *LikeService) ListLikes(ctx context.Context, postID string) ([]models.Like, error) {
	post, err := activePost(ctx, s.logger, s.posts, postID)
	if err != nil {
		return nil, err
	}
	likes, err := s.likes.GetLikesByPostID(ctx, post.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "get likes", err)
	}
	return likes, nil
}
