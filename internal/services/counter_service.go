package services

import (
	"context"
	"fmt"

	"github.com/anonto42/socialconnect/backend/internal/metrics"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/labstack/gommon/log"
)

const maxSettleRounds = 5

// PostCounters is the result of a reconciliation.
type PostCounters struct {
	PostID       string `json:"post_id"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
}

// CounterService owns the cached like_count and comment_count on posts.
// Counters are always recomputed from the rows, never incremented, so
// concurrent writers converge on the same value.
type CounterService struct {
	likes    repositories.LikeRepository
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	logger   *log.Logger
}

func NewCounterService(
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	posts repositories.PostRepository,
	logger *log.Logger,
) *CounterService {
	return &CounterService{likes: likes, comments: comments, posts: posts, logger: logger}
}

// RecountLikes writes count(likes where post=postID) to the post and returns it.
func (s *CounterService) RecountLikes(ctx context.Context, postID string) (int64, error) {
	var count int64
	var err error
	if store, ok := s.posts.(repositories.CounterRecounter); ok {
		count, err = store.RecountLikes(ctx, postID)
	} else {
		count, err = settle(ctx, postID, s.likes.CountByPostID, s.posts.UpdateLikeCount)
	}
	if err != nil {
		return 0, fmt.Errorf("recount likes of %s: %w", postID, err)
	}
	metrics.CounterReconciliations.Inc()
	return count, nil
}

// RecountComments writes the active comment count to the post and returns it.
func (s *CounterService) RecountComments(ctx context.Context, postID string) (int64, error) {
	var count int64
	var err error
	if store, ok := s.posts.(repositories.CounterRecounter); ok {
		count, err = store.RecountComments(ctx, postID)
	} else {
		count, err = settle(ctx, postID, s.comments.CountActiveByPostID, s.posts.UpdateCommentCount)
	}
	if err != nil {
		return 0, fmt.Errorf("recount comments of %s: %w", postID, err)
	}
	metrics.CounterReconciliations.Inc()
	return count, nil
}

// settle is used when the post store cannot see the engagement rows, as with
// MongoDB. It writes the count and re-reads it until two reads agree, so a
// write that raced with a newer one is corrected by its own caller.
func settle(
	ctx context.Context,
	postID string,
	count func(context.Context, string) (int64, error),
	write func(context.Context, string, int64) error,
) (int64, error) {
	n, err := count(ctx, postID)
	if err != nil {
		return 0, err
	}
	for range maxSettleRounds {
		if err := write(ctx, postID, n); err != nil {
			return 0, err
		}
		again, err := count(ctx, postID)
		if err != nil {
			return 0, err
		}
		if again == n {
			return n, nil
		}
		n = again
	}
	return n, write(ctx, postID, n)
}

// ReconcilePost recomputes both counters of a post, whatever its active state.
func (s *CounterService) ReconcilePost(ctx context.Context, postID string) (*PostCounters, error) {
	likes, err := s.RecountLikes(ctx, postID)
	if err != nil {
		return nil, notFoundOr(s.logger, "reconcile post", err, errPostNotFound)
	}
	comments, err := s.RecountComments(ctx, postID)
	if err != nil {
		return nil, notFoundOr(s.logger, "reconcile post", err, errPostNotFound)
	}
	return &PostCounters{PostID: postID, LikeCount: likes, CommentCount: comments}, nil
}

// ReconcileAll repairs every post and returns how many were reconciled.
func (s *CounterService) ReconcileAll(ctx context.Context) (int, error) {
	ids, err := s.posts.GetAllPostIDs(ctx)
	if err != nil {
		return 0, storeFailure(s.logger, "list post ids", err)
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return i, err
		}
		if _, err := s.ReconcilePost(ctx, id); err != nil {
			return i, err
		}
	}
	s.logger.Infof("Reconciled counters of %d posts", len(ids))
	return len(ids), nil
}
