package services

import (
	"context"
	"errors"
	"strings"

	"github.com/anonto42/socialconnect/backend/internal/metrics"
	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/anonto42/socialconnect/backend/validators"
	"github.com/labstack/gommon/log"
)

const commentRules = "required,max=200"

// DeleteMode selects how DeleteComment removes a comment.
type DeleteMode int

const (
	// OwnerSoftDelete marks the comment inactive; only its author may do it.
	OwnerSoftDelete DeleteMode = iota
	// AdminHardDelete removes the row; only admins may do it.
	AdminHardDelete
)

var errCommentNotFound = errorx.New(errorx.NotFound, "Comment not found")

type CommentService struct {
	comments  repositories.CommentRepository
	posts     repositories.PostRepository
	counters  *CounterService
	notifier  Notifier
	validator *validators.CustomValidator
	logger    *log.Logger
}

func NewCommentService(
	comments repositories.CommentRepository,
	posts repositories.PostRepository,
	counters *CounterService,
	notifier Notifier,
	validator *validators.CustomValidator,
	logger *log.Logger,
) *CommentService {
	return &CommentService{
		comments:  comments,
		posts:     posts,
		counters:  counters,
		notifier:  notifier,
		validator: validator,
		logger:    logger,
	}
}

func (s *CommentService) AddComment(ctx context.Context, author *models.User, postID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if err := s.validator.Var("content", content, commentRules); err != nil {
		return nil, err
	}
	post, err := activePost(ctx, s.logger, s.posts, postID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:   post.ID,
		AuthorID: author.ID,
		Content:  content,
		IsActive: true,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, storeFailure(s.logger, "create comment", err)
	}
	if _, err := s.counters.RecountComments(ctx, post.ID); err != nil {
		return nil, storeFailure(s.logger, "recount comments", err)
	}

	metrics.EngagementActions.WithLabelValues("comment").Inc()
	s.notifier.NotifyComment(ctx, author, post)

	comment.Author = author
	return comment, nil
}

func (s *CommentService) DeleteComment(ctx context.Context, requester *models.User, commentID uint, mode DeleteMode) error {
	comment, err := s.comments.GetCommentByID(ctx, commentID)
	if err != nil {
		return notFoundOr(s.logger, "get comment", err, errCommentNotFound)
	}

	switch mode {
	case OwnerSoftDelete:
		if comment.AuthorID != requester.ID {
			return errorx.New(errorx.Forbidden, "You can only delete your own comments")
		}
		if err := s.comments.Deactivate(ctx, comment.ID); err != nil {
			return notFoundOr(s.logger, "deactivate comment", err, errCommentNotFound)
		}
	case AdminHardDelete:
		if !requester.IsAdmin() {
			return errAdminOnly
		}
		if err := s.comments.HardDelete(ctx, comment.ID); err != nil {
			return notFoundOr(s.logger, "delete comment", err, errCommentNotFound)
		}
	default:
		return errorx.New(errorx.Validation, "unknown delete mode %d", mode)
	}

	if _, err := s.counters.RecountComments(ctx, comment.PostID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warnf("Comment %d belonged to missing post %s", comment.ID, comment.PostID)
			return nil
		}
		return storeFailure(s.logger, "recount comments", err)
	}
	metrics.EngagementActions.WithLabelValues("delete_comment").Inc()
	return nil
}

// ListComments returns the active comments of an active post, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	post, err := activePost(ctx, s.logger, s.posts, postID)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.GetActiveCommentsByPostID(ctx, post.ID)
	if err != nil {
		return nil, storeFailure(s.logger, "get comments", err)
	}
	return comments, nil
}

// ListAllComments is the admin view, including soft-deleted comments.
func (s *CommentService) ListAllComments(ctx context.Context) ([]models.Comment, error) {
	comments, err := s.comments.GetAllComments(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, "get all comments", err)
	}
	return comments, nil
}
