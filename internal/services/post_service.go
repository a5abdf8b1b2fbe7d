package services

import (
	"context"
	"strings"

	"github.com/anonto42/socialconnect/backend/internal/metrics"
	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/anonto42/socialconnect/backend/validators"
	"github.com/labstack/gommon/log"
)

const (
	postRules     = "required,max=280"
	categoryRules = "omitempty,oneof=general announcement question"
)

type PostService struct {
	posts     repositories.PostRepository
	validator *validators.CustomValidator
	logger    *log.Logger
}

func NewPostService(posts repositories.PostRepository, validator *validators.CustomValidator, logger *log.Logger) *PostService {
	return &PostService{posts: posts, validator: validator, logger: logger}
}

func (s *PostService) Create(ctx context.Context, author *models.User, req *models.CreatePostRequest) (*models.Post, error) {
	content := strings.TrimSpace(req.Content)
	if err := s.validator.Var("content", content, postRules); err != nil {
		return nil, err
	}
	if err := s.validator.Var("category", req.Category, categoryRules); err != nil {
		return nil, err
	}
	category := req.Category
	if category == "" {
		category = models.CategoryGeneral
	}

	post := &models.Post{
		AuthorID: author.ID,
		Content:  content,
		Category: category,
		ImageURL: req.ImageURL,
		IsActive: true,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, storeFailure(s.logger, "create post", err)
	}
	metrics.EngagementActions.WithLabelValues("post").Inc()
	return post, nil
}

// Get returns an active post.
func (s *PostService) Get(ctx context.Context, postID string) (*models.Post, error) {
	return activePost(ctx, s.logger, s.posts, postID)
}

func (s *PostService) Update(ctx context.Context, requester *models.User, postID string, req *models.UpdatePostRequest) (*models.Post, error) {
	post, err := activePost(ctx, s.logger, s.posts, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != requester.ID {
		return nil, errorx.New(errorx.Forbidden, "You can only edit your own posts")
	}

	if req.Content != "" {
		content := strings.TrimSpace(req.Content)
		if err := s.validator.Var("content", content, postRules); err != nil {
			return nil, err
		}
		post.Content = content
	}
	if req.Category != "" {
		if err := s.validator.Var("category", req.Category, categoryRules); err != nil {
			return nil, err
		}
		post.Category = req.Category
	}

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, notFoundOr(s.logger, "update post", err, errPostNotFound)
	}
	return post, nil
}

// Delete soft-deletes a post. Authors may delete their own posts and admins
// may delete any post. Likes and comments stay in place.
func (s *PostService) Delete(ctx context.Context, requester *models.User, postID string) error {
	post, err := activePost(ctx, s.logger, s.posts, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != requester.ID && !requester.IsAdmin() {
		return errorx.New(errorx.Forbidden, "You can only delete your own posts")
	}
	if err := s.posts.SetActive(ctx, post.ID, false); err != nil {
		return notFoundOr(s.logger, "deactivate post", err, errPostNotFound)
	}
	return nil
}

// ListAdmin lists every post, optionally narrowed by the active flag.
func (s *PostService) ListAdmin(ctx context.Context, active *bool) ([]models.Post, error) {
	posts, err := s.posts.ListPosts(ctx, models.PostFilter{Active: active, IncludeInactive: true})
	if err != nil {
		return nil, storeFailure(s.logger, "list posts", err)
	}
	return posts, nil
}
