package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	// GetPostByID returns the post regardless of its active flag.
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	// ListPosts returns posts matching filter, newest first.
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	SetActive(ctx context.Context, id string, active bool) error
	UpdateLikeCount(ctx context.Context, id string, count int64) error
	UpdateCommentCount(ctx context.Context, id string, count int64) error
	GetAllPostIDs(ctx context.Context) ([]string, error)
	CountActiveByAuthor(ctx context.Context, authorID uint) (int64, error)
	Count(ctx context.Context, active *bool) (int64, error)
}

// CounterRecounter is implemented by post stores that share a database with
// likes and comments. Each method locks the post row, then counts and writes
// in one statement, so the stored counter always reflects the latest commit.
type CounterRecounter interface {
	RecountLikes(ctx context.Context, postID string) (int64, error)
	RecountComments(ctx context.Context, postID string) (int64, error)
}

var _ CounterRecounter = (*PostgresPostRepository)(nil)

// likeEscaper makes user input match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&post).Error; err != nil {
		return nil, normalize(err)
	}
	return &post, nil
}

func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	posts := []models.Post{}
	if filter.AuthorIDs != nil && len(filter.AuthorIDs) == 0 {
		return posts, nil
	}

	tx := r.db.WithContext(ctx).Model(&models.Post{})
	switch {
	case filter.Active != nil:
		tx = tx.Where("is_active = ?", *filter.Active)
	case !filter.IncludeInactive:
		tx = tx.Where("is_active = ?", true)
	}
	if filter.AuthorID != 0 {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if len(filter.AuthorIDs) > 0 {
		tx = tx.Where("author_id IN ?", filter.AuthorIDs)
	}
	if filter.Category != "" {
		tx = tx.Where("category = ?", filter.Category)
	}
	if q := strings.TrimSpace(filter.Search); q != "" {
		tx = tx.Where(`LOWER(content) LIKE LOWER(?) ESCAPE '\'`, "%"+likeEscaper.Replace(q)+"%")
	}

	err := tx.Order("created_at DESC").Order("id DESC").Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	post.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"content":    post.Content,
			"category":   post.Category,
			"updated_at": post.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) SetActive(ctx context.Context, id string, active bool) error {
	return r.updateColumn(ctx, id, "is_active", active)
}

func (r *PostgresPostRepository) UpdateLikeCount(ctx context.Context, id string, count int64) error {
	return r.updateColumn(ctx, id, "like_count", count)
}

func (r *PostgresPostRepository) UpdateCommentCount(ctx context.Context, id string, count int64) error {
	return r.updateColumn(ctx, id, "comment_count", count)
}

func (r *PostgresPostRepository) updateColumn(ctx context.Context, id, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).UpdateColumn(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) RecountLikes(ctx context.Context, postID string) (int64, error) {
	return r.recount(ctx, postID, "like_count",
		"SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id")
}

func (r *PostgresPostRepository) RecountComments(ctx context.Context, postID string) (int64, error) {
	return r.recount(ctx, postID, "comment_count",
		"SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.is_active = true")
}

// recount takes the row lock with a no-op update first. Under READ COMMITTED
// the second statement then gets a fresh snapshot, and a recount that starts
// later waits for this one to commit.
func (r *PostgresPostRepository) recount(ctx context.Context, postID, column, countQuery string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec("UPDATE posts SET "+column+" = "+column+" WHERE id = ?", postID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Raw("UPDATE posts SET "+column+" = ("+countQuery+") WHERE id = ? RETURNING "+column, postID).
			Scan(&count).Error
	})
	return count, err
}

func (r *PostgresPostRepository) GetAllPostIDs(ctx context.Context) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&models.Post{}).Order("created_at").Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresPostRepository) CountActiveByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ? AND is_active = ?", authorID, true).
		Count(&count).Error
	return count, err
}

func (r *PostgresPostRepository) Count(ctx context.Context, active *bool) (int64, error) {
	var count int64
	tx := r.db.WithContext(ctx).Model(&models.Post{})
	if active != nil {
		tx = tx.Where("is_active = ?", *active)
	}
	err := tx.Count(&count).Error
	return count, err
}
