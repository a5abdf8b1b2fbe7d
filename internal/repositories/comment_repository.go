package repositories

import (
	"context"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	GetActiveCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	GetAllComments(ctx context.Context) ([]models.Comment, error)
	Deactivate(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
	CountActiveByPostID(ctx context.Context, postID string) (int64, error)
	CountActive(ctx context.Context) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Take(&comment, id).Error; err != nil {
		return nil, normalize(err)
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) GetActiveCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ? AND is_active = ?", postID, true).
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, err
}

func (r *PostgresCommentRepository) GetAllComments(ctx context.Context) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC").Order("id DESC").
		Find(&comments).Error
	return comments, err
}

// Deactivate soft-deletes an active comment.
func (r *PostgresCommentRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? AND is_active = ?", id, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HardDelete physically removes the row.
func (r *PostgresCommentRepository) HardDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveByPostID is the authoritative comment count for a post.
func (r *PostgresCommentRepository) CountActiveByPostID(ctx context.Context, postID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("post_id = ? AND is_active = ?", postID, true).
		Count(&count).Error
	return count, err
}

func (r *PostgresCommentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Comment{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}
