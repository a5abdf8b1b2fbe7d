package models

import "time"

// Comment represents a comment on a post. Inactive comments are soft-deleted.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"size:36;index:idx_comment_post_created,priority:1"`
	AuthorID  uint      `json:"author_id" gorm:"index"`
	Content   string    `json:"content" gorm:"size:200;not null"`
	IsActive  bool      `json:"is_active" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comment_post_created,priority:2"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,max=200"`
}
