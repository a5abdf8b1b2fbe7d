package models

import "time"

// Like represents a like on a post. (UserID, PostID) is unique.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_post_like"`
	PostID    string    `json:"post_id" gorm:"size:36;index;uniqueIndex:idx_user_post_like"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeStatus is the read-only view of a user's like on a post.
type LikeStatus struct {
	PostID    string `json:"post_id"`
	Liked     bool   `json:"is_liked"`
	LikeCount int64  `json:"like_count"`
}
