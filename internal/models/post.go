package models

import "time"

const (
	CategoryGeneral      = "general"
	CategoryAnnouncement = "announcement"
	CategoryQuestion     = "question"
)

// PostCategories is the allow-list for Post.Category.
var PostCategories = []string{CategoryGeneral, CategoryAnnouncement, CategoryQuestion}

// Post is stored either in PostgreSQL (gorm) or MongoDB (bson), depending on POST_STORE.
// LikeCount and CommentCount are a cached projection of the likes and active
// comments rows and are only ever written by a recount.
type Post struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	AuthorID     uint      `json:"author_id" gorm:"index;not null" bson:"author_id"`
	Content      string    `json:"content" gorm:"size:280;not null" bson:"content"`
	ImageURL     string    `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Category     string    `json:"category" gorm:"size:15;default:general;index" bson:"category"`
	IsActive     bool      `json:"is_active" gorm:"not null;index" bson:"is_active"`
	LikeCount    int64     `json:"like_count" gorm:"not null;default:0" bson:"like_count"`
	CommentCount int64     `json:"comment_count" gorm:"not null;default:0" bson:"comment_count"`
	CreatedAt    time.Time `json:"created_at" gorm:"index" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// PostFilter narrows the global feed. Zero values mean "no filter".
type PostFilter struct {
	AuthorID  uint
	AuthorIDs []uint
	Category  string
	Search    string
	// Active filters on the active flag. When nil, only active posts are
	// returned unless IncludeInactive is set.
	Active          *bool
	IncludeInactive bool
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content  string `json:"content" validate:"required,max=280"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=general announcement question"`
	ImageURL string `json:"image_url,omitempty" validate:"omitempty,url"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Content  string `json:"content,omitempty" validate:"omitempty,max=280"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=general announcement question"`
}
