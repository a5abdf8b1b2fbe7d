package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Privacy settings gate profile viewing only, never feed inclusion.
const (
	PrivacyPublic        = "public"
	PrivacyPrivate       = "private"
	PrivacyFollowersOnly = "followers_only"
)

// User is owned by the identity layer; the social core only reads it.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"size:30;uniqueIndex"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	Bio            string    `json:"bio" gorm:"size:160"`
	AvatarURL      string    `json:"avatar_url,omitempty"`
	Role           string    `json:"role" gorm:"size:10;default:user"`
	PrivacySetting string    `json:"privacy_setting" gorm:"size:15;default:public"`
	IsActive       bool      `json:"is_active" gorm:"not null;index"`
	FirebaseUID    *string   `json:"firebase_uid,omitempty" gorm:"uniqueIndex"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsAdmin is the single role check used by every admin-only operation.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Handle returns the @-prefixed username used in notification messages.
func (u *User) Handle() string {
	return "@" + u.Username
}

// UserCompact is the author/actor shape embedded in feed and notification payloads.
type UserCompact struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL}
}

// Profile is a user together with graph-derived counts.
type Profile struct {
	User
	FollowersCount int64 `json:"followers_count"`
	FollowingCount int64 `json:"following_count"`
	PostsCount     int64 `json:"posts_count"`
	IsFollowing    bool  `json:"is_following"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
