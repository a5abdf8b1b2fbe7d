package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type UserOption func(*models.User)

func WithRole(role string) UserOption {
	return func(u *models.User) { u.Role = role }
}

func WithPrivacy(setting string) UserOption {
	return func(u *models.User) { u.PrivacySetting = setting }
}

func Inactive() UserOption {
	return func(u *models.User) { u.IsActive = false }
}

// CreateUser inserts an active public user.
func CreateUser(t *testing.T, db *gorm.DB, username string, opts ...UserOption) *models.User {
	t.Helper()

	user := &models.User{
		Username:       username,
		Email:          fmt.Sprintf("%s@example.com", username),
		Role:           models.RoleUser,
		PrivacySetting: models.PrivacyPublic,
		IsActive:       true,
	}
	for _, opt := range opts {
		opt(user)
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreatePost inserts an active post. Posts made by successive calls get
// strictly increasing creation times so ordering assertions are stable.
func CreatePost(t *testing.T, db *gorm.DB, authorID uint, content string) *models.Post {
	t.Helper()

	post := &models.Post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Content:   content,
		Category:  models.CategoryGeneral,
		IsActive:  true,
		CreatedAt: NextTime(),
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func DeactivatePost(t *testing.T, db *gorm.DB, post *models.Post) {
	t.Helper()
	require.NoError(t, db.Model(post).UpdateColumn("is_active", false).Error)
	post.IsActive = false
}

var (
	clockMu sync.Mutex
	clock   = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
)

// NextTime returns a timestamp later than any previously returned one.
func NextTime() time.Time {
	clockMu.Lock()
	defer clockMu.Unlock()
	clock = clock.Add(time.Second)
	return clock
}
