package services

import (
	"context"
	"io"
	"testing"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/realtime"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/internal/testutil"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/anonto42/socialconnect/backend/validators"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db *gorm.DB

	users         repositories.UserRepository
	posts         repositories.PostRepository
	follows       repositories.FollowRepository
	likes         repositories.LikeRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository

	counterSvc      *CounterService
	notificationSvc *NotificationService
	followSvc       *FollowService
	likeSvc         *LikeService
	commentSvc      *CommentService
	feedSvc         *FeedService
	postSvc         *PostService
	userSvc         *UserService
	statsSvc        *StatsService
}

type envOption func(*testEnv)

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	db := testutil.NewDB(t)
	e := &testEnv{
		db:            db,
		users:         repositories.NewPostgresUserRepository(db),
		posts:         repositories.NewPostgresPostRepository(db),
		follows:       repositories.NewPostgresFollowRepository(db),
		likes:         repositories.NewPostgresLikeRepository(db),
		comments:      repositories.NewPostgresCommentRepository(db),
		notifications: repositories.NewPostgresNotificationRepository(db),
	}
	for _, opt := range opts {
		opt(e)
	}

	logger := newTestLogger()
	validator := validators.NewValidator()
	e.counterSvc = NewCounterService(e.likes, e.comments, e.posts, logger)
	e.notificationSvc = NewNotificationService(e.notifications, e.users, realtime.NopPublisher{}, logger)
	e.followSvc = NewFollowService(e.follows, e.users, e.notificationSvc, logger)
	e.likeSvc = NewLikeService(e.likes, e.posts, e.counterSvc, e.notificationSvc, logger)
	e.commentSvc = NewCommentService(e.comments, e.posts, e.counterSvc, e.notificationSvc, validator, logger)
	e.feedSvc = NewFeedService(e.follows, e.posts, e.users, logger)
	e.postSvc = NewPostService(e.posts, validator, logger)
	e.userSvc = NewUserService(e.users, e.follows, e.posts, logger)
	e.statsSvc = NewStatsService(e.users, e.posts, e.likes, e.comments, e.follows, e.notifications, logger)
	return e
}

func newTestLogger() *log.Logger {
	logger := log.New("test")
	logger.SetOutput(io.Discard)
	return logger
}

func (e *testEnv) reloadPost(t *testing.T, id string) *models.Post {
	t.Helper()
	post, err := e.posts.GetPostByID(context.Background(), id)
	require.NoError(t, err)
	return post
}

func (e *testEnv) countNotifications(t *testing.T, recipientID uint, notificationType string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", recipientID, notificationType).
		Count(&n).Error)
	return n
}

func requireCode(t *testing.T, err error, code errorx.Code) {
	t.Helper()
	require.Error(t, err)
	e, ok := errorx.As(err)
	require.True(t, ok, "expected errorx.Error, got %T: %v", err, err)
	require.Equal(t, code, e.Code, e.Message)
}
