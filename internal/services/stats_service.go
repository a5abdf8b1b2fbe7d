package services

import (
	"context"

	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/labstack/gommon/log"
)

type Stats struct {
	TotalUsers          int64 `json:"total_users"`
	ActiveUsers         int64 `json:"active_users"`
	TotalPosts          int64 `json:"total_posts"`
	ActivePosts         int64 `json:"active_posts"`
	TotalLikes          int64 `json:"total_likes"`
	ActiveComments      int64 `json:"active_comments"`
	TotalFollows        int64 `json:"total_follows"`
	TotalNotifications  int64 `json:"total_notifications"`
	UnreadNotifications int64 `json:"unread_notifications"`
}

type StatsService struct {
	users         repositories.UserRepository
	posts         repositories.PostRepository
	likes         repositories.LikeRepository
	comments      repositories.CommentRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
	logger        *log.Logger
}

func NewStatsService(
	users repositories.UserRepository,
	posts repositories.PostRepository,
	likes repositories.LikeRepository,
	comments repositories.CommentRepository,
	follows repositories.FollowRepository,
	notifications repositories.NotificationRepository,
	logger *log.Logger,
) *StatsService {
	return &StatsService{
		users:         users,
		posts:         posts,
		likes:         likes,
		comments:      comments,
		follows:       follows,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *StatsService) Stats(ctx context.Context) (*Stats, error) {
	active := true
	var stats Stats
	counts := []struct {
		dst *int64
		fn  func(context.Context) (int64, error)
	}{
		{&stats.TotalUsers, s.users.Count},
		{&stats.ActiveUsers, s.users.CountActive},
		{&stats.TotalPosts, func(ctx context.Context) (int64, error) { return s.posts.Count(ctx, nil) }},
		{&stats.ActivePosts, func(ctx context.Context) (int64, error) { return s.posts.Count(ctx, &active) }},
		{&stats.TotalLikes, s.likes.Count},
		{&stats.ActiveComments, s.comments.CountActive},
		{&stats.TotalFollows, s.follows.Count},
		{&stats.TotalNotifications, s.notifications.Count},
		{&stats.UnreadNotifications, s.notifications.CountUnread},
	}
	for _, c := range counts {
		n, err := c.fn(ctx)
		if err != nil {
			return nil, storeFailure(s.logger, "compute stats", err)
		}
		*c.dst = n
	}
	return &stats, nil
}
