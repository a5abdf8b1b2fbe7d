package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/anonto42/socialconnect/backend/internal/metrics"
	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/realtime"
	"github.com/anonto42/socialconnect/backend/internal/repositories"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/labstack/gommon/log"
)

const (
	maxBroadcastLength = 500
	publishTimeout     = 2 * time.Second
	recentWindow       = 24 * time.Hour
)

// Notifier is called by the follow, like and comment paths after their
// primary write. Implementations must not fail the caller.
type Notifier interface {
	NotifyFollow(ctx context.Context, follower *models.User, followeeID uint)
	NotifyLike(ctx context.Context, actor *models.User, post *models.Post)
	NotifyComment(ctx context.Context, actor *models.User, post *models.Post)
}

type NotificationService struct {
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	publisher     realtime.Publisher
	logger        *log.Logger

	// publishTimeout bounds one Publish call, however many notifications it carries.
	publishTimeout time.Duration
	now            func() time.Time
}

// NotificationStats is the admin summary of the notification table.
type NotificationStats struct {
	Total      int64            `json:"total_notifications"`
	Unread     int64            `json:"unread_notifications"`
	Read       int64            `json:"read_notifications"`
	ByType     map[string]int64 `json:"notification_types"`
	Recent24h  int64            `json:"recent_24h"`
	Recipients int64            `json:"active_users_with_notifications"`
}

// AdminReadResult reports an admin mark-read. WasRead is the state before.
type AdminReadResult struct {
	NotificationID uint `json:"notification_id"`
	RecipientID    uint `json:"recipient_id"`
	WasRead        bool `json:"was_read"`
}

var _ Notifier = (*NotificationService)(nil)

func NewNotificationService(
	notifications repositories.NotificationRepository,
	users repositories.UserRepository,
	publisher realtime.Publisher,
	logger *log.Logger,
) *NotificationService {
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	return &NotificationService{
		notifications:  notifications,
		users:          users,
		publisher:      publisher,
		logger:         logger,
		publishTimeout: publishTimeout,
		now:            time.Now,
	}
}

func (s *NotificationService) NotifyFollow(ctx context.Context, follower *models.User, followeeID uint) {
	s.notify(ctx, &models.Notification{
		RecipientID: followeeID,
		SenderID:    follower.ID,
		Type:        models.NotificationFollow,
		Message:     follower.Handle() + " started following you",
	})
}

func (s *NotificationService) NotifyLike(ctx context.Context, actor *models.User, post *models.Post) {
	postID := post.ID
	s.notify(ctx, &models.Notification{
		RecipientID: post.AuthorID,
		SenderID:    actor.ID,
		Type:        models.NotificationLike,
		PostID:      &postID,
		Message:     actor.Handle() + " liked your post",
	})
}

func (s *NotificationService) NotifyComment(ctx context.Context, actor *models.User, post *models.Post) {
	postID := post.ID
	s.notify(ctx, &models.Notification{
		RecipientID: post.AuthorID,
		SenderID:    actor.ID,
		Type:        models.NotificationComment,
		PostID:      &postID,
		Message:     actor.Handle() + " commented on your post",
	})
}

// notify writes n and pushes it to the realtime channel. Failures are
// logged and swallowed.
func (s *NotificationService) notify(ctx context.Context, n *models.Notification) {
	if n.SenderID == n.RecipientID {
		metrics.Notifications.WithLabelValues(n.Type, metrics.ResultSuppressed).Inc()
		return
	}

	if err := s.notifications.CreateNotification(ctx, n); err != nil {
		metrics.Notifications.WithLabelValues(n.Type, metrics.ResultFailed).Inc()
		s.logger.Errorf("Cannot create %s notification for user %d: %v", n.Type, n.RecipientID, err)
		return
	}
	metrics.Notifications.WithLabelValues(n.Type, metrics.ResultCreated).Inc()
	s.publish(ctx, n)
}

// publish hands every notification to the publisher in one call under a
// single deadline. All of them share one type.
func (s *NotificationService) publish(ctx context.Context, batch ...*models.Notification) {
	if len(batch) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()

	if err := s.publisher.Publish(ctx, batch...); err != nil {
		metrics.Notifications.WithLabelValues(batch[0].Type, metrics.ResultPublishFailed).Add(float64(len(batch)))
		s.logger.Warnf("Cannot publish %d %s notification(s): %v", len(batch), batch[0].Type, err)
	}
}

// Broadcast sends one notification per active user and returns how many
// were created. Unknown types become announcements.
func (s *NotificationService) Broadcast(ctx context.Context, admin *models.User, notificationType, message string) (int, error) {
	if !admin.IsAdmin() {
		return 0, errAdminOnly
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return 0, errorx.New(errorx.Validation, "message cannot be empty")
	}
	if utf8.RuneCountInString(message) > maxBroadcastLength {
		return 0, errorx.New(errorx.Validation, "message must be %d characters or less", maxBroadcastLength)
	}
	notificationType = models.NormalizeBroadcastType(notificationType)

	users, err := s.users.GetActiveUsers(ctx)
	if err != nil {
		return 0, storeFailure(s.logger, "get active users", err)
	}
	if len(users) == 0 {
		return 0, nil
	}

	batch := make([]models.Notification, 0, len(users))
	for _, u := range users {
		batch = append(batch, models.Notification{
			RecipientID: u.ID,
			SenderID:    admin.ID,
			Type:        notificationType,
			Message:     message,
		})
	}
	if err := s.notifications.CreateNotifications(ctx, batch); err != nil {
		return 0, storeFailure(s.logger, "create broadcast notifications", err)
	}
	metrics.Notifications.WithLabelValues(notificationType, metrics.ResultCreated).Add(float64(len(batch)))

	published := make([]*models.Notification, len(batch))
	for i := range batch {
		published[i] = &batch[i]
	}
	s.publish(ctx, published...)
	s.logger.Infof("Admin %d broadcast %q to %d users", admin.ID, notificationType, len(batch))
	return len(batch), nil
}

func (s *NotificationService) List(ctx context.Context, recipientID uint) ([]models.Notification, error) {
	notifications, err := s.notifications.GetByRecipientID(ctx, recipientID)
	if err != nil {
		return nil, storeFailure(s.logger, "get notifications", err)
	}
	return notifications, nil
}

// ListAll is the admin view over every notification.
func (s *NotificationService) ListAll(ctx context.Context) ([]models.Notification, error) {
	notifications, err := s.notifications.GetAll(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, "get all notifications", err)
	}
	return notifications, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, notificationID, recipientID uint) error {
	if err := s.notifications.MarkAsRead(ctx, notificationID, recipientID); err != nil {
		return notFoundOr(s.logger, "mark notification read", err,
			errorx.New(errorx.NotFound, "Notification not found"))
	}
	return nil
}

// MarkAllRead returns how many notifications changed from unread to read.
func (s *NotificationService) MarkAllRead(ctx context.Context, recipientID uint) (int64, error) {
	n, err := s.notifications.MarkAllAsRead(ctx, recipientID)
	if err != nil {
		return 0, storeFailure(s.logger, "mark all notifications read", err)
	}
	return n, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipientID uint) (int64, error) {
	n, err := s.notifications.GetUnreadCount(ctx, recipientID)
	if err != nil {
		return 0, storeFailure(s.logger, "count unread notifications", err)
	}
	return n, nil
}

// Stats summarizes every notification for the admin dashboard.
func (s *NotificationService) Stats(ctx context.Context) (*NotificationStats, error) {
	var stats NotificationStats
	var err error

	if stats.Total, err = s.notifications.Count(ctx); err != nil {
		return nil, storeFailure(s.logger, "count notifications", err)
	}
	if stats.Unread, err = s.notifications.CountUnread(ctx); err != nil {
		return nil, storeFailure(s.logger, "count unread notifications", err)
	}
	stats.Read = stats.Total - stats.Unread
	if stats.ByType, err = s.notifications.CountByType(ctx); err != nil {
		return nil, storeFailure(s.logger, "count notifications by type", err)
	}
	if stats.Recent24h, err = s.notifications.CountSince(ctx, s.now().Add(-recentWindow)); err != nil {
		return nil, storeFailure(s.logger, "count recent notifications", err)
	}
	if stats.Recipients, err = s.notifications.CountRecipients(ctx); err != nil {
		return nil, storeFailure(s.logger, "count notification recipients", err)
	}
	return &stats, nil
}

// AdminMarkRead marks any user's notification read.
func (s *NotificationService) AdminMarkRead(ctx context.Context, admin *models.User, notificationID uint) (*AdminReadResult, error) {
	if !admin.IsAdmin() {
		return nil, errAdminOnly
	}

	before, err := s.notifications.MarkAsReadByID(ctx, notificationID)
	if err != nil {
		return nil, notFoundOr(s.logger, "mark notification read", err,
			errorx.New(errorx.NotFound, "Notification not found"))
	}
	s.logger.Infof("Admin %d marked notification %d of user %d read", admin.ID, notificationID, before.RecipientID)
	return &AdminReadResult{
		NotificationID: before.ID,
		RecipientID:    before.RecipientID,
		WasRead:        before.IsRead,
	}, nil
}
