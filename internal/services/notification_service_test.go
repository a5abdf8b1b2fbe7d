package services

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/testutil"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationService_Broadcast(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, e.db, "root", testutil.WithRole(models.RoleAdmin))
	alice := testutil.CreateUser(t, e.db, "alice")
	testutil.CreateUser(t, e.db, "bob")
	testutil.CreateUser(t, e.db, "ghost", testutil.Inactive())

	tests := []struct {
		name     string
		sender   *models.User
		typ      string
		message  string
		wantCode errorx.Code
	}{
		{name: "non admin", sender: alice, typ: models.NotificationInfo, message: "hi", wantCode: errorx.Forbidden},
		{name: "empty message", sender: admin, typ: models.NotificationInfo, message: "   ", wantCode: errorx.Validation},
		{name: "message too long", sender: admin, typ: models.NotificationInfo, message: strings.Repeat("x", 501), wantCode: errorx.Validation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.notificationSvc.Broadcast(ctx, tt.sender, tt.typ, tt.message)
			requireCode(t, err, tt.wantCode)
		})
	}

	n, err := e.notificationSvc.Broadcast(ctx, admin, "party", "  Maintenance tonight  ")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	notifications, err := e.notificationSvc.List(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.Equal(t, models.NotificationAnnouncement, notifications[0].Type)
	require.Equal(t, "Maintenance tonight", notifications[0].Message)
	require.Equal(t, admin.ID, notifications[0].SenderID)

	n, err = e.notificationSvc.Broadcast(ctx, admin, models.NotificationWarning, strings.Repeat("x", 500))
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, int64(1), e.countNotifications(t, alice.ID, models.NotificationWarning))

	all, err := e.notificationSvc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
}

func TestNotificationService_ReadState(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	carol := testutil.CreateUser(t, e.db, "carol")

	_, err := e.followSvc.Follow(ctx, alice, bob.ID)
	require.NoError(t, err)
	_, err = e.followSvc.Follow(ctx, carol, bob.ID)
	require.NoError(t, err)

	unread, err := e.notificationSvc.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), unread)

	notifications, err := e.notificationSvc.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	first := notifications[0]

	err = e.notificationSvc.MarkRead(ctx, first.ID, alice.ID)
	requireCode(t, err, errorx.NotFound)

	err = e.notificationSvc.MarkRead(ctx, 9999, bob.ID)
	requireCode(t, err, errorx.NotFound)

	require.NoError(t, e.notificationSvc.MarkRead(ctx, first.ID, bob.ID))
	require.NoError(t, e.notificationSvc.MarkRead(ctx, first.ID, bob.ID))

	unread, err = e.notificationSvc.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), unread)

	marked, err := e.notificationSvc.MarkAllRead(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), marked)

	marked, err = e.notificationSvc.MarkAllRead(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, marked)

	unread, err = e.notificationSvc.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	require.Zero(t, unread)
}

type recordingPublisher struct {
	calls     int
	published []*models.Notification
}

func (p *recordingPublisher) Publish(_ context.Context, notifications ...*models.Notification) error {
	p.calls++
	p.published = append(p.published, notifications...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestNotificationService_PublishesAfterWrite(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	publisher := &recordingPublisher{}
	svc := NewNotificationService(e.notifications, e.users, publisher, newTestLogger())

	svc.NotifyFollow(ctx, alice, bob.ID)
	svc.NotifyFollow(ctx, alice, alice.ID)

	require.Len(t, publisher.published, 1)
	require.NotZero(t, publisher.published[0].ID)
	require.Equal(t, bob.ID, publisher.published[0].RecipientID)
}

func TestNotificationService_BroadcastPublishesOnce(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, e.db, "root", testutil.WithRole(models.RoleAdmin))
	testutil.CreateUser(t, e.db, "alice")
	testutil.CreateUser(t, e.db, "bob")

	publisher := &recordingPublisher{}
	svc := NewNotificationService(e.notifications, e.users, publisher, newTestLogger())

	n, err := svc.Broadcast(ctx, admin, models.NotificationInfo, "hello")
	require.NoError(t, err)
	require.Equal(t, 3, n)
	assert.Equal(t, 1, publisher.calls)
	require.Len(t, publisher.published, 3)
	for _, p := range publisher.published {
		assert.NotZero(t, p.ID)
	}
}

// hangingPublisher never delivers; it returns only when its deadline passes.
type hangingPublisher struct {
	calls atomic.Int32
}

func (p *hangingPublisher) Publish(ctx context.Context, _ ...*models.Notification) error {
	p.calls.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (p *hangingPublisher) Close() error { return nil }

func TestNotificationService_BroadcastBoundedByOneDeadline(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, e.db, "root", testutil.WithRole(models.RoleAdmin))
	for _, name := range []string{"alice", "bob", "carol", "dave", "erin"} {
		testutil.CreateUser(t, e.db, name)
	}

	publisher := &hangingPublisher{}
	svc := NewNotificationService(e.notifications, e.users, publisher, newTestLogger())
	svc.publishTimeout = 100 * time.Millisecond

	start := time.Now()
	n, err := svc.Broadcast(ctx, admin, models.NotificationWarning, "disk almost full")
	elapsed := time.Since(start)

	require.NoError(t, err)
	require.Equal(t, 6, n)
	assert.Equal(t, int32(1), publisher.calls.Load())
	assert.Less(t, elapsed, 3*svc.publishTimeout)
	assert.Equal(t, int64(1), e.countNotifications(t, admin.ID, models.NotificationWarning))
}

func TestNotificationService_Stats(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	carol := testutil.CreateUser(t, e.db, "carol")
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e.notificationSvc.now = func() time.Time { return now }

	rows := []models.Notification{
		{RecipientID: bob.ID, SenderID: alice.ID, Type: models.NotificationFollow, CreatedAt: now.Add(-48 * time.Hour), IsRead: true},
		{RecipientID: bob.ID, SenderID: alice.ID, Type: models.NotificationLike, CreatedAt: now.Add(-time.Hour)},
		{RecipientID: carol.ID, SenderID: alice.ID, Type: models.NotificationLike, CreatedAt: now.Add(-2 * time.Hour)},
		{RecipientID: carol.ID, SenderID: bob.ID, Type: models.NotificationComment, CreatedAt: now.Add(-25 * time.Hour)},
	}
	require.NoError(t, e.db.Create(&rows).Error)

	stats, err := e.notificationSvc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, &NotificationStats{
		Total:  4,
		Unread: 3,
		Read:   1,
		ByType: map[string]int64{
			models.NotificationFollow:  1,
			models.NotificationLike:    2,
			models.NotificationComment: 1,
		},
		Recent24h:  2,
		Recipients: 2,
	}, stats)
}

func TestNotificationService_AdminMarkRead(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	admin := testutil.CreateUser(t, e.db, "root", testutil.WithRole(models.RoleAdmin))
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")

	e.notificationSvc.NotifyFollow(ctx, alice, bob.ID)
	notifications, err := e.notificationSvc.List(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	id := notifications[0].ID

	_, err = e.notificationSvc.AdminMarkRead(ctx, alice, id)
	requireCode(t, err, errorx.Forbidden)

	_, err = e.notificationSvc.AdminMarkRead(ctx, admin, 9999)
	requireCode(t, err, errorx.NotFound)

	result, err := e.notificationSvc.AdminMarkRead(ctx, admin, id)
	require.NoError(t, err)
	assert.Equal(t, &AdminReadResult{NotificationID: id, RecipientID: bob.ID, WasRead: false}, result)

	unread, err := e.notificationSvc.UnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	result, err = e.notificationSvc.AdminMarkRead(ctx, admin, id)
	require.NoError(t, err)
	assert.True(t, result.WasRead)
}
