package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFollow_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresFollowRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	created, err := repo.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.CreateFollow(ctx, &models.Follow{FollowerID: alice.ID, FollowingID: bob.ID})
	require.NoError(t, err)
	assert.False(t, created)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	ids, err := repo.GetFollowingIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, ids)

	require.NoError(t, repo.DeleteFollow(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, repo.DeleteFollow(ctx, alice.ID, bob.ID), ErrNotFound)

	_, err = repo.GetFollow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateLike_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresLikeRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	for i, want := range []bool{true, false, false} {
		created, err := repo.CreateLike(ctx, &models.Like{UserID: alice.ID, PostID: post.ID})
		require.NoError(t, err)
		assert.Equal(t, want, created, "attempt %d", i)
	}

	count, err := repo.CountByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	liked, err := repo.HasUserLikedPost(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	require.NoError(t, repo.DeleteLike(ctx, post.ID, alice.ID))
	assert.ErrorIs(t, repo.DeleteLike(ctx, post.ID, alice.ID), ErrNotFound)
}

func TestNotificationMarkAsRead_ChecksRecipient(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	n := &models.Notification{
		RecipientID: bob.ID,
		SenderID:    alice.ID,
		Type:        models.NotificationFollow,
		Message:     "@alice started following you",
	}
	require.NoError(t, repo.CreateNotification(ctx, n))

	assert.ErrorIs(t, repo.MarkAsRead(ctx, n.ID, alice.ID), ErrNotFound)

	unread, err := repo.GetUnreadCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	require.NoError(t, repo.MarkAsRead(ctx, n.ID, bob.ID))
	require.NoError(t, repo.MarkAsRead(ctx, n.ID, bob.ID))

	updated, err := repo.MarkAllAsRead(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)
}

func TestCommentDeactivate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresCommentRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	post := testutil.CreatePost(t, db, alice.ID, "hello")

	c := &models.Comment{PostID: post.ID, AuthorID: alice.ID, Content: "first", IsActive: true}
	require.NoError(t, repo.CreateComment(ctx, c))

	require.NoError(t, repo.Deactivate(ctx, c.ID))
	assert.ErrorIs(t, repo.Deactivate(ctx, c.ID), ErrNotFound)

	count, err := repo.CountActiveByPostID(ctx, post.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	all, err := repo.GetAllComments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.HardDelete(ctx, c.ID))
	_, err = repo.GetCommentByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPosts(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresPostRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")

	first := testutil.CreatePost(t, db, alice.ID, "Hello World")
	second := testutil.CreatePost(t, db, bob.ID, "another day")
	hidden := testutil.CreatePost(t, db, alice.ID, "hello again")
	testutil.DeactivatePost(t, db, hidden)

	inactive := false
	tests := []struct {
		name   string
		filter models.PostFilter
		want   []string
	}{
		{"active newest first", models.PostFilter{}, []string{second.ID, first.ID}},
		{"by authors", models.PostFilter{AuthorIDs: []uint{alice.ID}}, []string{first.ID}},
		{"empty author list", models.PostFilter{AuthorIDs: []uint{}}, nil},
		{"search is case insensitive", models.PostFilter{Search: "hello"}, []string{first.ID}},
		{"inactive only", models.PostFilter{Active: &inactive}, []string{hidden.ID}},
		{"include inactive", models.PostFilter{IncludeInactive: true}, []string{hidden.ID, second.ID, first.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.ListPosts(ctx, tt.filter)
			require.NoError(t, err)

			var ids []string
			for _, p := range posts {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	require.NoError(t, repo.UpdateLikeCount(ctx, first.ID, 3))
	assert.ErrorIs(t, repo.UpdateLikeCount(ctx, "missing", 3), ErrNotFound)

	n, err := repo.CountActiveByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestListPosts_SearchIsLiteral(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresPostRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")

	axb := testutil.CreatePost(t, db, alice.ID, "axb")
	underscore := testutil.CreatePost(t, db, alice.ID, "a_b")
	percentWord := testutil.CreatePost(t, db, alice.ID, "100 percent")
	percentSign := testutil.CreatePost(t, db, alice.ID, "100%")
	backslash := testutil.CreatePost(t, db, alice.ID, `C:\temp`)

	tests := []struct {
		search string
		want   []string
	}{
		{"a_b", []string{underscore.ID}},
		{"100%", []string{percentSign.ID}},
		{`:\t`, []string{backslash.ID}},
		{"AXB", []string{axb.ID}},
		{"100", []string{percentSign.ID, percentWord.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			posts, err := repo.ListPosts(ctx, models.PostFilter{Search: tt.search})
			require.NoError(t, err)

			var ids []string
			for _, p := range posts {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestRecountCounters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresPostRepository(db)
	comments := NewPostgresCommentRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	post := testutil.CreatePost(t, db, alice.ID, "hello")
	other := testutil.CreatePost(t, db, alice.ID, "other")

	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, PostID: other.ID}).Error)
	require.NoError(t, repo.UpdateLikeCount(ctx, post.ID, 9))

	visible := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "nice", IsActive: true}
	hidden := &models.Comment{PostID: post.ID, AuthorID: bob.ID, Content: "oops", IsActive: true}
	require.NoError(t, comments.CreateComment(ctx, visible))
	require.NoError(t, comments.CreateComment(ctx, hidden))
	require.NoError(t, comments.Deactivate(ctx, hidden.ID))

	likes, err := repo.RecountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), likes)

	active, err := repo.RecountComments(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), active)

	stored, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stored.LikeCount)
	assert.Equal(t, int64(1), stored.CommentCount)

	_, err = repo.RecountLikes(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.RecountComments(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotificationAdminQueries(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostgresNotificationRepository(db)
	ctx := context.Background()
	alice := testutil.CreateUser(t, db, "alice")
	bob := testutil.CreateUser(t, db, "bob")
	now := time.Now()

	old := &models.Notification{RecipientID: bob.ID, SenderID: alice.ID, Type: models.NotificationFollow, CreatedAt: now.Add(-48 * time.Hour)}
	fresh := []models.Notification{
		{RecipientID: bob.ID, SenderID: alice.ID, Type: models.NotificationLike, CreatedAt: now},
		{RecipientID: alice.ID, SenderID: bob.ID, Type: models.NotificationLike, CreatedAt: now},
	}
	require.NoError(t, repo.CreateNotification(ctx, old))
	require.NoError(t, repo.CreateNotifications(ctx, fresh))

	byType, err := repo.CountByType(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{models.NotificationFollow: 1, models.NotificationLike: 2}, byType)

	recent, err := repo.CountSince(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(2), recent)

	recipients, err := repo.CountRecipients(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), recipients)

	before, err := repo.MarkAsReadByID(ctx, old.ID)
	require.NoError(t, err)
	assert.False(t, before.IsRead)

	before, err = repo.MarkAsReadByID(ctx, old.ID)
	require.NoError(t, err)
	assert.True(t, before.IsRead)

	_, err = repo.MarkAsReadByID(ctx, 4242)
	assert.ErrorIs(t, err, ErrNotFound)
}
