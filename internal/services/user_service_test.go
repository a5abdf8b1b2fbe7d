package services

import (
	"context"
	"testing"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/anonto42/socialconnect/backend/internal/testutil"
	"github.com/anonto42/socialconnect/backend/pkg/errorx"
	"github.com/stretchr/testify/require"
)

func TestCanViewProfile(t *testing.T) {
	tests := []struct {
		name      string
		privacy   string
		viewerID  uint
		following bool
		want      bool
	}{
		{name: "public stranger", privacy: models.PrivacyPublic, viewerID: 2, want: true},
		{name: "private stranger", privacy: models.PrivacyPrivate, viewerID: 2, want: false},
		{name: "private follower", privacy: models.PrivacyPrivate, viewerID: 2, following: true, want: false},
		{name: "private self", privacy: models.PrivacyPrivate, viewerID: 1, want: true},
		{name: "followers only stranger", privacy: models.PrivacyFollowersOnly, viewerID: 2, want: false},
		{name: "followers only follower", privacy: models.PrivacyFollowersOnly, viewerID: 2, following: true, want: true},
		{name: "followers only self", privacy: models.PrivacyFollowersOnly, viewerID: 1, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner := &models.User{ID: 1, PrivacySetting: tt.privacy}
			require.Equal(t, tt.want, CanViewProfile(owner, tt.viewerID, tt.following))
		})
	}
}

func TestUserService_GetProfile(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, "owner", testutil.WithPrivacy(models.PrivacyFollowersOnly))
	fan := testutil.CreateUser(t, e.db, "fan")
	stranger := testutil.CreateUser(t, e.db, "stranger")
	ghost := testutil.CreateUser(t, e.db, "ghost", testutil.Inactive())

	testutil.CreatePost(t, e.db, owner.ID, "one")
	gone := testutil.CreatePost(t, e.db, owner.ID, "two")
	testutil.DeactivatePost(t, e.db, gone)
	_, err := e.followSvc.Follow(ctx, fan, owner.ID)
	require.NoError(t, err)

	_, err = e.userSvc.GetProfile(ctx, stranger.ID, owner.ID)
	requireCode(t, err, errorx.Forbidden)

	_, err = e.userSvc.GetProfile(ctx, fan.ID, ghost.ID)
	requireCode(t, err, errorx.NotFound)

	profile, err := e.userSvc.GetProfile(ctx, fan.ID, owner.ID)
	require.NoError(t, err)
	require.True(t, profile.IsFollowing)
	require.Equal(t, int64(1), profile.FollowersCount)
	require.Zero(t, profile.FollowingCount)
	require.Equal(t, int64(1), profile.PostsCount)

	self, err := e.userSvc.GetProfile(ctx, owner.ID, owner.ID)
	require.NoError(t, err)
	require.False(t, self.IsFollowing)
}

func TestStatsService_Stats(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()
	alice := testutil.CreateUser(t, e.db, "alice")
	bob := testutil.CreateUser(t, e.db, "bob")
	testutil.CreateUser(t, e.db, "ghost", testutil.Inactive())
	post := testutil.CreatePost(t, e.db, bob.ID, "hello")
	gone := testutil.CreatePost(t, e.db, bob.ID, "bye")
	testutil.DeactivatePost(t, e.db, gone)

	_, err := e.followSvc.Follow(ctx, alice, bob.ID)
	require.NoError(t, err)
	_, err = e.likeSvc.Like(ctx, alice, post.ID)
	require.NoError(t, err)
	_, err = e.commentSvc.AddComment(ctx, alice, post.ID, "hi")
	require.NoError(t, err)

	stats, err := e.statsSvc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, &Stats{
		TotalUsers:          3,
		ActiveUsers:         2,
		TotalPosts:          2,
		ActivePosts:         1,
		TotalLikes:          1,
		ActiveComments:      1,
		TotalFollows:        1,
		TotalNotifications:  3,
		UnreadNotifications: 3,
	}, stats)
}
