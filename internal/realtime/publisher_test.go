package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	require.Equal(t, "notifications:42", Channel(42))
}

func TestKafkaMessage(t *testing.T) {
	postID := "p1"
	n := &models.Notification{
		ID:          7,
		RecipientID: 3,
		SenderID:    4,
		Type:        models.NotificationLike,
		PostID:      &postID,
		Message:     "@bob liked your post",
		CreatedAt:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	msg, err := message(n)
	require.NoError(t, err)
	require.Equal(t, "notifications:3", string(msg.Key))
	require.Equal(t, n.CreatedAt, msg.Time)

	var decoded models.Notification
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	require.Equal(t, n.Message, decoded.Message)
	require.Equal(t, "p1", *decoded.PostID)
}

func TestRedisPublisher_Unreachable(t *testing.T) {
	p := NewRedisPublisher("127.0.0.1:1", "")
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.Error(t, p.Publish(ctx, &models.Notification{RecipientID: 1}))
	require.Error(t, p.Publish(ctx, &models.Notification{RecipientID: 1}, &models.Notification{RecipientID: 2}))
	require.NoError(t, p.Publish(ctx))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	require.NoError(t, p.Publish(context.Background(), &models.Notification{}))
	require.NoError(t, p.Publish(context.Background()))
	require.NoError(t, p.Close())
}
