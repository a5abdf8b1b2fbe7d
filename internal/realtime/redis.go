package realtime

import (
	"context"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes notifications with PUBLISH on notifications:<recipient_id>.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(addr, password string) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	return &RedisPublisher{client: client}
}

// Ping verifies the connection at startup.
func (p *RedisPublisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Publish pipelines one PUBLISH per notification.
func (p *RedisPublisher) Publish(ctx context.Context, notifications ...*models.Notification) error {
	switch len(notifications) {
	case 0:
		return nil
	case 1:
		payload, err := encode(notifications[0])
		if err != nil {
			return err
		}
		return p.client.Publish(ctx, Channel(notifications[0].RecipientID), payload).Err()
	}

	payloads := make([][]byte, len(notifications))
	for i, n := range notifications {
		payload, err := encode(n)
		if err != nil {
			return err
		}
		payloads[i] = payload
	}
	_, err := p.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, n := range notifications {
			pipe.Publish(ctx, Channel(n.RecipientID), payloads[i])
		}
		return nil
	})
	return err
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
