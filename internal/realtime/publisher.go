package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/anonto42/socialconnect/backend/internal/models"
)

// Publisher pushes stored notifications to connected clients. A call with
// several notifications is one round trip bounded by ctx.
// Delivery is best effort; callers log and drop errors.
type Publisher interface {
	Publish(ctx context.Context, notifications ...*models.Notification) error
	Close() error
}

// Channel is the per-recipient channel (or message key) a notification is published on.
func Channel(recipientID uint) string {
	return "notifications:" + strconv.FormatUint(uint64(recipientID), 10)
}

func encode(notification *models.Notification) ([]byte, error) {
	payload, err := json.Marshal(notification)
	if err != nil {
		return nil, fmt.Errorf("encode notification %d: %w", notification.ID, err)
	}
	return payload, nil
}

// NopPublisher is used when REALTIME_BACKEND is "none".
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ...*models.Notification) error { return nil }

func (NopPublisher) Close() error { return nil }
