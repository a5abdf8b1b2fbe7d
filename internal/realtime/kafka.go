package realtime

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/socialconnect/backend/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaPublisher writes notifications to a topic, keyed by recipient so a
// recipient's notifications stay ordered within one partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher accepts a comma-separated broker list.
func NewKafkaPublisher(brokers, topic string) *KafkaPublisher {
	addrs := []string{}
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			addrs = append(addrs, b)
		}
	}
	return &KafkaPublisher{writer: &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
	}}
}

// Publish sends all notifications in a single WriteMessages call.
func (p *KafkaPublisher) Publish(ctx context.Context, notifications ...*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	msgs := make([]kafka.Message, 0, len(notifications))
	for _, n := range notifications {
		msg, err := message(n)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func message(notification *models.Notification) (kafka.Message, error) {
	payload, err := encode(notification)
	if err != nil {
		return kafka.Message{}, err
	}
	return kafka.Message{
		Key:   []byte(Channel(notification.RecipientID)),
		Value: payload,
		Time:  notification.CreatedAt,
	}, nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
