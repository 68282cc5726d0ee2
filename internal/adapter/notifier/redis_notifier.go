package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/seatlock/internal/core/domain"
)

const DefaultChannelPrefix = "showtime:"

// AvailabilityMessage is the payload published on an event's channel.
type AvailabilityMessage struct {
	EventID      uuid.UUID   `json:"event_id"`
	Availability domain.Grid `json:"availability"`
}

// RedisNotifier publishes availability grids over redis pub/sub, one
// channel per event. Delivery to subscribers is best effort.
type RedisNotifier struct {
	client *redis.Client
	prefix string
}

func NewRedisNotifier(client *redis.Client, prefix string) *RedisNotifier {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisNotifier{client: client, prefix: prefix}
}

func (n *RedisNotifier) Channel(eventID uuid.UUID) string {
	return n.prefix + eventID.String()
}

func (n *RedisNotifier) Publish(ctx context.Context, eventID uuid.UUID, grid domain.Grid) error {
	body, err := json.Marshal(AvailabilityMessage{EventID: eventID, Availability: grid})
	if err != nil {
		return fmt.Errorf("marshal availability: %w", err)
	}

	if err := n.client.Publish(ctx, n.Channel(eventID), body).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}

	return nil
}
