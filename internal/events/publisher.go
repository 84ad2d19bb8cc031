package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/AngoraSix/projects.core/internal/projects/domain"
)

// TopicProjectCreated identifies the project-created event in message
// payloads, independently of the channel it travels on.
const TopicProjectCreated = "projects.project.created"

// ProjectCreatedMessage is the wire payload consumed by downstream
// services when a project is created.
type ProjectCreatedMessage struct {
	MessageID   string             `json:"messageId"`
	Topic       string             `json:"topic"`
	ObjectID    string             `json:"objectId"`
	ObjectType  string             `json:"objectType"`
	Contributor domain.Contributor `json:"requestingContributor"`
	EmittedAt   time.Time          `json:"emittedAt"`
}

// RedisPublisher announces domain events on a Redis pub/sub channel.
// Delivery is fire-and-forget; subscribers that are offline miss the
// message.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

func (p *RedisPublisher) PublishProjectCreated(ctx context.Context, projectID string, creator domain.Contributor) error {
	msg := ProjectCreatedMessage{
		MessageID:   uuid.NewString(),
		Topic:       TopicProjectCreated,
		ObjectID:    projectID,
		ObjectType:  "project",
		Contributor: creator,
		EmittedAt:   time.Now().UTC(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal project created message: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("publish project created message: %w", err)
	}
	return nil
}
