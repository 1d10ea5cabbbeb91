// Package events fans notification changes out to live subscribers over Redis Pub/Sub.
package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/domain"
)

const channelPrefix = "notify:events:" // notify:events:{recipient_id}

const (
	TypeCreated = "notification.created"
	TypeRead    = "notification.read"
)

// Event is the payload published on a recipient's channel.
type Event struct {
	Type         string               `json:"type"`
	Notification *domain.Notification `json:"notification"`
}

// Channel returns the Pub/Sub channel for a recipient.
func Channel(recipientID string) string {
	return channelPrefix + recipientID
}

// Publisher announces notification changes. Publishing is best effort: a failure is
// reported but must never fail the write that triggered it.
type Publisher interface {
	Publish(ctx context.Context, recipientID string, ev Event) error
}

// RedisPublisher publishes events as JSON.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, recipientID string, ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := p.client.Publish(ctx, Channel(recipientID), data).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// NopPublisher drops every event. Used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Event) error { return nil }

// Subscriber delivers a recipient's events until ctx is cancelled.
type Subscriber struct {
	client *redis.Client
	log    *zap.Logger
}

func NewSubscriber(client *redis.Client, log *zap.Logger) *Subscriber {
	if log == nil {
		log = zap.NewNop()
	}
	return &Subscriber{client: client, log: log}
}

// Subscribe returns a channel of decoded events. The subscription is confirmed before
// Subscribe returns so nothing published afterwards is missed. The returned channel is
// closed once ctx is done.
func (s *Subscriber) Subscribe(ctx context.Context, recipientID string) (<-chan Event, error) {
	ps := s.client.Subscribe(ctx, Channel(recipientID))
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer ps.Close()

		msgs := ps.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					s.log.Warn("dropping malformed notification event",
						zap.String("channel", msg.Channel), zap.Error(err))
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
