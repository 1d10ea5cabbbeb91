package events

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker-backend/internal/notifications/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func TestChannel(t *testing.T) {
	assert.Equal(t, "notify:events:u-1", Channel("u-1"))
}

func TestPublishSubscribe(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := NewSubscriber(client, nil)
	ch, err := sub.Subscribe(ctx, "u-2")
	require.NoError(t, err)

	pub := NewRedisPublisher(client)
	require.NoError(t, pub.Publish(ctx, "u-1", Event{Type: TypeCreated, Notification: &domain.Notification{ID: "other"}}))
	require.NoError(t, pub.Publish(ctx, "u-2", Event{Type: TypeCreated, Notification: &domain.Notification{ID: "n-1", Title: "Hi"}}))

	select {
	case ev := <-ch:
		assert.Equal(t, TypeCreated, ev.Type)
		require.NotNil(t, ev.Notification)
		assert.Equal(t, "n-1", ev.Notification.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribe_ClosesOnCancel(t *testing.T) {
	client, _ := setupTestRedis(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := NewSubscriber(client, nil).Subscribe(ctx, "u-1")
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestPublish_RedisDown(t *testing.T) {
	client, mr := setupTestRedis(t)
	mr.Close()

	err := NewRedisPublisher(client).Publish(context.Background(), "u-1", Event{Type: TypeRead})
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), "u-1", Event{Type: TypeRead}))
}
