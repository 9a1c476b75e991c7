package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishUserEvent_DeliversOncePerConnection(t *testing.T) {
	_, srv, _ := newTestServerWithRedis(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, srv.hub.StartWiring(ctx, srv.notifier))
	// Give the pattern subscriber a moment to establish.
	time.Sleep(50 * time.Millisecond)

	client, err := srv.hub.Register(7, nil)
	require.NoError(t, err)

	srv.publishUserEvent(7, EventStoryLiked, map[string]interface{}{"story_id": 1})

	// The event arrives through the Redis subscription.
	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), EventStoryLiked)
	case <-time.After(2 * time.Second):
		t.Fatal("expected one event delivery")
	}

	// No duplicate from a direct hub broadcast.
	select {
	case msg := <-client.Send:
		t.Fatalf("unexpected second delivery: %s", msg)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestPublishUserEvent_FallsBackToHubWithoutRedis(t *testing.T) {
	_, srv, _ := newTestServer(t)

	client, err := srv.hub.Register(3, nil)
	require.NoError(t, err)

	srv.publishUserEvent(3, EventCommentCreated, map[string]interface{}{"story_id": 2})

	select {
	case msg := <-client.Send:
		assert.Contains(t, string(msg), EventCommentCreated)
	default:
		t.Fatal("expected direct hub delivery when redis is absent")
	}
}
