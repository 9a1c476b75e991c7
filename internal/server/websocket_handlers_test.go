package server

import (
	"testing"

	"umoja/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recvNow drains one pending message from a client without blocking. Relay
// dispatch is synchronous, so anything delivered is already in the channel.
func recvNow(t *testing.T, client *notifications.Client) (string, bool) {
	t.Helper()
	select {
	case msg := <-client.Send:
		return string(msg), true
	default:
		return "", false
	}
}

func TestHandleInboundMessage(t *testing.T) {
	_, srv, _ := newTestServer(t)

	sender, err := srv.hub.Register(1, nil)
	require.NoError(t, err)
	sibling, err := srv.hub.Register(1, nil)
	require.NoError(t, err)
	peer, err := srv.hub.Register(2, nil)
	require.NoError(t, err)

	drainAll := func() {
		for _, c := range []*notifications.Client{sender, sibling, peer} {
			for {
				if _, ok := recvNow(t, c); !ok {
					break
				}
			}
		}
	}

	t.Run("Notification Relayed To Everyone But The Sender", func(t *testing.T) {
		drainAll()
		frame := `{"type":"notification","payload":{"story_id":7}}`
		srv.handleInboundMessage(sender, []byte(frame))

		got, ok := recvNow(t, peer)
		require.True(t, ok)
		assert.Equal(t, frame, got)

		// A second connection of the sending user still receives the frame.
		got, ok = recvNow(t, sibling)
		require.True(t, ok)
		assert.Equal(t, frame, got)

		_, ok = recvNow(t, sender)
		assert.False(t, ok, "sender must not receive its own frame")
	})

	t.Run("Unknown Type Is Ignored", func(t *testing.T) {
		drainAll()
		srv.handleInboundMessage(sender, []byte(`{"type":"presence","payload":{}}`))

		for _, c := range []*notifications.Client{sender, sibling, peer} {
			_, ok := recvNow(t, c)
			assert.False(t, ok)
		}
	})

	t.Run("Malformed Payload Dropped Without Closing", func(t *testing.T) {
		drainAll()
		before := srv.hub.ConnectionCount()

		srv.handleInboundMessage(sender, []byte(`{not json`))

		for _, c := range []*notifications.Client{sender, sibling, peer} {
			_, ok := recvNow(t, c)
			assert.False(t, ok)
		}
		assert.Equal(t, before, srv.hub.ConnectionCount())
	})
}
