package notifications

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_RegisterAndUnregister(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register(1, nil)
	require.NoError(t, err)
	c2, err := hub.Register(1, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, hub.ConnectionCount())
	assert.True(t, hub.IsOnline(1))
	assert.False(t, hub.IsOnline(2))

	hub.UnregisterClient(c1)
	assert.Equal(t, 1, hub.ConnectionCount())
	assert.True(t, hub.IsOnline(1))

	hub.UnregisterClient(c2)
	assert.Equal(t, 0, hub.ConnectionCount())
	assert.False(t, hub.IsOnline(1))

	// Double unregister is a no-op
	hub.UnregisterClient(c2)
	assert.Equal(t, 0, hub.ConnectionCount())
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register(1, nil)
		require.NoError(t, err)
	}

	_, err := hub.Register(1, nil)
	assert.Error(t, err)

	// Other users are unaffected
	_, err = hub.Register(2, nil)
	assert.NoError(t, err)
}

func TestHub_BroadcastTargetsSingleUser(t *testing.T) {
	hub := NewHub()

	alice1, _ := hub.Register(1, nil)
	alice2, _ := hub.Register(1, nil)
	bob, _ := hub.Register(2, nil)

	hub.Broadcast(1, `{"type":"notification"}`)

	assert.Len(t, alice1.Send, 1)
	assert.Len(t, alice2.Send, 1)
	assert.Len(t, bob.Send, 0)

	msg := <-alice1.Send
	assert.JSONEq(t, `{"type":"notification"}`, string(msg))
}

func TestHub_BroadcastAll(t *testing.T) {
	hub := NewHub()

	alice, _ := hub.Register(1, nil)
	bob, _ := hub.Register(2, nil)

	hub.BroadcastAll("hello")

	assert.Len(t, alice.Send, 1)
	assert.Len(t, bob.Send, 1)
}

func TestHub_BroadcastAllExcept(t *testing.T) {
	hub := NewHub()

	sender, _ := hub.Register(1, nil)
	sibling, _ := hub.Register(1, nil)
	other, _ := hub.Register(2, nil)

	hub.BroadcastAllExcept(sender, "relayed")

	assert.Len(t, sender.Send, 0, "sender must not receive its own message")
	assert.Len(t, sibling.Send, 1, "other connections of the same user still receive it")
	assert.Len(t, other.Send, 1)
}

func TestClient_TrySend_DropsWhenFull(t *testing.T) {
	hub := NewHub()
	client, _ := hub.Register(1, nil)

	// Fill the buffer completely.
	for i := 0; i < cap(client.Send); i++ {
		client.TrySend([]byte("x"))
	}
	require.Len(t, client.Send, cap(client.Send))

	// Overflow drops the message rather than blocking.
	client.TrySend([]byte("overflow"))
	assert.Len(t, client.Send, cap(client.Send))
}
