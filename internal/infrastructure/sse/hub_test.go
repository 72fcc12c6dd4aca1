package sse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/approval-hub/approval-hub/internal/domain/notification"
)

func TestHub_BroadcastToUser(t *testing.T) {
	hub := NewHub()
	a1 := NewClient("conn-1", "user-a", 4)
	a2 := NewClient("conn-2", "user-a", 4)
	b := NewClient("conn-3", "user-b", 4)
	hub.Register(a1)
	hub.Register(a2)
	hub.Register(b)
	require.Equal(t, 3, hub.ClientCount())

	msg := notification.NewMessage("APPROVAL_REQUIRED", json.RawMessage(`{"workflowId":"wf-1"}`))
	hub.BroadcastToUser("user-a", msg)

	assert.Equal(t, msg, <-a1.MessageChan)
	assert.Equal(t, msg, <-a2.MessageChan)
	select {
	case <-b.MessageChan:
		t.Fatal("message leaked to another user")
	default:
	}
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	hub := NewHub()
	c := NewClient("conn-1", "user-a", 1)
	hub.Register(c)

	first := notification.NewMessage("REMINDER", nil)
	second := notification.NewMessage("REMINDER", nil)
	hub.BroadcastToUser("user-a", first)
	hub.BroadcastToUser("user-a", second)

	assert.Equal(t, first, <-c.MessageChan)
	select {
	case <-c.MessageChan:
		t.Fatal("second message should have been dropped")
	default:
	}
}

func TestHub_UnregisterClosesChannel(t *testing.T) {
	hub := NewHub()
	c := NewClient("conn-1", "user-a", 4)
	hub.Register(c)

	hub.Unregister("conn-1")
	assert.Equal(t, 0, hub.ClientCount())
	_, open := <-c.MessageChan
	assert.False(t, open)

	// Double close is safe.
	c.Close()
}

func TestHub_Stop(t *testing.T) {
	hub := NewHub()
	hub.Register(NewClient("conn-1", "user-a", 4))
	hub.Register(NewClient("conn-2", "user-b", 4))

	hub.Stop()
	assert.Equal(t, 0, hub.ClientCount())
}
