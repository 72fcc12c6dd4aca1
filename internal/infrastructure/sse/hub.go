package sse

import (
	"errors"
	"sync"

	"github.com/approval-hub/approval-hub/internal/domain/notification"
)

var ErrClientNotFound = errors.New("sse client not found")

// Client is one connected in-app notification stream.
type Client struct {
	ClientID    string
	UserID      string
	MessageChan chan *notification.Message

	closeOnce sync.Once
}

// NewClient creates a client with a buffered message channel. A full buffer
// drops messages rather than blocking the sender.
func NewClient(clientID, userID string, buffer int) *Client {
	if buffer <= 0 {
		buffer = 16
	}
	return &Client{
		ClientID:    clientID,
		UserID:      userID,
		MessageChan: make(chan *notification.Message, buffer),
	}
}

// Close shuts the client's channel exactly once.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.MessageChan)
	})
}

// Hub manages connected in-app clients. It implements notification.InAppHub.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ClientID] = client
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if c, ok := h.clients[clientID]; ok {
		c.Close()
		delete(h.clients, clientID)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastToUser pushes a message to every connection of one user.
func (h *Hub) BroadcastToUser(userID string, msg *notification.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		if c.UserID == userID {
			trySend(c, msg)
		}
	}
}

func (h *Hub) BroadcastToAll(msg *notification.Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		trySend(c, msg)
	}
}

func (h *Hub) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		c.Close()
		delete(h.clients, id)
	}
}

func trySend(c *Client, msg *notification.Message) bool {
	select {
	case c.MessageChan <- msg:
		return true
	default:
		return false
	}
}
