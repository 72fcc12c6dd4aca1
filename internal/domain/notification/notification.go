package notification

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type classifies the workflow event behind a notification.
type Type string

const (
	TypeApprovalRequired Type = "APPROVAL_REQUIRED"
	TypeApproved         Type = "APPROVED"
	TypeRejected         Type = "REJECTED"
	TypeEscalation       Type = "ESCALATION"
	TypeReminder         Type = "REMINDER"
	TypeChangesRequested Type = "CHANGES_REQUESTED"
)

// Urgency represents how prominently a notification is surfaced.
type Urgency string

const (
	UrgencyNormal Urgency = "NORMAL"
	UrgencyHigh   Urgency = "HIGH"
	UrgencyUrgent Urgency = "URGENT"
)

// Channel represents the delivery channel.
type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelInApp Channel = "IN_APP"
	ChannelSMS   Channel = "SMS"
)

// Notification is one delivery intent. It is created by the coordinator and
// mutated only by delivery-status updates.
type Notification struct {
	ID             int64      `json:"id"`
	NotificationID uuid.UUID  `json:"notificationId"`
	WorkflowID     uuid.UUID  `json:"workflowId"`
	TenantID       uuid.UUID  `json:"tenantId"`
	Type           Type       `json:"type"`
	RecipientID    string     `json:"recipientId"`
	RecipientRole  string     `json:"recipientRole,omitempty"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Urgency        Urgency    `json:"urgency"`
	Channels       []Channel  `json:"channels"`
	EmailSent      bool       `json:"emailSent"`
	EmailError     *string    `json:"emailError,omitempty"`
	SMSSent        bool       `json:"smsSent"`
	SMSError       *string    `json:"smsError,omitempty"`
	InAppDelivered bool       `json:"inAppDelivered"`
	InAppRead      bool       `json:"inAppRead"`
	RetryCount     int        `json:"retryCount"`
	MaxRetries     int        `json:"maxRetries"`
	LastError      *string    `json:"lastError,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	SentAt         *time.Time `json:"sentAt,omitempty"`
}

// New creates a pending notification with default retry budget.
func New(workflowID, tenantID uuid.UUID, typ Type, recipientID string, urgency Urgency, channels []Channel, title, message string) *Notification {
	return &Notification{
		NotificationID: uuid.New(),
		WorkflowID:     workflowID,
		TenantID:       tenantID,
		Type:           typ,
		RecipientID:    recipientID,
		Title:          title,
		Message:        message,
		Urgency:        urgency,
		Channels:       channels,
		MaxRetries:     3,
		CreatedAt:      time.Now().UTC(),
	}
}

// HasChannel reports whether the notification targets the channel.
func (n *Notification) HasChannel(c Channel) bool {
	for _, ch := range n.Channels {
		if ch == c {
			return true
		}
	}
	return false
}

// Failed reports whether any requested channel failed.
func (n *Notification) Failed() bool {
	return n.EmailError != nil || n.SMSError != nil
}

// CanRetry reports whether the retry budget admits another attempt.
func (n *Notification) CanRetry() bool {
	return n.Failed() && n.RetryCount < n.MaxRetries
}

// Message is the in-app payload pushed to connected clients.
type Message struct {
	ID        string          `json:"id"`
	Event     string          `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates an in-app message.
func NewMessage(event string, data json.RawMessage) *Message {
	return &Message{
		ID:        uuid.New().String(),
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}
