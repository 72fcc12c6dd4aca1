package notification

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_transport.go -package=mocks . EmailSender,SMSSender,InAppHub

import "context"

// EmailSender delivers email through an external gateway the engine does not
// own. A transport failure is recorded on the notification and retried; it
// never affects the workflow transition that triggered it.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
	SendTemplatedEmail(ctx context.Context, to, template string, data map[string]interface{}) error
}

// SMSSender delivers SMS through an external gateway.
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

// InAppHub pushes in-app messages to connected clients.
type InAppHub interface {
	BroadcastToUser(userID string, msg *Message)
}
