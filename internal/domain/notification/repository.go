package notification

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Filter controls notification listing.
type Filter struct {
	WorkflowID  *uuid.UUID
	Type        *Type
	RecipientID *string
}

// Repository defines persistence for notifications.
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, notificationID uuid.UUID) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Notification, error)
	// ListFailed returns notifications with a failed channel and retry
	// budget remaining.
	ListFailed(ctx context.Context, limit int) ([]*Notification, error)
	MarkRead(ctx context.Context, notificationID uuid.UUID) error
}
