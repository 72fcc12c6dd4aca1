package audit

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the append-only audit sink.
type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*Entry, error)
	ListByEvent(ctx context.Context, tenantID uuid.UUID, event Event, limit, offset int) ([]*Entry, error)
}
