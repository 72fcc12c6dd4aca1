package delegation

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence for delegations.
type Repository interface {
	Create(ctx context.Context, d *Delegation) error
	GetByID(ctx context.Context, delegationID uuid.UUID) (*Delegation, error)
	// GetActiveByFromRole returns the single active delegation for a role,
	// or nil when none exists.
	GetActiveByFromRole(ctx context.Context, tenantID uuid.UUID, fromRole string) (*Delegation, error)
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]*Delegation, error)
	ListActiveByToUser(ctx context.Context, tenantID, toUserID uuid.UUID) ([]*Delegation, error)
	Deactivate(ctx context.Context, delegationID uuid.UUID) error
	// DeactivateExpired deactivates delegations whose end date has passed
	// and returns the number affected.
	DeactivateExpired(ctx context.Context, now time.Time) (int64, error)
	// IncrementUsage bumps the usage counter and stamps last use.
	IncrementUsage(ctx context.Context, delegationID uuid.UUID, usedAt time.Time) error
}
