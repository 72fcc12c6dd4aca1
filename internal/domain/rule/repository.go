package rule

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository,RoleRepository

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence for approval rules.
type Repository interface {
	Create(ctx context.Context, rule *Rule) error
	Update(ctx context.Context, rule *Rule) error
	GetByID(ctx context.Context, ruleID uuid.UUID) (*Rule, error)
	// ListActive returns active rules for a tenant and currency ordered by
	// priority descending, creation time ascending.
	ListActive(ctx context.Context, tenantID uuid.UUID, currency string) ([]*Rule, error)
	List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Rule, error)
	Deactivate(ctx context.Context, ruleID uuid.UUID) error
}

// RoleRepository defines persistence for approval roles.
type RoleRepository interface {
	Create(ctx context.Context, role *Role) error
	GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*Role, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]*Role, error)
}
