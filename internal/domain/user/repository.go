package user

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Directory

import (
	"context"

	"github.com/google/uuid"
)

// Directory resolves users and role membership.
type Directory interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByUsername(ctx context.Context, tenantID uuid.UUID, username string) (*User, error)
	// ListActiveByRole returns active users holding the named role.
	ListActiveByRole(ctx context.Context, tenantID uuid.UUID, role string) ([]*User, error)
}
