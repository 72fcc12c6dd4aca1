package invoice

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"

	"github.com/google/uuid"
)

// Repository reads invoices owned by the surrounding application.
type Repository interface {
	GetByID(ctx context.Context, invoiceID uuid.UUID) (*Invoice, error)
	Exists(ctx context.Context, invoiceID uuid.UUID) (bool, error)
}
