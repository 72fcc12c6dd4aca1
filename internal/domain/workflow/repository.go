package workflow

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_repository.go -package=mocks . Repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines persistence for approval workflows. Mutating methods
// that take a *Workflow compare the entity's Version against the stored row
// inside the same statement and return a concurrency fault when the row has
// moved on; on success the entity's Version is bumped.
type Repository interface {
	Create(ctx context.Context, wf *Workflow) error
	GetByID(ctx context.Context, workflowID uuid.UUID) (*Workflow, error)
	GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*Workflow, error)

	// UpdateVersioned applies the entity state with an optimistic version
	// check in a single statement.
	UpdateVersioned(ctx context.Context, wf *Workflow) error
	// ApplyAction inserts the action and applies the versioned update in one
	// transaction; either both happen or neither.
	ApplyAction(ctx context.Context, wf *Workflow, action *Action) error
	// ResetActions deletes recorded actions and applies the versioned update
	// in one transaction (changes-implemented rewind).
	ResetActions(ctx context.Context, wf *Workflow) error

	ListActions(ctx context.Context, workflowID uuid.UUID) ([]*Action, error)
	// CountDistinctApproverRoles counts distinct roles with an APPROVE action.
	CountDistinctApproverRoles(ctx context.Context, workflowID uuid.UUID) (int, error)

	// ListPendingOverdue returns PENDING workflows whose due date has passed.
	ListPendingOverdue(ctx context.Context, now time.Time, limit int) ([]*Workflow, error)
	// ListPendingDueWithin returns PENDING workflows due inside the horizon.
	ListPendingDueWithin(ctx context.Context, now time.Time, horizon time.Duration, limit int) ([]*Workflow, error)
	ListPending(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*Workflow, error)

	// ListStale returns PENDING workflows initiated before the threshold
	// that have no recorded actions.
	ListStale(ctx context.Context, olderThan time.Time, limit int) ([]*Workflow, error)
	// ListOrphaned returns PENDING workflows whose invoice no longer exists.
	ListOrphaned(ctx context.Context, limit int) ([]*Workflow, error)
	// ListInvalidRequiredLevel returns workflows with a non-positive
	// required level.
	ListInvalidRequiredLevel(ctx context.Context, limit int) ([]*Workflow, error)
}
