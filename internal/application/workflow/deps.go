package workflow

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_deps.go -package=mocks . RuleEngine,DelegationManager,Notifier,Auditor

import (
	"context"

	"github.com/google/uuid"

	notifysvc "github.com/approval-hub/approval-hub/internal/application/notification"
	rulesvc "github.com/approval-hub/approval-hub/internal/application/rule"
	"github.com/approval-hub/approval-hub/internal/domain/audit"
	"github.com/approval-hub/approval-hub/internal/domain/delegation"
	"github.com/approval-hub/approval-hub/internal/domain/notification"
	"github.com/approval-hub/approval-hub/internal/domain/rule"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

// RuleEngine selects and validates routing rules.
type RuleEngine interface {
	Evaluate(ctx context.Context, req rulesvc.Request) (*rule.Rule, error)
	EnsureRoutable(ctx context.Context, r *rule.Rule) error
	GetByID(ctx context.Context, ruleID uuid.UUID) (*rule.Rule, error)
}

// DelegationManager authorizes and records delegated authority.
type DelegationManager interface {
	AuthorizeDelegate(ctx context.Context, wf *workflow.Workflow, role string, userID uuid.UUID) (*delegation.Delegation, error)
	Create(ctx context.Context, d *delegation.Delegation) error
	TrackUsage(ctx context.Context, delegationID uuid.UUID) error
}

// Notifier fans workflow events out to recipients. Implementations must not
// let a delivery failure surface as a workflow error.
type Notifier interface {
	SendApprovalRequired(ctx context.Context, wf *workflow.Workflow) (*notifysvc.DispatchResult, error)
	SendDecision(ctx context.Context, wf *workflow.Workflow, typ notification.Type) error
	SendChangesRequested(ctx context.Context, wf *workflow.Workflow, details string) error
	SendEscalation(ctx context.Context, wf *workflow.Workflow, toRole, lapsedRole string) error
}

// Auditor appends compliance records.
type Auditor interface {
	RecordSync(ctx context.Context, entry *audit.Entry) error
	RecordEvent(ctx context.Context, tenantID uuid.UUID, event audit.Event, entityType, entityID, actor string, metadata map[string]interface{})
}
