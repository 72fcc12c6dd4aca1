package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
)

// ActionKind discriminates the action variants.
type ActionKind string

const (
	ActionApprove        ActionKind = "APPROVE"
	ActionReject         ActionKind = "REJECT"
	ActionDelegate       ActionKind = "DELEGATE"
	ActionRequestChanges ActionKind = "REQUEST_CHANGES"
)

// DelegationGrant is the payload carried only by DELEGATE actions.
type DelegationGrant struct {
	ToUserID  uuid.UUID `json:"toUserId"`
	Reason    string    `json:"reason"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ChangeRequest is the payload carried only by REQUEST_CHANGES actions.
type ChangeRequest struct {
	Details  string `json:"details"`
	Priority string `json:"priority,omitempty"`
}

// Action is an immutable record of one decision. The payload fields form a
// tagged variant keyed by Kind; exactly the fields of the matching variant
// may be set.
type Action struct {
	ID            int64            `json:"id"`
	ActionID      uuid.UUID        `json:"actionId"`
	WorkflowID    uuid.UUID        `json:"workflowId"`
	Kind          ActionKind       `json:"kind"`
	Role          string           `json:"role"`
	Level         int              `json:"level"`
	DecidedBy     string           `json:"decidedBy"`
	Comments      *string          `json:"comments,omitempty"`
	Delegation    *DelegationGrant `json:"delegation,omitempty"`
	ChangeRequest *ChangeRequest   `json:"changeRequest,omitempty"`
	DecidedAt     time.Time        `json:"decidedAt"`
}

// NewAction builds an action record with a fresh identifier.
func NewAction(workflowID uuid.UUID, kind ActionKind, role string, level int, decidedBy string) *Action {
	return &Action{
		ActionID:   uuid.New(),
		WorkflowID: workflowID,
		Kind:       kind,
		Role:       role,
		Level:      level,
		DecidedBy:  decidedBy,
		DecidedAt:  time.Now().UTC(),
	}
}

// Validate enforces the tagged-variant shape.
func (a *Action) Validate() error {
	switch a.Kind {
	case ActionApprove, ActionReject:
		if a.Delegation != nil || a.ChangeRequest != nil {
			return fault.Validation("%s action must not carry variant payload", a.Kind)
		}
	case ActionDelegate:
		if a.Delegation == nil {
			return fault.Validation("DELEGATE action requires a delegation payload")
		}
		if a.ChangeRequest != nil {
			return fault.Validation("DELEGATE action must not carry a change request")
		}
		if a.Delegation.ToUserID == uuid.Nil {
			return fault.Validation("delegation target user is required")
		}
	case ActionRequestChanges:
		if a.ChangeRequest == nil {
			return fault.Validation("REQUEST_CHANGES action requires change details")
		}
		if a.Delegation != nil {
			return fault.Validation("REQUEST_CHANGES action must not carry a delegation")
		}
		if a.ChangeRequest.Details == "" {
			return fault.Validation("change request details are required")
		}
	default:
		return fault.Validation("unknown action kind %q", a.Kind)
	}
	if a.DecidedBy == "" {
		return fault.Validation("decidedBy is required")
	}
	return nil
}
