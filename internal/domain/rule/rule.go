package rule

import (
	"time"

	"github.com/google/uuid"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
)

// Role is a named approval authority level within a tenant. Once an active
// workflow references a role through its history the record is immutable.
type Role struct {
	ID                int64     `json:"id"`
	RoleID            uuid.UUID `json:"roleId"`
	TenantID          uuid.UUID `json:"tenantId"`
	Name              string    `json:"name"`
	Level             int       `json:"level"`
	MaxApprovalAmount float64   `json:"maxApprovalAmount"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Rule is a routing policy. Multiple rules may overlap in amount range;
// exactly one is selected per request.
type Rule struct {
	ID                   int64     `json:"id"`
	RuleID               uuid.UUID `json:"ruleId"`
	TenantID             uuid.UUID `json:"tenantId"`
	Name                 string    `json:"name"`
	MinAmount            float64   `json:"minAmount"`
	MaxAmount            float64   `json:"maxAmount"`
	Currency             string    `json:"currency"`
	RequiredApprovals    int       `json:"requiredApprovals"`
	ApproverRoles        []string  `json:"approverRoles"`
	ParallelApproval     bool      `json:"parallelApproval"`
	ApprovalTimeoutHours int       `json:"approvalTimeoutHours"`
	EscalateToRole       *string   `json:"escalateToRole,omitempty"`
	Priority             int       `json:"priority"`
	Condition            *string   `json:"condition,omitempty"`
	IsActive             bool      `json:"isActive"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

// Matches reports whether the rule covers the amount and currency.
// The amount range is half-open: [minAmount, maxAmount).
func (r *Rule) Matches(amount float64, currency string) bool {
	if !r.IsActive {
		return false
	}
	if r.Currency != currency {
		return false
	}
	return amount >= r.MinAmount && amount < r.MaxAmount
}

// Validate checks rule configuration invariants.
func (r *Rule) Validate() error {
	if len(r.ApproverRoles) == 0 {
		return fault.Validation("rule must define at least one approver role")
	}
	if r.MinAmount < 0 {
		return fault.Validation("minAmount must not be negative")
	}
	if r.MaxAmount <= r.MinAmount {
		return fault.Validation("maxAmount must be greater than minAmount")
	}
	if r.Currency == "" {
		return fault.Validation("currency is required")
	}
	if r.RequiredApprovals <= 0 {
		return fault.Validation("requiredApprovals must be positive")
	}
	if r.RequiredApprovals > len(r.ApproverRoles) {
		return fault.Validation("requiredApprovals exceeds approver role count")
	}
	if r.ApprovalTimeoutHours <= 0 {
		return fault.Validation("approvalTimeoutHours must be positive")
	}
	return nil
}

// ChainLength is the number of sequential levels the rule requires.
func (r *Rule) ChainLength() int {
	if r.ParallelApproval {
		return r.RequiredApprovals
	}
	return len(r.ApproverRoles)
}
