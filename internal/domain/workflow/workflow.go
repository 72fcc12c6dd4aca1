package workflow

import (
	"time"

	"github.com/google/uuid"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
)

// Status represents workflow lifecycle status.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

// Terminal reports whether the status accepts no further actions.
func (s Status) Terminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// Workflow is one invoice routed through approval. Invariant: CurrentLevel
// never exceeds RequiredLevel; a terminal status implies CompletedAt is set.
type Workflow struct {
	ID                int64      `json:"id"`
	WorkflowID        uuid.UUID  `json:"workflowId"`
	TenantID          uuid.UUID  `json:"tenantId"`
	InvoiceID         uuid.UUID  `json:"invoiceId"`
	RuleID            uuid.UUID  `json:"ruleId"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	Status            Status     `json:"status"`
	CurrentLevel      int        `json:"currentLevel"`
	RequiredLevel     int        `json:"requiredLevel"`
	ApproverRoles     []string   `json:"approverRoles"`
	ParallelApproval  bool       `json:"parallelApproval"`
	RequiredApprovals int        `json:"requiredApprovals"`
	TimeoutHours      int        `json:"timeoutHours"`
	EscalateToRole    *string    `json:"escalateToRole,omitempty"`
	InitiatedBy       string     `json:"initiatedBy"`
	InitiatedAt       time.Time  `json:"initiatedAt"`
	DueDate           time.Time  `json:"dueDate"`
	EscalatedTo       *string    `json:"escalatedTo,omitempty"`
	EscalatedAt       *time.Time `json:"escalatedAt,omitempty"`
	FinalDecision     *string    `json:"finalDecision,omitempty"`
	FinalDecisionBy   *string    `json:"finalDecisionBy,omitempty"`
	FinalDecisionAt   *time.Time `json:"finalDecisionAt,omitempty"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	BypassReason      *string    `json:"bypassReason,omitempty"`
	BypassedBy        *string    `json:"bypassedBy,omitempty"`
	BypassedAt        *time.Time `json:"bypassedAt,omitempty"`
	Version           int        `json:"version"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// CalculateDueDate derives the business deadline from the initiation time.
func CalculateDueDate(from time.Time, timeoutHours int) time.Time {
	return from.Add(time.Duration(timeoutHours) * time.Hour)
}

// CanAct returns a state error when the workflow no longer accepts actions.
func (w *Workflow) CanAct() error {
	if w.Status.Terminal() {
		return fault.State("cannot process actions on completed workflow (status %s)", w.Status)
	}
	return nil
}

// NextRole is the role expected to approve next in sequential mode.
func (w *Workflow) NextRole() (string, bool) {
	if w.CurrentLevel >= len(w.ApproverRoles) {
		return "", false
	}
	return w.ApproverRoles[w.CurrentLevel], true
}

// RecordSequentialApproval advances the chain by one level. The acting level
// must be exactly the next expected one.
func (w *Workflow) RecordSequentialApproval(level int, decidedBy string, now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	if level != w.CurrentLevel+1 {
		return fault.State("approval out of order: expected level %d, got %d", w.CurrentLevel+1, level)
	}
	w.CurrentLevel++
	if w.CurrentLevel == w.RequiredLevel {
		w.finalize(StatusApproved, string(StatusApproved), decidedBy, now)
	}
	w.UpdatedAt = now
	return nil
}

// RecordEscalatedApproval completes an escalated workflow on the escalation
// target's single approval. The lapsed chain is not resumed.
func (w *Workflow) RecordEscalatedApproval(decidedBy string, now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	if w.EscalatedTo == nil {
		return fault.State("workflow %s has not been escalated", w.WorkflowID)
	}
	w.CurrentLevel = w.RequiredLevel
	w.finalize(StatusApproved, string(StatusApproved), decidedBy, now)
	w.UpdatedAt = now
	return nil
}

// FinalizeApproved completes a parallel-mode workflow once the distinct-role
// approval count reaches the required quota.
func (w *Workflow) FinalizeApproved(decidedBy string, now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	w.CurrentLevel = w.RequiredLevel
	w.finalize(StatusApproved, string(StatusApproved), decidedBy, now)
	w.UpdatedAt = now
	return nil
}

// Reject terminates the workflow regardless of level reached.
func (w *Workflow) Reject(decidedBy string, now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	w.finalize(StatusRejected, string(StatusRejected), decidedBy, now)
	w.UpdatedAt = now
	return nil
}

// Expire marks a timed-out workflow with no further escalation target.
func (w *Workflow) Expire(now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	w.finalize(StatusExpired, string(StatusExpired), "system", now)
	w.UpdatedAt = now
	return nil
}

// Cancel is an administrative termination independent of current level.
func (w *Workflow) Cancel(reason, actor string, now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	w.finalize(StatusCancelled, string(StatusCancelled), actor, now)
	w.BypassReason = &reason
	w.BypassedBy = &actor
	w.BypassedAt = &now
	w.UpdatedAt = now
	return nil
}

// Bypass force-approves the workflow outside its chain. Authorization is the
// caller's responsibility.
func (w *Workflow) Bypass(reason, actor string, now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	w.finalize(StatusApproved, string(StatusApproved), actor, now)
	w.BypassReason = &reason
	w.BypassedBy = &actor
	w.BypassedAt = &now
	w.UpdatedAt = now
	return nil
}

// Escalate reassigns the workflow to a higher authority and extends the
// deadline by the rule's timeout.
func (w *Workflow) Escalate(toRole string, now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	w.CurrentLevel++
	if w.CurrentLevel > w.RequiredLevel {
		w.RequiredLevel = w.CurrentLevel
	}
	w.EscalatedTo = &toRole
	w.EscalatedAt = &now
	w.DueDate = CalculateDueDate(now, w.TimeoutHours)
	w.UpdatedAt = now
	return nil
}

// ResetForReReview rewinds the chain to level zero after requested changes
// were implemented and the initiator resubmitted.
func (w *Workflow) ResetForReReview(now time.Time) error {
	if err := w.CanAct(); err != nil {
		return err
	}
	w.CurrentLevel = 0
	w.DueDate = CalculateDueDate(now, w.TimeoutHours)
	w.EscalatedTo = nil
	w.EscalatedAt = nil
	w.UpdatedAt = now
	return nil
}

func (w *Workflow) finalize(status Status, decision, by string, now time.Time) {
	w.Status = status
	w.FinalDecision = &decision
	w.FinalDecisionBy = &by
	w.FinalDecisionAt = &now
	w.CompletedAt = &now
}

// IntegrityIssue names one violated invariant.
type IntegrityIssue struct {
	Field  string `json:"field"`
	Detail string `json:"detail"`
}

// IntegrityResult is the structured outcome of an integrity check.
type IntegrityResult struct {
	WorkflowID uuid.UUID        `json:"workflowId"`
	Valid      bool             `json:"valid"`
	Issues     []IntegrityIssue `json:"issues,omitempty"`
}

// CheckIntegrity validates structural invariants of the workflow record.
func (w *Workflow) CheckIntegrity() *IntegrityResult {
	res := &IntegrityResult{WorkflowID: w.WorkflowID, Valid: true}
	add := func(field, detail string) {
		res.Valid = false
		res.Issues = append(res.Issues, IntegrityIssue{Field: field, Detail: detail})
	}
	if w.CurrentLevel > w.RequiredLevel {
		add("currentLevel", "currentLevel exceeds requiredLevel")
	}
	if w.RequiredLevel <= 0 {
		add("requiredLevel", "requiredLevel must be positive")
	}
	if w.Status.Terminal() && w.CompletedAt == nil {
		add("completedAt", "terminal workflow missing completedAt")
	}
	if !w.Status.Terminal() && w.CompletedAt != nil {
		add("completedAt", "non-terminal workflow has completedAt")
	}
	if len(w.ApproverRoles) == 0 {
		add("approverRoles", "approver role chain is empty")
	}
	return res
}
