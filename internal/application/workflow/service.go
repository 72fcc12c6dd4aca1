package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	rulesvc "github.com/approval-hub/approval-hub/internal/application/rule"
	"github.com/approval-hub/approval-hub/internal/domain/audit"
	"github.com/approval-hub/approval-hub/internal/domain/delegation"
	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/domain/invoice"
	"github.com/approval-hub/approval-hub/internal/domain/notification"
	"github.com/approval-hub/approval-hub/internal/domain/user"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

const entityTypeWorkflow = "workflow"

// Service owns the approval workflow lifecycle: creation, level advancement,
// terminal decisions, cancellation, emergency bypass, and integrity repair.
type Service struct {
	wfRepo      workflow.Repository
	invoiceRepo invoice.Repository
	userDir     user.Directory
	rules       RuleEngine
	delegations DelegationManager
	notifier    Notifier
	auditor     Auditor
	bypassRoles map[string]bool
	logger      zerolog.Logger
	now         func() time.Time
}

// NewService creates the workflow state machine. bypassRoles names the roles
// whose holders may invoke emergency bypass.
func NewService(
	wfRepo workflow.Repository,
	invoiceRepo invoice.Repository,
	userDir user.Directory,
	rules RuleEngine,
	delegations DelegationManager,
	notifier Notifier,
	auditor Auditor,
	bypassRoles []string,
	logger zerolog.Logger,
) *Service {
	allowed := make(map[string]bool, len(bypassRoles))
	for _, r := range bypassRoles {
		allowed[r] = true
	}
	return &Service{
		wfRepo:      wfRepo,
		invoiceRepo: invoiceRepo,
		userDir:     userDir,
		rules:       rules,
		delegations: delegations,
		notifier:    notifier,
		auditor:     auditor,
		bypassRoles: allowed,
		logger:      logger.With().Str("service", "workflow").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// CreateRequest carries the inputs for workflow creation. Attrs are optional
// routing attributes consumed by rule conditions.
type CreateRequest struct {
	TenantID    uuid.UUID              `json:"tenantId"`
	InvoiceID   uuid.UUID              `json:"invoiceId"`
	InitiatedBy string                 `json:"initiatedBy"`
	Attrs       map[string]interface{} `json:"attrs,omitempty"`
}

// Create routes an invoice into approval. A nil workflow with nil error means
// no rule matched and the invoice needs no approval. Creation fails when the
// invoice is missing or terminal, a workflow already exists for it, or the
// selected rule resolves to zero available approvers.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*workflow.Workflow, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice: %w", err)
	}
	if inv == nil {
		return nil, fault.NotFound("invoice not found: %s", req.InvoiceID)
	}
	if inv.Disposition.Terminal() {
		return nil, fault.State("invoice %s is %s and cannot enter approval", inv.InvoiceID, inv.Disposition)
	}

	existing, err := s.wfRepo.GetByInvoiceID(ctx, req.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing workflow: %w", err)
	}
	if existing != nil {
		return nil, fault.State("workflow already exists for invoice %s", req.InvoiceID)
	}

	r, err := s.rules.Evaluate(ctx, rulesvc.Request{
		TenantID:  req.TenantID,
		InvoiceID: req.InvoiceID,
		Amount:    inv.Amount,
		Currency:  inv.Currency,
		Attrs:     req.Attrs,
	})
	if err != nil {
		return nil, fmt.Errorf("rule evaluation failed: %w", err)
	}
	if r == nil {
		s.logger.Info().
			Str("invoice_id", req.InvoiceID.String()).
			Msg("no rule matched, invoice requires no approval")
		return nil, nil
	}
	if err := s.rules.EnsureRoutable(ctx, r); err != nil {
		return nil, err
	}

	now := s.now()
	wf := &workflow.Workflow{
		WorkflowID:        uuid.New(),
		TenantID:          req.TenantID,
		InvoiceID:         req.InvoiceID,
		RuleID:            r.RuleID,
		Amount:            inv.Amount,
		Currency:          inv.Currency,
		Status:            workflow.StatusPending,
		CurrentLevel:      0,
		RequiredLevel:     r.ChainLength(),
		ApproverRoles:     r.ApproverRoles,
		ParallelApproval:  r.ParallelApproval,
		RequiredApprovals: r.RequiredApprovals,
		TimeoutHours:      r.ApprovalTimeoutHours,
		EscalateToRole:    r.EscalateToRole,
		InitiatedBy:       req.InitiatedBy,
		InitiatedAt:       now,
		DueDate:           workflow.CalculateDueDate(now, r.ApprovalTimeoutHours),
		Version:           1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.wfRepo.Create(ctx, wf); err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}
	s.logger.Info().
		Str("workflow_id", wf.WorkflowID.String()).
		Str("rule_id", r.RuleID.String()).
		Int("required_level", wf.RequiredLevel).
		Msg("approval workflow created")

	s.notifyApprovalRequired(wf)
	return wf, nil
}

// ProcessAction applies one approver decision. The actor must hold the
// action's role or hold a valid delegation for it. Terminal workflows reject
// all actions with a state error; a version conflict surfaces as a retryable
// concurrency fault.
func (s *Service) ProcessAction(ctx context.Context, workflowID uuid.UUID, action *workflow.Action) (*workflow.Workflow, error) {
	if err := action.Validate(); err != nil {
		return nil, err
	}
	wf, err := s.load(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if err := wf.CanAct(); err != nil {
		return nil, err
	}

	actor, usedDelegation, err := s.authorizeActor(ctx, wf, action)
	if err != nil {
		return nil, err
	}

	action.WorkflowID = wf.WorkflowID
	action.DecidedAt = s.now()

	switch action.Kind {
	case workflow.ActionApprove:
		err = s.applyApprove(ctx, wf, action)
	case workflow.ActionReject:
		err = s.applyReject(ctx, wf, action)
	case workflow.ActionDelegate:
		err = s.applyDelegate(ctx, wf, action, actor)
	case workflow.ActionRequestChanges:
		err = s.applyRequestChanges(ctx, wf, action)
	default:
		err = fault.Validation("unknown action kind %q", action.Kind)
	}
	if err != nil {
		return nil, err
	}

	if usedDelegation != nil {
		if err := s.delegations.TrackUsage(ctx, usedDelegation.DelegationID); err != nil {
			s.logger.Error().Err(err).
				Str("delegation_id", usedDelegation.DelegationID.String()).
				Msg("failed to track delegation usage")
		}
	}
	return wf, nil
}

// authorizeActor resolves the acting user and verifies role authority,
// falling back to an active delegation when the user is not a role holder.
func (s *Service) authorizeActor(ctx context.Context, wf *workflow.Workflow, action *workflow.Action) (*user.User, *delegation.Delegation, error) {
	actor, err := s.userDir.GetByUsername(ctx, wf.TenantID, action.DecidedBy)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve actor: %w", err)
	}
	if actor == nil || !actor.Active() {
		return nil, nil, fault.Authorization("actor %q cannot be resolved", action.DecidedBy)
	}
	if actor.HasRole(action.Role) {
		return actor, nil, nil
	}
	d, err := s.delegations.AuthorizeDelegate(ctx, wf, action.Role, actor.UserID)
	if err != nil {
		return nil, nil, err
	}
	return actor, d, nil
}

func (s *Service) applyApprove(ctx context.Context, wf *workflow.Workflow, action *workflow.Action) error {
	if wf.EscalatedTo != nil {
		return s.applyEscalatedApprove(ctx, wf, action)
	}
	if wf.ParallelApproval {
		return s.applyParallelApprove(ctx, wf, action)
	}
	next, ok := wf.NextRole()
	if !ok {
		return fault.State("no remaining approval level on workflow %s", wf.WorkflowID)
	}
	if action.Role != next {
		return fault.State("approval out of order: expected role %s, got %s", next, action.Role)
	}
	if err := wf.RecordSequentialApproval(action.Level, action.DecidedBy, action.DecidedAt); err != nil {
		return err
	}
	if err := s.wfRepo.ApplyAction(ctx, wf, action); err != nil {
		return fmt.Errorf("failed to apply approval: %w", err)
	}
	if wf.Status == workflow.StatusApproved {
		s.notifyDecision(wf, notification.TypeApproved)
	} else {
		s.notifyApprovalRequired(wf)
	}
	return nil
}

// applyEscalatedApprove handles approval after escalation: only the escalation
// target may decide, and its single approval completes the workflow.
func (s *Service) applyEscalatedApprove(ctx context.Context, wf *workflow.Workflow, action *workflow.Action) error {
	if action.Role != *wf.EscalatedTo {
		return fault.State("workflow %s is escalated: expected role %s, got %s", wf.WorkflowID, *wf.EscalatedTo, action.Role)
	}
	if err := wf.RecordEscalatedApproval(action.DecidedBy, action.DecidedAt); err != nil {
		return err
	}
	if err := s.wfRepo.ApplyAction(ctx, wf, action); err != nil {
		return fmt.Errorf("failed to apply approval: %w", err)
	}
	s.notifyDecision(wf, notification.TypeApproved)
	return nil
}

func (s *Service) applyParallelApprove(ctx context.Context, wf *workflow.Workflow, action *workflow.Action) error {
	if !containsRole(wf.ApproverRoles, action.Role) {
		return fault.State("role %s is not part of workflow %s approval set", action.Role, wf.WorkflowID)
	}
	if err := s.wfRepo.ApplyAction(ctx, wf, action); err != nil {
		return fmt.Errorf("failed to record approval: %w", err)
	}
	approved, err := s.wfRepo.CountDistinctApproverRoles(ctx, wf.WorkflowID)
	if err != nil {
		return fmt.Errorf("failed to count approvals: %w", err)
	}
	if approved < wf.RequiredApprovals {
		return nil
	}
	if err := wf.FinalizeApproved(action.DecidedBy, action.DecidedAt); err != nil {
		return err
	}
	if err := s.wfRepo.UpdateVersioned(ctx, wf); err != nil {
		return fmt.Errorf("failed to finalize workflow: %w", err)
	}
	s.notifyDecision(wf, notification.TypeApproved)
	return nil
}

func (s *Service) applyReject(ctx context.Context, wf *workflow.Workflow, action *workflow.Action) error {
	if !mayDecide(wf, action.Role) {
		return fault.Authorization("role %s cannot decide workflow %s", action.Role, wf.WorkflowID)
	}
	if err := wf.Reject(action.DecidedBy, action.DecidedAt); err != nil {
		return err
	}
	if err := s.wfRepo.ApplyAction(ctx, wf, action); err != nil {
		return fmt.Errorf("failed to apply rejection: %w", err)
	}
	s.notifyDecision(wf, notification.TypeRejected)
	return nil
}

// applyDelegate records the action and creates the grant. An invalid grant
// rejects the whole action with an authorization fault per policy: a failed
// delegation must not leave a recorded action behind.
func (s *Service) applyDelegate(ctx context.Context, wf *workflow.Workflow, action *workflow.Action, actor *user.User) error {
	if !actor.HasRole(action.Role) {
		return fault.Authorization("only a holder of role %s may delegate it", action.Role)
	}
	grant := &delegation.Delegation{
		TenantID:  wf.TenantID,
		FromRole:  action.Role,
		ToUserID:  action.Delegation.ToUserID,
		Reason:    action.Delegation.Reason,
		StartDate: action.DecidedAt,
		EndDate:   action.Delegation.ExpiresAt,
		CreatedBy: action.DecidedBy,
	}
	if err := s.delegations.Create(ctx, grant); err != nil {
		if fault.KindOf(err) != "" {
			return fault.Authorization("delegation rejected: %v", err)
		}
		return err
	}
	wf.UpdatedAt = action.DecidedAt
	if err := s.wfRepo.ApplyAction(ctx, wf, action); err != nil {
		return fmt.Errorf("failed to record delegation action: %w", err)
	}
	return nil
}

func (s *Service) applyRequestChanges(ctx context.Context, wf *workflow.Workflow, action *workflow.Action) error {
	if !mayDecide(wf, action.Role) {
		return fault.Authorization("role %s cannot decide workflow %s", action.Role, wf.WorkflowID)
	}
	wf.UpdatedAt = action.DecidedAt
	if err := s.wfRepo.ApplyAction(ctx, wf, action); err != nil {
		return fmt.Errorf("failed to record change request: %w", err)
	}
	details := action.ChangeRequest.Details
	go func(wf workflow.Workflow) {
		if err := s.notifier.SendChangesRequested(context.Background(), &wf, details); err != nil {
			s.logger.Error().Err(err).
				Str("workflow_id", wf.WorkflowID.String()).
				Msg("failed to send changes-requested notification")
		}
	}(*wf)
	return nil
}

// HandleChangesImplemented rewinds the workflow to level zero and clears its
// recorded actions so the chain re-reviews the resubmitted invoice.
func (s *Service) HandleChangesImplemented(ctx context.Context, workflowID uuid.UUID) (*workflow.Workflow, error) {
	wf, err := s.load(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if err := wf.ResetForReReview(s.now()); err != nil {
		return nil, err
	}
	if err := s.wfRepo.ResetActions(ctx, wf); err != nil {
		return nil, fmt.Errorf("failed to reset workflow: %w", err)
	}
	s.notifyApprovalRequired(wf)
	return wf, nil
}

// EmergencyBypass force-approves a workflow outside its chain. The actor must
// hold one of the configured bypass roles; an unauthorized call mutates
// nothing. Exactly one EMERGENCY_BYPASS audit entry is written, synchronously,
// before the call returns.
func (s *Service) EmergencyBypass(ctx context.Context, workflowID uuid.UUID, reason, actor string) (*workflow.Workflow, error) {
	wf, err := s.load(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if err := s.validateBypassAuthorization(ctx, wf.TenantID, actor); err != nil {
		return nil, err
	}
	if err := wf.Bypass(reason, actor, s.now()); err != nil {
		return nil, err
	}
	if err := s.wfRepo.UpdateVersioned(ctx, wf); err != nil {
		return nil, fmt.Errorf("failed to apply bypass: %w", err)
	}

	entry := audit.NewEntry(wf.TenantID, audit.EventEmergencyBypass, entityTypeWorkflow, wf.WorkflowID.String(), actor,
		audit.Metadata(map[string]interface{}{
			"reason":    reason,
			"invoiceId": wf.InvoiceID,
			"amount":    wf.Amount,
			"currency":  wf.Currency,
		}))
	if err := s.auditor.RecordSync(ctx, entry); err != nil {
		s.logger.Error().Err(err).
			Str("workflow_id", wf.WorkflowID.String()).
			Msg("bypass applied but audit write failed")
	}
	s.notifyDecision(wf, notification.TypeApproved)
	return wf, nil
}

func (s *Service) validateBypassAuthorization(ctx context.Context, tenantID uuid.UUID, actor string) error {
	u, err := s.userDir.GetByUsername(ctx, tenantID, actor)
	if err != nil {
		return fmt.Errorf("failed to resolve bypass actor: %w", err)
	}
	if u == nil || !u.Active() {
		return fault.Authorization("actor %q is not authorized for emergency bypass", actor)
	}
	for _, role := range u.Roles {
		if s.bypassRoles[role] {
			return nil
		}
	}
	return fault.Authorization("actor %q is not authorized for emergency bypass", actor)
}

// Cancel is an administrative termination independent of current level.
func (s *Service) Cancel(ctx context.Context, workflowID uuid.UUID, reason, actor string) (*workflow.Workflow, error) {
	wf, err := s.load(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if err := wf.Cancel(reason, actor, s.now()); err != nil {
		return nil, err
	}
	if err := s.wfRepo.UpdateVersioned(ctx, wf); err != nil {
		return nil, fmt.Errorf("failed to cancel workflow: %w", err)
	}
	s.auditor.RecordEvent(ctx, wf.TenantID, audit.EventWorkflowCancelled, entityTypeWorkflow, wf.WorkflowID.String(), actor,
		map[string]interface{}{"reason": reason})
	return wf, nil
}

// EscalateWorkflow reassigns an overdue workflow to its escalation role.
// Workflows without an escalation role are left untouched and reported as
// not escalated.
func (s *Service) EscalateWorkflow(ctx context.Context, wf *workflow.Workflow) (bool, error) {
	if wf.EscalateToRole == nil || *wf.EscalateToRole == "" {
		return false, nil
	}
	lapsedRole := ""
	if next, ok := wf.NextRole(); ok {
		lapsedRole = next
	}
	toRole := *wf.EscalateToRole
	if err := wf.Escalate(toRole, s.now()); err != nil {
		return false, err
	}
	if err := s.wfRepo.UpdateVersioned(ctx, wf); err != nil {
		return false, fmt.Errorf("failed to escalate workflow: %w", err)
	}

	entry := audit.NewEntry(wf.TenantID, audit.EventEscalation, entityTypeWorkflow, wf.WorkflowID.String(), "system",
		audit.Metadata(map[string]interface{}{
			"escalatedTo": toRole,
			"lapsedRole":  lapsedRole,
			"newDueDate":  wf.DueDate,
		}))
	if err := s.auditor.RecordSync(ctx, entry); err != nil {
		s.logger.Error().Err(err).
			Str("workflow_id", wf.WorkflowID.String()).
			Msg("escalation applied but audit write failed")
	}

	go func(wf workflow.Workflow) {
		if err := s.notifier.SendEscalation(context.Background(), &wf, toRole, lapsedRole); err != nil {
			s.logger.Error().Err(err).
				Str("workflow_id", wf.WorkflowID.String()).
				Msg("failed to send escalation notification")
		}
	}(*wf)
	return true, nil
}

// ExpireWorkflow marks a timed-out workflow with no escalation target.
func (s *Service) ExpireWorkflow(ctx context.Context, wf *workflow.Workflow) error {
	if err := wf.Expire(s.now()); err != nil {
		return err
	}
	if err := s.wfRepo.UpdateVersioned(ctx, wf); err != nil {
		return fmt.Errorf("failed to expire workflow: %w", err)
	}
	s.auditor.RecordEvent(ctx, wf.TenantID, audit.EventWorkflowExpired, entityTypeWorkflow, wf.WorkflowID.String(), "system", nil)
	return nil
}

// PendingForUser returns pending workflows awaiting a role the user holds,
// directly or through an active delegation.
func (s *Service) PendingForUser(ctx context.Context, tenantID, userID uuid.UUID, limit, offset int) ([]*workflow.Workflow, error) {
	u, err := s.userDir.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}
	if u == nil {
		return nil, fault.NotFound("user not found: %s", userID)
	}
	actionable := make(map[string]bool, len(u.Roles))
	for _, r := range u.Roles {
		actionable[r] = true
	}

	pending, err := s.wfRepo.ListPending(ctx, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending workflows: %w", err)
	}
	var out []*workflow.Workflow
	for _, wf := range pending {
		if awaitsAnyOf(wf, actionable) {
			out = append(out, wf)
		}
	}
	return out, nil
}

// History is the full decision trail for one invoice.
type History struct {
	Workflow *workflow.Workflow `json:"workflow"`
	Actions  []*workflow.Action `json:"actions"`
}

// HistoryForInvoice returns the workflow and its recorded actions.
func (s *Service) HistoryForInvoice(ctx context.Context, invoiceID uuid.UUID) (*History, error) {
	wf, err := s.wfRepo.GetByInvoiceID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow: %w", err)
	}
	if wf == nil {
		return nil, fault.NotFound("no workflow for invoice %s", invoiceID)
	}
	actions, err := s.wfRepo.ListActions(ctx, wf.WorkflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to list actions: %w", err)
	}
	return &History{Workflow: wf, Actions: actions}, nil
}

// Get loads one workflow by its public identifier.
func (s *Service) Get(ctx context.Context, workflowID uuid.UUID) (*workflow.Workflow, error) {
	return s.load(ctx, workflowID)
}

func (s *Service) load(ctx context.Context, workflowID uuid.UUID) (*workflow.Workflow, error) {
	wf, err := s.wfRepo.GetByID(ctx, workflowID)
	if err != nil {
		return nil, fmt.Errorf("failed to load workflow: %w", err)
	}
	if wf == nil {
		return nil, fault.NotFound("workflow not found: %s", workflowID)
	}
	return wf, nil
}

// notifyApprovalRequired dispatches fire-and-forget; notification failure
// never affects the transition that triggered it.
func (s *Service) notifyApprovalRequired(wf *workflow.Workflow) {
	go func(wf workflow.Workflow) {
		if _, err := s.notifier.SendApprovalRequired(context.Background(), &wf); err != nil {
			s.logger.Error().Err(err).
				Str("workflow_id", wf.WorkflowID.String()).
				Msg("failed to send approval-required notification")
		}
	}(*wf)
}

func (s *Service) notifyDecision(wf *workflow.Workflow, typ notification.Type) {
	go func(wf workflow.Workflow) {
		if err := s.notifier.SendDecision(context.Background(), &wf, typ); err != nil {
			s.logger.Error().Err(err).
				Str("workflow_id", wf.WorkflowID.String()).
				Msg("failed to send decision notification")
		}
	}(*wf)
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

// mayDecide reports whether the role sits in the workflow's decision set: any
// approver chain role, or the escalation target once escalated.
func mayDecide(wf *workflow.Workflow, role string) bool {
	if wf.EscalatedTo != nil && role == *wf.EscalatedTo {
		return true
	}
	return containsRole(wf.ApproverRoles, role)
}

// awaitsAnyOf reports whether any of the roles can act on the workflow now:
// the next chain role in sequential mode, any approver role in parallel mode,
// or the escalation target after escalation.
func awaitsAnyOf(wf *workflow.Workflow, roles map[string]bool) bool {
	if wf.EscalatedTo != nil {
		return roles[*wf.EscalatedTo]
	}
	if wf.ParallelApproval {
		for _, r := range wf.ApproverRoles {
			if roles[r] {
				return true
			}
		}
		return false
	}
	next, ok := wf.NextRole()
	return ok && roles[next]
}

// WithClock overrides the time source in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
