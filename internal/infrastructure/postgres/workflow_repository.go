package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

const workflowColumns = `
	id, workflow_id, tenant_id, invoice_id, rule_id, amount, currency, status,
	current_level, required_level, approver_roles, parallel_approval,
	required_approvals, timeout_hours, escalate_to_role,
	initiated_by, initiated_at, due_date, escalated_to, escalated_at,
	final_decision, final_decision_by, final_decision_at, completed_at,
	bypass_reason, bypassed_by, bypassed_at, version, created_at, updated_at`

// WorkflowRepository implements workflow.Repository. Versioned updates embed
// the optimistic check in the UPDATE statement itself so a concurrent writer
// surfaces as zero rows affected, never as a silent overwrite.
type WorkflowRepository struct {
	pool *pgxpool.Pool
}

func NewWorkflowRepository(pool *pgxpool.Pool) *WorkflowRepository {
	return &WorkflowRepository{pool: pool}
}

func (r *WorkflowRepository) Create(ctx context.Context, wf *workflow.Workflow) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO approval_workflows
		(workflow_id, tenant_id, invoice_id, rule_id, amount, currency, status,
		 current_level, required_level, approver_roles, parallel_approval,
		 required_approvals, timeout_hours, escalate_to_role,
		 initiated_by, initiated_at, due_date, version, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`, wf.WorkflowID, wf.TenantID, wf.InvoiceID, wf.RuleID, wf.Amount, wf.Currency, wf.Status,
		wf.CurrentLevel, wf.RequiredLevel, wf.ApproverRoles, wf.ParallelApproval,
		wf.RequiredApprovals, wf.TimeoutHours, wf.EscalateToRole,
		wf.InitiatedBy, wf.InitiatedAt, wf.DueDate, wf.Version, wf.CreatedAt, wf.UpdatedAt)
	return err
}

func (r *WorkflowRepository) GetByID(ctx context.Context, workflowID uuid.UUID) (*workflow.Workflow, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+workflowColumns+`
		FROM approval_workflows
		WHERE workflow_id=$1
	`, workflowID)
	return scanWorkflow(row)
}

func (r *WorkflowRepository) GetByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*workflow.Workflow, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+workflowColumns+`
		FROM approval_workflows
		WHERE invoice_id=$1
	`, invoiceID)
	return scanWorkflow(row)
}

func (r *WorkflowRepository) UpdateVersioned(ctx context.Context, wf *workflow.Workflow) error {
	tag, err := r.pool.Exec(ctx, updateWorkflowSQL, updateWorkflowArgs(wf)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.Concurrency("workflow %s was modified by another user", wf.WorkflowID)
	}
	wf.Version++
	return nil
}

func (r *WorkflowRepository) ApplyAction(ctx context.Context, wf *workflow.Workflow, action *workflow.Action) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, updateWorkflowSQL, updateWorkflowArgs(wf)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.Concurrency("workflow %s was modified by another user", wf.WorkflowID)
	}
	if err := insertAction(ctx, tx, action); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	wf.Version++
	return nil
}

func (r *WorkflowRepository) ResetActions(ctx context.Context, wf *workflow.Workflow) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, updateWorkflowSQL, updateWorkflowArgs(wf)...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fault.Concurrency("workflow %s was modified by another user", wf.WorkflowID)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM approval_actions WHERE workflow_id=$1`, wf.WorkflowID); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	wf.Version++
	return nil
}

const updateWorkflowSQL = `
	UPDATE approval_workflows
	SET status=$1, current_level=$2, required_level=$3, due_date=$4,
	    escalated_to=$5, escalated_at=$6,
	    final_decision=$7, final_decision_by=$8, final_decision_at=$9,
	    completed_at=$10, bypass_reason=$11, bypassed_by=$12, bypassed_at=$13,
	    version=version+1, updated_at=$14
	WHERE workflow_id=$15 AND version=$16`

func updateWorkflowArgs(wf *workflow.Workflow) []interface{} {
	return []interface{}{
		wf.Status, wf.CurrentLevel, wf.RequiredLevel, wf.DueDate,
		wf.EscalatedTo, wf.EscalatedAt,
		wf.FinalDecision, wf.FinalDecisionBy, wf.FinalDecisionAt,
		wf.CompletedAt, wf.BypassReason, wf.BypassedBy, wf.BypassedAt,
		wf.UpdatedAt, wf.WorkflowID, wf.Version,
	}
}

func insertAction(ctx context.Context, tx pgx.Tx, action *workflow.Action) error {
	var delegationPayload, changePayload json.RawMessage
	var err error
	if action.Delegation != nil {
		if delegationPayload, err = json.Marshal(action.Delegation); err != nil {
			return err
		}
	}
	if action.ChangeRequest != nil {
		if changePayload, err = json.Marshal(action.ChangeRequest); err != nil {
			return err
		}
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO approval_actions
		(action_id, workflow_id, kind, role, level, decided_by, comments, delegation, change_request, decided_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, action.ActionID, action.WorkflowID, action.Kind, action.Role, action.Level,
		action.DecidedBy, action.Comments, delegationPayload, changePayload, action.DecidedAt)
	return err
}

func (r *WorkflowRepository) ListActions(ctx context.Context, workflowID uuid.UUID) ([]*workflow.Action, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, action_id, workflow_id, kind, role, level, decided_by, comments, delegation, change_request, decided_at
		FROM approval_actions
		WHERE workflow_id=$1
		ORDER BY decided_at ASC, id ASC
	`, workflowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var actions []*workflow.Action
	for rows.Next() {
		a, err := scanAction(rows)
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func (r *WorkflowRepository) CountDistinctApproverRoles(ctx context.Context, workflowID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(DISTINCT role)
		FROM approval_actions
		WHERE workflow_id=$1 AND kind='APPROVE'
	`, workflowID).Scan(&count)
	return count, err
}

func (r *WorkflowRepository) ListPendingOverdue(ctx context.Context, now time.Time, limit int) ([]*workflow.Workflow, error) {
	return r.list(ctx, `
		SELECT `+workflowColumns+`
		FROM approval_workflows
		WHERE status='PENDING' AND due_date < $1
		ORDER BY due_date ASC
		LIMIT $2
	`, now, limit)
}

func (r *WorkflowRepository) ListPendingDueWithin(ctx context.Context, now time.Time, horizon time.Duration, limit int) ([]*workflow.Workflow, error) {
	return r.list(ctx, `
		SELECT `+workflowColumns+`
		FROM approval_workflows
		WHERE status='PENDING' AND due_date >= $1 AND due_date <= $2
		ORDER BY due_date ASC
		LIMIT $3
	`, now, now.Add(horizon), limit)
}

func (r *WorkflowRepository) ListPending(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*workflow.Workflow, error) {
	return r.list(ctx, `
		SELECT `+workflowColumns+`
		FROM approval_workflows
		WHERE tenant_id=$1 AND status='PENDING'
		ORDER BY due_date ASC
		LIMIT $2 OFFSET $3
	`, tenantID, limit, offset)
}

func (r *WorkflowRepository) ListStale(ctx context.Context, olderThan time.Time, limit int) ([]*workflow.Workflow, error) {
	return r.list(ctx, `
		SELECT `+workflowColumns+`
		FROM approval_workflows w
		WHERE w.status='PENDING' AND w.initiated_at < $1
		  AND NOT EXISTS (SELECT 1 FROM approval_actions a WHERE a.workflow_id=w.workflow_id)
		ORDER BY w.initiated_at ASC
		LIMIT $2
	`, olderThan, limit)
}

func (r *WorkflowRepository) ListOrphaned(ctx context.Context, limit int) ([]*workflow.Workflow, error) {
	return r.list(ctx, `
		SELECT `+prefixed(workflowColumns, "w.")+`
		FROM approval_workflows w
		LEFT JOIN invoices i ON i.invoice_id = w.invoice_id
		WHERE w.status='PENDING' AND i.invoice_id IS NULL
		ORDER BY w.initiated_at ASC
		LIMIT $1
	`, limit)
}

func (r *WorkflowRepository) ListInvalidRequiredLevel(ctx context.Context, limit int) ([]*workflow.Workflow, error) {
	return r.list(ctx, `
		SELECT `+workflowColumns+`
		FROM approval_workflows
		WHERE status='PENDING' AND required_level <= 0
		ORDER BY initiated_at ASC
		LIMIT $1
	`, limit)
}

func (r *WorkflowRepository) list(ctx context.Context, sql string, args ...interface{}) ([]*workflow.Workflow, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var wfs []*workflow.Workflow
	for rows.Next() {
		wf, err := scanWorkflow(rows)
		if err != nil {
			return nil, err
		}
		wfs = append(wfs, wf)
	}
	return wfs, rows.Err()
}

func scanWorkflow(row pgx.Row) (*workflow.Workflow, error) {
	var wf workflow.Workflow
	if err := row.Scan(
		&wf.ID, &wf.WorkflowID, &wf.TenantID, &wf.InvoiceID, &wf.RuleID, &wf.Amount, &wf.Currency, &wf.Status,
		&wf.CurrentLevel, &wf.RequiredLevel, &wf.ApproverRoles, &wf.ParallelApproval,
		&wf.RequiredApprovals, &wf.TimeoutHours, &wf.EscalateToRole,
		&wf.InitiatedBy, &wf.InitiatedAt, &wf.DueDate, &wf.EscalatedTo, &wf.EscalatedAt,
		&wf.FinalDecision, &wf.FinalDecisionBy, &wf.FinalDecisionAt, &wf.CompletedAt,
		&wf.BypassReason, &wf.BypassedBy, &wf.BypassedAt, &wf.Version, &wf.CreatedAt, &wf.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &wf, nil
}

func scanAction(row pgx.Row) (*workflow.Action, error) {
	var a workflow.Action
	var delegationPayload, changePayload []byte
	if err := row.Scan(&a.ID, &a.ActionID, &a.WorkflowID, &a.Kind, &a.Role, &a.Level,
		&a.DecidedBy, &a.Comments, &delegationPayload, &changePayload, &a.DecidedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(delegationPayload) > 0 {
		a.Delegation = &workflow.DelegationGrant{}
		if err := json.Unmarshal(delegationPayload, a.Delegation); err != nil {
			return nil, err
		}
	}
	if len(changePayload) > 0 {
		a.ChangeRequest = &workflow.ChangeRequest{}
		if err := json.Unmarshal(changePayload, a.ChangeRequest); err != nil {
			return nil, err
		}
	}
	return &a, nil
}
