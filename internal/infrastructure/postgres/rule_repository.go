package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/approval-hub/approval-hub/internal/domain/rule"
)

const ruleColumns = `
	id, rule_id, tenant_id, name, min_amount, max_amount, currency,
	required_approvals, approver_roles, parallel_approval, approval_timeout_hours,
	escalate_to_role, priority, condition, is_active, created_at, updated_at`

// RuleRepository implements rule.Repository.
type RuleRepository struct {
	pool *pgxpool.Pool
}

func NewRuleRepository(pool *pgxpool.Pool) *RuleRepository {
	return &RuleRepository{pool: pool}
}

func (r *RuleRepository) Create(ctx context.Context, rl *rule.Rule) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO approval_rules
		(rule_id, tenant_id, name, min_amount, max_amount, currency,
		 required_approvals, approver_roles, parallel_approval, approval_timeout_hours,
		 escalate_to_role, priority, condition, is_active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,NOW(),NOW())
	`, rl.RuleID, rl.TenantID, rl.Name, rl.MinAmount, rl.MaxAmount, rl.Currency,
		rl.RequiredApprovals, rl.ApproverRoles, rl.ParallelApproval, rl.ApprovalTimeoutHours,
		rl.EscalateToRole, rl.Priority, rl.Condition, rl.IsActive)
	return err
}

func (r *RuleRepository) Update(ctx context.Context, rl *rule.Rule) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE approval_rules
		SET name=$1, min_amount=$2, max_amount=$3, currency=$4,
		    required_approvals=$5, approver_roles=$6, parallel_approval=$7,
		    approval_timeout_hours=$8, escalate_to_role=$9, priority=$10,
		    condition=$11, is_active=$12, updated_at=NOW()
		WHERE rule_id=$13
	`, rl.Name, rl.MinAmount, rl.MaxAmount, rl.Currency,
		rl.RequiredApprovals, rl.ApproverRoles, rl.ParallelApproval,
		rl.ApprovalTimeoutHours, rl.EscalateToRole, rl.Priority,
		rl.Condition, rl.IsActive, rl.RuleID)
	return err
}

func (r *RuleRepository) GetByID(ctx context.Context, ruleID uuid.UUID) (*rule.Rule, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+ruleColumns+`
		FROM approval_rules
		WHERE rule_id=$1
	`, ruleID)
	return scanRule(row)
}

func (r *RuleRepository) ListActive(ctx context.Context, tenantID uuid.UUID, currency string) ([]*rule.Rule, error) {
	// Ordering carries the selection semantics: highest priority first,
	// ties broken by creation order.
	return r.list(ctx, `
		SELECT `+ruleColumns+`
		FROM approval_rules
		WHERE tenant_id=$1 AND currency=$2 AND is_active=TRUE
		ORDER BY priority DESC, created_at ASC
	`, tenantID, currency)
}

func (r *RuleRepository) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*rule.Rule, error) {
	return r.list(ctx, `
		SELECT `+ruleColumns+`
		FROM approval_rules
		WHERE tenant_id=$1
		ORDER BY priority DESC, created_at ASC
		LIMIT $2 OFFSET $3
	`, tenantID, limit, offset)
}

func (r *RuleRepository) Deactivate(ctx context.Context, ruleID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE approval_rules SET is_active=FALSE, updated_at=NOW() WHERE rule_id=$1
	`, ruleID)
	return err
}

func (r *RuleRepository) list(ctx context.Context, sql string, args ...interface{}) ([]*rule.Rule, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var rules []*rule.Rule
	for rows.Next() {
		rl, err := scanRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rl)
	}
	return rules, rows.Err()
}

func scanRule(row pgx.Row) (*rule.Rule, error) {
	var rl rule.Rule
	if err := row.Scan(
		&rl.ID, &rl.RuleID, &rl.TenantID, &rl.Name, &rl.MinAmount, &rl.MaxAmount, &rl.Currency,
		&rl.RequiredApprovals, &rl.ApproverRoles, &rl.ParallelApproval, &rl.ApprovalTimeoutHours,
		&rl.EscalateToRole, &rl.Priority, &rl.Condition, &rl.IsActive, &rl.CreatedAt, &rl.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rl, nil
}

// RoleRepository implements rule.RoleRepository.
type RoleRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRepository(pool *pgxpool.Pool) *RoleRepository {
	return &RoleRepository{pool: pool}
}

func (r *RoleRepository) Create(ctx context.Context, role *rule.Role) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO approval_roles (role_id, tenant_id, name, level, max_approval_amount, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
	`, role.RoleID, role.TenantID, role.Name, role.Level, role.MaxApprovalAmount)
	return err
}

func (r *RoleRepository) GetByName(ctx context.Context, tenantID uuid.UUID, name string) (*rule.Role, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, role_id, tenant_id, name, level, max_approval_amount, created_at
		FROM approval_roles
		WHERE tenant_id=$1 AND name=$2
	`, tenantID, name)
	return scanRole(row)
}

func (r *RoleRepository) List(ctx context.Context, tenantID uuid.UUID) ([]*rule.Role, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, role_id, tenant_id, name, level, max_approval_amount, created_at
		FROM approval_roles
		WHERE tenant_id=$1
		ORDER BY level ASC
	`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []*rule.Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func scanRole(row pgx.Row) (*rule.Role, error) {
	var role rule.Role
	if err := row.Scan(&role.ID, &role.RoleID, &role.TenantID, &role.Name, &role.Level, &role.MaxApprovalAmount, &role.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &role, nil
}
