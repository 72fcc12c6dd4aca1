package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/approval-hub/approval-hub/internal/domain/delegation"
)

const delegationColumns = `
	id, delegation_id, tenant_id, from_role, to_user_id, reason,
	start_date, end_date, max_amount, currency, is_active,
	usage_count, last_used_at, created_by, created_at`

// DelegationRepository implements delegation.Repository. A partial unique
// index on (tenant_id, from_role) WHERE is_active enforces the at-most-one
// active delegation invariant at the storage level too.
type DelegationRepository struct {
	pool *pgxpool.Pool
}

func NewDelegationRepository(pool *pgxpool.Pool) *DelegationRepository {
	return &DelegationRepository{pool: pool}
}

func (r *DelegationRepository) Create(ctx context.Context, d *delegation.Delegation) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO approval_delegations
		(delegation_id, tenant_id, from_role, to_user_id, reason,
		 start_date, end_date, max_amount, currency, is_active, usage_count, created_by, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,0,$11,NOW())
	`, d.DelegationID, d.TenantID, d.FromRole, d.ToUserID, d.Reason,
		d.StartDate, d.EndDate, d.MaxAmount, d.Currency, d.IsActive, d.CreatedBy)
	return err
}

func (r *DelegationRepository) GetByID(ctx context.Context, delegationID uuid.UUID) (*delegation.Delegation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+delegationColumns+`
		FROM approval_delegations
		WHERE delegation_id=$1
	`, delegationID)
	return scanDelegation(row)
}

func (r *DelegationRepository) GetActiveByFromRole(ctx context.Context, tenantID uuid.UUID, fromRole string) (*delegation.Delegation, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+delegationColumns+`
		FROM approval_delegations
		WHERE tenant_id=$1 AND from_role=$2 AND is_active=TRUE
	`, tenantID, fromRole)
	return scanDelegation(row)
}

func (r *DelegationRepository) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*delegation.Delegation, error) {
	return r.list(ctx, `
		SELECT `+delegationColumns+`
		FROM approval_delegations
		WHERE tenant_id=$1 AND is_active=TRUE
		ORDER BY created_at DESC
	`, tenantID)
}

func (r *DelegationRepository) ListActiveByToUser(ctx context.Context, tenantID, toUserID uuid.UUID) ([]*delegation.Delegation, error) {
	return r.list(ctx, `
		SELECT `+delegationColumns+`
		FROM approval_delegations
		WHERE tenant_id=$1 AND to_user_id=$2 AND is_active=TRUE
		ORDER BY created_at DESC
	`, tenantID, toUserID)
}

func (r *DelegationRepository) Deactivate(ctx context.Context, delegationID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE approval_delegations SET is_active=FALSE WHERE delegation_id=$1
	`, delegationID)
	return err
}

func (r *DelegationRepository) DeactivateExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE approval_delegations SET is_active=FALSE
		WHERE is_active=TRUE AND end_date < $1
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *DelegationRepository) IncrementUsage(ctx context.Context, delegationID uuid.UUID, usedAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE approval_delegations
		SET usage_count=usage_count+1, last_used_at=$1
		WHERE delegation_id=$2
	`, usedAt, delegationID)
	return err
}

func (r *DelegationRepository) list(ctx context.Context, sql string, args ...interface{}) ([]*delegation.Delegation, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ds []*delegation.Delegation
	for rows.Next() {
		d, err := scanDelegation(rows)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, rows.Err()
}

func scanDelegation(row pgx.Row) (*delegation.Delegation, error) {
	var d delegation.Delegation
	if err := row.Scan(
		&d.ID, &d.DelegationID, &d.TenantID, &d.FromRole, &d.ToUserID, &d.Reason,
		&d.StartDate, &d.EndDate, &d.MaxAmount, &d.Currency, &d.IsActive,
		&d.UsageCount, &d.LastUsedAt, &d.CreatedBy, &d.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}
