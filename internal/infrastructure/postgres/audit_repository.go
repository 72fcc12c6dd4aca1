package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/approval-hub/approval-hub/internal/domain/audit"
)

// AuditRepository implements audit.Repository. Append-only: there is no
// update or delete path.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Create(ctx context.Context, entry *audit.Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO audit_log
		(audit_id, tenant_id, event, entity_type, entity_id, actor, metadata, signature, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`, entry.AuditID, entry.TenantID, entry.Event, entry.EntityType, entry.EntityID,
		entry.Actor, entry.Metadata, entry.Signature, entry.CreatedAt)
	return err
}

func (r *AuditRepository) ListByEntity(ctx context.Context, entityType, entityID string) ([]*audit.Entry, error) {
	return r.list(ctx, `
		SELECT id, audit_id, tenant_id, event, entity_type, entity_id, actor, metadata, signature, created_at
		FROM audit_log
		WHERE entity_type=$1 AND entity_id=$2
		ORDER BY created_at ASC
	`, entityType, entityID)
}

func (r *AuditRepository) ListByEvent(ctx context.Context, tenantID uuid.UUID, event audit.Event, limit, offset int) ([]*audit.Entry, error) {
	return r.list(ctx, `
		SELECT id, audit_id, tenant_id, event, entity_type, entity_id, actor, metadata, signature, created_at
		FROM audit_log
		WHERE tenant_id=$1 AND event=$2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`, tenantID, event, limit, offset)
}

func (r *AuditRepository) list(ctx context.Context, sql string, args ...interface{}) ([]*audit.Entry, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []*audit.Entry
	for rows.Next() {
		e, err := scanAuditEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanAuditEntry(row pgx.Row) (*audit.Entry, error) {
	var e audit.Entry
	if err := row.Scan(&e.ID, &e.AuditID, &e.TenantID, &e.Event, &e.EntityType, &e.EntityID,
		&e.Actor, &e.Metadata, &e.Signature, &e.CreatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
