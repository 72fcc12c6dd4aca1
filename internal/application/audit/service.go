package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/approval-hub/approval-hub/internal/domain/audit"
)

// Service appends immutable records of privileged actions for compliance
// review.
type Service struct {
	repo    audit.Repository
	signKey []byte
	logger  zerolog.Logger
}

// NewService creates an audit service. A nil signKey disables signing.
func NewService(repo audit.Repository, signKey []byte, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		signKey: signKey,
		logger:  logger.With().Str("service", "audit").Logger(),
	}
}

// Record appends an entry asynchronously. Used on paths where audit is a
// side effect of an already-committed transition.
func (s *Service) Record(ctx context.Context, entry *audit.Entry) {
	go func() {
		if err := s.RecordSync(context.Background(), entry); err != nil {
			s.logger.Error().Err(err).
				Str("event", string(entry.Event)).
				Str("entityId", entry.EntityID).
				Msg("failed to write audit entry")
		}
	}()
}

// RecordSync appends an entry synchronously. Bypass and escalation use this
// so exactly one entry is guaranteed before the call returns.
func (s *Service) RecordSync(ctx context.Context, entry *audit.Entry) error {
	if len(s.signKey) > 0 {
		sig, err := audit.Sign(entry, s.signKey)
		if err != nil {
			return fmt.Errorf("failed to sign audit entry: %w", err)
		}
		entry.Signature = sig
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return fmt.Errorf("failed to save audit entry: %w", err)
	}
	s.logger.Debug().
		Str("auditId", entry.AuditID.String()).
		Str("event", string(entry.Event)).
		Str("entityId", entry.EntityID).
		Str("actor", entry.Actor).
		Msg("audit entry recorded")
	return nil
}

// RecordEvent is a convenience wrapper building the entry from parts.
func (s *Service) RecordEvent(ctx context.Context, tenantID uuid.UUID, event audit.Event, entityType, entityID, actor string, metadata map[string]interface{}) {
	var raw json.RawMessage
	if len(metadata) > 0 {
		raw, _ = json.Marshal(metadata)
	}
	s.Record(ctx, audit.NewEntry(tenantID, event, entityType, entityID, actor, raw))
}

// EntityHistory returns the audit trail for one entity.
func (s *Service) EntityHistory(ctx context.Context, entityType, entityID string) ([]*audit.Entry, error) {
	entries, err := s.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}

// ListByEvent returns entries of one event type for a tenant.
func (s *Service) ListByEvent(ctx context.Context, tenantID uuid.UUID, event audit.Event, limit, offset int) ([]*audit.Entry, error) {
	return s.repo.ListByEvent(ctx, tenantID, event, limit, offset)
}
