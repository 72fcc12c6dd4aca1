package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/approval-hub/approval-hub/internal/domain/audit"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

// FindOrphaned returns pending workflows whose invoice no longer exists.
func (s *Service) FindOrphaned(ctx context.Context, limit int) ([]*workflow.Workflow, error) {
	orphans, err := s.wfRepo.ListOrphaned(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list orphaned workflows: %w", err)
	}
	for _, wf := range orphans {
		s.logger.Warn().
			Str("workflow_id", wf.WorkflowID.String()).
			Str("invoice_id", wf.InvoiceID.String()).
			Msg("workflow references missing invoice")
	}
	return orphans, nil
}

// CleanupStale auto-cancels pending workflows older than the threshold with
// zero recorded actions.
func (s *Service) CleanupStale(ctx context.Context, olderThan time.Duration, limit int) (int, error) {
	cutoff := s.now().Add(-olderThan)
	stale, err := s.wfRepo.ListStale(ctx, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale workflows: %w", err)
	}
	cancelled := 0
	for _, wf := range stale {
		if err := wf.Cancel("stale workflow with no recorded activity", "system", s.now()); err != nil {
			continue
		}
		if err := s.wfRepo.UpdateVersioned(ctx, wf); err != nil {
			s.logger.Error().Err(err).
				Str("workflow_id", wf.WorkflowID.String()).
				Msg("failed to cancel stale workflow")
			continue
		}
		s.auditor.RecordEvent(ctx, wf.TenantID, audit.EventWorkflowCancelled, entityTypeWorkflow, wf.WorkflowID.String(), "system",
			map[string]interface{}{"reason": "stale", "initiatedAt": wf.InitiatedAt})
		cancelled++
	}
	if cancelled > 0 {
		s.logger.Info().Int("count", cancelled).Msg("stale workflows cancelled")
	}
	return cancelled, nil
}

// RepairInconsistent corrects workflows whose required level is invalid from
// their rule's current configuration.
func (s *Service) RepairInconsistent(ctx context.Context, limit int) (int, error) {
	broken, err := s.wfRepo.ListInvalidRequiredLevel(ctx, limit)
	if err != nil {
		return 0, fmt.Errorf("failed to list inconsistent workflows: %w", err)
	}
	repaired := 0
	for _, wf := range broken {
		r, err := s.rules.GetByID(ctx, wf.RuleID)
		if err != nil || r == nil {
			s.logger.Error().Err(err).
				Str("workflow_id", wf.WorkflowID.String()).
				Str("rule_id", wf.RuleID.String()).
				Msg("cannot repair workflow, rule unavailable")
			continue
		}
		before := wf.RequiredLevel
		wf.RequiredLevel = r.ChainLength()
		if wf.CurrentLevel > wf.RequiredLevel {
			wf.CurrentLevel = wf.RequiredLevel
		}
		wf.UpdatedAt = s.now()
		if err := s.wfRepo.UpdateVersioned(ctx, wf); err != nil {
			s.logger.Error().Err(err).
				Str("workflow_id", wf.WorkflowID.String()).
				Msg("failed to repair workflow")
			continue
		}
		s.auditor.RecordEvent(ctx, wf.TenantID, audit.EventWorkflowRepaired, entityTypeWorkflow, wf.WorkflowID.String(), "system",
			map[string]interface{}{"requiredLevelBefore": before, "requiredLevelAfter": wf.RequiredLevel})
		repaired++
	}
	return repaired, nil
}

// ValidateIntegrity runs the structural invariant checks on one workflow.
func (s *Service) ValidateIntegrity(ctx context.Context, wf *workflow.Workflow) *workflow.IntegrityResult {
	res := wf.CheckIntegrity()
	if !res.Valid {
		s.logger.Warn().
			Str("workflow_id", wf.WorkflowID.String()).
			Int("issues", len(res.Issues)).
			Msg("workflow failed integrity validation")
	}
	return res
}
