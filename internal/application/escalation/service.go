package escalation

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/mock_deps.go -package=mocks . StateMachine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

// StateMachine is the subset of workflow operations the scheduler drives.
type StateMachine interface {
	EscalateWorkflow(ctx context.Context, wf *workflow.Workflow) (bool, error)
	ExpireWorkflow(ctx context.Context, wf *workflow.Workflow) error
}

// SweepResult summarizes one escalation pass.
type SweepResult struct {
	Scanned   int `json:"scanned"`
	Escalated int `json:"escalated"`
	Expired   int `json:"expired"`
	Conflicts int `json:"conflicts"`
	Errors    int `json:"errors"`
}

// Service periodically advances overdue pending workflows: escalate when the
// rule names an escalation role, expire otherwise.
type Service struct {
	wfRepo    workflow.Repository
	machine   StateMachine
	batchSize int
	logger    zerolog.Logger
	now       func() time.Time
}

// NewService creates an escalation scheduler.
func NewService(wfRepo workflow.Repository, machine StateMachine, batchSize int, logger zerolog.Logger) *Service {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Service{
		wfRepo:    wfRepo,
		machine:   machine,
		batchSize: batchSize,
		logger:    logger.With().Str("service", "escalation").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ProcessExpired sweeps overdue pending workflows once. The sweep is
// idempotent: escalation resets the due date, so an escalated workflow is not
// selected again until its new deadline lapses, and a concurrent decision on
// the same workflow shows up as a version conflict that the sweep skips.
func (s *Service) ProcessExpired(ctx context.Context) (*SweepResult, error) {
	overdue, err := s.wfRepo.ListPendingOverdue(ctx, s.now(), s.batchSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list overdue workflows: %w", err)
	}

	result := &SweepResult{Scanned: len(overdue)}
	for _, wf := range overdue {
		escalated, err := s.machine.EscalateWorkflow(ctx, wf)
		if err != nil {
			s.track(result, wf, err, "escalation failed")
			continue
		}
		if escalated {
			result.Escalated++
			continue
		}
		// No escalation role configured: the workflow's time is up.
		if err := s.machine.ExpireWorkflow(ctx, wf); err != nil {
			s.track(result, wf, err, "expiry failed")
			continue
		}
		result.Expired++
	}

	if result.Scanned > 0 {
		s.logger.Info().
			Int("scanned", result.Scanned).
			Int("escalated", result.Escalated).
			Int("expired", result.Expired).
			Int("conflicts", result.Conflicts).
			Int("errors", result.Errors).
			Msg("escalation sweep complete")
	}
	return result, nil
}

func (s *Service) track(result *SweepResult, wf *workflow.Workflow, err error, msg string) {
	if fault.IsKind(err, fault.KindConcurrency) {
		// Another actor decided the workflow mid-sweep; it will not be
		// overdue on the next pass.
		result.Conflicts++
		s.logger.Debug().
			Str("workflow_id", wf.WorkflowID.String()).
			Msg("workflow changed during sweep, skipping")
		return
	}
	result.Errors++
	s.logger.Error().Err(err).
		Str("workflow_id", wf.WorkflowID.String()).
		Msg(msg)
}

// WithClock overrides the time source in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
