package rule

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/domain/rule"
	"github.com/approval-hub/approval-hub/internal/domain/user"
)

// Request carries the routing inputs for one invoice. The amount is already
// computed upstream; the engine only routes on it.
type Request struct {
	TenantID  uuid.UUID
	InvoiceID uuid.UUID
	Amount    float64
	Currency  string
	Attrs     map[string]interface{}
}

// Service selects the single applicable approval rule for a request.
type Service struct {
	ruleRepo rule.Repository
	roleRepo rule.RoleRepository
	userDir  user.Directory
	logger   zerolog.Logger
}

// NewService creates a rule engine service.
func NewService(ruleRepo rule.Repository, roleRepo rule.RoleRepository, userDir user.Directory, logger zerolog.Logger) *Service {
	return &Service{
		ruleRepo: ruleRepo,
		roleRepo: roleRepo,
		userDir:  userDir,
		logger:   logger.With().Str("service", "rule").Logger(),
	}
}

// Evaluate returns the single highest-priority active rule matching the
// request, or nil when no rule matches and the request needs no approval.
// Ties on priority are broken by rule creation order (earliest wins).
func (s *Service) Evaluate(ctx context.Context, req Request) (*rule.Rule, error) {
	rules, err := s.ruleRepo.ListActive(ctx, req.TenantID, req.Currency)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}

	var selected *rule.Rule
	for _, r := range rules {
		if !r.Matches(req.Amount, req.Currency) {
			continue
		}
		if r.Condition != nil {
			ok, err := EvaluateCondition(*r.Condition, conditionParams(req))
			if err != nil {
				s.logger.Warn().Err(err).
					Str("rule_id", r.RuleID.String()).
					Msg("rule condition evaluation failed; skipping rule")
				continue
			}
			if !ok {
				continue
			}
		}
		// ListActive orders by priority desc, created_at asc, so the first
		// match is the winner.
		if selected == nil {
			selected = r
		}
	}
	return selected, nil
}

// ValidateRule checks a rule before it is stored, including that every
// referenced role exists for the tenant.
func (s *Service) ValidateRule(ctx context.Context, r *rule.Rule) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if r.Condition != nil {
		if _, err := EvaluateCondition(*r.Condition, map[string]interface{}{"amount": 0.0, "currency": r.Currency}); err != nil {
			return fault.Validation("invalid rule condition: %v", err)
		}
	}
	for _, name := range r.ApproverRoles {
		role, err := s.roleRepo.GetByName(ctx, r.TenantID, name)
		if err != nil {
			return fmt.Errorf("failed to resolve role %q: %w", name, err)
		}
		if role == nil {
			return fault.Validation("unknown approver role %q", name)
		}
	}
	if r.EscalateToRole != nil {
		role, err := s.roleRepo.GetByName(ctx, r.TenantID, *r.EscalateToRole)
		if err != nil {
			return fmt.Errorf("failed to resolve escalation role: %w", err)
		}
		if role == nil {
			return fault.Validation("unknown escalation role %q", *r.EscalateToRole)
		}
	}
	return nil
}

// CreateRule validates and stores a new rule.
func (s *Service) CreateRule(ctx context.Context, r *rule.Rule) error {
	if err := s.ValidateRule(ctx, r); err != nil {
		return err
	}
	if r.RuleID == uuid.Nil {
		r.RuleID = uuid.New()
	}
	if err := s.ruleRepo.Create(ctx, r); err != nil {
		return fmt.Errorf("failed to create rule: %w", err)
	}
	s.logger.Info().
		Str("rule_id", r.RuleID.String()).
		Int("priority", r.Priority).
		Msg("approval rule created")
	return nil
}

// EnsureRoutable verifies that the rule's first chain role resolves to at
// least one active user, so no unroutable workflow is silently created.
func (s *Service) EnsureRoutable(ctx context.Context, r *rule.Rule) error {
	if len(r.ApproverRoles) == 0 {
		return fault.Configuration("rule %s has no approver roles", r.RuleID)
	}
	roles := r.ApproverRoles
	if !r.ParallelApproval {
		roles = r.ApproverRoles[:1]
	}
	for _, name := range roles {
		holders, err := s.userDir.ListActiveByRole(ctx, r.TenantID, name)
		if err != nil {
			return fmt.Errorf("failed to resolve approvers for role %q: %w", name, err)
		}
		if len(holders) == 0 {
			return fault.Configuration("rule %s resolves to zero available approvers for role %q", r.RuleID, name)
		}
	}
	return nil
}

// GetByID loads one rule.
func (s *Service) GetByID(ctx context.Context, ruleID uuid.UUID) (*rule.Rule, error) {
	return s.ruleRepo.GetByID(ctx, ruleID)
}

// List returns a tenant's rules.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*rule.Rule, error) {
	return s.ruleRepo.List(ctx, tenantID, limit, offset)
}

// Deactivate retires a rule from routing.
func (s *Service) Deactivate(ctx context.Context, ruleID uuid.UUID) error {
	return s.ruleRepo.Deactivate(ctx, ruleID)
}

func conditionParams(req Request) map[string]interface{} {
	params := map[string]interface{}{
		"amount":   req.Amount,
		"currency": req.Currency,
	}
	for k, v := range req.Attrs {
		params[k] = v
	}
	return params
}
