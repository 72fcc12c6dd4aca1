package delegation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/approval-hub/approval-hub/internal/domain/delegation"
	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/domain/user"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

// Service validates, tracks, and expires grants of approval authority.
type Service struct {
	repo    delegation.Repository
	userDir user.Directory
	logger  zerolog.Logger
	now     func() time.Time
}

// NewService creates a delegation manager.
func NewService(repo delegation.Repository, userDir user.Directory, logger zerolog.Logger) *Service {
	return &Service{
		repo:    repo,
		userDir: userDir,
		logger:  logger.With().Str("service", "delegation").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new grant. At most one active delegation may exist per
// role; a second one is rejected outright rather than queued.
func (s *Service) Create(ctx context.Context, d *delegation.Delegation) error {
	if d.FromRole == "" {
		return fault.Validation("fromRole is required")
	}
	if d.ToUserID == uuid.Nil {
		return fault.Validation("delegation target user is required")
	}
	if !d.EndDate.After(d.StartDate) {
		return fault.Validation("endDate must be after startDate")
	}

	target, err := s.userDir.GetByID(ctx, d.ToUserID)
	if err != nil {
		return fmt.Errorf("failed to resolve delegation target: %w", err)
	}
	if target == nil || !target.Active() {
		return fault.Authorization("delegation target user cannot be resolved")
	}

	existing, err := s.repo.GetActiveByFromRole(ctx, d.TenantID, d.FromRole)
	if err != nil {
		return fmt.Errorf("failed to check existing delegation: %w", err)
	}
	if existing != nil {
		return fault.State("active delegation already exists for this role")
	}

	circular, err := s.detectCircular(ctx, d.TenantID, d.FromRole, d.ToUserID)
	if err != nil {
		return err
	}
	if circular {
		return fault.Validation("delegation would create a circular chain")
	}

	if d.DelegationID == uuid.Nil {
		d.DelegationID = uuid.New()
	}
	d.IsActive = true
	if err := s.repo.Create(ctx, d); err != nil {
		return fmt.Errorf("failed to create delegation: %w", err)
	}
	s.logger.Info().
		Str("delegation_id", d.DelegationID.String()).
		Str("from_role", d.FromRole).
		Str("to_user", d.ToUserID.String()).
		Msg("delegation created")
	return nil
}

// Validate reports whether a grant is currently usable: the target user
// resolves and now falls inside the grant window.
func (s *Service) Validate(ctx context.Context, d *delegation.Delegation) (bool, error) {
	if d == nil || !d.IsActive {
		return false, nil
	}
	if !d.WithinWindow(s.now()) {
		return false, nil
	}
	target, err := s.userDir.GetByID(ctx, d.ToUserID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve delegation target: %w", err)
	}
	if target == nil || !target.Active() {
		return false, nil
	}
	return true, nil
}

// CanDelegateWorkflow reports whether the grant's amount cap admits the
// workflow.
func (s *Service) CanDelegateWorkflow(d *delegation.Delegation, wf *workflow.Workflow) bool {
	return d.Covers(wf.Amount, wf.Currency)
}

// AuthorizeDelegate resolves the active delegation that lets userID act for
// role on the workflow. Returns an authorization fault when no usable grant
// exists or the amount exceeds the grant's cap.
func (s *Service) AuthorizeDelegate(ctx context.Context, wf *workflow.Workflow, role string, userID uuid.UUID) (*delegation.Delegation, error) {
	d, err := s.repo.GetActiveByFromRole(ctx, wf.TenantID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to look up delegation: %w", err)
	}
	if d == nil || d.ToUserID != userID {
		return nil, fault.Authorization("no active delegation grants %s authority for role %s", userID, role)
	}
	ok, err := s.Validate(ctx, d)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fault.Authorization("delegation for role %s is not currently valid", role)
	}
	if !s.CanDelegateWorkflow(d, wf) {
		return nil, fault.Authorization("workflow amount %.2f %s exceeds delegation cap", wf.Amount, wf.Currency)
	}
	return d, nil
}

// TrackUsage records one successful delegated action against the grant.
func (s *Service) TrackUsage(ctx context.Context, delegationID uuid.UUID) error {
	if err := s.repo.IncrementUsage(ctx, delegationID, s.now()); err != nil {
		return fmt.Errorf("failed to track delegation usage: %w", err)
	}
	return nil
}

// DetectCircular reports whether the user's delegation graph revisits a
// role already on the path.
func (s *Service) DetectCircular(ctx context.Context, tenantID, userID uuid.UUID) (bool, error) {
	u, err := s.userDir.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve user: %w", err)
	}
	if u == nil {
		return false, nil
	}
	for _, role := range u.Roles {
		circular, err := s.detectCircular(ctx, tenantID, role, userID)
		if err != nil {
			return false, err
		}
		if circular {
			return true, nil
		}
	}
	return false, nil
}

// detectCircular walks fromRole -> toUser -> toUser's roles -> ... with a
// visited set so malformed data cannot loop forever.
func (s *Service) detectCircular(ctx context.Context, tenantID uuid.UUID, fromRole string, toUserID uuid.UUID) (bool, error) {
	visitedRoles := map[string]bool{fromRole: true}
	visitedUsers := map[uuid.UUID]bool{}

	frontier := []uuid.UUID{toUserID}
	for len(frontier) > 0 {
		uid := frontier[0]
		frontier = frontier[1:]
		if visitedUsers[uid] {
			continue
		}
		visitedUsers[uid] = true

		u, err := s.userDir.GetByID(ctx, uid)
		if err != nil {
			return false, fmt.Errorf("failed to resolve user in delegation graph: %w", err)
		}
		if u == nil {
			continue
		}
		for _, role := range u.Roles {
			if visitedRoles[role] {
				return true, nil
			}
			visitedRoles[role] = true
			d, err := s.repo.GetActiveByFromRole(ctx, tenantID, role)
			if err != nil {
				return false, fmt.Errorf("failed to walk delegation edge: %w", err)
			}
			if d != nil {
				frontier = append(frontier, d.ToUserID)
			}
		}
	}
	return false, nil
}

// CleanupExpired deactivates grants whose end date has passed.
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	n, err := s.repo.DeactivateExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup expired delegations: %w", err)
	}
	if n > 0 {
		s.logger.Info().Int64("count", n).Msg("expired delegations deactivated")
	}
	return n, nil
}

// Revoke deactivates a grant before its end date.
func (s *Service) Revoke(ctx context.Context, delegationID uuid.UUID) error {
	d, err := s.repo.GetByID(ctx, delegationID)
	if err != nil {
		return fmt.Errorf("failed to load delegation: %w", err)
	}
	if d == nil {
		return fault.NotFound("delegation not found: %s", delegationID)
	}
	return s.repo.Deactivate(ctx, delegationID)
}

// ListActive returns a tenant's active grants.
func (s *Service) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*delegation.Delegation, error) {
	return s.repo.ListActive(ctx, tenantID)
}

// WithClock overrides the time source in tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
