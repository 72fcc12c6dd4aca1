package rule

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/domain/rule"
	rulemocks "github.com/approval-hub/approval-hub/internal/domain/rule/mocks"
	"github.com/approval-hub/approval-hub/internal/domain/user"
	usermocks "github.com/approval-hub/approval-hub/internal/domain/user/mocks"
)

func newTestService(t *testing.T) (*Service, *rulemocks.MockRepository, *rulemocks.MockRoleRepository, *usermocks.MockDirectory) {
	ctrl := gomock.NewController(t)
	ruleRepo := rulemocks.NewMockRepository(ctrl)
	roleRepo := rulemocks.NewMockRoleRepository(ctrl)
	userDir := usermocks.NewMockDirectory(ctrl)
	svc := NewService(ruleRepo, roleRepo, userDir, zerolog.Nop())
	return svc, ruleRepo, roleRepo, userDir
}

func activeRule(priority int, min, max float64, createdAt time.Time) *rule.Rule {
	return &rule.Rule{
		RuleID:               uuid.New(),
		TenantID:             uuid.New(),
		Name:                 "r",
		MinAmount:            min,
		MaxAmount:            max,
		Currency:             "USD",
		RequiredApprovals:    1,
		ApproverRoles:        []string{"MANAGER"},
		ApprovalTimeoutHours: 72,
		Priority:             priority,
		IsActive:             true,
		CreatedAt:            createdAt,
	}
}

func TestService_Evaluate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("higher priority rule wins on overlap", func(t *testing.T) {
		svc, ruleRepo, _, _ := newTestService(t)
		now := time.Now().UTC()
		low := activeRule(1, 0, 100000, now)
		high := activeRule(2, 10000, 50000, now)
		// repository returns priority desc, created_at asc
		ruleRepo.EXPECT().ListActive(ctx, tenantID, "USD").Return([]*rule.Rule{high, low}, nil)

		got, err := svc.Evaluate(ctx, Request{TenantID: tenantID, Amount: 30000, Currency: "USD"})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, high.RuleID, got.RuleID)
	})

	t.Run("priority tie broken by creation order", func(t *testing.T) {
		svc, ruleRepo, _, _ := newTestService(t)
		now := time.Now().UTC()
		older := activeRule(5, 0, 100000, now.Add(-time.Hour))
		newer := activeRule(5, 0, 100000, now)
		ruleRepo.EXPECT().ListActive(ctx, tenantID, "USD").Return([]*rule.Rule{older, newer}, nil)

		got, err := svc.Evaluate(ctx, Request{TenantID: tenantID, Amount: 500, Currency: "USD"})
		require.NoError(t, err)
		assert.Equal(t, older.RuleID, got.RuleID)
	})

	t.Run("no match means no approval needed", func(t *testing.T) {
		svc, ruleRepo, _, _ := newTestService(t)
		r := activeRule(1, 10000, 50000, time.Now().UTC())
		ruleRepo.EXPECT().ListActive(ctx, tenantID, "USD").Return([]*rule.Rule{r}, nil)

		got, err := svc.Evaluate(ctx, Request{TenantID: tenantID, Amount: 500, Currency: "USD"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("condition filters a matching rule", func(t *testing.T) {
		svc, ruleRepo, _, _ := newTestService(t)
		cond := `vendor_risk == 'HIGH'`
		conditional := activeRule(9, 0, 100000, time.Now().UTC())
		conditional.Condition = &cond
		fallback := activeRule(1, 0, 100000, time.Now().UTC())
		ruleRepo.EXPECT().ListActive(ctx, tenantID, "USD").Return([]*rule.Rule{conditional, fallback}, nil).Times(2)

		got, err := svc.Evaluate(ctx, Request{
			TenantID: tenantID, Amount: 500, Currency: "USD",
			Attrs: map[string]interface{}{"vendor_risk": "LOW"},
		})
		require.NoError(t, err)
		assert.Equal(t, fallback.RuleID, got.RuleID)

		got, err = svc.Evaluate(ctx, Request{
			TenantID: tenantID, Amount: 500, Currency: "USD",
			Attrs: map[string]interface{}{"vendor_risk": "HIGH"},
		})
		require.NoError(t, err)
		assert.Equal(t, conditional.RuleID, got.RuleID)
	})

	t.Run("broken condition skips the rule instead of failing", func(t *testing.T) {
		svc, ruleRepo, _, _ := newTestService(t)
		cond := `vendor_risk ==`
		broken := activeRule(9, 0, 100000, time.Now().UTC())
		broken.Condition = &cond
		fallback := activeRule(1, 0, 100000, time.Now().UTC())
		ruleRepo.EXPECT().ListActive(ctx, tenantID, "USD").Return([]*rule.Rule{broken, fallback}, nil)

		got, err := svc.Evaluate(ctx, Request{TenantID: tenantID, Amount: 500, Currency: "USD"})
		require.NoError(t, err)
		assert.Equal(t, fallback.RuleID, got.RuleID)
	})
}

func TestService_ValidateRule(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown approver role", func(t *testing.T) {
		svc, _, roleRepo, _ := newTestService(t)
		r := activeRule(1, 0, 1000, time.Now().UTC())
		roleRepo.EXPECT().GetByName(ctx, r.TenantID, "MANAGER").Return(nil, nil)

		err := svc.ValidateRule(ctx, r)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindValidation))
	})

	t.Run("all roles resolve", func(t *testing.T) {
		svc, _, roleRepo, _ := newTestService(t)
		r := activeRule(1, 0, 1000, time.Now().UTC())
		roleRepo.EXPECT().GetByName(ctx, r.TenantID, "MANAGER").Return(&rule.Role{Name: "MANAGER"}, nil)

		assert.NoError(t, svc.ValidateRule(ctx, r))
	})

	t.Run("invalid condition expression", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		r := activeRule(1, 0, 1000, time.Now().UTC())
		cond := "amount >"
		r.Condition = &cond

		err := svc.ValidateRule(ctx, r)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindValidation))
	})
}

func TestService_EnsureRoutable(t *testing.T) {
	ctx := context.Background()

	t.Run("sequential checks only the first level", func(t *testing.T) {
		svc, _, _, userDir := newTestService(t)
		r := activeRule(1, 0, 1000, time.Now().UTC())
		r.ApproverRoles = []string{"MANAGER", "DIRECTOR"}
		userDir.EXPECT().ListActiveByRole(ctx, r.TenantID, "MANAGER").
			Return([]*user.User{{Username: "alice"}}, nil)

		assert.NoError(t, svc.EnsureRoutable(ctx, r))
	})

	t.Run("zero approvers is a configuration error", func(t *testing.T) {
		svc, _, _, userDir := newTestService(t)
		r := activeRule(1, 0, 1000, time.Now().UTC())
		userDir.EXPECT().ListActiveByRole(ctx, r.TenantID, "MANAGER").Return(nil, nil)

		err := svc.EnsureRoutable(ctx, r)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindConfiguration))
	})

	t.Run("empty approver role list is a configuration error", func(t *testing.T) {
		svc, _, _, _ := newTestService(t)
		r := activeRule(1, 0, 1000, time.Now().UTC())
		r.ApproverRoles = nil

		err := svc.EnsureRoutable(ctx, r)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindConfiguration))
	})

	t.Run("parallel checks every role", func(t *testing.T) {
		svc, _, _, userDir := newTestService(t)
		r := activeRule(1, 0, 1000, time.Now().UTC())
		r.ParallelApproval = true
		r.ApproverRoles = []string{"MANAGER", "DIRECTOR"}
		r.RequiredApprovals = 2
		userDir.EXPECT().ListActiveByRole(ctx, r.TenantID, "MANAGER").
			Return([]*user.User{{Username: "alice"}}, nil)
		userDir.EXPECT().ListActiveByRole(ctx, r.TenantID, "DIRECTOR").Return(nil, nil)

		err := svc.EnsureRoutable(ctx, r)
		assert.True(t, fault.IsKind(err, fault.KindConfiguration))
	})
}
