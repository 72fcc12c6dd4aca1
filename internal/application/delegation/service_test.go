package delegation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/approval-hub/approval-hub/internal/domain/delegation"
	delegationmocks "github.com/approval-hub/approval-hub/internal/domain/delegation/mocks"
	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/domain/user"
	usermocks "github.com/approval-hub/approval-hub/internal/domain/user/mocks"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

var testNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*Service, *delegationmocks.MockRepository, *usermocks.MockDirectory) {
	ctrl := gomock.NewController(t)
	repo := delegationmocks.NewMockRepository(ctrl)
	userDir := usermocks.NewMockDirectory(ctrl)
	svc := NewService(repo, userDir, zerolog.Nop()).WithClock(func() time.Time { return testNow })
	return svc, repo, userDir
}

func activeUser(roles ...string) *user.User {
	return &user.User{UserID: uuid.New(), Roles: roles, Status: user.StatusActive}
}

func validGrant(tenantID uuid.UUID, toUserID uuid.UUID) *delegation.Delegation {
	return &delegation.Delegation{
		TenantID:  tenantID,
		FromRole:  "MANAGER",
		ToUserID:  toUserID,
		Reason:    "vacation",
		StartDate: testNow.Add(-time.Hour),
		EndDate:   testNow.Add(7 * 24 * time.Hour),
		CreatedBy: "alice",
	}
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("stores a valid grant as active", func(t *testing.T) {
		svc, repo, userDir := newTestService(t)
		target := activeUser("CLERK")
		d := validGrant(tenantID, target.UserID)

		userDir.EXPECT().GetByID(ctx, target.UserID).Return(target, nil).AnyTimes()
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").Return(nil, nil).AnyTimes()
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "CLERK").Return(nil, nil).AnyTimes()
		repo.EXPECT().Create(ctx, d).Return(nil)

		require.NoError(t, svc.Create(ctx, d))
		assert.True(t, d.IsActive)
		assert.NotEqual(t, uuid.Nil, d.DelegationID)
	})

	t.Run("second active delegation for the role is refused", func(t *testing.T) {
		svc, repo, userDir := newTestService(t)
		target := activeUser("CLERK")
		d := validGrant(tenantID, target.UserID)

		userDir.EXPECT().GetByID(ctx, target.UserID).Return(target, nil)
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").
			Return(&delegation.Delegation{DelegationID: uuid.New(), IsActive: true}, nil)

		err := svc.Create(ctx, d)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindState))
		assert.Equal(t, "active delegation already exists for this role", err.Error())
	})

	t.Run("unresolvable target user", func(t *testing.T) {
		svc, _, userDir := newTestService(t)
		d := validGrant(tenantID, uuid.New())
		userDir.EXPECT().GetByID(ctx, d.ToUserID).Return(nil, nil)

		err := svc.Create(ctx, d)
		assert.True(t, fault.IsKind(err, fault.KindAuthorization))
	})

	t.Run("window must be ordered", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		d := validGrant(tenantID, uuid.New())
		d.EndDate = d.StartDate

		err := svc.Create(ctx, d)
		assert.True(t, fault.IsKind(err, fault.KindValidation))
	})

	t.Run("circular chain is refused", func(t *testing.T) {
		svc, repo, userDir := newTestService(t)
		// alice (MANAGER) delegates to bob; bob holds DIRECTOR, which is
		// already delegated to carol, who holds MANAGER again.
		bob := activeUser("DIRECTOR")
		carol := activeUser("MANAGER")
		d := validGrant(tenantID, bob.UserID)

		userDir.EXPECT().GetByID(ctx, bob.UserID).Return(bob, nil).AnyTimes()
		userDir.EXPECT().GetByID(ctx, carol.UserID).Return(carol, nil).AnyTimes()
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").Return(nil, nil)
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "DIRECTOR").
			Return(&delegation.Delegation{FromRole: "DIRECTOR", ToUserID: carol.UserID, IsActive: true}, nil)

		err := svc.Create(ctx, d)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindValidation))
		assert.Equal(t, "delegation would create a circular chain", err.Error())
	})
}

func TestService_AuthorizeDelegate(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	wf := &workflow.Workflow{TenantID: tenantID, Amount: 15000, Currency: "USD"}

	t.Run("valid grant authorizes the delegate", func(t *testing.T) {
		svc, repo, userDir := newTestService(t)
		target := activeUser("CLERK")
		d := validGrant(tenantID, target.UserID)
		d.IsActive = true

		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").Return(d, nil)
		userDir.EXPECT().GetByID(ctx, target.UserID).Return(target, nil)

		got, err := svc.AuthorizeDelegate(ctx, wf, "MANAGER", target.UserID)
		require.NoError(t, err)
		assert.Equal(t, d, got)
	})

	t.Run("no grant for the role", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").Return(nil, nil)

		_, err := svc.AuthorizeDelegate(ctx, wf, "MANAGER", uuid.New())
		assert.True(t, fault.IsKind(err, fault.KindAuthorization))
	})

	t.Run("grant held by a different user", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		d := validGrant(tenantID, uuid.New())
		d.IsActive = true
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").Return(d, nil)

		_, err := svc.AuthorizeDelegate(ctx, wf, "MANAGER", uuid.New())
		assert.True(t, fault.IsKind(err, fault.KindAuthorization))
	})

	t.Run("expired window refuses", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		target := activeUser("CLERK")
		d := validGrant(tenantID, target.UserID)
		d.IsActive = true
		d.EndDate = testNow.Add(-time.Minute)
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").Return(d, nil)

		_, err := svc.AuthorizeDelegate(ctx, wf, "MANAGER", target.UserID)
		assert.True(t, fault.IsKind(err, fault.KindAuthorization))
	})

	t.Run("amount above the cap refuses", func(t *testing.T) {
		svc, repo, userDir := newTestService(t)
		target := activeUser("CLERK")
		d := validGrant(tenantID, target.UserID)
		d.IsActive = true
		cap := 10000.0
		usd := "USD"
		d.MaxAmount = &cap
		d.Currency = &usd

		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").Return(d, nil)
		userDir.EXPECT().GetByID(ctx, target.UserID).Return(target, nil)

		_, err := svc.AuthorizeDelegate(ctx, wf, "MANAGER", target.UserID)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindAuthorization))
	})
}

func TestService_DetectCircular(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()

	t.Run("self-delegation loop is detected", func(t *testing.T) {
		svc, repo, userDir := newTestService(t)
		// bob holds MANAGER; MANAGER is delegated to bob himself.
		bob := activeUser("MANAGER")
		userDir.EXPECT().GetByID(ctx, bob.UserID).Return(bob, nil).AnyTimes()
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").
			Return(&delegation.Delegation{FromRole: "MANAGER", ToUserID: bob.UserID, IsActive: true}, nil).AnyTimes()

		circular, err := svc.DetectCircular(ctx, tenantID, bob.UserID)
		require.NoError(t, err)
		assert.True(t, circular)
	})

	t.Run("acyclic graph passes", func(t *testing.T) {
		svc, repo, userDir := newTestService(t)
		bob := activeUser("MANAGER")
		carol := activeUser("CLERK")
		userDir.EXPECT().GetByID(ctx, bob.UserID).Return(bob, nil).AnyTimes()
		userDir.EXPECT().GetByID(ctx, carol.UserID).Return(carol, nil).AnyTimes()
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "MANAGER").
			Return(&delegation.Delegation{FromRole: "MANAGER", ToUserID: carol.UserID, IsActive: true}, nil).AnyTimes()
		repo.EXPECT().GetActiveByFromRole(ctx, tenantID, "CLERK").Return(nil, nil).AnyTimes()

		circular, err := svc.DetectCircular(ctx, tenantID, bob.UserID)
		require.NoError(t, err)
		assert.False(t, circular)
	})
}

func TestService_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)
	repo.EXPECT().DeactivateExpired(ctx, testNow).Return(int64(3), nil)

	n, err := svc.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestService_Revoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revokes an existing grant", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		id := uuid.New()
		repo.EXPECT().GetByID(ctx, id).Return(&delegation.Delegation{DelegationID: id}, nil)
		repo.EXPECT().Deactivate(ctx, id).Return(nil)
		assert.NoError(t, svc.Revoke(ctx, id))
	})

	t.Run("missing grant", func(t *testing.T) {
		svc, repo, _ := newTestService(t)
		id := uuid.New()
		repo.EXPECT().GetByID(ctx, id).Return(nil, nil)
		err := svc.Revoke(ctx, id)
		assert.True(t, fault.IsKind(err, fault.KindNotFound))
	})
}
