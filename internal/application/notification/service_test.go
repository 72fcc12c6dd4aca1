package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"github.com/approval-hub/approval-hub/internal/domain/notification"
	notificationmocks "github.com/approval-hub/approval-hub/internal/domain/notification/mocks"
	"github.com/approval-hub/approval-hub/internal/domain/user"
	usermocks "github.com/approval-hub/approval-hub/internal/domain/user/mocks"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
	wfmocks "github.com/approval-hub/approval-hub/internal/domain/workflow/mocks"
)

type fixture struct {
	svc     *Service
	repo    *notificationmocks.MockRepository
	wfRepo  *wfmocks.MockRepository
	userDir *usermocks.MockDirectory
	email   *notificationmocks.MockEmailSender
	sms     *notificationmocks.MockSMSSender
	hub     *notificationmocks.MockInAppHub
	now     time.Time
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		repo:    notificationmocks.NewMockRepository(ctrl),
		wfRepo:  wfmocks.NewMockRepository(ctrl),
		userDir: usermocks.NewMockDirectory(ctrl),
		email:   notificationmocks.NewMockEmailSender(ctrl),
		sms:     notificationmocks.NewMockSMSSender(ctrl),
		hub:     notificationmocks.NewMockInAppHub(ctrl),
		now:     time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
	}
	f.svc = NewService(f.repo, f.wfRepo, f.userDir, f.email, f.sms, f.hub, zerolog.Nop()).
		WithClock(func() time.Time { return f.now }).
		WithLimiter(rate.NewLimiter(rate.Inf, 0))
	return f
}

func (f *fixture) pendingWorkflow(roles []string, due time.Time) *workflow.Workflow {
	return &workflow.Workflow{
		WorkflowID:    uuid.New(),
		TenantID:      uuid.New(),
		Status:        workflow.StatusPending,
		Amount:        15000,
		Currency:      "USD",
		ApproverRoles: roles,
		RequiredLevel: len(roles),
		TimeoutHours:  72,
		InitiatedBy:   "submitter",
		DueDate:       due,
	}
}

func approver(username string) *user.User {
	phone := "+15551234567"
	return &user.User{
		UserID:   uuid.New(),
		Username: username,
		Email:    username + "@example.com",
		Phone:    &phone,
		Roles:    []string{"MANAGER"},
		Status:   user.StatusActive,
	}
}

func TestUrgencyFor(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		due  time.Time
		want notification.Urgency
	}{
		{"due in 3 hours", now.Add(3 * time.Hour), notification.UrgencyUrgent},
		{"due in exactly 4 hours", now.Add(4 * time.Hour), notification.UrgencyUrgent},
		{"due in 12 hours", now.Add(12 * time.Hour), notification.UrgencyHigh},
		{"due in 3 days", now.Add(72 * time.Hour), notification.UrgencyNormal},
		{"already overdue", now.Add(-time.Hour), notification.UrgencyUrgent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UrgencyFor(now, tt.due))
		})
	}
}

func TestService_SendApprovalRequired(t *testing.T) {
	ctx := context.Background()

	t.Run("sequential targets the next role's holders", func(t *testing.T) {
		f := newFixture(t)
		wf := f.pendingWorkflow([]string{"MANAGER", "DIRECTOR"}, f.now.Add(72*time.Hour))
		alice := approver("alice")

		f.userDir.EXPECT().ListActiveByRole(ctx, wf.TenantID, "MANAGER").Return([]*user.User{alice}, nil)
		f.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, n *notification.Notification) error {
				assert.Equal(t, notification.TypeApprovalRequired, n.Type)
				assert.Equal(t, notification.UrgencyNormal, n.Urgency)
				assert.Equal(t, alice.UserID.String(), n.RecipientID)
				assert.ElementsMatch(t, []notification.Channel{notification.ChannelEmail, notification.ChannelInApp}, n.Channels)
				return nil
			})
		f.email.EXPECT().SendEmail(ctx, alice.Email, gomock.Any(), gomock.Any()).Return(nil)
		f.hub.EXPECT().BroadcastToUser(alice.UserID.String(), gomock.Any())
		f.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		res, err := f.svc.SendApprovalRequired(ctx, wf)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
		assert.Empty(t, res.Notes)
	})

	t.Run("urgent deadline adds the SMS channel", func(t *testing.T) {
		f := newFixture(t)
		wf := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(2*time.Hour))
		alice := approver("alice")

		f.userDir.EXPECT().ListActiveByRole(ctx, wf.TenantID, "MANAGER").Return([]*user.User{alice}, nil)
		f.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, n *notification.Notification) error {
				assert.Equal(t, notification.UrgencyUrgent, n.Urgency)
				assert.True(t, n.HasChannel(notification.ChannelSMS))
				return nil
			})
		f.email.EXPECT().SendEmail(ctx, alice.Email, gomock.Any(), gomock.Any()).Return(nil)
		f.sms.EXPECT().SendSMS(ctx, *alice.Phone, gomock.Any()).Return(nil)
		f.hub.EXPECT().BroadcastToUser(alice.UserID.String(), gomock.Any())
		f.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		_, err := f.svc.SendApprovalRequired(ctx, wf)
		require.NoError(t, err)
	})

	t.Run("zero holders is a note, not an error", func(t *testing.T) {
		f := newFixture(t)
		wf := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(72*time.Hour))
		f.userDir.EXPECT().ListActiveByRole(ctx, wf.TenantID, "MANAGER").Return(nil, nil)

		res, err := f.svc.SendApprovalRequired(ctx, wf)
		require.NoError(t, err)
		assert.Zero(t, res.Created)
		require.Len(t, res.Notes, 1)
		assert.Equal(t, "No approvers found for role MANAGER", res.Notes[0])
	})

	t.Run("escalated workflow targets the escalation role only", func(t *testing.T) {
		f := newFixture(t)
		wf := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(72*time.Hour))
		director := "DIRECTOR"
		wf.EscalatedTo = &director
		dave := approver("dave")

		f.userDir.EXPECT().ListActiveByRole(ctx, wf.TenantID, "DIRECTOR").Return([]*user.User{dave}, nil)
		f.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
		f.email.EXPECT().SendEmail(ctx, dave.Email, gomock.Any(), gomock.Any()).Return(nil)
		f.hub.EXPECT().BroadcastToUser(dave.UserID.String(), gomock.Any())
		f.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		res, err := f.svc.SendApprovalRequired(ctx, wf)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
	})

	t.Run("parallel targets every approver role", func(t *testing.T) {
		f := newFixture(t)
		wf := f.pendingWorkflow([]string{"MANAGER", "DIRECTOR"}, f.now.Add(72*time.Hour))
		wf.ParallelApproval = true
		alice := approver("alice")
		dave := approver("dave")

		f.userDir.EXPECT().ListActiveByRole(ctx, wf.TenantID, "MANAGER").Return([]*user.User{alice}, nil)
		f.userDir.EXPECT().ListActiveByRole(ctx, wf.TenantID, "DIRECTOR").Return([]*user.User{dave}, nil)
		f.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil).Times(2)
		f.email.EXPECT().SendEmail(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.hub.EXPECT().BroadcastToUser(gomock.Any(), gomock.Any()).Times(2)
		f.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.SendApprovalRequired(ctx, wf)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Created)
	})
}

func TestService_Deliver_PartialChannelFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	wf := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(2*time.Hour))
	alice := approver("alice")

	f.userDir.EXPECT().ListActiveByRole(ctx, wf.TenantID, "MANAGER").Return([]*user.User{alice}, nil)
	f.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.email.EXPECT().SendEmail(ctx, alice.Email, gomock.Any(), gomock.Any()).
		Return(errors.New("gateway unreachable"))
	f.sms.EXPECT().SendSMS(ctx, *alice.Phone, gomock.Any()).Return(nil)
	f.hub.EXPECT().BroadcastToUser(alice.UserID.String(), gomock.Any())
	f.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, n *notification.Notification) error {
			require.NotNil(t, n.EmailError)
			assert.Equal(t, "gateway unreachable", *n.EmailError)
			assert.False(t, n.EmailSent)
			assert.True(t, n.SMSSent)
			assert.True(t, n.InAppDelivered)
			require.NotNil(t, n.SentAt)
			return nil
		})

	res, err := f.svc.SendApprovalRequired(ctx, wf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
}

func TestService_SendDecision(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	wf := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(72*time.Hour))
	initiator := approver("submitter")

	f.userDir.EXPECT().GetByUsername(ctx, wf.TenantID, "submitter").Return(initiator, nil)
	f.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, n *notification.Notification) error {
			assert.Equal(t, notification.TypeApproved, n.Type)
			assert.Contains(t, n.Message, "approved")
			return nil
		})
	f.email.EXPECT().SendEmail(ctx, initiator.Email, gomock.Any(), gomock.Any()).Return(nil)
	f.hub.EXPECT().BroadcastToUser(initiator.UserID.String(), gomock.Any())
	f.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	require.NoError(t, f.svc.SendDecision(ctx, wf, notification.TypeApproved))
}

func TestService_SendReminder(t *testing.T) {
	ctx := context.Background()

	t.Run("non-pending workflow is skipped without error", func(t *testing.T) {
		f := newFixture(t)
		wf := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(time.Hour))
		wf.Status = workflow.StatusApproved

		res, err := f.svc.SendReminder(ctx, wf)
		require.NoError(t, err)
		assert.Nil(t, res)
	})

	t.Run("pending workflow reminds the next role", func(t *testing.T) {
		f := newFixture(t)
		wf := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(12*time.Hour))
		alice := approver("alice")

		f.userDir.EXPECT().ListActiveByRole(ctx, wf.TenantID, "MANAGER").Return([]*user.User{alice}, nil)
		f.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, n *notification.Notification) error {
				assert.Equal(t, notification.TypeReminder, n.Type)
				assert.Equal(t, notification.UrgencyHigh, n.Urgency)
				return nil
			})
		f.email.EXPECT().SendEmail(ctx, alice.Email, gomock.Any(), gomock.Any()).Return(nil)
		f.hub.EXPECT().BroadcastToUser(alice.UserID.String(), gomock.Any())
		f.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

		res, err := f.svc.SendReminder(ctx, wf)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Created)
	})
}

func TestNextReminderInterval(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, 24*time.Hour, NextReminderInterval(now, now.Add(48*time.Hour)))
	assert.Equal(t, 2*time.Hour, NextReminderInterval(now, now.Add(4*time.Hour)))
	assert.Equal(t, time.Duration(0), NextReminderInterval(now, now.Add(-time.Minute)))
}

func TestService_ProcessOverdueReminders(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	horizon := 24 * time.Hour

	healthy := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(12*time.Hour))
	broken := f.pendingWorkflow([]string{"MANAGER"}, f.now.Add(6*time.Hour))
	alice := approver("alice")

	f.wfRepo.EXPECT().ListPendingDueWithin(ctx, f.now, horizon, 100).
		Return([]*workflow.Workflow{healthy, broken}, nil)

	f.userDir.EXPECT().ListActiveByRole(ctx, healthy.TenantID, "MANAGER").Return([]*user.User{alice}, nil)
	f.repo.EXPECT().Create(ctx, gomock.Any()).Return(nil)
	f.email.EXPECT().SendEmail(ctx, alice.Email, gomock.Any(), gomock.Any()).Return(nil)
	f.hub.EXPECT().BroadcastToUser(alice.UserID.String(), gomock.Any())
	f.repo.EXPECT().Update(ctx, gomock.Any()).Return(nil)

	f.userDir.EXPECT().ListActiveByRole(ctx, broken.TenantID, "MANAGER").
		Return(nil, errors.New("directory unavailable"))

	res, err := f.svc.ProcessOverdueReminders(ctx, horizon, 100)
	require.NoError(t, err)
	assert.Equal(t, []string{healthy.WorkflowID.String()}, res.Successful)
	assert.Equal(t, []string{broken.WorkflowID.String()}, res.Failed)
}

func TestService_RetryFailed(t *testing.T) {
	ctx := context.Background()

	failedNotification := func(recipient *user.User, retryCount int) *notification.Notification {
		msg := "gateway unreachable"
		return &notification.Notification{
			NotificationID: uuid.New(),
			WorkflowID:     uuid.New(),
			RecipientID:    recipient.UserID.String(),
			Type:           notification.TypeApprovalRequired,
			Channels:       []notification.Channel{notification.ChannelEmail},
			EmailError:     &msg,
			RetryCount:     retryCount,
			MaxRetries:     3,
		}
	}

	t.Run("retries and clears the failure", func(t *testing.T) {
		f := newFixture(t)
		alice := approver("alice")
		n := failedNotification(alice, 1)

		f.repo.EXPECT().ListFailed(ctx, 50).Return([]*notification.Notification{n}, nil)
		f.userDir.EXPECT().GetByID(ctx, alice.UserID).Return(alice, nil)
		f.email.EXPECT().SendEmail(ctx, alice.Email, gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().Update(ctx, n).Return(nil)

		retried, err := f.svc.RetryFailed(ctx, 50)
		require.NoError(t, err)
		assert.Equal(t, 1, retried)
		assert.Equal(t, 2, n.RetryCount)
		assert.True(t, n.EmailSent)
		assert.Nil(t, n.EmailError)
	})

	t.Run("exhausted budget is not retried", func(t *testing.T) {
		f := newFixture(t)
		alice := approver("alice")
		n := failedNotification(alice, 3)

		f.repo.EXPECT().ListFailed(ctx, 50).Return([]*notification.Notification{n}, nil)

		retried, err := f.svc.RetryFailed(ctx, 50)
		require.NoError(t, err)
		assert.Zero(t, retried)
		assert.Equal(t, 3, n.RetryCount)
	})
}
