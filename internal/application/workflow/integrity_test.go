package workflow

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/approval-hub/approval-hub/internal/domain/audit"
	"github.com/approval-hub/approval-hub/internal/domain/rule"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

func TestService_CleanupStale(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	cutoff := f.now.Add(-720 * time.Hour)

	stale := f.pendingWorkflow([]string{"MANAGER"})
	stale.InitiatedAt = cutoff.Add(-time.Hour)
	contested := f.pendingWorkflow([]string{"MANAGER"})
	contested.InitiatedAt = cutoff.Add(-time.Hour)

	f.wfRepo.EXPECT().ListStale(ctx, cutoff, 100).
		Return([]*workflow.Workflow{stale, contested}, nil)
	f.wfRepo.EXPECT().UpdateVersioned(ctx, stale).Return(nil)
	f.wfRepo.EXPECT().UpdateVersioned(ctx, contested).Return(assert.AnError)
	f.auditor.EXPECT().RecordEvent(ctx, stale.TenantID, audit.EventWorkflowCancelled,
		"workflow", stale.WorkflowID.String(), "system", gomock.Any())

	cancelled, err := f.svc.CleanupStale(ctx, 720*time.Hour, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, cancelled)
	assert.Equal(t, workflow.StatusCancelled, stale.Status)
}

func TestService_RepairInconsistent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	broken := f.pendingWorkflow([]string{"MANAGER", "DIRECTOR"})
	broken.RequiredLevel = 0
	broken.CurrentLevel = 3

	r := &rule.Rule{
		RuleID:               broken.RuleID,
		ApproverRoles:        []string{"MANAGER", "DIRECTOR"},
		RequiredApprovals:    1,
		ApprovalTimeoutHours: 72,
	}

	f.wfRepo.EXPECT().ListInvalidRequiredLevel(ctx, 100).Return([]*workflow.Workflow{broken}, nil)
	f.rules.EXPECT().GetByID(ctx, broken.RuleID).Return(r, nil)
	f.wfRepo.EXPECT().UpdateVersioned(ctx, broken).Return(nil)
	f.auditor.EXPECT().RecordEvent(ctx, broken.TenantID, audit.EventWorkflowRepaired,
		"workflow", broken.WorkflowID.String(), "system", gomock.Any())

	repaired, err := f.svc.RepairInconsistent(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, repaired)
	assert.Equal(t, 2, broken.RequiredLevel)
	assert.Equal(t, 2, broken.CurrentLevel)
	assert.True(t, broken.CheckIntegrity().Valid)
}

func TestService_FindOrphaned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	orphan := f.pendingWorkflow([]string{"MANAGER"})

	f.wfRepo.EXPECT().ListOrphaned(ctx, 100).Return([]*workflow.Workflow{orphan}, nil)

	got, err := f.svc.FindOrphaned(ctx, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, orphan.WorkflowID, got[0].WorkflowID)
}

func TestService_ValidateIntegrity(t *testing.T) {
	f := newFixture(t)
	wf := f.pendingWorkflow([]string{"MANAGER"})
	wf.CurrentLevel = 5

	res := f.svc.ValidateIntegrity(context.Background(), wf)
	require.False(t, res.Valid)
	assert.NotEmpty(t, res.Issues)
}
