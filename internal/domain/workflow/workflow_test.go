package workflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
)

func pendingWorkflow(roles []string) *Workflow {
	now := time.Now().UTC()
	return &Workflow{
		WorkflowID:    uuid.New(),
		TenantID:      uuid.New(),
		InvoiceID:     uuid.New(),
		RuleID:        uuid.New(),
		Amount:        15000,
		Currency:      "USD",
		Status:        StatusPending,
		CurrentLevel:  0,
		RequiredLevel: len(roles),
		ApproverRoles: roles,
		TimeoutHours:  72,
		InitiatedBy:   "submitter",
		InitiatedAt:   now,
		DueDate:       CalculateDueDate(now, 72),
		Version:       1,
	}
}

func TestCalculateDueDate(t *testing.T) {
	from := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	due := CalculateDueDate(from, 72)
	assert.Equal(t, time.Date(2024, 1, 4, 10, 0, 0, 0, time.UTC), due)
}

func TestStatus_Terminal(t *testing.T) {
	tests := []struct {
		status   Status
		terminal bool
	}{
		{StatusPending, false},
		{StatusApproved, true},
		{StatusRejected, true},
		{StatusExpired, true},
		{StatusCancelled, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.terminal, tt.status.Terminal())
		})
	}
}

func TestWorkflow_RecordSequentialApproval(t *testing.T) {
	now := time.Now().UTC()

	t.Run("advances one level and stays pending", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER", "DIRECTOR"})
		err := wf.RecordSequentialApproval(1, "alice", now)
		require.NoError(t, err)
		assert.Equal(t, StatusPending, wf.Status)
		assert.Equal(t, 1, wf.CurrentLevel)
		assert.Nil(t, wf.CompletedAt)
	})

	t.Run("final level approves the workflow", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER", "DIRECTOR"})
		require.NoError(t, wf.RecordSequentialApproval(1, "alice", now))
		require.NoError(t, wf.RecordSequentialApproval(2, "bob", now))
		assert.Equal(t, StatusApproved, wf.Status)
		require.NotNil(t, wf.CompletedAt)
		require.NotNil(t, wf.FinalDecisionBy)
		assert.Equal(t, "bob", *wf.FinalDecisionBy)
	})

	t.Run("out of order approval is rejected", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER", "DIRECTOR"})
		err := wf.RecordSequentialApproval(2, "bob", now)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindState))
		assert.Equal(t, 0, wf.CurrentLevel)
	})

	t.Run("terminal workflow refuses further approvals", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER"})
		require.NoError(t, wf.RecordSequentialApproval(1, "alice", now))
		err := wf.RecordSequentialApproval(2, "bob", now)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindState))
	})
}

func TestWorkflow_Reject(t *testing.T) {
	now := time.Now().UTC()
	wf := pendingWorkflow([]string{"MANAGER", "DIRECTOR", "VP"})
	require.NoError(t, wf.RecordSequentialApproval(1, "alice", now))

	err := wf.Reject("bob", now)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, wf.Status)
	require.NotNil(t, wf.FinalDecision)
	assert.Equal(t, "REJECTED", *wf.FinalDecision)
	require.NotNil(t, wf.CompletedAt)
}

func TestWorkflow_Escalate(t *testing.T) {
	wf := pendingWorkflow([]string{"MANAGER"})
	originalDue := wf.DueDate

	// Escalation happens after the original deadline lapsed.
	err := wf.Escalate("DIRECTOR", wf.InitiatedAt.Add(73*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, wf.EscalatedTo)
	assert.Equal(t, "DIRECTOR", *wf.EscalatedTo)
	assert.Equal(t, StatusPending, wf.Status)
	assert.Equal(t, CalculateDueDate(wf.InitiatedAt.Add(73*time.Hour), 72), wf.DueDate)
	assert.True(t, wf.DueDate.After(originalDue))
	assert.LessOrEqual(t, wf.CurrentLevel, wf.RequiredLevel)
}

func TestWorkflow_RecordEscalatedApproval(t *testing.T) {
	now := time.Now().UTC()

	t.Run("escalation target approval completes the workflow", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER"})
		require.NoError(t, wf.Escalate("DIRECTOR", now))

		err := wf.RecordEscalatedApproval("dana", now.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, StatusApproved, wf.Status)
		assert.Equal(t, wf.RequiredLevel, wf.CurrentLevel)
		require.NotNil(t, wf.FinalDecisionBy)
		assert.Equal(t, "dana", *wf.FinalDecisionBy)
		require.NotNil(t, wf.CompletedAt)
	})

	t.Run("refused when the workflow was never escalated", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER"})
		err := wf.RecordEscalatedApproval("dana", now)
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindState))
	})

	t.Run("refused on a terminal workflow", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER"})
		require.NoError(t, wf.Escalate("DIRECTOR", now))
		require.NoError(t, wf.Reject("dana", now))

		err := wf.RecordEscalatedApproval("dana", now)
		assert.True(t, fault.IsKind(err, fault.KindState))
	})
}

func TestWorkflow_Expire(t *testing.T) {
	now := time.Now().UTC()
	wf := pendingWorkflow([]string{"MANAGER"})

	require.NoError(t, wf.Expire(now))
	assert.Equal(t, StatusExpired, wf.Status)
	require.NotNil(t, wf.FinalDecisionBy)
	assert.Equal(t, "system", *wf.FinalDecisionBy)

	err := wf.Expire(now)
	assert.True(t, fault.IsKind(err, fault.KindState))
}

func TestWorkflow_Bypass(t *testing.T) {
	now := time.Now().UTC()
	wf := pendingWorkflow([]string{"MANAGER", "DIRECTOR"})

	err := wf.Bypass("vendor threatening to halt shipments", "cfo", now)
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, wf.Status)
	require.NotNil(t, wf.BypassReason)
	assert.Equal(t, "vendor threatening to halt shipments", *wf.BypassReason)
	require.NotNil(t, wf.BypassedBy)
	assert.Equal(t, "cfo", *wf.BypassedBy)
}

func TestWorkflow_ResetForReReview(t *testing.T) {
	now := time.Now().UTC()
	wf := pendingWorkflow([]string{"MANAGER", "DIRECTOR"})
	require.NoError(t, wf.RecordSequentialApproval(1, "alice", now))
	escalated := "DIRECTOR"
	wf.EscalatedTo = &escalated

	err := wf.ResetForReReview(now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, wf.CurrentLevel)
	assert.Nil(t, wf.EscalatedTo)
	assert.Equal(t, CalculateDueDate(now.Add(time.Hour), 72), wf.DueDate)
}

func TestWorkflow_NextRole(t *testing.T) {
	wf := pendingWorkflow([]string{"MANAGER", "DIRECTOR"})

	role, ok := wf.NextRole()
	require.True(t, ok)
	assert.Equal(t, "MANAGER", role)

	wf.CurrentLevel = 1
	role, ok = wf.NextRole()
	require.True(t, ok)
	assert.Equal(t, "DIRECTOR", role)

	wf.CurrentLevel = 2
	_, ok = wf.NextRole()
	assert.False(t, ok)
}

func TestWorkflow_CheckIntegrity(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid pending workflow", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER"})
		res := wf.CheckIntegrity()
		assert.True(t, res.Valid)
		assert.Empty(t, res.Issues)
	})

	t.Run("current level past required level", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER"})
		wf.CurrentLevel = 3
		res := wf.CheckIntegrity()
		require.False(t, res.Valid)
		assert.Equal(t, "currentLevel", res.Issues[0].Field)
	})

	t.Run("terminal without completion timestamp", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER"})
		wf.Status = StatusApproved
		res := wf.CheckIntegrity()
		require.False(t, res.Valid)
		assert.Equal(t, "completedAt", res.Issues[0].Field)
	})

	t.Run("non-terminal with completion timestamp", func(t *testing.T) {
		wf := pendingWorkflow([]string{"MANAGER"})
		wf.CompletedAt = &now
		res := wf.CheckIntegrity()
		assert.False(t, res.Valid)
	})

	t.Run("empty approver chain", func(t *testing.T) {
		wf := pendingWorkflow(nil)
		wf.RequiredLevel = 1
		res := wf.CheckIntegrity()
		assert.False(t, res.Valid)
	})
}
