package workflow

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
)

func TestAction_Validate(t *testing.T) {
	grant := &DelegationGrant{ToUserID: uuid.New(), Reason: "vacation", ExpiresAt: time.Now().Add(48 * time.Hour)}
	change := &ChangeRequest{Details: "missing PO number"}

	tests := []struct {
		name    string
		mutate  func(a *Action)
		wantErr bool
	}{
		{
			name:   "plain approve",
			mutate: func(a *Action) {},
		},
		{
			name: "approve with delegation payload",
			mutate: func(a *Action) {
				a.Delegation = grant
			},
			wantErr: true,
		},
		{
			name: "reject with change request payload",
			mutate: func(a *Action) {
				a.Kind = ActionReject
				a.ChangeRequest = change
			},
			wantErr: true,
		},
		{
			name: "delegate with payload",
			mutate: func(a *Action) {
				a.Kind = ActionDelegate
				a.Delegation = grant
			},
		},
		{
			name: "delegate without payload",
			mutate: func(a *Action) {
				a.Kind = ActionDelegate
			},
			wantErr: true,
		},
		{
			name: "delegate without target user",
			mutate: func(a *Action) {
				a.Kind = ActionDelegate
				a.Delegation = &DelegationGrant{Reason: "vacation"}
			},
			wantErr: true,
		},
		{
			name: "request changes with details",
			mutate: func(a *Action) {
				a.Kind = ActionRequestChanges
				a.ChangeRequest = change
			},
		},
		{
			name: "request changes with empty details",
			mutate: func(a *Action) {
				a.Kind = ActionRequestChanges
				a.ChangeRequest = &ChangeRequest{}
			},
			wantErr: true,
		},
		{
			name: "request changes carrying a delegation",
			mutate: func(a *Action) {
				a.Kind = ActionRequestChanges
				a.ChangeRequest = change
				a.Delegation = grant
			},
			wantErr: true,
		},
		{
			name: "unknown kind",
			mutate: func(a *Action) {
				a.Kind = ActionKind("ESCALATE")
			},
			wantErr: true,
		},
		{
			name: "missing decidedBy",
			mutate: func(a *Action) {
				a.DecidedBy = ""
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAction(uuid.New(), ActionApprove, "MANAGER", 1, "alice")
			tt.mutate(a)
			err := a.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, fault.IsKind(err, fault.KindValidation))
				return
			}
			assert.NoError(t, err)
		})
	}
}
