package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
)

func validRule() *Rule {
	return &Rule{
		Name:                 "standard",
		MinAmount:            0,
		MaxAmount:            50000,
		Currency:             "USD",
		RequiredApprovals:    2,
		ApproverRoles:        []string{"MANAGER", "DIRECTOR"},
		ApprovalTimeoutHours: 72,
		IsActive:             true,
	}
}

func TestRule_Matches(t *testing.T) {
	r := validRule()

	tests := []struct {
		name     string
		amount   float64
		currency string
		want     bool
	}{
		{"inside range", 25000, "USD", true},
		{"at lower bound", 0, "USD", true},
		{"at upper bound is excluded", 50000, "USD", false},
		{"above range", 60000, "USD", false},
		{"wrong currency", 25000, "EUR", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Matches(tt.amount, tt.currency))
		})
	}

	t.Run("inactive rule never matches", func(t *testing.T) {
		inactive := validRule()
		inactive.IsActive = false
		assert.False(t, inactive.Matches(25000, "USD"))
	})
}

func TestRule_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Rule)
		ok     bool
	}{
		{"valid", func(r *Rule) {}, true},
		{"no approver roles", func(r *Rule) { r.ApproverRoles = nil }, false},
		{"negative min amount", func(r *Rule) { r.MinAmount = -1 }, false},
		{"max not above min", func(r *Rule) { r.MaxAmount = r.MinAmount }, false},
		{"missing currency", func(r *Rule) { r.Currency = "" }, false},
		{"zero required approvals", func(r *Rule) { r.RequiredApprovals = 0 }, false},
		{"quota exceeds roles", func(r *Rule) { r.RequiredApprovals = 3 }, false},
		{"zero timeout", func(r *Rule) { r.ApprovalTimeoutHours = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRule()
			tt.mutate(r)
			err := r.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, fault.IsKind(err, fault.KindValidation))
		})
	}
}

func TestRule_ChainLength(t *testing.T) {
	r := validRule()
	assert.Equal(t, 2, r.ChainLength())

	r.ParallelApproval = true
	r.ApproverRoles = []string{"MANAGER", "DIRECTOR", "VP"}
	r.RequiredApprovals = 2
	assert.Equal(t, 2, r.ChainLength())
}
