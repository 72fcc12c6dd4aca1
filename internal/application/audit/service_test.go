package audit

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/approval-hub/approval-hub/internal/domain/audit"
	auditmocks "github.com/approval-hub/approval-hub/internal/domain/audit/mocks"
)

func TestService_RecordSync(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	key := []byte("test-signing-key")

	t.Run("signs and persists the entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auditmocks.NewMockRepository(ctrl)
		svc := NewService(repo, key, zerolog.Nop())

		entry := audit.NewEntry(tenantID, audit.EventEmergencyBypass, "workflow", uuid.New().String(), "cfo-user",
			audit.Metadata(map[string]interface{}{"reason": "urgent payment"}))
		repo.EXPECT().Create(ctx, entry).Return(nil)

		require.NoError(t, svc.RecordSync(ctx, entry))
		require.NotEmpty(t, entry.Signature)

		ok, err := audit.Verify(entry, key)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = audit.Verify(entry, []byte("wrong-key"))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("nil key skips signing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auditmocks.NewMockRepository(ctrl)
		svc := NewService(repo, nil, zerolog.Nop())

		entry := audit.NewEntry(tenantID, audit.EventEscalation, "workflow", uuid.New().String(), "system", nil)
		repo.EXPECT().Create(ctx, entry).Return(nil)

		require.NoError(t, svc.RecordSync(ctx, entry))
		assert.Empty(t, entry.Signature)
	})

	t.Run("tampered entry fails verification", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := auditmocks.NewMockRepository(ctrl)
		svc := NewService(repo, key, zerolog.Nop())

		entry := audit.NewEntry(tenantID, audit.EventWorkflowCancelled, "workflow", uuid.New().String(), "admin", nil)
		repo.EXPECT().Create(ctx, entry).Return(nil)
		require.NoError(t, svc.RecordSync(ctx, entry))

		entry.Actor = "someone-else"
		ok, err := audit.Verify(entry, key)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestService_EntityHistory(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := auditmocks.NewMockRepository(ctrl)
	svc := NewService(repo, nil, zerolog.Nop())

	entries := []*audit.Entry{
		audit.NewEntry(uuid.New(), audit.EventEscalation, "workflow", "wf-1", "system", nil),
	}
	repo.EXPECT().ListByEntity(ctx, "workflow", "wf-1").Return(entries, nil)

	got, err := svc.EntityHistory(ctx, "workflow", "wf-1")
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}
