package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
)

func TestEmailGateway_SendEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("posts the payload with bearer auth", func(t *testing.T) {
		var got map[string]interface{}
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/email", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.WriteHeader(http.StatusAccepted)
		}))
		defer srv.Close()

		g := NewEmailGateway(srv.URL, "test-key", zerolog.Nop())
		require.NoError(t, g.SendEmail(ctx, "alice@example.com", "Approval required", "Invoice awaits"))
		assert.Equal(t, "alice@example.com", got["to"])
		assert.Equal(t, "Approval required", got["subject"])
	})

	t.Run("non-2xx response is an external fault", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		g := NewEmailGateway(srv.URL, "test-key", zerolog.Nop())
		err := g.SendEmail(ctx, "alice@example.com", "s", "b")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindExternal))
	})

	t.Run("unreachable gateway is an external fault", func(t *testing.T) {
		g := NewEmailGateway("http://127.0.0.1:1", "test-key", zerolog.Nop())
		err := g.SendEmail(ctx, "alice@example.com", "s", "b")
		require.Error(t, err)
		assert.True(t, fault.IsKind(err, fault.KindExternal))
	})
}

func TestSMSGateway_SendSMS(t *testing.T) {
	ctx := context.Background()

	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sms", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	g := NewSMSGateway(srv.URL, "test-key", zerolog.Nop())
	require.NoError(t, g.SendSMS(ctx, "+15551234567", "Invoice approval is overdue"))
	assert.Equal(t, "+15551234567", got["to"])
	assert.Equal(t, "Invoice approval is overdue", got["message"])
}
