package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
)

// EmailGateway delivers email through the application's mail relay over
// HTTP. It implements notification.EmailSender.
type EmailGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

func NewEmailGateway(baseURL, apiKey string, logger zerolog.Logger) *EmailGateway {
	return &EmailGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.With().Str("gateway", "email").Logger(),
	}
}

func (g *EmailGateway) SendEmail(ctx context.Context, to, subject, body string) error {
	return g.post(ctx, "/v1/email", map[string]interface{}{
		"to":      to,
		"subject": subject,
		"body":    body,
	})
}

func (g *EmailGateway) SendTemplatedEmail(ctx context.Context, to, template string, data map[string]interface{}) error {
	return g.post(ctx, "/v1/email/template", map[string]interface{}{
		"to":       to,
		"template": template,
		"data":     data,
	})
}

func (g *EmailGateway) post(ctx context.Context, path string, payload map[string]interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fault.External("email gateway unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fault.External(fmt.Sprintf("email gateway returned %d", resp.StatusCode), nil)
	}
	return nil
}
