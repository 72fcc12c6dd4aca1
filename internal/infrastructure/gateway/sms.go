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

// SMSGateway delivers SMS through an external provider over HTTP. It
// implements notification.SMSSender.
type SMSGateway struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  zerolog.Logger
}

func NewSMSGateway(baseURL, apiKey string, logger zerolog.Logger) *SMSGateway {
	return &SMSGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  logger.With().Str("gateway", "sms").Logger(),
	}
}

func (g *SMSGateway) SendSMS(ctx context.Context, to, message string) error {
	body, err := json.Marshal(map[string]string{
		"to":      to,
		"message": message,
	})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/v1/sms", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return fault.External("sms gateway unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fault.External(fmt.Sprintf("sms gateway returned %d", resp.StatusCode), nil)
	}
	return nil
}
