package audit

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"time"
)

type signaturePayload struct {
	AuditID    string `json:"auditId"`
	TenantID   string `json:"tenantId"`
	Event      string `json:"event"`
	EntityType string `json:"entityType"`
	EntityID   string `json:"entityId"`
	Actor      string `json:"actor"`
	Metadata   string `json:"metadata,omitempty"`
	CreatedAt  string `json:"createdAt"`
}

func buildSignaturePayload(e *Entry) signaturePayload {
	payload := signaturePayload{
		AuditID:    e.AuditID.String(),
		TenantID:   e.TenantID.String(),
		Event:      string(e.Event),
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Actor:      e.Actor,
		CreatedAt:  e.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if len(e.Metadata) > 0 {
		payload.Metadata = base64.StdEncoding.EncodeToString(e.Metadata)
	}
	return payload
}

// Sign generates an HMAC signature for the entry.
func Sign(e *Entry, key []byte) ([]byte, error) {
	data, err := json.Marshal(buildSignaturePayload(e))
	if err != nil {
		return nil, err
	}
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write(data)
	return mac.Sum(nil), nil
}

// Verify checks the entry's signature against the key.
func Verify(e *Entry, key []byte) (bool, error) {
	expected, err := Sign(e, key)
	if err != nil {
		return false, err
	}
	return hmac.Equal(expected, e.Signature), nil
}
