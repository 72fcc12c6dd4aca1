package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event names a privileged action recorded for compliance review.
type Event string

const (
	EventEmergencyBypass   Event = "EMERGENCY_BYPASS"
	EventEscalation        Event = "ESCALATION"
	EventWorkflowCancelled Event = "WORKFLOW_CANCELLED"
	EventWorkflowExpired   Event = "WORKFLOW_EXPIRED"
	EventDelegationCreated Event = "DELEGATION_CREATED"
	EventDelegationRevoked Event = "DELEGATION_REVOKED"
	EventWorkflowRepaired  Event = "WORKFLOW_REPAIRED"
)

// Entry is an immutable audit record. Entries are append-only; they are
// never mutated or deleted.
type Entry struct {
	ID         int64           `json:"id"`
	AuditID    uuid.UUID       `json:"auditId"`
	TenantID   uuid.UUID       `json:"tenantId"`
	Event      Event           `json:"event"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Actor      string          `json:"actor"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	Signature  []byte          `json:"signature,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// Metadata marshals structured context for an entry. Marshal failures yield
// nil metadata rather than blocking the audit write.
func Metadata(m map[string]interface{}) json.RawMessage {
	if len(m) == 0 {
		return nil
	}
	raw, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return raw
}

// NewEntry builds an entry stamped with a fresh identifier.
func NewEntry(tenantID uuid.UUID, event Event, entityType, entityID, actor string, metadata json.RawMessage) *Entry {
	return &Entry{
		AuditID:    uuid.New(),
		TenantID:   tenantID,
		Event:      event,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}
}
