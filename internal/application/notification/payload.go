package notification

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/domain/notification"
)

func notificationPayload(n *notification.Notification) (json.RawMessage, error) {
	return json.Marshal(map[string]interface{}{
		"notificationId": n.NotificationID,
		"workflowId":     n.WorkflowID,
		"type":           n.Type,
		"title":          n.Title,
		"message":        n.Message,
		"urgency":        n.Urgency,
	})
}

func parseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fault.Validation("invalid identifier %q", s)
	}
	return id, nil
}
