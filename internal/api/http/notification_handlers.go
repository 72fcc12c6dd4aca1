package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/approval-hub/approval-hub/internal/domain/notification"
	"github.com/approval-hub/approval-hub/internal/infrastructure/sse"
)

func (s *Server) listNotifications(w http.ResponseWriter, r *http.Request) {
	filter := notification.Filter{}
	if v := r.URL.Query().Get("workflowId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid workflowId")
			return
		}
		filter.WorkflowID = &id
	}
	if v := r.URL.Query().Get("type"); v != "" {
		t := notification.Type(v)
		filter.Type = &t
	}
	if v := r.URL.Query().Get("recipientId"); v != "" {
		filter.RecipientID = &v
	}
	limit, offset := parseLimitOffset(r, 100, 200)
	ns, err := s.notificationSvc.List(r.Context(), filter, limit, offset)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": ns})
}

func (s *Server) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chiURLParam(r, "notificationId")
	if err := s.notificationSvc.MarkRead(r.Context(), id); err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notificationId": id, "read": true})
}

func (s *Server) streamNotifications(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "userId required")
		return
	}
	client := sse.NewClient(uuid.New().String(), userID, 16)
	s.sseHub.Register(client)
	defer s.sseHub.Unregister(client.ClientID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher, ok := w.(http.Flusher)
	if !ok {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "streaming not supported")
		return
	}
	// Initial comment flushes headers and keeps the connection alive.
	_, _ = w.Write([]byte(": connected\n\n"))
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case msg := <-client.MessageChan:
			if msg == nil {
				return
			}
			payload, _ := json.Marshal(msg)
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(payload)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		case <-ctx.Done():
			return
		}
	}
}

func (s *Server) auditHistory(w http.ResponseWriter, r *http.Request) {
	entityType := chiURLParam(r, "entityType")
	entityID := chiURLParam(r, "entityId")
	entries, err := s.auditSvc.EntityHistory(r.Context(), entityType, entityID)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}
