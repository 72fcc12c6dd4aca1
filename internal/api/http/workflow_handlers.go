package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	appWorkflow "github.com/approval-hub/approval-hub/internal/application/workflow"
	"github.com/approval-hub/approval-hub/internal/domain/workflow"
)

type workflowCreateRequest struct {
	InvoiceID uuid.UUID              `json:"invoiceId"`
	Attrs     map[string]interface{} `json:"attrs,omitempty"`
}

type actionRequest struct {
	Action     string  `json:"action"`
	Role       string  `json:"role"`
	Level      int     `json:"level"`
	Comments   *string `json:"comments,omitempty"`
	Delegation *struct {
		ToUserID  uuid.UUID `json:"toUserId"`
		Reason    string    `json:"reason"`
		ExpiresAt time.Time `json:"expiresAt"`
	} `json:"delegation,omitempty"`
	ChangeRequest *struct {
		Details  string `json:"details"`
		Priority string `json:"priority,omitempty"`
	} `json:"changeRequest,omitempty"`
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) createWorkflow(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "X-Tenant-ID header required")
		return
	}
	var req workflowCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	wf, err := s.workflowSvc.Create(r.Context(), appWorkflow.CreateRequest{
		TenantID:    tenantID,
		InvoiceID:   req.InvoiceID,
		InitiatedBy: actorFromRequest(r),
		Attrs:       req.Attrs,
	})
	if err != nil {
		respondFault(w, err)
		return
	}
	if wf == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"invoiceId":        req.InvoiceID,
			"approvalRequired": false,
		})
		return
	}
	respondJSON(w, http.StatusCreated, wf)
}

func (s *Server) getWorkflow(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "workflowId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid workflowId")
		return
	}
	wf, err := s.workflowSvc.Get(r.Context(), id)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wf)
}

func (s *Server) processAction(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "workflowId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid workflowId")
		return
	}
	var req actionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}

	action := workflow.NewAction(id, workflow.ActionKind(req.Action), req.Role, req.Level, actorFromRequest(r))
	action.Comments = req.Comments
	if req.Delegation != nil {
		action.Delegation = &workflow.DelegationGrant{
			ToUserID:  req.Delegation.ToUserID,
			Reason:    req.Delegation.Reason,
			ExpiresAt: req.Delegation.ExpiresAt,
		}
	}
	if req.ChangeRequest != nil {
		action.ChangeRequest = &workflow.ChangeRequest{
			Details:  req.ChangeRequest.Details,
			Priority: req.ChangeRequest.Priority,
		}
	}

	wf, err := s.workflowSvc.ProcessAction(r.Context(), id, action)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wf)
}

func (s *Server) emergencyBypass(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "workflowId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid workflowId")
		return
	}
	var req reasonRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	if req.Reason == "" {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "reason is required")
		return
	}
	wf, err := s.workflowSvc.EmergencyBypass(r.Context(), id, req.Reason, actorFromRequest(r))
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wf)
}

func (s *Server) cancelWorkflow(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "workflowId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid workflowId")
		return
	}
	var req reasonRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	wf, err := s.workflowSvc.Cancel(r.Context(), id, req.Reason, actorFromRequest(r))
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wf)
}

func (s *Server) changesImplemented(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "workflowId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid workflowId")
		return
	}
	wf, err := s.workflowSvc.HandleChangesImplemented(r.Context(), id)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, wf)
}

func (s *Server) pendingWorkflows(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "X-Tenant-ID header required")
		return
	}
	userID, err := uuid.Parse(r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "userId query parameter required")
		return
	}
	limit, offset := parseLimitOffset(r, 100, 200)
	wfs, err := s.workflowSvc.PendingForUser(r.Context(), tenantID, userID, limit, offset)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"workflows": wfs})
}

func (s *Server) workflowHistory(w http.ResponseWriter, r *http.Request) {
	invoiceID, err := parseUUIDParam(r, "invoiceId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid invoiceId")
		return
	}
	history, err := s.workflowSvc.HistoryForInvoice(r.Context(), invoiceID)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, history)
}
