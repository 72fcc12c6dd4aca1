package httpapi

import (
	"net/http"

	"github.com/approval-hub/approval-hub/internal/domain/rule"
)

type ruleCreateRequest struct {
	Name                 string   `json:"name"`
	MinAmount            float64  `json:"minAmount"`
	MaxAmount            float64  `json:"maxAmount"`
	Currency             string   `json:"currency"`
	RequiredApprovals    int      `json:"requiredApprovals"`
	ApproverRoles        []string `json:"approverRoles"`
	ParallelApproval     bool     `json:"parallelApproval"`
	ApprovalTimeoutHours int      `json:"approvalTimeoutHours"`
	EscalateToRole       *string  `json:"escalateToRole,omitempty"`
	Priority             int      `json:"priority"`
	Condition            *string  `json:"condition,omitempty"`
}

func (s *Server) createRule(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "X-Tenant-ID header required")
		return
	}
	var req ruleCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	rl := &rule.Rule{
		TenantID:             tenantID,
		Name:                 req.Name,
		MinAmount:            req.MinAmount,
		MaxAmount:            req.MaxAmount,
		Currency:             req.Currency,
		RequiredApprovals:    req.RequiredApprovals,
		ApproverRoles:        req.ApproverRoles,
		ParallelApproval:     req.ParallelApproval,
		ApprovalTimeoutHours: req.ApprovalTimeoutHours,
		EscalateToRole:       req.EscalateToRole,
		Priority:             req.Priority,
		Condition:            req.Condition,
		IsActive:             true,
	}
	if err := s.ruleSvc.CreateRule(r.Context(), rl); err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, rl)
}

func (s *Server) listRules(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "X-Tenant-ID header required")
		return
	}
	limit, offset := parseLimitOffset(r, 100, 200)
	rules, err := s.ruleSvc.List(r.Context(), tenantID, limit, offset)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rules": rules})
}

func (s *Server) deactivateRule(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "ruleId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid ruleId")
		return
	}
	if err := s.ruleSvc.Deactivate(r.Context(), id); err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ruleId": id, "isActive": false})
}
