package httpapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/approval-hub/approval-hub/internal/domain/delegation"
)

type delegationCreateRequest struct {
	FromRole  string    `json:"fromRole"`
	ToUserID  uuid.UUID `json:"toUserId"`
	Reason    string    `json:"reason"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
	MaxAmount *float64  `json:"maxAmount,omitempty"`
	Currency  *string   `json:"currency,omitempty"`
}

func (s *Server) createDelegation(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "X-Tenant-ID header required")
		return
	}
	var req delegationCreateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", err.Error())
		return
	}
	d := &delegation.Delegation{
		TenantID:  tenantID,
		FromRole:  req.FromRole,
		ToUserID:  req.ToUserID,
		Reason:    req.Reason,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		MaxAmount: req.MaxAmount,
		Currency:  req.Currency,
		CreatedBy: actorFromRequest(r),
	}
	if err := s.delegationSvc.Create(r.Context(), d); err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, d)
}

func (s *Server) listDelegations(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "X-Tenant-ID header required")
		return
	}
	ds, err := s.delegationSvc.ListActive(r.Context(), tenantID)
	if err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"delegations": ds})
}

func (s *Server) revokeDelegation(w http.ResponseWriter, r *http.Request) {
	id, err := parseUUIDParam(r, "delegationId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_PARAM", "invalid delegationId")
		return
	}
	if err := s.delegationSvc.Revoke(r.Context(), id); err != nil {
		respondFault(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"delegationId": id, "isActive": false})
}
