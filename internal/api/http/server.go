package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	appAudit "github.com/approval-hub/approval-hub/internal/application/audit"
	appDelegation "github.com/approval-hub/approval-hub/internal/application/delegation"
	appNotification "github.com/approval-hub/approval-hub/internal/application/notification"
	appRule "github.com/approval-hub/approval-hub/internal/application/rule"
	appWorkflow "github.com/approval-hub/approval-hub/internal/application/workflow"
	"github.com/approval-hub/approval-hub/internal/domain/fault"
	"github.com/approval-hub/approval-hub/internal/infrastructure/sse"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	workflowSvc     *appWorkflow.Service
	ruleSvc         *appRule.Service
	delegationSvc   *appDelegation.Service
	notificationSvc *appNotification.Service
	auditSvc        *appAudit.Service
	sseHub          *sse.Hub
}

func NewServer(
	workflowSvc *appWorkflow.Service,
	ruleSvc *appRule.Service,
	delegationSvc *appDelegation.Service,
	notificationSvc *appNotification.Service,
	auditSvc *appAudit.Service,
	sseHub *sse.Hub,
) *Server {
	return &Server{
		workflowSvc:     workflowSvc,
		ruleSvc:         ruleSvc,
		delegationSvc:   delegationSvc,
		notificationSvc: notificationSvc,
		auditSvc:        auditSvc,
		sseHub:          sseHub,
	}
}

// Router builds the HTTP router.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/workflows", func(r chi.Router) {
			r.Post("/", s.createWorkflow)
			r.Get("/pending", s.pendingWorkflows)
			r.Get("/{workflowId}", s.getWorkflow)
			r.Post("/{workflowId}/actions", s.processAction)
			r.Post("/{workflowId}/bypass", s.emergencyBypass)
			r.Post("/{workflowId}/cancel", s.cancelWorkflow)
			r.Post("/{workflowId}/changes-implemented", s.changesImplemented)
		})

		r.Get("/invoices/{invoiceId}/history", s.workflowHistory)

		r.Route("/rules", func(r chi.Router) {
			r.Post("/", s.createRule)
			r.Get("/", s.listRules)
			r.Post("/{ruleId}/deactivate", s.deactivateRule)
		})

		r.Route("/delegations", func(r chi.Router) {
			r.Post("/", s.createDelegation)
			r.Get("/", s.listDelegations)
			r.Post("/{delegationId}/revoke", s.revokeDelegation)
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", s.listNotifications)
			r.Post("/{notificationId}/read", s.markNotificationRead)
			r.Get("/stream", s.streamNotifications)
		})

		r.Get("/audit/{entityType}/{entityId}", s.auditHistory)
	})

	return r
}

// Helpers

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":   code,
		"message": message,
	})
}

// respondFault maps classified errors onto HTTP statuses. Concurrency
// conflicts are 409 with a retryable hint so the UI re-fetches and retries.
func respondFault(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)
	switch kind {
	case fault.KindValidation:
		respondError(w, http.StatusBadRequest, string(kind), err.Error())
	case fault.KindState:
		respondError(w, http.StatusConflict, string(kind), err.Error())
	case fault.KindAuthorization:
		respondError(w, http.StatusForbidden, string(kind), err.Error())
	case fault.KindConcurrency:
		respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error":     string(kind),
			"message":   err.Error(),
			"retryable": true,
		})
	case fault.KindConfiguration:
		respondError(w, http.StatusUnprocessableEntity, string(kind), err.Error())
	case fault.KindNotFound:
		respondError(w, http.StatusNotFound, string(kind), err.Error())
	case fault.KindExternal:
		respondError(w, http.StatusBadGateway, string(kind), err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
	}
}

func parseUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	val := chi.URLParam(r, key)
	return uuid.Parse(val)
}

func chiURLParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func tenantFromRequest(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.Header.Get("X-Tenant-ID"))
}

func actorFromRequest(r *http.Request) string {
	actor := r.Header.Get("X-Actor")
	if actor == "" {
		actor = "system"
	}
	return actor
}

func parseLimitOffset(r *http.Request, defaultLimit, maxLimit int) (int, int) {
	limit := defaultLimit
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if l, err := strconv.Atoi(v); err == nil {
			limit = l
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if o, err := strconv.Atoi(v); err == nil {
			offset = o
		}
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
