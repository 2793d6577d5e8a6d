package budget

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/reformtrack/reform-management/internal/accesscontrol"
	"github.com/reformtrack/reform-management/internal/transport"
	"github.com/reformtrack/reform-management/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, userID int64, dto CreateBudgetRequestDTO) (*BudgetRequest, error)
	GetByID(id int64) (*BudgetRequest, error)
	ListForUser(userID int64, limit, offset int) ([]*BudgetRequest, error)
	ListAll(limit, offset int) ([]*BudgetRequest, error)
	Approve(ctx context.Context, reviewerID, requestID int64) (*BudgetRequest, error)
	Reject(ctx context.Context, reviewerID, requestID int64, dto RejectBudgetRequestDTO) (*BudgetRequest, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) CreateBudgetRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := accesscontrol.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateBudgetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), principal.ID, dto)
	if err != nil {
		h.Logger.Error("CreateBudgetRequest: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) GetBudgetRequest(w http.ResponseWriter, r *http.Request) {
	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	b, err := h.Service.GetByID(requestID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, b)
}

// ListBudgetRequests returns all requests when scope=all is passed; otherwise
// only the caller's own. The route guard decides who may use the wider scope.
func (h *Handler) ListBudgetRequests(w http.ResponseWriter, r *http.Request) {
	principal, ok := accesscontrol.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit := 20
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	var (
		requests []*BudgetRequest
		err      error
	)
	if r.URL.Query().Get("scope") == "all" {
		requests, err = h.Service.ListAll(limit, offset)
	} else {
		requests, err = h.Service.ListForUser(principal.ID, limit, offset)
	}
	if err != nil {
		h.Logger.Error("ListBudgetRequests: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list budget requests")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"budget_requests": requests,
		"limit":           limit,
		"offset":          offset,
	})
}

func (h *Handler) ApproveBudgetRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := accesscontrol.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	updated, err := h.Service.Approve(r.Context(), principal.ID, requestID)
	if err != nil {
		h.Logger.Error("ApproveBudgetRequest: service error", "error", err, "request_id", requestID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) RejectBudgetRequest(w http.ResponseWriter, r *http.Request) {
	principal, ok := accesscontrol.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	requestID, ok := h.requestIDParam(w, r)
	if !ok {
		return
	}

	var dto RejectBudgetRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.Reject(r.Context(), principal.ID, requestID, dto)
	if err != nil {
		h.Logger.Error("RejectBudgetRequest: service error", "error", err, "request_id", requestID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) requestIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	requestID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid budget request ID")
		return 0, false
	}
	return requestID, true
}
