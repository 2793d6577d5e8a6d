package audit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/reformtrack/reform-management/internal/transport"
	"github.com/reformtrack/reform-management/pkg/logger"
)

type ServiceAPI interface {
	List(ctx context.Context, filter ListFilter) ([]*Entry, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

// ListEntries serves GET /admin/audit. Access control runs in middleware;
// by the time this executes the caller holds audit:read and high clearance.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	var filter ListFilter

	q := r.URL.Query()
	if v := q.Get("user_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid user_id")
			return
		}
		filter.UserID = &id
	}
	filter.Action = q.Get("action")
	filter.Severity = Severity(q.Get("severity"))
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			h.WriteError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	entries, err := h.Service.List(r.Context(), filter)
	if err != nil {
		h.Logger.Error("ListEntries: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
