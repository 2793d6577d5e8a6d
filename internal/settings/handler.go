package settings

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/reformtrack/reform-management/internal/accesscontrol"
	"github.com/reformtrack/reform-management/internal/transport"
	"github.com/reformtrack/reform-management/pkg/logger"
)

type ServiceAPI interface {
	GetByKey(key string) (*Setting, error)
	List() ([]*Setting, error)
	Upsert(ctx context.Context, actorID int64, key string, dto UpsertSettingDTO) (*Setting, error)
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

func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.List()
	if err != nil {
		h.Logger.Error("ListSettings: service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to list settings")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"settings": all,
	})
}

func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	setting, err := h.Service.GetByKey(key)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, setting)
}

func (h *Handler) UpsertSetting(w http.ResponseWriter, r *http.Request) {
	principal, ok := accesscontrol.PrincipalFromContext(r.Context())
	if !ok || principal == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	key := chi.URLParam(r, "key")

	var dto UpsertSettingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	setting, err := h.Service.Upsert(r.Context(), principal.ID, key, dto)
	if err != nil {
		h.Logger.Error("UpsertSetting: service error", "error", err, "key", key)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, setting)
}
