package handlers

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/foldersync/internal/relay/storage"
	"github.com/iudanet/foldersync/pkg/api"
)

// HealthHandler обрабатывает health check запросы
type HealthHandler struct {
	responder
	sessions storage.SessionStorage
}

// NewHealthHandler создает новый handler для health check
func NewHealthHandler(logger *slog.Logger, sessions storage.SessionStorage) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		sessions:  sessions,
	}
}

// Health обрабатывает GET /api/v1/health
// Заодно проверяет доступность базы сессий
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	active, err := h.sessions.CountActive(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to count sessions", slog.Any("error", err))
		h.sendJSON(w, api.HealthResponse{Status: "unavailable"}, http.StatusServiceUnavailable)
		return
	}

	h.sendJSON(w, api.HealthResponse{Status: "ok", ActiveSessions: active}, http.StatusOK)
}
