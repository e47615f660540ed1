package api

import (
	"net/http"

	serr "github.com/IvanChernomyrdin/go-places/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-places/internal/shared/models"
)

// MsgUnhealthy — ответ /health, если БД или Redis недоступны.
const MsgUnhealthy = "Service unavailable."

// Health godoc
// @Summary      Health check
// @Description  Pings the database (and Redis when rate limiting is on).
// @Tags         health
// @Produce      json
// @Success      200 {object} models.HealthResponse
// @Failure      500 {object} models.MessageResponse
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.Health.Check(r.Context()); err != nil {
		h.Fail(w, r, serr.NewInternalError(MsgUnhealthy, err))
		return
	}
	WriteJSON(w, http.StatusOK, models.HealthResponse{Status: "ok"})
}
