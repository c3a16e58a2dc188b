package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/vaughan-dsouza/medvault/internal/utils"
)

const pingTimeout = 2 * time.Second

type HealthHandler struct {
	DB Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{DB: db}
}

// Check answers 200 while the store responds to a ping, 503 otherwise.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			utils.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
