package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/attendai/attendai/internal/models"
	"github.com/attendai/attendai/internal/store"
)

const version = "1.0.0"

// HealthHandler handles GET /health with a data-store connectivity check.
type HealthHandler struct {
	store *store.Store
}

func NewHealthHandler(s *store.Store) *HealthHandler {
	return &HealthHandler{store: s}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"server": "ok"}
	status := "healthy"

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if h.store != nil {
		if err := h.store.TestConnection(ctx); err != nil {
			checks["datastore"] = "unavailable: " + err.Error()
			status = "degraded"
		} else {
			checks["datastore"] = "ok"
		}
	} else {
		checks["datastore"] = "disabled"
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}

	models.WriteJSON(w, code, models.HealthResponse{
		Status:  status,
		Version: version,
		Checks:  checks,
	})
}
