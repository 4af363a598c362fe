package health

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Handler holds dependencies needed for health checks.
type Handler struct {
	StartedAt time.Time
	Version   string
	Log       *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(version string, logger *zap.Logger) *Handler {
	return &Handler{
		StartedAt: time.Now(),
		Version:   version,
		Log:       logger,
	}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Serve handles GET /health.
//
// The app keeps no external state, so a reachable process is a healthy
// process. Returns 200 and
//
//	{ "status":"ok", "version":"1.2.0", "uptime_seconds":120 }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status:        "ok",
		Version:       h.Version,
		UptimeSeconds: int64(time.Since(h.StartedAt).Seconds()),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Log.Error("health: encode response", zap.Error(err))
	}
}
