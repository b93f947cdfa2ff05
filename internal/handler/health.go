package handler

import (
	"log/slog"
	"net/http"
)

const serviceName = "Northridge Estimator API"

type healthResponse struct {
	Status   string `json:"status"`
	Service  string `json:"service"`
	Database string `json:"database"`
}

// Health pings the estimate store. The ping error is logged, not returned.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Service: serviceName, Database: "ok"}
	if err := h.db.Ping(r.Context()); err != nil {
		slog.Warn("health check: database ping failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
