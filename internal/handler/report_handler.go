package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/northridge/backend/internal/report"
	"github.com/northridge/backend/internal/repository"
	"github.com/northridge/backend/internal/service"
)

// ReportHandler exports saved estimates.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Download handles GET /api/estimates/{id}/report?format=md|html|pdf.
func (h *ReportHandler) Download(w http.ResponseWriter, r *http.Request) {
	format, ok := report.ParseFormat(r.URL.Query().Get("format"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unsupported_format")
		return
	}

	id := r.PathValue("id")
	body, err := h.reportService.Render(r.Context(), id, format)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}
		slog.Error("render report failed", "error", err, "estimate_id", id)
		writeError(w, http.StatusInternalServerError, "report_failed")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "estimate-"+id+"."+format.Ext()))
	_, _ = w.Write(body)
}
