package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/northridge/backend/internal/estimate"
	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/repository"
	"github.com/northridge/backend/internal/service"
	"github.com/northridge/backend/internal/wizard"
)

const defaultListLimit = 20

// EstimateHandler prices wizard answers and serves saved estimates.
type EstimateHandler struct {
	estimateService service.EstimateService
}

// NewEstimateHandler creates an EstimateHandler.
func NewEstimateHandler(estimateService service.EstimateService) *EstimateHandler {
	return &EstimateHandler{estimateService: estimateService}
}

// Create handles POST /api/estimates. With ?save=true the estimate is
// persisted and returned with its id.
func (h *EstimateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var state model.WizardState
	if err := json.NewDecoder(r.Body).Decode(&state); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		saved, err := h.estimateService.Save(r.Context(), state)
		if err != nil {
			writeEstimateError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, saved)
		return
	}

	res, err := h.estimateService.Compute(r.Context(), state)
	if err != nil {
		writeEstimateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// Get handles GET /api/estimates/{id}.
func (h *EstimateHandler) Get(w http.ResponseWriter, r *http.Request) {
	saved, err := h.estimateService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeEstimateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

type estimateListResponse struct {
	Estimates []*model.SavedEstimate `json:"estimates"`
}

// List handles GET /api/estimates?limit=.
func (h *EstimateHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 && n <= repository.MaxListLimit {
			limit = n
		}
	}

	list, err := h.estimateService.ListRecent(r.Context(), limit)
	if err != nil {
		slog.Error("list estimates failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list_failed")
		return
	}
	if list == nil {
		list = []*model.SavedEstimate{}
	}
	writeJSON(w, http.StatusOK, estimateListResponse{Estimates: list})
}

// writeEstimateError maps estimate and service errors to responses.
func writeEstimateError(w http.ResponseWriter, err error) {
	var pe *estimate.PreconditionError
	switch {
	case errors.Is(err, service.ErrOutsideServiceArea):
		writeError(w, http.StatusUnprocessableEntity, "outside_service_area")
	case errors.Is(err, service.ErrProjectTypeRequired):
		writeError(w, http.StatusBadRequest, "project_type_required")
	case errors.Is(err, estimate.ErrUnknownProjectType):
		writeError(w, http.StatusBadRequest, "unknown_project_type")
	case errors.Is(err, wizard.ErrStepIncomplete):
		writeError(w, http.StatusBadRequest, "step_incomplete")
	case errors.As(err, &pe):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "incomplete_answers", "field": pe.Field})
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	default:
		slog.Error("estimate request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "estimate_failed")
	}
}
