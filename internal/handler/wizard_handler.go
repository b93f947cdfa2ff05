package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/service"
	"github.com/northridge/backend/internal/wizard"
)

// WizardHandler exposes the step flow to stateless clients.
type WizardHandler struct {
	wizardService service.WizardService
}

// NewWizardHandler creates a WizardHandler.
func NewWizardHandler(wizardService service.WizardService) *WizardHandler {
	return &WizardHandler{wizardService: wizardService}
}

type stepsResponse struct {
	ProjectType model.ProjectType `json:"projectType"`
	Steps       []wizard.Step     `json:"steps"`
}

// Steps handles GET /api/wizard/steps?projectType=.
func (h *WizardHandler) Steps(w http.ResponseWriter, r *http.Request) {
	pt := model.ProjectType(r.URL.Query().Get("projectType"))
	if pt != "" && !pt.Valid() {
		writeError(w, http.StatusBadRequest, "unknown_project_type")
		return
	}
	writeJSON(w, http.StatusOK, stepsResponse{ProjectType: pt, Steps: h.wizardService.Steps(pt)})
}

type transitionRequest struct {
	State model.WizardState `json:"state"`
	Step  wizard.Step       `json:"step"`
	Event wizard.Event      `json:"event"`
	Zip   string            `json:"zip"`
}

// Transition handles POST /api/wizard/transition.
func (h *WizardHandler) Transition(w http.ResponseWriter, r *http.Request) {
	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.Step == "" {
		req.Step = wizard.StepTypeSelect
	}

	res, err := h.wizardService.Transition(r.Context(), req.State, req.Step, req.Event, req.Zip)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, res)
	case errors.Is(err, wizard.ErrInvalidZip):
		writeError(w, http.StatusBadRequest, "invalid_zip")
	case errors.Is(err, wizard.ErrInvalidTransition):
		writeError(w, http.StatusBadRequest, "invalid_transition")
	default:
		writeEstimateError(w, err)
	}
}
