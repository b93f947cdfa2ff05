package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/service"
	"github.com/northridge/backend/pkg/leadhook"
)

// LeadHandler accepts contact requests from the results page.
type LeadHandler struct {
	leadService service.LeadService
}

// NewLeadHandler creates a LeadHandler with the given service.
func NewLeadHandler(leadService service.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// leadRequest is the expected JSON body for POST /api/leads.
type leadRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
	EstimateID string `json:"estimate_id"`
}

// Submit handles POST /api/leads.
// name and email are required; message max 5000 chars.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req leadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	lead := &model.Lead{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		EstimateID: req.EstimateID,
	}

	if err := h.leadService.Submit(r.Context(), lead); err != nil {
		if code, ok := service.InvalidLeadCode(err); ok {
			writeError(w, http.StatusBadRequest, code)
			return
		}
		if errors.Is(err, leadhook.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "leads_unavailable")
			return
		}
		writeError(w, http.StatusBadGateway, "submit_failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": lead.ID})
}
