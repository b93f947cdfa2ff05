package handler

import (
	"net/http"

	"github.com/northridge/backend/internal/pricing"
)

// LocationHandler resolves zip codes against the pricing tables.
type LocationHandler struct {
	tables *pricing.Tables
}

// NewLocationHandler creates a LocationHandler.
func NewLocationHandler(tables *pricing.Tables) *LocationHandler {
	return &LocationHandler{tables: tables}
}

type locationResponse struct {
	Zip          string  `json:"zip"`
	LocationName string  `json:"locationName"`
	TierName     string  `json:"tierName,omitempty"`
	Multiplier   float64 `json:"multiplier,omitempty"`
	Served       bool    `json:"served"`
}

// Get handles GET /api/locations/{zip}.
func (h *LocationHandler) Get(w http.ResponseWriter, r *http.Request) {
	zip := r.PathValue("zip")
	if !pricing.IsValidZip(zip) {
		writeError(w, http.StatusBadRequest, "invalid_zip")
		return
	}

	resp := locationResponse{
		Zip:          zip,
		LocationName: h.tables.ResolveLocationName(zip),
	}
	if tier, ok := h.tables.ResolveTier(zip); ok {
		resp.TierName = tier.Name
		resp.Multiplier = tier.Multiplier
		resp.Served = true
	}
	writeJSON(w, http.StatusOK, resp)
}
