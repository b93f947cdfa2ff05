package model

import "time"

// Lead represents a prospective client who asked to be contacted from the
// estimator. Leads are forwarded, never stored.
type Lead struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone,omitempty"`
	Message    string          `json:"message,omitempty"`
	EstimateID string          `json:"estimate_id,omitempty"`
	Estimate   *EstimateResult `json:"estimate,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
