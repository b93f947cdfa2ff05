package repository

import (
	"context"

	"github.com/northridge/backend/internal/model"
)

// EstimateRepository persists computed estimates so they can be exported or
// attached to a lead later.
type EstimateRepository interface {
	// Save inserts est. est.ID must be set; CreatedAt is filled from the database.
	Save(ctx context.Context, est *model.SavedEstimate) error
	GetByID(ctx context.Context, id string) (*model.SavedEstimate, error)
	// ListRecent returns up to limit estimates, newest first.
	ListRecent(ctx context.Context, limit int) ([]*model.SavedEstimate, error)
}
