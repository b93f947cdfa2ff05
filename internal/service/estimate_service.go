package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/northridge/backend/internal/estimate"
	"github.com/northridge/backend/internal/metrics"
	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/repository"
	"github.com/northridge/backend/internal/wizard"
)

// EstimateService prices wizard states and keeps the ones users ask to save.
type EstimateService interface {
	// Compute prices s. It fails with ErrProjectTypeRequired when no type is
	// set, ErrOutsideServiceArea when the zip has no market tier and
	// wizard.ErrStepIncomplete when an answer is missing or out of range.
	Compute(ctx context.Context, s model.WizardState) (*model.EstimateResult, error)
	// Save computes and persists s.
	Save(ctx context.Context, s model.WizardState) (*model.SavedEstimate, error)
	Get(ctx context.Context, id string) (*model.SavedEstimate, error)
	ListRecent(ctx context.Context, limit int) ([]*model.SavedEstimate, error)
}

// EstimateServiceImpl is the EstimateService used by the server.
type EstimateServiceImpl struct {
	estimator *estimate.Estimator
	flow      *wizard.Flow
	repo      repository.EstimateRepository
	observer  metrics.Observer
	newID     func() string
}

// NewEstimateService creates an EstimateService. observer may be nil.
func NewEstimateService(est *estimate.Estimator, repo repository.EstimateRepository, observer metrics.Observer) *EstimateServiceImpl {
	if observer == nil {
		observer = metrics.Nop{}
	}
	return &EstimateServiceImpl{
		estimator: est,
		flow:      wizard.NewFlow(est.Tables()),
		repo:      repo,
		observer:  observer,
		newID:     uuid.NewString,
	}
}

var _ EstimateService = (*EstimateServiceImpl)(nil)

func (s *EstimateServiceImpl) Compute(ctx context.Context, st model.WizardState) (*model.EstimateResult, error) {
	if st.ProjectType == "" {
		return nil, ErrProjectTypeRequired
	}
	if st.ProjectType.Valid() && !s.estimator.Tables().Served(st.ZipCode) {
		s.observer.RecordOutsideArea(st.ZipCode)
		slog.Warn("estimate requested outside service area", "zip", st.ZipCode, "project_type", st.ProjectType)
		return nil, fmt.Errorf("%w: %q", ErrOutsideServiceArea, st.ZipCode)
	}
	if err := s.flow.Validate(&st); err != nil {
		return nil, err
	}

	res, ok, err := s.estimator.Compute(st)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrProjectTypeRequired
	}
	s.observer.RecordEstimate(res.ProjectType, res.Total)
	return res, nil
}

func (s *EstimateServiceImpl) Save(ctx context.Context, st model.WizardState) (*model.SavedEstimate, error) {
	res, err := s.Compute(ctx, st)
	if err != nil {
		return nil, err
	}
	saved := &model.SavedEstimate{
		ID:     s.newID(),
		State:  st.Clone(),
		Result: *res,
	}
	if err := s.repo.Save(ctx, saved); err != nil {
		return nil, fmt.Errorf("save estimate: %w", err)
	}
	slog.Info("estimate saved", "estimate_id", saved.ID, "project_type", res.ProjectType, "total", res.Total)
	return saved, nil
}

// Get returns a saved estimate. Ids that are not UUIDs are reported as not found.
func (s *EstimateServiceImpl) Get(ctx context.Context, id string) (*model.SavedEstimate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, repository.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *EstimateServiceImpl) ListRecent(ctx context.Context, limit int) ([]*model.SavedEstimate, error) {
	return s.repo.ListRecent(ctx, limit)
}
