package service

import (
	"context"

	"github.com/northridge/backend/internal/report"
)

// ReportService exports saved estimates.
type ReportService interface {
	Render(ctx context.Context, id string, format report.Format) ([]byte, error)
}

type reportServiceImpl struct {
	estimates EstimateService
}

// NewReportService creates a ReportService that loads estimates through estimates.
func NewReportService(estimates EstimateService) ReportService {
	return &reportServiceImpl{estimates: estimates}
}

func (s *reportServiceImpl) Render(ctx context.Context, id string, format report.Format) ([]byte, error) {
	saved, err := s.estimates.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return report.Render(format, saved)
}
