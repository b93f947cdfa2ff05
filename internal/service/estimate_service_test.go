package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/northridge/backend/internal/estimate"
	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/pricing"
	"github.com/northridge/backend/internal/repository"
	"github.com/northridge/backend/internal/wizard"
)

// ---------------------------------------------------------------------------
// Mock EstimateRepository
// ---------------------------------------------------------------------------

type mockEstimateRepository struct {
	saveFunc       func(ctx context.Context, est *model.SavedEstimate) error
	getByIDFunc    func(ctx context.Context, id string) (*model.SavedEstimate, error)
	listRecentFunc func(ctx context.Context, limit int) ([]*model.SavedEstimate, error)
}

func (m *mockEstimateRepository) Save(ctx context.Context, est *model.SavedEstimate) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, est)
	}
	return nil
}

func (m *mockEstimateRepository) GetByID(ctx context.Context, id string) (*model.SavedEstimate, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockEstimateRepository) ListRecent(ctx context.Context, limit int) ([]*model.SavedEstimate, error) {
	if m.listRecentFunc != nil {
		return m.listRecentFunc(ctx, limit)
	}
	return nil, nil
}

// ---------------------------------------------------------------------------
// Recording observer
// ---------------------------------------------------------------------------

type recordingObserver struct {
	estimates   []int64
	outsideArea []string
	leads       []string
}

func (o *recordingObserver) RecordEstimate(_ model.ProjectType, total int64) {
	o.estimates = append(o.estimates, total)
}

func (o *recordingObserver) RecordOutsideArea(zip string) {
	o.outsideArea = append(o.outsideArea, zip)
}

func (o *recordingObserver) RecordLead(status string) {
	o.leads = append(o.leads, status)
}

func newTestEstimateService(repo repository.EstimateRepository, obs *recordingObserver) *EstimateServiceImpl {
	return NewEstimateService(estimate.New(pricing.DefaultTables()), repo, obs)
}

func customHomeState(zip string) model.WizardState {
	return model.WizardState{
		ProjectType: model.ProjectCustomHome,
		ZipCode:     zip,
		Sqft:        2000,
		Bedrooms:    3,
		Bathrooms:   2,
		Exterior:    "standard",
		Interior:    "standard",
		HomeStyle:   "traditional",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestEstimateService_Compute_Success(t *testing.T) {
	obs := &recordingObserver{}
	svc := newTestEstimateService(&mockEstimateRepository{}, obs)

	res, err := svc.Compute(context.Background(), customHomeState("83814"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Total != 756700 {
		t.Errorf("expected 756700, got %d", res.Total)
	}
	if len(obs.estimates) != 1 || obs.estimates[0] != 756700 {
		t.Errorf("expected estimate recorded, got %v", obs.estimates)
	}
}

func TestEstimateService_Compute_OutsideArea(t *testing.T) {
	obs := &recordingObserver{}
	svc := newTestEstimateService(&mockEstimateRepository{}, obs)

	_, err := svc.Compute(context.Background(), customHomeState("00000"))
	if !errors.Is(err, ErrOutsideServiceArea) {
		t.Fatalf("expected ErrOutsideServiceArea, got %v", err)
	}
	if len(obs.outsideArea) != 1 || obs.outsideArea[0] != "00000" {
		t.Errorf("expected outside-area recorded, got %v", obs.outsideArea)
	}
	if len(obs.estimates) != 0 {
		t.Errorf("expected no estimate recorded, got %v", obs.estimates)
	}
}

func TestEstimateService_Compute_ProjectTypeRequired(t *testing.T) {
	svc := newTestEstimateService(&mockEstimateRepository{}, &recordingObserver{})
	_, err := svc.Compute(context.Background(), model.WizardState{ZipCode: "83814"})
	if !errors.Is(err, ErrProjectTypeRequired) {
		t.Errorf("expected ErrProjectTypeRequired, got %v", err)
	}
}

func TestEstimateService_Compute_UnknownType(t *testing.T) {
	svc := newTestEstimateService(&mockEstimateRepository{}, &recordingObserver{})
	_, err := svc.Compute(context.Background(), model.WizardState{ProjectType: "treehouse", ZipCode: "83814"})
	if !errors.Is(err, estimate.ErrUnknownProjectType) {
		t.Errorf("expected ErrUnknownProjectType, got %v", err)
	}
}

func TestEstimateService_Compute_IncompleteAnswers(t *testing.T) {
	svc := newTestEstimateService(&mockEstimateRepository{}, &recordingObserver{})
	_, err := svc.Compute(context.Background(), model.WizardState{ProjectType: model.ProjectRenovation, ZipCode: "83814"})
	if !errors.Is(err, wizard.ErrStepIncomplete) {
		t.Errorf("expected ErrStepIncomplete, got %v", err)
	}
}

func TestEstimateService_Compute_RejectsOutOfRangeSqft(t *testing.T) {
	obs := &recordingObserver{}
	svc := newTestEstimateService(&mockEstimateRepository{}, obs)
	st := model.WizardState{ProjectType: model.ProjectCommercial, ZipCode: "83814",
		CommercialType: "office", Sqft: 1, CommercialFinish: "standard"}

	_, err := svc.Compute(context.Background(), st)
	if !errors.Is(err, wizard.ErrStepIncomplete) {
		t.Fatalf("expected ErrStepIncomplete, got %v", err)
	}
	if len(obs.estimates) != 0 {
		t.Errorf("expected no estimate recorded, got %v", obs.estimates)
	}

	st.Sqft = 1000
	if _, err := svc.Compute(context.Background(), st); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestEstimateService_Save_PersistsWithID(t *testing.T) {
	var captured *model.SavedEstimate
	repo := &mockEstimateRepository{
		saveFunc: func(_ context.Context, est *model.SavedEstimate) error {
			captured = est
			est.CreatedAt = time.Now()
			return nil
		},
	}
	svc := newTestEstimateService(repo, &recordingObserver{})
	svc.newID = func() string { return "11111111-2222-3333-4444-555555555555" }

	state := customHomeState("83813")
	state.HomeFeatures = []string{"solar"}
	saved, err := svc.Save(context.Background(), state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured == nil {
		t.Fatal("expected repository Save to be called")
	}
	if saved.ID != "11111111-2222-3333-4444-555555555555" {
		t.Errorf("unexpected id %q", saved.ID)
	}
	if saved.Result.Total != 686000 {
		t.Errorf("expected 686000, got %d", saved.Result.Total)
	}
	state.HomeFeatures[0] = "pool"
	if saved.State.HomeFeatures[0] != "solar" {
		t.Error("saved state shares slices with the caller")
	}
}

func TestEstimateService_Save_RepoError(t *testing.T) {
	repo := &mockEstimateRepository{
		saveFunc: func(context.Context, *model.SavedEstimate) error { return errors.New("db down") },
	}
	svc := newTestEstimateService(repo, &recordingObserver{})
	if _, err := svc.Save(context.Background(), customHomeState("83813")); err == nil {
		t.Error("expected error")
	}
}

func TestEstimateService_Save_OutsideAreaNotPersisted(t *testing.T) {
	called := false
	repo := &mockEstimateRepository{
		saveFunc: func(context.Context, *model.SavedEstimate) error { called = true; return nil },
	}
	svc := newTestEstimateService(repo, &recordingObserver{})
	if _, err := svc.Save(context.Background(), customHomeState("99999")); !errors.Is(err, ErrOutsideServiceArea) {
		t.Fatalf("expected ErrOutsideServiceArea, got %v", err)
	}
	if called {
		t.Error("expected no save for an unserved zip")
	}
}

func TestEstimateService_Get_RejectsNonUUID(t *testing.T) {
	called := false
	repo := &mockEstimateRepository{
		getByIDFunc: func(context.Context, string) (*model.SavedEstimate, error) {
			called = true
			return nil, nil
		},
	}
	svc := newTestEstimateService(repo, &recordingObserver{})
	if _, err := svc.Get(context.Background(), "not-a-uuid"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if called {
		t.Error("expected repository not to be queried")
	}
}

func TestEstimateService_Get_Found(t *testing.T) {
	id := "0f9d7c4e-8d2b-4f3a-9c61-2b7e5a1d3c88"
	repo := &mockEstimateRepository{
		getByIDFunc: func(_ context.Context, got string) (*model.SavedEstimate, error) {
			if got != id {
				t.Errorf("expected id %s, got %s", id, got)
			}
			return &model.SavedEstimate{ID: id}, nil
		},
	}
	svc := newTestEstimateService(repo, &recordingObserver{})
	saved, err := svc.Get(context.Background(), id)
	if err != nil || saved.ID != id {
		t.Errorf("unexpected result %+v, %v", saved, err)
	}
}

func TestEstimateService_ListRecent(t *testing.T) {
	repo := &mockEstimateRepository{
		listRecentFunc: func(_ context.Context, limit int) ([]*model.SavedEstimate, error) {
			if limit != 5 {
				t.Errorf("expected limit 5, got %d", limit)
			}
			return []*model.SavedEstimate{{ID: "a"}, {ID: "b"}}, nil
		},
	}
	svc := newTestEstimateService(repo, &recordingObserver{})
	list, err := svc.ListRecent(context.Background(), 5)
	if err != nil || len(list) != 2 {
		t.Errorf("unexpected result %v, %v", list, err)
	}
}
