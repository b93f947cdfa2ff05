package service

import (
	"context"
	"errors"
	"testing"

	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/pricing"
	"github.com/northridge/backend/internal/wizard"
)

func newTestWizardService(obs *recordingObserver) WizardService {
	tables := pricing.DefaultTables()
	estimates := newTestEstimateService(&mockEstimateRepository{}, obs)
	return NewWizardService(wizard.NewFlow(tables), estimates, obs)
}

func TestWizardService_Steps(t *testing.T) {
	svc := newTestWizardService(&recordingObserver{})
	steps := svc.Steps(model.ProjectCommercial)
	want := []wizard.Step{wizard.StepTypeSelect, wizard.StepCommercialType, wizard.StepSqft,
		wizard.StepCommercialFinish, wizard.StepZip, wizard.StepAnalyzing, wizard.StepResults}
	if len(steps) != len(want) {
		t.Fatalf("expected %v, got %v", want, steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d: expected %s, got %s", i, want[i], steps[i])
		}
	}
}

func TestWizardService_Transition_DoesNotMutateInput(t *testing.T) {
	svc := newTestWizardService(&recordingObserver{})
	in := model.WizardState{ProjectType: model.ProjectCommercial, CommercialType: "office"}
	out, err := svc.Transition(context.Background(), in, wizard.StepCommercialType, wizard.EventBack, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Step != wizard.StepTypeSelect || out.State.ProjectType != "" {
		t.Errorf("expected type-select with cleared type, got %s %q", out.Step, out.State.ProjectType)
	}
	if in.ProjectType != model.ProjectCommercial {
		t.Error("input state was mutated")
	}
}

func TestWizardService_Transition_OutsideArea(t *testing.T) {
	obs := &recordingObserver{}
	svc := newTestWizardService(obs)
	out, err := svc.Transition(context.Background(), customHomeState(""), wizard.StepZip, wizard.EventSubmitZip, "00000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Step != wizard.StepOutsideArea {
		t.Errorf("expected outside-area, got %s", out.Step)
	}
	if out.Result != nil {
		t.Error("expected no result outside the service area")
	}
	if len(obs.outsideArea) != 1 {
		t.Errorf("expected outside-area recorded once, got %v", obs.outsideArea)
	}
}

func TestWizardService_Transition_ResultsIncludeEstimate(t *testing.T) {
	obs := &recordingObserver{}
	svc := newTestWizardService(obs)
	out, err := svc.Transition(context.Background(), customHomeState("83813"), wizard.StepAnalyzing, wizard.EventNext, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Step != wizard.StepResults {
		t.Fatalf("expected results, got %s", out.Step)
	}
	if out.Result == nil || out.Result.Total != 658000 {
		t.Errorf("expected 658000 result, got %+v", out.Result)
	}
}

func TestWizardService_Transition_ResultsRejectOutOfRangeAnswers(t *testing.T) {
	svc := newTestWizardService(&recordingObserver{})
	st := customHomeState("83813")
	st.Sqft = 1
	_, err := svc.Transition(context.Background(), st, wizard.StepAnalyzing, wizard.EventNext, "")
	if !errors.Is(err, wizard.ErrStepIncomplete) {
		t.Errorf("expected ErrStepIncomplete, got %v", err)
	}
}

func TestWizardService_Transition_Invalid(t *testing.T) {
	svc := newTestWizardService(&recordingObserver{})
	_, err := svc.Transition(context.Background(), model.WizardState{}, wizard.StepTypeSelect, wizard.EventNext, "")
	if !errors.Is(err, wizard.ErrStepIncomplete) {
		t.Errorf("expected ErrStepIncomplete, got %v", err)
	}
}
