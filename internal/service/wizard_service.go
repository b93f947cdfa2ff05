package service

import (
	"context"
	"log/slog"

	"github.com/northridge/backend/internal/metrics"
	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/wizard"
)

// TransitionResult is the wizard after an event has been applied.
type TransitionResult struct {
	Step   wizard.Step           `json:"step"`
	State  model.WizardState     `json:"state"`
	Steps  []wizard.Step         `json:"steps"`
	Result *model.EstimateResult `json:"result,omitempty"`
}

// WizardService drives the step flow for stateless clients: the client sends
// its current step and answers, and gets back the next step.
type WizardService interface {
	Steps(pt model.ProjectType) []wizard.Step
	Transition(ctx context.Context, st model.WizardState, from wizard.Step, ev wizard.Event, zip string) (*TransitionResult, error)
}

type wizardServiceImpl struct {
	flow      *wizard.Flow
	estimates EstimateService
	observer  metrics.Observer
}

// NewWizardService creates a WizardService. Reaching the results step prices
// the state through estimates.
func NewWizardService(flow *wizard.Flow, estimates EstimateService, observer metrics.Observer) WizardService {
	if observer == nil {
		observer = metrics.Nop{}
	}
	return &wizardServiceImpl{flow: flow, estimates: estimates, observer: observer}
}

func (s *wizardServiceImpl) Steps(pt model.ProjectType) []wizard.Step {
	return wizard.Steps(pt)
}

func (s *wizardServiceImpl) Transition(ctx context.Context, st model.WizardState, from wizard.Step, ev wizard.Event, zip string) (*TransitionResult, error) {
	state := st.Clone()
	step, err := s.flow.Transition(&state, from, ev, zip)
	if err != nil {
		return nil, err
	}

	out := &TransitionResult{Step: step, State: state, Steps: wizard.Steps(state.ProjectType)}
	switch step {
	case wizard.StepOutsideArea:
		s.observer.RecordOutsideArea(state.ZipCode)
		slog.Warn("zip outside service area", "zip", state.ZipCode, "project_type", state.ProjectType)
	case wizard.StepResults:
		res, err := s.estimates.Compute(ctx, state)
		if err != nil {
			return nil, err
		}
		out.Result = res
	}
	return out, nil
}
