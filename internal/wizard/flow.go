package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/pricing"
)

var (
	// ErrInvalidTransition is returned when an event is not allowed from a step.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrStepIncomplete is returned when the current step's answer is missing or out of range.
	ErrStepIncomplete = errors.New("step incomplete")
	// ErrInvalidZip is returned when a submitted zip code is not five digits.
	ErrInvalidZip = errors.New("invalid zip code")
)

// Event is a user action that moves the wizard.
type Event string

const (
	EventNext      Event = "next"
	EventBack      Event = "back"
	EventSubmitZip Event = "submit-zip"
	EventRetry     Event = "retry"
	EventRestart   Event = "restart"
)

// Input bounds enforced by the answer steps.
const (
	MinSqft      = 500
	MaxSqft      = 10000
	SqftStep     = 100
	MinRenoArea  = 50
	MaxRenoArea  = 5000
	MaxRooms     = 10
	MaxStories   = 3
	MaxGarage    = 4
	defaultStory = 1
)

// Flow is the wizard state machine. States are Step values and the
// WizardState is the machine context.
type Flow struct {
	tables *pricing.Tables
}

// NewFlow creates a Flow that validates answers against tables.
func NewFlow(tables *pricing.Tables) *Flow {
	return &Flow{tables: tables}
}

// Transition applies ev to the wizard at step from. zip is only read for
// EventSubmitZip.
func (f *Flow) Transition(s *model.WizardState, from Step, ev Event, zip string) (Step, error) {
	switch ev {
	case EventNext:
		return f.Next(s, from)
	case EventBack:
		return f.Back(s, from)
	case EventSubmitZip:
		if from != StepZip {
			return from, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, ev, from)
		}
		return f.SubmitZip(s, zip)
	case EventRetry:
		return f.Retry(from)
	case EventRestart:
		return f.Restart(s), nil
	}
	return from, fmt.Errorf("%w: unknown event %q", ErrInvalidTransition, ev)
}

// Next validates the answer for from and returns the following step.
func (f *Flow) Next(s *model.WizardState, from Step) (Step, error) {
	switch from {
	case StepResults, StepOutsideArea:
		return from, fmt.Errorf("%w: next from %s", ErrInvalidTransition, from)
	case StepAnalyzing:
		return StepResults, nil
	case StepZip:
		return f.SubmitZip(s, s.ZipCode)
	case StepTypeSelect:
		if !s.ProjectType.Valid() {
			return from, fmt.Errorf("%w: projectType", ErrStepIncomplete)
		}
		return Steps(s.ProjectType)[1], nil
	}

	seq := f.sequence(s)
	idx := indexOf(seq, from)
	if idx < 0 {
		return from, fmt.Errorf("%w: %s is not a %s step", ErrInvalidTransition, from, s.ProjectType)
	}
	if err := f.validate(s, from); err != nil {
		return from, err
	}
	return seq[idx+1], nil
}

// Back returns the previous step. Leaving the first project step returns to
// type-select and clears the project type.
func (f *Flow) Back(s *model.WizardState, from Step) (Step, error) {
	switch from {
	case StepTypeSelect, StepAnalyzing, StepResults:
		return from, fmt.Errorf("%w: back from %s", ErrInvalidTransition, from)
	case StepOutsideArea:
		return StepZip, nil
	}

	steps := f.sequence(s)
	idx := indexOf(steps, from)
	if idx < 0 {
		// from was skipped for this state (e.g. reno-area after picking a flat scope)
		steps = Steps(s.ProjectType)
		idx = indexOf(steps, from)
	}
	if idx <= 0 {
		return from, fmt.Errorf("%w: %s is not a %s step", ErrInvalidTransition, from, s.ProjectType)
	}

	prev := steps[idx-1]
	if prev == StepTypeSelect {
		s.ProjectType = ""
	}
	return prev, nil
}

// SubmitZip records zip and routes to analyzing when it is served, or to
// outside-area when it has no market tier.
func (f *Flow) SubmitZip(s *model.WizardState, zip string) (Step, error) {
	if !s.ProjectType.Valid() {
		return StepZip, fmt.Errorf("%w: projectType", ErrStepIncomplete)
	}
	zip = strings.TrimSpace(zip)
	if !pricing.IsValidZip(zip) {
		return StepZip, ErrInvalidZip
	}
	s.ZipCode = zip
	if !f.tables.Served(zip) {
		return StepOutsideArea, nil
	}
	return StepAnalyzing, nil
}

// Retry returns to the zip step from outside-area.
func (f *Flow) Retry(from Step) (Step, error) {
	if from != StepOutsideArea {
		return from, fmt.Errorf("%w: retry from %s", ErrInvalidTransition, from)
	}
	return StepZip, nil
}

// Restart discards every answer and returns to type-select.
func (f *Flow) Restart(s *model.WizardState) Step {
	s.Reset()
	return StepTypeSelect
}

// Validate checks the answer for every step the state visits, as Next would
// have on the way to results. Unknown project types are not checked.
func (f *Flow) Validate(s *model.WizardState) error {
	if !s.ProjectType.Valid() {
		return nil
	}
	for _, st := range f.sequence(s) {
		if err := f.validate(s, st); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flow) validate(s *model.WizardState, st Step) error {
	t := f.tables
	switch st {
	case StepSqft:
		if s.Sqft < MinSqft || s.Sqft > MaxSqft || s.Sqft%SqftStep != 0 {
			return incomplete("sqft")
		}
	case StepRooms:
		if s.Bedrooms < 1 || s.Bedrooms > MaxRooms {
			return incomplete("bedrooms")
		}
		if s.Bathrooms < 1 || s.Bathrooms > MaxRooms {
			return incomplete("bathrooms")
		}
	case StepExterior:
		return requireKey(t.Exterior.Has(s.Exterior), "exterior")
	case StepInterior:
		return requireKey(t.Interior.Has(s.Interior), "interior")
	case StepHomeStyle:
		return requireKey(t.HomeStyle.Has(s.HomeStyle), "homeStyle")
	case StepHomeFeatures:
		return requireFeatures(t.HomeFeatures, s.HomeFeatures, "homeFeatures")
	case StepStories:
		if s.Stories < defaultStory || s.Stories > MaxStories {
			return incomplete("stories")
		}
	case StepGarage:
		if s.GarageSpaces < 0 || s.GarageSpaces > MaxGarage {
			return incomplete("garageSpaces")
		}
	case StepRenoScope:
		_, ok := t.RenoScopes[s.RenoScope]
		return requireKey(ok, "renoScope")
	case StepRenoArea:
		if s.RenoArea < MinRenoArea || s.RenoArea > MaxRenoArea {
			return incomplete("renoArea")
		}
	case StepRenoCondition:
		return requireKey(t.RenoCondition.Has(s.RenoCondition), "renoCondition")
	case StepRenoFinish:
		return requireKey(t.RenoFinish.Has(s.RenoFinish), "renoFinish")
	case StepRenoFeatures:
		return requireFeatures(t.RenoFeatures, s.RenoFeatures, "renoFeatures")
	case StepConsultType:
		_, ok := t.ConsultRanges[s.ConsultType]
		return requireKey(ok, "consultType")
	case StepPropertyType:
		return requireKey(t.PropertyType.Has(s.PropertyType), "propertyType")
	case StepProjectValue:
		return requireKey(t.ProjectValue.Has(s.ProjectValue), "projectValue")
	case StepComplexity:
		return requireKey(t.Complexity.Has(s.Complexity), "complexity")
	case StepTimeline:
		return requireKey(t.Timeline.Has(s.Timeline), "timeline")
	case StepCommercialType:
		return requireKey(t.CommercialRates.Has(s.CommercialType), "commercialType")
	case StepCommercialFinish:
		return requireKey(t.CommercialFinish.Has(s.CommercialFinish), "commercialFinish")
	case StepRemoteType:
		return requireKey(t.RemoteRates.Has(s.RemoteType), "remoteType")
	case StepAccess:
		return requireKey(t.Access.Has(s.Access), "access")
	case StepRemoteFeatures:
		return requireFeatures(t.RemoteFeatures, s.RemoteFeatures, "remoteFeatures")
	}
	return nil
}

func incomplete(field string) error {
	return fmt.Errorf("%w: %s", ErrStepIncomplete, field)
}

func requireKey(ok bool, field string) error {
	if !ok {
		return incomplete(field)
	}
	return nil
}

// requireFeatures accepts an empty selection; every selected id must be known.
func requireFeatures(table pricing.FeatureCostTable, ids []string, field string) error {
	for _, id := range ids {
		if !table.Has(id) {
			return incomplete(field)
		}
	}
	return nil
}
