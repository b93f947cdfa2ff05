// Package wizard drives the estimator's step sequence: which question comes
// next for a project type, how back navigation unwinds, and where a zip code
// outside the service area diverts the user.
package wizard

import "github.com/northridge/backend/internal/model"

// Step identifies a wizard screen.
type Step string

const (
	StepTypeSelect  Step = "type-select"
	StepZip         Step = "zip"
	StepAnalyzing   Step = "analyzing"
	StepResults     Step = "results"
	StepOutsideArea Step = "outside-area"

	StepSqft         Step = "sqft"
	StepRooms        Step = "rooms"
	StepExterior     Step = "exterior"
	StepInterior     Step = "interior"
	StepHomeStyle    Step = "home-style"
	StepHomeFeatures Step = "home-features"
	StepStories      Step = "stories"
	StepGarage       Step = "garage"

	StepRenoScope     Step = "reno-scope"
	StepRenoArea      Step = "reno-area"
	StepRenoCondition Step = "reno-condition"
	StepRenoFinish    Step = "reno-finish"
	StepRenoFeatures  Step = "reno-features"

	StepConsultType  Step = "consult-type"
	StepPropertyType Step = "property-type"
	StepProjectValue Step = "project-value"
	StepComplexity   Step = "complexity"
	StepTimeline     Step = "timeline"

	StepCommercialType   Step = "commercial-type"
	StepCommercialFinish Step = "commercial-finish"

	StepRemoteType     Step = "remote-type"
	StepAccess         Step = "access"
	StepRemoteFeatures Step = "remote-features"
)

var projectSteps = map[model.ProjectType][]Step{
	model.ProjectCustomHome: {StepSqft, StepRooms, StepExterior, StepInterior, StepHomeStyle, StepHomeFeatures},
	model.ProjectNewBuild:   {StepSqft, StepStories, StepGarage, StepExterior, StepInterior},
	model.ProjectRenovation: {StepRenoScope, StepRenoArea, StepRenoCondition, StepRenoFinish, StepRenoFeatures},
	model.ProjectConsulting: {StepConsultType, StepPropertyType, StepProjectValue, StepComplexity, StepTimeline},
	model.ProjectCommercial: {StepCommercialType, StepSqft, StepCommercialFinish},
	model.ProjectRemote:     {StepRemoteType, StepSqft, StepAccess, StepRemoteFeatures},
}

// Steps returns the full ordered step list for a project type, from
// type-select through results. An unknown type yields only type-select.
func Steps(pt model.ProjectType) []Step {
	middle, ok := projectSteps[pt]
	if !ok {
		return []Step{StepTypeSelect}
	}
	out := make([]Step, 0, len(middle)+4)
	out = append(out, StepTypeSelect)
	out = append(out, middle...)
	return append(out, StepZip, StepAnalyzing, StepResults)
}

// sequence returns the steps actually visited for the state, with skipped
// steps removed. Forward and backward navigation both walk this list, which
// keeps the renovation area skip symmetric.
func (f *Flow) sequence(s *model.WizardState) []Step {
	all := Steps(s.ProjectType)
	if s.ProjectType != model.ProjectRenovation || !f.tables.FlatRenoScope(s.RenoScope) {
		return all
	}
	out := make([]Step, 0, len(all)-1)
	for _, st := range all {
		if st == StepRenoArea {
			continue
		}
		out = append(out, st)
	}
	return out
}

func indexOf(steps []Step, st Step) int {
	for i, s := range steps {
		if s == st {
			return i
		}
	}
	return -1
}
