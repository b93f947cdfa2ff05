package estimate

import (
	"fmt"

	"github.com/northridge/backend/internal/model"
)

// Compute routes the state to the estimator for its project type.
// ok is false, with a nil error, only when no project type has been chosen yet.
func (e *Estimator) Compute(s model.WizardState) (res *model.EstimateResult, ok bool, err error) {
	var fn func(model.WizardState) (*model.EstimateResult, error)
	switch s.ProjectType {
	case "":
		return nil, false, nil
	case model.ProjectCustomHome:
		fn = e.CustomHome
	case model.ProjectNewBuild:
		fn = e.NewBuild
	case model.ProjectRenovation:
		fn = e.Renovation
	case model.ProjectConsulting:
		fn = e.Consulting
	case model.ProjectCommercial:
		fn = e.Commercial
	case model.ProjectRemote:
		fn = e.Remote
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownProjectType, s.ProjectType)
	}

	res, err = fn(s)
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}
