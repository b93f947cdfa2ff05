package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/northridge/backend/internal/model"
)

var renovationSplits = []split{
	{"Demolition & Prep", 10},
	{"Materials", 40},
	{"Labor", 40},
	{"Permits & Contingency", 10},
}

// Renovation prices a renovation. Scopes with a flat price in the tables ignore
// the area; the others are priced per square foot of renovated area. Both are
// scaled by finish × condition × location, then selected upgrades are added.
//
// The scope is a precondition: without it there is no base price to scale.
func (e *Estimator) Renovation(s model.WizardState) (*model.EstimateResult, error) {
	if s.RenoScope == "" {
		return nil, precondition("renoScope", "is not selected")
	}
	scope, ok := e.tables.RenoScopes[s.RenoScope]
	if !ok {
		return nil, precondition("renoScope", "is not a known scope")
	}

	loc := e.locate(s.ZipCode)
	factors := dec(e.tables.RenoFinish.Lookup(s.RenoFinish)).
		Mul(dec(e.tables.RenoCondition.Lookup(s.RenoCondition))).
		Mul(loc.multiplier)

	p := priced{
		projectType: model.ProjectRenovation,
		label:       scope.Label + " Renovation",
		splits:      renovationSplits,
		addOnName:   "Upgrades",
		addOn:       e.tables.RenoFeatures.Sum(s.RenoFeatures),
		loc:         loc,
	}

	if scope.IsFlat() {
		p.base = decimal.NewFromInt(scope.Flat).Mul(factors)
		p.unitLabel = model.UnitFlat
		return p.result(), nil
	}

	if s.RenoArea <= 0 {
		return nil, precondition("renoArea", "must be positive for a "+s.RenoScope+" renovation")
	}
	p.base = decimal.NewFromInt(int64(s.RenoArea)).Mul(dec(scope.PerSqft)).Mul(factors)
	p.quantity = int64(s.RenoArea)
	p.unitLabel = model.UnitPerSqft
	return p.result(), nil
}
