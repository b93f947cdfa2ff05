package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/northridge/backend/internal/model"
)

var customHomeSplits = []split{
	{"Shell & Structure", 35},
	{"MEP Systems", 25},
	{"Interior Finishes", 30},
	{"Site & Foundation", 10},
}

var newBuildSplits = []split{
	{"Site & Foundation", 15},
	{"Framing & Shell", 30},
	{"MEP Systems", 25},
	{"Interior Finishes", 30},
}

// qualityAverage is the mean of the exterior and interior multipliers.
func (e *Estimator) qualityAverage(s model.WizardState) decimal.Decimal {
	ext := dec(e.tables.Exterior.Lookup(s.Exterior))
	in := dec(e.tables.Interior.Lookup(s.Interior))
	return ext.Add(in).Div(decimal.NewFromInt(2))
}

// CustomHome prices a custom home:
// sqft × rate × avg(exterior, interior) × style × location, plus selected features.
func (e *Estimator) CustomHome(s model.WizardState) (*model.EstimateResult, error) {
	if s.Sqft <= 0 {
		return nil, precondition("sqft", "must be positive")
	}
	loc := e.locate(s.ZipCode)
	base := decimal.NewFromInt(int64(s.Sqft)).
		Mul(dec(e.tables.CustomHomeRate)).
		Mul(e.qualityAverage(s)).
		Mul(dec(e.tables.HomeStyle.Lookup(s.HomeStyle))).
		Mul(loc.multiplier)

	return priced{
		projectType: model.ProjectCustomHome,
		label:       model.ProjectCustomHome.Label(),
		base:        base,
		splits:      customHomeSplits,
		addOnName:   "Selected Features",
		addOn:       e.tables.HomeFeatures.Sum(s.HomeFeatures),
		quantity:    int64(s.Sqft),
		unitLabel:   model.UnitPerSqft,
		loc:         loc,
	}.result(), nil
}

// NewBuild prices a production new build:
// sqft × rate × avg(exterior, interior) × stories factor × location, plus a
// flat cost per garage space added after the multipliers.
func (e *Estimator) NewBuild(s model.WizardState) (*model.EstimateResult, error) {
	if s.Sqft <= 0 {
		return nil, precondition("sqft", "must be positive")
	}
	loc := e.locate(s.ZipCode)
	base := decimal.NewFromInt(int64(s.Sqft)).
		Mul(dec(e.tables.NewBuildRate)).
		Mul(e.qualityAverage(s)).
		Mul(loc.multiplier).
		Mul(dec(e.tables.StoryFactor(s.Stories)))

	var garage int64
	if s.GarageSpaces > 0 {
		garage = e.tables.GarageSpaceCost * int64(s.GarageSpaces)
	}

	return priced{
		projectType: model.ProjectNewBuild,
		label:       model.ProjectNewBuild.Label(),
		base:        base,
		splits:      newBuildSplits,
		addOnName:   "Garage",
		addOn:       garage,
		quantity:    int64(s.Sqft),
		unitLabel:   model.UnitPerSqft,
		loc:         loc,
	}.result(), nil
}
