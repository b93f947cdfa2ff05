package estimate

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/northridge/backend/internal/model"
)

var commercialSplits = []split{
	{"Core & Shell", 40},
	{"MEP Systems", 30},
	{"Tenant Improvements", 20},
	{"Site Work", 10},
}

var remoteSplits = []split{
	{"Structure", 40},
	{"Access & Logistics", 20},
	{"Utilities & Systems", 25},
	{"Finishes", 15},
}

var buildingLabels = map[string]string{
	"adu":      "ADU",
	"off-grid": "Off-Grid Home",
}

// buildingLabel turns a building type key such as "warehouse" into "Warehouse".
func buildingLabel(key string) string {
	if l, ok := buildingLabels[key]; ok {
		return l
	}
	parts := strings.Split(key, "-")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, " ")
}

// Commercial prices a commercial build: sqft × type rate × finish × location.
func (e *Estimator) Commercial(s model.WizardState) (*model.EstimateResult, error) {
	rate, ok := e.tables.CommercialRates[s.CommercialType]
	if !ok {
		return nil, precondition("commercialType", "is not a known building type")
	}
	if s.Sqft <= 0 {
		return nil, precondition("sqft", "must be positive")
	}

	loc := e.locate(s.ZipCode)
	base := decimal.NewFromInt(int64(s.Sqft)).
		Mul(dec(rate)).
		Mul(dec(e.tables.CommercialFinish.Lookup(s.CommercialFinish))).
		Mul(loc.multiplier)

	return priced{
		projectType: model.ProjectCommercial,
		label:       "Commercial " + buildingLabel(s.CommercialType),
		base:        base,
		splits:      commercialSplits,
		quantity:    int64(s.Sqft),
		unitLabel:   model.UnitPerSqft,
		loc:         loc,
	}.result(), nil
}

// Remote prices a remote or off-grid build: sqft × type rate × access
// difficulty × location, plus selected off-grid features.
func (e *Estimator) Remote(s model.WizardState) (*model.EstimateResult, error) {
	rate, ok := e.tables.RemoteRates[s.RemoteType]
	if !ok {
		return nil, precondition("remoteType", "is not a known building type")
	}
	if s.Sqft <= 0 {
		return nil, precondition("sqft", "must be positive")
	}

	loc := e.locate(s.ZipCode)
	base := decimal.NewFromInt(int64(s.Sqft)).
		Mul(dec(rate)).
		Mul(dec(e.tables.Access.Lookup(s.Access))).
		Mul(loc.multiplier)

	return priced{
		projectType: model.ProjectRemote,
		label:       "Remote " + buildingLabel(s.RemoteType),
		base:        base,
		splits:      remoteSplits,
		addOnName:   "Off-Grid Features",
		addOn:       e.tables.RemoteFeatures.Sum(s.RemoteFeatures),
		quantity:    int64(s.Sqft),
		unitLabel:   model.UnitPerSqft,
		loc:         loc,
	}.result(), nil
}
