package estimate

import (
	"github.com/shopspring/decimal"

	"github.com/northridge/backend/internal/model"
)

var consultingSplits = []split{
	{"Discovery & Site Review", 20},
	{"Analysis & Modeling", 50},
	{"Report & Deliverables", 30},
}

// Consulting prices a flat-fee engagement: the midpoint of the consult type's
// fee range × complexity × timeline × property type × project value ×
// consulting location factor. There are no add-ons.
func (e *Estimator) Consulting(s model.WizardState) (*model.EstimateResult, error) {
	rng, ok := e.tables.ConsultRanges[s.ConsultType]
	if !ok {
		return nil, precondition("consultType", "is not a known consulting service")
	}

	loc := e.locate(s.ZipCode)
	// consulting ignores the construction tier multiplier in favour of its own table
	loc.multiplier = decimal.NewFromInt(1)
	if loc.key != "" {
		loc.multiplier = dec(e.tables.ConsultLocation.Lookup(string(loc.key)))
	}

	t := e.tables
	base := decimal.NewFromFloat(rng.Mid()).
		Mul(dec(t.Complexity.Lookup(s.Complexity))).
		Mul(dec(t.Timeline.Lookup(s.Timeline))).
		Mul(dec(t.PropertyType.Lookup(s.PropertyType))).
		Mul(dec(t.ProjectValue.Lookup(s.ProjectValue))).
		Mul(loc.multiplier)

	return priced{
		projectType: model.ProjectConsulting,
		label:       rng.Label,
		base:        base,
		splits:      consultingSplits,
		unitLabel:   model.UnitFlatFee,
		loc:         loc,
	}.result(), nil
}
