// Package estimate prices a completed WizardState. Each project type has its
// own formula; all of them are pure functions of the state and the reference
// tables.
package estimate

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/northridge/backend/internal/model"
	"github.com/northridge/backend/internal/pricing"
)

// ErrUnknownProjectType is returned by Compute for a project type it cannot price.
var ErrUnknownProjectType = errors.New("unknown project type")

// PreconditionError reports a WizardState that the wizard should never have
// let through, such as a renovation without a scope.
type PreconditionError struct {
	Field  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("estimate: %s %s", e.Field, e.Reason)
}

func precondition(field, reason string) error {
	return &PreconditionError{Field: field, Reason: reason}
}

// Estimator computes estimates against a fixed set of reference tables.
type Estimator struct {
	tables *pricing.Tables
}

// New creates an Estimator. tables must not be modified afterwards.
func New(tables *pricing.Tables) *Estimator {
	return &Estimator{tables: tables}
}

// Tables returns the reference data the estimator prices against.
func (e *Estimator) Tables() *pricing.Tables {
	return e.tables
}

// split is a named share of the base cost, in whole percent.
type split struct {
	name string
	pct  int64
}

// location is the market context for an estimate. An unserved zip prices at
// the standard multiplier; the wizard keeps such states away from results.
type location struct {
	key        pricing.TierKey
	name       string
	tierName   string
	multiplier decimal.Decimal
}

func (e *Estimator) locate(zip string) location {
	loc := location{
		name:       e.tables.ResolveLocationName(zip),
		tierName:   model.DefaultTier,
		multiplier: decimal.NewFromInt(1),
	}
	key, ok := e.tables.ResolveTierKey(zip)
	if !ok {
		return loc
	}
	tier := e.tables.Tiers[key]
	loc.key = key
	loc.tierName = tier.Name
	loc.multiplier = decimal.NewFromFloat(tier.Multiplier)
	return loc
}

// priced is the intermediate form every formula produces before it is turned
// into an EstimateResult.
type priced struct {
	projectType model.ProjectType
	label       string
	base        decimal.Decimal // before add-ons, unrounded
	splits      []split
	addOnName   string
	addOn       int64
	quantity    int64 // area the per-unit price divides by; 0 for flat pricing
	unitLabel   string
	loc         location
}

func (p priced) result() *model.EstimateResult {
	baseTotal := round(p.base)
	total := baseTotal + p.addOn

	lines := make([]model.LineItem, 0, len(p.splits)+1)
	for _, s := range p.splits {
		lines = append(lines, model.LineItem{
			Name:  s.name,
			Value: round(p.base.Mul(decimal.NewFromInt(s.pct)).Div(decimal.NewFromInt(100))),
		})
	}
	if p.addOn > 0 {
		lines = append(lines, model.LineItem{Name: p.addOnName, Value: p.addOn})
	}

	perUnit := total
	if p.quantity > 0 {
		perUnit = round(decimal.NewFromInt(total).Div(decimal.NewFromInt(p.quantity)))
	}

	mult, _ := p.loc.multiplier.Float64()
	return &model.EstimateResult{
		ProjectType:        p.projectType,
		ProjectLabel:       p.label,
		Total:              total,
		PerUnit:            perUnit,
		UnitLabel:          p.unitLabel,
		Breakdown:          lines,
		LocationName:       p.loc.name,
		TierName:           p.loc.tierName,
		LocationMultiplier: mult,
	}
}

// round rounds half away from zero to whole dollars.
func round(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func dec(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
