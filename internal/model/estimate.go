package model

import "time"

// Unit labels shown next to EstimateResult.PerUnit.
const (
	UnitPerSqft   = "/ SF"
	UnitFlatFee   = "flat fee"
	UnitFlat      = "flat"
	DefaultTier   = "Standard"
	FallbackPlace = "Your Area"
)

// PricingTier is a market tier resolved from a postal code.
type PricingTier struct {
	Name       string  `json:"name" yaml:"name"`
	Multiplier float64 `json:"multiplier" yaml:"multiplier"`
}

// LineItem is one row of an estimate breakdown.
type LineItem struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// EstimateResult is the priced outcome of a completed wizard.
// It holds only values, so it can be serialized without the WizardState.
type EstimateResult struct {
	ProjectType        ProjectType `json:"projectType"`
	ProjectLabel       string      `json:"projectLabel"`
	Total              int64       `json:"total"`
	PerUnit            int64       `json:"perUnit"`
	UnitLabel          string      `json:"unitLabel"`
	Breakdown          []LineItem  `json:"breakdown"`
	LocationName       string      `json:"locationName"`
	TierName           string      `json:"tierName"`
	LocationMultiplier float64     `json:"locationMultiplier"`
}

// BreakdownSum adds every breakdown line. It may differ from Total by up to
// one dollar per line because each line is rounded on its own.
func (r *EstimateResult) BreakdownSum() int64 {
	var sum int64
	for _, li := range r.Breakdown {
		sum += li.Value
	}
	return sum
}

// SavedEstimate is an estimate persisted so it can be exported or attached to
// a lead later.
type SavedEstimate struct {
	ID        string         `json:"id"`
	State     WizardState    `json:"state"`
	Result    EstimateResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
