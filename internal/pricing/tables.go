// Package pricing holds the static reference data the estimator prices against:
// market tiers by postal code, base rates, multiplier tables and add-on costs.
package pricing

import (
	"fmt"
	"sort"

	"github.com/northridge/backend/internal/model"
)

// TierKey identifies a market tier.
type TierKey string

const (
	TierPremium  TierKey = "premium"
	TierStandard TierKey = "standard"
	TierExtended TierKey = "extended"
	TierRemote   TierKey = "remote"
)

// neutral is the multiplier used whenever a selector is missing from its table.
const neutral = 1.0

// MultiplierTable maps a selector key to a positive multiplier.
type MultiplierTable map[string]float64

// Lookup returns the multiplier for key, or 1.0 when the key is unknown.
func (t MultiplierTable) Lookup(key string) float64 {
	if v, ok := t[key]; ok && v > 0 {
		return v
	}
	return neutral
}

// Has reports whether key is a known selector.
func (t MultiplierTable) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// Keys returns the table keys sorted by multiplier, then by name.
func (t MultiplierTable) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if t[keys[i]] != t[keys[j]] {
			return t[keys[i]] < t[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

// RateTable maps a building type to a base rate in dollars per square foot.
type RateTable map[string]float64

// Has reports whether key is a known building type.
func (t RateTable) Has(key string) bool {
	_, ok := t[key]
	return ok
}

// FeatureCostTable maps an optional feature to a flat dollar add-on.
type FeatureCostTable map[string]int64

// Has reports whether id is a known feature.
func (t FeatureCostTable) Has(id string) bool {
	_, ok := t[id]
	return ok
}

// Sum adds the cost of every distinct selected feature. Unknown ids cost nothing.
func (t FeatureCostTable) Sum(ids []string) int64 {
	var total int64
	for _, id := range model.NormalizeFeatures(ids) {
		total += t[id]
	}
	return total
}

// RenoScope prices a renovation scope either as a flat fee or per square foot.
type RenoScope struct {
	Label   string  `yaml:"label"`
	Flat    int64   `yaml:"flat,omitempty"`
	PerSqft float64 `yaml:"perSqft,omitempty"`
}

// IsFlat reports whether the scope is priced as a flat fee.
func (s RenoScope) IsFlat() bool { return s.Flat > 0 }

// CostRange is a low/high fee range for a consulting engagement.
type CostRange struct {
	Label string `yaml:"label"`
	Low   int64  `yaml:"low"`
	High  int64  `yaml:"high"`
}

// Mid returns the midpoint of the range.
func (r CostRange) Mid() float64 {
	return float64(r.Low+r.High) / 2
}

// Tables is the complete set of reference data. A Tables value is built once
// at startup and must not be mutated afterwards.
type Tables struct {
	Tiers          map[TierKey]model.PricingTier `yaml:"tiers"`
	ZipTiers       map[string]TierKey            `yaml:"zipTiers"`
	ZipNames       map[string]string             `yaml:"zipNames"`
	RegionPrefixes map[string]string             `yaml:"regionPrefixes"`

	CustomHomeRate  float64         `yaml:"customHomeRate"`
	NewBuildRate    float64         `yaml:"newBuildRate"`
	GarageSpaceCost int64           `yaml:"garageSpaceCost"`
	StoriesFactor   map[int]float64 `yaml:"storiesFactor"`

	Exterior  MultiplierTable `yaml:"exterior"`
	Interior  MultiplierTable `yaml:"interior"`
	HomeStyle MultiplierTable `yaml:"homeStyle"`

	RenoScopes    map[string]RenoScope `yaml:"renoScopes"`
	RenoFinish    MultiplierTable      `yaml:"renoFinish"`
	RenoCondition MultiplierTable      `yaml:"renoCondition"`

	ConsultRanges   map[string]CostRange `yaml:"consultRanges"`
	Complexity      MultiplierTable      `yaml:"complexity"`
	Timeline        MultiplierTable      `yaml:"timeline"`
	PropertyType    MultiplierTable      `yaml:"propertyType"`
	ProjectValue    MultiplierTable      `yaml:"projectValue"`
	ConsultLocation MultiplierTable      `yaml:"consultLocation"`

	CommercialRates  RateTable       `yaml:"commercialRates"`
	CommercialFinish MultiplierTable `yaml:"commercialFinish"`

	RemoteRates RateTable       `yaml:"remoteRates"`
	Access      MultiplierTable `yaml:"access"`

	HomeFeatures   FeatureCostTable `yaml:"homeFeatures"`
	RenoFeatures   FeatureCostTable `yaml:"renoFeatures"`
	RemoteFeatures FeatureCostTable `yaml:"remoteFeatures"`
}

// StoryFactor returns the multiplier for the number of stories, 1.0 if unknown.
func (t *Tables) StoryFactor(stories int) float64 {
	if v, ok := t.StoriesFactor[stories]; ok && v > 0 {
		return v
	}
	return neutral
}

// Validate checks the invariants every table must hold.
func (t *Tables) Validate() error {
	for k, tier := range t.Tiers {
		if tier.Multiplier <= 0 {
			return fmt.Errorf("pricing: tier %q: multiplier must be positive", k)
		}
		if tier.Name == "" {
			return fmt.Errorf("pricing: tier %q: name is required", k)
		}
	}
	if _, ok := t.Tiers[TierStandard]; !ok {
		return fmt.Errorf("pricing: tier %q is required", TierStandard)
	}
	for zip, k := range t.ZipTiers {
		if !IsValidZip(zip) {
			return fmt.Errorf("pricing: zip %q is not a 5-digit code", zip)
		}
		if _, ok := t.Tiers[k]; !ok {
			return fmt.Errorf("pricing: zip %s references unknown tier %q", zip, k)
		}
	}
	if t.CustomHomeRate <= 0 || t.NewBuildRate <= 0 {
		return fmt.Errorf("pricing: base rates must be positive")
	}
	if t.GarageSpaceCost < 0 {
		return fmt.Errorf("pricing: garage space cost must not be negative")
	}
	for n, f := range t.StoriesFactor {
		if f <= 0 {
			return fmt.Errorf("pricing: stories factor %d must be positive", n)
		}
	}

	multipliers := map[string]MultiplierTable{
		"exterior":         t.Exterior,
		"interior":         t.Interior,
		"homeStyle":        t.HomeStyle,
		"renoFinish":       t.RenoFinish,
		"renoCondition":    t.RenoCondition,
		"complexity":       t.Complexity,
		"timeline":         t.Timeline,
		"propertyType":     t.PropertyType,
		"projectValue":     t.ProjectValue,
		"consultLocation":  t.ConsultLocation,
		"commercialFinish": t.CommercialFinish,
		"access":           t.Access,
	}
	for name, table := range multipliers {
		if len(table) == 0 {
			return fmt.Errorf("pricing: %s table is empty", name)
		}
		for k, v := range table {
			if v <= 0 {
				return fmt.Errorf("pricing: %s[%s] must be positive", name, k)
			}
		}
	}

	for name, table := range map[string]RateTable{"commercialRates": t.CommercialRates, "remoteRates": t.RemoteRates} {
		if len(table) == 0 {
			return fmt.Errorf("pricing: %s table is empty", name)
		}
		for k, v := range table {
			if v <= 0 {
				return fmt.Errorf("pricing: %s[%s] must be positive", name, k)
			}
		}
	}

	for k, s := range t.RenoScopes {
		if s.Flat <= 0 && s.PerSqft <= 0 {
			return fmt.Errorf("pricing: renovation scope %q needs a flat or per-sqft price", k)
		}
	}
	for k, r := range t.ConsultRanges {
		if r.Low <= 0 || r.High < r.Low {
			return fmt.Errorf("pricing: consulting range %q is invalid", k)
		}
	}

	features := map[string]FeatureCostTable{
		"homeFeatures":   t.HomeFeatures,
		"renoFeatures":   t.RenoFeatures,
		"remoteFeatures": t.RemoteFeatures,
	}
	for name, table := range features {
		for k, v := range table {
			if v <= 0 {
				return fmt.Errorf("pricing: %s[%s] must be positive", name, k)
			}
		}
	}
	return nil
}

// FlatRenoScope reports whether scope is a known renovation scope with a flat
// price. Flat scopes have no area to ask for.
func (t *Tables) FlatRenoScope(scope string) bool {
	rs, ok := t.RenoScopes[scope]
	return ok && rs.IsFlat()
}
