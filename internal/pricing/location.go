package pricing

import (
	"strings"

	"github.com/northridge/backend/internal/model"
)

// IsValidZip reports whether zip is exactly five ASCII digits.
func IsValidZip(zip string) bool {
	if len(zip) != 5 {
		return false
	}
	for i := 0; i < len(zip); i++ {
		if zip[i] < '0' || zip[i] > '9' {
			return false
		}
	}
	return true
}

// ResolveTierKey returns the market tier key for zip. ok is false when the zip
// is outside the service area.
func (t *Tables) ResolveTierKey(zip string) (TierKey, bool) {
	key, ok := t.ZipTiers[strings.TrimSpace(zip)]
	if !ok {
		return "", false
	}
	if _, known := t.Tiers[key]; !known {
		return "", false
	}
	return key, true
}

// ResolveTier returns the market tier for zip. ok is false when the zip is
// outside the service area; callers must not substitute a default for that
// decision.
func (t *Tables) ResolveTier(zip string) (model.PricingTier, bool) {
	key, ok := t.ResolveTierKey(zip)
	if !ok {
		return model.PricingTier{}, false
	}
	return t.Tiers[key], true
}

// ResolveLocationName returns a display name for zip. It never fails: exact
// matches win, then the regional label for the 3-digit prefix, then "Your Area".
func (t *Tables) ResolveLocationName(zip string) string {
	zip = strings.TrimSpace(zip)
	if name, ok := t.ZipNames[zip]; ok && name != "" {
		return name
	}
	if len(zip) >= 3 {
		if name, ok := t.RegionPrefixes[zip[:3]]; ok && name != "" {
			return name
		}
	}
	return model.FallbackPlace
}

// Served reports whether zip resolves to a market tier.
func (t *Tables) Served(zip string) bool {
	_, ok := t.ResolveTierKey(zip)
	return ok
}
