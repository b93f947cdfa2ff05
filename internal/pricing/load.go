package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadTables reads a YAML overrides file and merges it over DefaultTables.
// Entries present in the file replace the default entry with the same key;
// everything else keeps its default. An empty path returns the defaults.
func LoadTables(path string) (*Tables, error) {
	t := DefaultTables()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pricing: read %s: %w", path, err)
	}
	if err := t.Merge(data); err != nil {
		return nil, fmt.Errorf("pricing: %s: %w", path, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Merge decodes YAML overrides and applies them over t.
func (t *Tables) Merge(data []byte) error {
	var over Tables
	if err := yaml.Unmarshal(data, &over); err != nil {
		return fmt.Errorf("decode yaml: %w", err)
	}

	t.Tiers = mergeMap(t.Tiers, over.Tiers)
	t.ZipTiers = mergeMap(t.ZipTiers, over.ZipTiers)
	t.ZipNames = mergeMap(t.ZipNames, over.ZipNames)
	t.RegionPrefixes = mergeMap(t.RegionPrefixes, over.RegionPrefixes)

	if over.CustomHomeRate != 0 {
		t.CustomHomeRate = over.CustomHomeRate
	}
	if over.NewBuildRate != 0 {
		t.NewBuildRate = over.NewBuildRate
	}
	if over.GarageSpaceCost != 0 {
		t.GarageSpaceCost = over.GarageSpaceCost
	}
	t.StoriesFactor = mergeMap(t.StoriesFactor, over.StoriesFactor)

	t.Exterior = mergeMap(t.Exterior, over.Exterior)
	t.Interior = mergeMap(t.Interior, over.Interior)
	t.HomeStyle = mergeMap(t.HomeStyle, over.HomeStyle)

	t.RenoScopes = mergeMap(t.RenoScopes, over.RenoScopes)
	t.RenoFinish = mergeMap(t.RenoFinish, over.RenoFinish)
	t.RenoCondition = mergeMap(t.RenoCondition, over.RenoCondition)

	t.ConsultRanges = mergeMap(t.ConsultRanges, over.ConsultRanges)
	t.Complexity = mergeMap(t.Complexity, over.Complexity)
	t.Timeline = mergeMap(t.Timeline, over.Timeline)
	t.PropertyType = mergeMap(t.PropertyType, over.PropertyType)
	t.ProjectValue = mergeMap(t.ProjectValue, over.ProjectValue)
	t.ConsultLocation = mergeMap(t.ConsultLocation, over.ConsultLocation)

	t.CommercialRates = mergeMap(t.CommercialRates, over.CommercialRates)
	t.CommercialFinish = mergeMap(t.CommercialFinish, over.CommercialFinish)

	t.RemoteRates = mergeMap(t.RemoteRates, over.RemoteRates)
	t.Access = mergeMap(t.Access, over.Access)

	t.HomeFeatures = mergeMap(t.HomeFeatures, over.HomeFeatures)
	t.RenoFeatures = mergeMap(t.RenoFeatures, over.RenoFeatures)
	t.RemoteFeatures = mergeMap(t.RemoteFeatures, over.RemoteFeatures)
	return nil
}

func mergeMap[M ~map[K]V, K comparable, V any](dst, src M) M {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(M, len(src))
	}
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
