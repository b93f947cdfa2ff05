package pricing

import "github.com/northridge/backend/internal/model"

// DefaultTables returns the hand-curated reference data for the North Idaho
// and Spokane service region. Every call builds fresh maps.
func DefaultTables() *Tables {
	return &Tables{
		Tiers: map[TierKey]model.PricingTier{
			TierPremium:  {Name: "Premium", Multiplier: 1.15},
			TierStandard: {Name: "Standard", Multiplier: 1.0},
			TierExtended: {Name: "Extended", Multiplier: 1.1},
			TierRemote:   {Name: "Remote", Multiplier: 1.2},
		},
		ZipTiers: map[string]TierKey{
			// Coeur d'Alene lake corridor and Sandpoint
			"83814": TierPremium,
			"83815": TierPremium,
			"83835": TierPremium,
			"83864": TierPremium,
			"99223": TierPremium,

			"83801": TierStandard,
			"83813": TierStandard,
			"83854": TierStandard,
			"83858": TierStandard,
			"83876": TierStandard,
			"99201": TierStandard,
			"99205": TierStandard,
			"99208": TierStandard,
			"99216": TierStandard,
			"99019": TierStandard,

			"83805": TierExtended,
			"83856": TierExtended,
			"83860": TierExtended,
			"83861": TierExtended,
			"83869": TierExtended,
			"99110": TierExtended,

			"83821": TierRemote,
			"83836": TierRemote,
			"83845": TierRemote,
			"83847": TierRemote,
			"83848": TierRemote,
		},
		ZipNames: map[string]string{
			"83814": "Coeur d'Alene",
			"83815": "Coeur d'Alene",
			"83835": "Hayden",
			"83864": "Sandpoint",
			"99223": "Spokane South Hill",
			"83801": "Athol",
			"83813": "Cocolalla",
			"83854": "Post Falls",
			"83858": "Rathdrum",
			"83876": "Worley",
			"99201": "Spokane",
			"99205": "Spokane North",
			"99208": "Spokane North",
			"99216": "Spokane Valley",
			"99019": "Liberty Lake",
			"83805": "Bonners Ferry",
			"83856": "Priest River",
			"83860": "Sagle",
			"83861": "St. Maries",
			"83869": "Spirit Lake",
			"99110": "Clayton",
			"83821": "Coolin",
			"83836": "Hope",
			"83845": "Moyie Springs",
			"83847": "Naples",
			"83848": "Nordman",
		},
		RegionPrefixes: map[string]string{
			"838": "North Idaho",
			"992": "Spokane Area",
			"990": "Eastern Washington",
			"991": "Eastern Washington",
		},

		CustomHomeRate:  280,
		NewBuildRate:    240,
		GarageSpaceCost: 18000,
		StoriesFactor:   map[int]float64{1: 1.0, 2: 1.08, 3: 1.15},

		Exterior: MultiplierTable{
			"basic":    1.0,
			"standard": 1.2,
			"premium":  1.45,
			"luxury":   1.75,
		},
		Interior: MultiplierTable{
			"basic":    1.0,
			"standard": 1.15,
			"premium":  1.35,
			"luxury":   1.65,
		},
		HomeStyle: MultiplierTable{
			"traditional":  1.0,
			"farmhouse":    1.0,
			"craftsman":    1.05,
			"contemporary": 1.08,
			"modern":       1.1,
			"mountain":     1.15,
		},

		RenoScopes: map[string]RenoScope{
			model.RenoScopeKitchen:  {Label: "Kitchen", Flat: 45000},
			model.RenoScopeBathroom: {Label: "Bathroom", Flat: 28000},
			"basement":              {Label: "Basement", PerSqft: 160},
			"whole-home":            {Label: "Whole Home", PerSqft: 185},
			"addition":              {Label: "Addition", PerSqft: 220},
		},
		RenoFinish: MultiplierTable{
			"basic":    1.0,
			"standard": 1.15,
			"premium":  1.35,
			"luxury":   1.6,
		},
		RenoCondition: MultiplierTable{
			"good":  0.9,
			"fair":  1.0,
			"poor":  1.2,
			"major": 1.35,
		},

		ConsultRanges: map[string]CostRange{
			"estimation":         {Label: "Cost Estimation", Low: 2000, High: 6000},
			"design-review":      {Label: "Design Review", Low: 1500, High: 4500},
			"feasibility":        {Label: "Feasibility Study", Low: 3000, High: 8000},
			"permitting":         {Label: "Permitting Support", Low: 2500, High: 7500},
			"owner-rep":          {Label: "Owner's Representation", Low: 5000, High: 15000},
			"project-management": {Label: "Project Management", Low: 8000, High: 25000},
		},
		Complexity: MultiplierTable{
			"simple":   0.8,
			"standard": 1.0,
			"complex":  1.3,
			"extreme":  1.6,
		},
		Timeline: MultiplierTable{
			"flexible":  0.9,
			"standard":  1.0,
			"expedited": 1.25,
			"urgent":    1.5,
		},
		PropertyType: MultiplierTable{
			"land":         0.85,
			"residential":  1.0,
			"multi-family": 1.2,
			"commercial":   1.35,
			"mixed-use":    1.4,
		},
		ProjectValue: MultiplierTable{
			"under-250k": 0.8,
			"250k-500k":  0.9,
			"500k-1m":    1.0,
			"1m-3m":      1.2,
			"over-3m":    1.4,
		},
		ConsultLocation: MultiplierTable{
			string(TierPremium):  1.1,
			string(TierStandard): 1.0,
			string(TierExtended): 1.05,
			string(TierRemote):   1.15,
		},

		CommercialRates: RateTable{
			"office":     260,
			"retail":     230,
			"warehouse":  145,
			"restaurant": 320,
		},
		CommercialFinish: MultiplierTable{
			"shell":    0.85,
			"standard": 1.0,
			"premium":  1.25,
			"high-end": 1.5,
		},

		RemoteRates: RateTable{
			"cabin":    210,
			"adu":      245,
			"workshop": 155,
			"off-grid": 295,
		},
		Access: MultiplierTable{
			"easy":      1.0,
			"moderate":  1.12,
			"difficult": 1.28,
			"extreme":   1.45,
		},

		HomeFeatures: FeatureCostTable{
			"ev-charger":      2500,
			"smart-home":      12000,
			"generator":       15000,
			"radiant-floor":   18000,
			"home-theater":    22000,
			"solar":           28000,
			"outdoor-kitchen": 30000,
			"wine-cellar":     35000,
			"elevator":        45000,
			"pool":            65000,
		},
		RenoFeatures: FeatureCostTable{
			"smart-fixtures":  4500,
			"lighting":        5000,
			"heated-floors":   6000,
			"island":          8500,
			"walk-in-shower":  9000,
			"new-appliances":  12000,
			"custom-cabinets": 18000,
		},
		RemoteFeatures: FeatureCostTable{
			"satellite-internet": 3500,
			"wood-stove":         7000,
			"rainwater":          12000,
			"generator":          15000,
			"septic":             18000,
			"well":               25000,
			"road":               30000,
			"solar-battery":      45000,
		},
	}
}
