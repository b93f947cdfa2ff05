package model

import "sort"

// ProjectType selects which estimator prices a WizardState.
type ProjectType string

const (
	ProjectCustomHome ProjectType = "custom-home"
	ProjectNewBuild   ProjectType = "new-build"
	ProjectRenovation ProjectType = "renovation"
	ProjectConsulting ProjectType = "consulting"
	ProjectCommercial ProjectType = "commercial"
	ProjectRemote     ProjectType = "remote"
)

// ProjectTypes lists every selectable project type in display order.
func ProjectTypes() []ProjectType {
	return []ProjectType{
		ProjectCustomHome,
		ProjectNewBuild,
		ProjectRenovation,
		ProjectConsulting,
		ProjectCommercial,
		ProjectRemote,
	}
}

// Valid reports whether p is one of the six known project types.
func (p ProjectType) Valid() bool {
	switch p {
	case ProjectCustomHome, ProjectNewBuild, ProjectRenovation,
		ProjectConsulting, ProjectCommercial, ProjectRemote:
		return true
	}
	return false
}

// Label returns the human-readable name of the project type.
func (p ProjectType) Label() string {
	switch p {
	case ProjectCustomHome:
		return "Custom Home"
	case ProjectNewBuild:
		return "New Build"
	case ProjectRenovation:
		return "Renovation"
	case ProjectConsulting:
		return "Consulting"
	case ProjectCommercial:
		return "Commercial"
	case ProjectRemote:
		return "Remote & Off-Grid"
	}
	return string(p)
}

// Renovation scopes that are flat-priced in the default tables.
const (
	RenoScopeKitchen  = "kitchen"
	RenoScopeBathroom = "bathroom"
)

// WizardState accumulates the answers given across wizard steps.
// Only the fields belonging to the active ProjectType are meaningful.
type WizardState struct {
	ProjectType ProjectType `json:"projectType" yaml:"projectType"`
	ZipCode     string      `json:"zipCode" yaml:"zipCode"`
	Sqft        int         `json:"sqft" yaml:"sqft"`

	// custom home / new build
	Exterior     string   `json:"exterior,omitempty" yaml:"exterior,omitempty"`
	Interior     string   `json:"interior,omitempty" yaml:"interior,omitempty"`
	HomeStyle    string   `json:"homeStyle,omitempty" yaml:"homeStyle,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty" yaml:"bedrooms,omitempty"`
	Bathrooms    int      `json:"bathrooms,omitempty" yaml:"bathrooms,omitempty"`
	Stories      int      `json:"stories,omitempty" yaml:"stories,omitempty"`
	GarageSpaces int      `json:"garageSpaces,omitempty" yaml:"garageSpaces,omitempty"`
	HomeFeatures []string `json:"homeFeatures,omitempty" yaml:"homeFeatures,omitempty"`

	// renovation
	RenoScope     string   `json:"renoScope,omitempty" yaml:"renoScope,omitempty"`
	RenoArea      int      `json:"renoArea,omitempty" yaml:"renoArea,omitempty"`
	RenoCondition string   `json:"renoCondition,omitempty" yaml:"renoCondition,omitempty"`
	RenoFinish    string   `json:"renoFinish,omitempty" yaml:"renoFinish,omitempty"`
	RenoFeatures  []string `json:"renoFeatures,omitempty" yaml:"renoFeatures,omitempty"`

	// consulting
	ConsultType  string `json:"consultType,omitempty" yaml:"consultType,omitempty"`
	Complexity   string `json:"complexity,omitempty" yaml:"complexity,omitempty"`
	Timeline     string `json:"timeline,omitempty" yaml:"timeline,omitempty"`
	PropertyType string `json:"propertyType,omitempty" yaml:"propertyType,omitempty"`
	ProjectValue string `json:"projectValue,omitempty" yaml:"projectValue,omitempty"`

	// commercial
	CommercialType   string `json:"commercialType,omitempty" yaml:"commercialType,omitempty"`
	CommercialFinish string `json:"commercialFinish,omitempty" yaml:"commercialFinish,omitempty"`

	// remote / off-grid
	RemoteType     string   `json:"remoteType,omitempty" yaml:"remoteType,omitempty"`
	Access         string   `json:"access,omitempty" yaml:"access,omitempty"`
	RemoteFeatures []string `json:"remoteFeatures,omitempty" yaml:"remoteFeatures,omitempty"`
}

// Reset clears every answer, returning the state to the type-select step.
func (s *WizardState) Reset() {
	*s = WizardState{}
}

// Clone returns a deep copy of s. Feature slices are not shared.
func (s WizardState) Clone() WizardState {
	out := s
	out.HomeFeatures = cloneStrings(s.HomeFeatures)
	out.RenoFeatures = cloneStrings(s.RenoFeatures)
	out.RemoteFeatures = cloneStrings(s.RemoteFeatures)
	return out
}

// ToggleFeature flips membership of id in the feature set and returns the
// updated set. The result is sorted and free of duplicates.
func ToggleFeature(set []string, id string) []string {
	seen := false
	out := make([]string, 0, len(set)+1)
	for _, f := range NormalizeFeatures(set) {
		if f == id {
			seen = true
			continue
		}
		out = append(out, f)
	}
	if !seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// NormalizeFeatures drops empty and duplicate ids. Order carries no meaning,
// so the result is sorted.
func NormalizeFeatures(set []string) []string {
	if len(set) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(set))
	out := make([]string, 0, len(set))
	for _, f := range set {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
