// Package model defines the typed records shared across the targeting and
// channel suggestion components.
package model

// Level is an ordinal scale used for population density, income, and
// engagement attributes.
type Level string

const (
	LevelLow      Level = "Low"
	LevelMedium   Level = "Medium"
	LevelHigh     Level = "High"
	LevelVeryHigh Level = "Very High"
)

// LocationRecord is a single geocoded entry in the location directory.
// Records are immutable and identified by Code.
type LocationRecord struct {
	Code              string   `json:"code"`
	Latitude          float64  `json:"latitude"`
	Longitude         float64  `json:"longitude"`
	City              string   `json:"city"`
	AreaName          string   `json:"area_name"`
	PopulationDensity Level    `json:"population_density"`
	AvgIncomeLevel    Level    `json:"avg_income_level"`
	DominantAgeGroup  string   `json:"dominant_age_group"`
	InterestTags      []string `json:"interest_tags,omitempty"`
}

// HasInterest reports whether the location carries the given interest tag.
func (l LocationRecord) HasInterest(tag string) bool {
	for _, t := range l.InterestTags {
		if t == tag {
			return true
		}
	}
	return false
}

// TargetAreaKind discriminates the variants of a TargetAreaDescriptor.
type TargetAreaKind string

const (
	// TargetAreaPoint targets a circle around an explicit coordinate.
	TargetAreaPoint TargetAreaKind = "point"
	// TargetAreaCodes targets one zone per listed location code.
	TargetAreaCodes TargetAreaKind = "codes"
	// TargetAreaUnspecified falls back to the business's home location.
	TargetAreaUnspecified TargetAreaKind = "unspecified"
)

// TargetAreaDescriptor is a tagged union describing the campaign target area.
// Exactly one variant is active, selected by Kind.
type TargetAreaDescriptor struct {
	Kind TargetAreaKind `json:"kind"`

	// Point variant. RadiusKM overrides the request radius when positive.
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
	RadiusKM  float64 `json:"radius_km,omitempty"`

	// Codes variant.
	Codes []string `json:"codes,omitempty"`
}

// PointTarget builds a Point descriptor. radiusKM may be zero to defer to the
// request radius.
func PointTarget(lat, lon, radiusKM float64) TargetAreaDescriptor {
	return TargetAreaDescriptor{Kind: TargetAreaPoint, Latitude: lat, Longitude: lon, RadiusKM: radiusKM}
}

// CodeListTarget builds a descriptor targeting the given location codes.
func CodeListTarget(codes ...string) TargetAreaDescriptor {
	return TargetAreaDescriptor{Kind: TargetAreaCodes, Codes: codes}
}

// UnspecifiedTarget builds the fallback descriptor.
func UnspecifiedTarget() TargetAreaDescriptor {
	return TargetAreaDescriptor{Kind: TargetAreaUnspecified}
}

// ZoneEntry is one covered location within a target zone.
type ZoneEntry struct {
	Code       string  `json:"code"`
	AreaName   string  `json:"area_name,omitempty"`
	DistanceKM float64 `json:"distance_km"`
}

// TargetZone is a circular area around one resolved center point plus every
// directory location inside it, ordered by ascending distance.
type TargetZone struct {
	CenterLat   float64     `json:"center_lat"`
	CenterLon   float64     `json:"center_lon"`
	RadiusKM    float64     `json:"radius_km"`
	SourceLabel string      `json:"source_label"`
	AreaName    string      `json:"area_name,omitempty"`
	Entries     []ZoneEntry `json:"entries"`
}

// Codes returns the location codes covered by the zone, in distance order.
func (z TargetZone) Codes() []string {
	codes := make([]string, len(z.Entries))
	for i, e := range z.Entries {
		codes[i] = e.Code
	}
	return codes
}
