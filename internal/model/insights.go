package model

// Demographics holds frequency distributions over covered locations for the
// three categorical directory attributes. Locations missing a value for one
// attribute are skipped for that attribute only.
type Demographics struct {
	PopulationDensity map[Level]int  `json:"population_density,omitempty"`
	AvgIncomeLevel    map[Level]int  `json:"avg_income_level,omitempty"`
	DominantAgeGroup  map[string]int `json:"dominant_age_group,omitempty"`
	LocationsAnalyzed int            `json:"locations_analyzed"`
}

// ClusterResult flags the locations within one zone that jointly satisfy the
// configured income and interest predicate.
type ClusterResult struct {
	ZoneSource              string   `json:"zone_source"`
	Label                   string   `json:"label"`
	QualifyingLocationCodes []string `json:"qualifying_location_codes"`
}

// AudienceInsights is the aggregate output of audience targeting for one
// request.
//
// MatchedInterests is nil when the business declared no target interests
// (never computed), and a non-nil empty map when computed with zero matches.
// Warnings collects non-fatal anomalies in the order they occurred.
// Unavailable marks the terminal "insights unavailable" state; all other
// aggregates are empty in that case.
type AudienceInsights struct {
	EstimatedReach       int            `json:"estimated_reach"`
	Zones                []TargetZone   `json:"zones"`
	CoveredLocationCodes []string       `json:"covered_location_codes"`
	Demographics         Demographics   `json:"demographics"`
	InterestTotals       map[string]int `json:"interest_totals,omitempty"`
	MatchedInterests     map[string]int `json:"matched_interests,omitempty"`
	Clusters             []ClusterResult `json:"clusters,omitempty"`
	Warnings             []string       `json:"warnings,omitempty"`
	Unavailable          bool           `json:"unavailable,omitempty"`
}

// TargetCodes returns the deduplicated covered location set used by the
// channel scorer's geography rule. A nil receiver yields an empty set.
func (a *AudienceInsights) TargetCodes() map[string]bool {
	if a == nil {
		return map[string]bool{}
	}
	set := make(map[string]bool, len(a.CoveredLocationCodes))
	for _, c := range a.CoveredLocationCodes {
		set[c] = true
	}
	return set
}
