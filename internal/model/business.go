package model

// BusinessProfile describes the small business a campaign is run for.
// The profile is immutable within one computation; ID is an opaque
// correlation token, not required to be globally unique.
type BusinessProfile struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name,omitempty"`
	Category           string   `json:"category"`
	Subcategory        string   `json:"subcategory,omitempty"`
	City               string   `json:"city"`
	HomeLocationCode   string   `json:"home_location_code,omitempty"`
	TargetInterests    []string `json:"target_interests,omitempty"`
	TargetIncomeLevels []Level  `json:"target_income_levels,omitempty"`
	TargetAgeGroups    []string `json:"target_age_groups,omitempty"`
}

// TargetsIncome reports whether the given income level is in the profile's
// target set.
func (b BusinessProfile) TargetsIncome(level Level) bool {
	for _, l := range b.TargetIncomeLevels {
		if l == level {
			return true
		}
	}
	return false
}

// CampaignSpec holds the campaign parameters relevant to channel scoring.
// A zero TotalBudget means the budget is unspecified.
type CampaignSpec struct {
	TotalBudget float64 `json:"total_budget"`
	Goal        string  `json:"goal,omitempty"`
}
