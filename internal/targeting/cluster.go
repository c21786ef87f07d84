package targeting

import (
	"github.com/sells-group/adscout/internal/model"
)

// ClusterPolicy is the predicate a location must satisfy, together with the
// business's target income levels, to join a potential customer cluster.
// This is a simple conjunctive filter standing in for a real clustering
// model; the default policy reproduces the one illustrative rule the product
// shipped with, and the intent beyond that example is an open product
// question.
type ClusterPolicy struct {
	Label     string
	Interests []string
}

// DefaultClusterPolicy returns the stock high-income tech predicate.
func DefaultClusterPolicy() ClusterPolicy {
	return ClusterPolicy{
		Label:     "High-Income Tech Enthusiasts",
		Interests: []string{"technology", "gadgets"},
	}
}

// DetectCluster filters one zone's member locations to those whose income
// level is in the business's target set and whose interest tags intersect
// the policy interests. Returns false when no location qualifies.
func DetectCluster(zone model.TargetZone, members []model.LocationRecord, profile model.BusinessProfile, policy ClusterPolicy) (model.ClusterResult, bool) {
	var qualifying []string

	for _, loc := range members {
		if !profile.TargetsIncome(loc.AvgIncomeLevel) {
			continue
		}
		matched := false
		for _, tag := range policy.Interests {
			if loc.HasInterest(tag) {
				matched = true
				break
			}
		}
		if matched {
			qualifying = append(qualifying, loc.Code)
		}
	}

	if len(qualifying) == 0 {
		return model.ClusterResult{}, false
	}

	return model.ClusterResult{
		ZoneSource:              zone.SourceLabel,
		Label:                   policy.Label,
		QualifyingLocationCodes: qualifying,
	}, true
}
