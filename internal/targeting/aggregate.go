package targeting

import (
	"github.com/sells-group/adscout/internal/model"
)

// Aggregation is the demographic and interest summary over a covered
// location set.
type Aggregation struct {
	Demographics     model.Demographics
	InterestTotals   map[string]int
	MatchedInterests map[string]int
	Warnings         []string
}

// Aggregate reduces the covered locations into frequency distributions and
// interest-overlap statistics against the business's target interests.
// Pure function; an empty covered set yields empty distributions with a
// descriptive warning rather than an error.
//
// MatchedInterests is nil when targetInterests is empty, distinguishing
// "never computed" from "computed but zero".
func Aggregate(covered []model.LocationRecord, targetInterests []string) Aggregation {
	agg := Aggregation{
		Demographics: model.Demographics{
			PopulationDensity: make(map[model.Level]int),
			AvgIncomeLevel:    make(map[model.Level]int),
			DominantAgeGroup:  make(map[string]int),
		},
		InterestTotals: make(map[string]int),
	}

	targets := make(map[string]bool, len(targetInterests))
	for _, t := range targetInterests {
		targets[t] = true
	}
	if len(targets) > 0 {
		agg.MatchedInterests = make(map[string]int)
	}

	if len(covered) == 0 {
		agg.Warnings = append(agg.Warnings, "no covered locations to analyze")
		return agg
	}

	for _, loc := range covered {
		// Missing fields skip that distribution only.
		if loc.PopulationDensity != "" {
			agg.Demographics.PopulationDensity[loc.PopulationDensity]++
		}
		if loc.AvgIncomeLevel != "" {
			agg.Demographics.AvgIncomeLevel[loc.AvgIncomeLevel]++
		}
		if loc.DominantAgeGroup != "" {
			agg.Demographics.DominantAgeGroup[loc.DominantAgeGroup]++
		}
		agg.Demographics.LocationsAnalyzed++

		for _, tag := range loc.InterestTags {
			agg.InterestTotals[tag]++
			if targets[tag] {
				agg.MatchedInterests[tag]++
			}
		}
	}

	return agg
}
