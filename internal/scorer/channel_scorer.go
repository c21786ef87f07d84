// Package scorer ranks advertising channels against a business profile,
// campaign budget, and audience insights using an additive rule set.
package scorer

import (
	"fmt"
	"strings"

	"github.com/sells-group/adscout/internal/model"
)

// Rule point values. Rules are evaluated in fixed order; order affects only
// the reason text, never the total.
const (
	categoryExactPoints    = 30
	subcategoryPoints      = 20
	categoryPartialPoints  = 10
	geoOverlapMaxPoints    = 50
	cityFallbackPoints     = 10
	cityNoTargetPoints     = 25
	budgetUnspecified      = 5
	budgetFreeChannel      = 15
	budgetComfortable      = 10
	budgetCovered          = 5
	budgetShortfallPenalty = -10
	audienceSizePoints     = 5
	engagementHighPoints   = 10
	engagementMediumPoints = 5
	interestPointsPerMatch = 2
)

// audienceSizeThreshold is the audience estimate above which the size bonus
// applies.
const audienceSizeThreshold = 10000

// Score evaluates every rule group for one channel and returns the floored
// total plus one reason per rule that contributed a nonzero effect, in rule
// order. A geography rejection short-circuits the remaining rules and forces
// the total to 0.
func Score(channel model.ChannelRecord, profile model.BusinessProfile, campaign model.CampaignSpec, insights *model.AudienceInsights) (int, []string) {
	score := 0
	var reasons []string

	// 1. Category match: mutually exclusive, highest-priority rule wins.
	if pts, reason := scoreCategory(channel, profile); pts > 0 {
		score += pts
		reasons = append(reasons, reason)
	}

	// 2. Geography gate.
	geoPts, geoReason, rejected := scoreGeography(channel, profile, insights)
	if rejected {
		return 0, []string{geoReason}
	}
	if geoPts != 0 {
		score += geoPts
		reasons = append(reasons, geoReason)
	}

	// 3. Budget fit.
	if pts, reason, ok := scoreBudget(channel, campaign); ok && pts != 0 {
		score += pts
		reasons = append(reasons, reason)
	} else if !ok {
		reasons = append(reasons, "could not parse channel cost estimate; budget rule skipped")
	}

	// 4. Audience size and engagement.
	if pts, reason := scoreAudience(channel); pts > 0 {
		score += pts
		reasons = append(reasons, reason)
	}

	// 5. Interest overlap: distinct matched tags, not occurrence counts.
	if n := len(insightMatches(insights)); n > 0 {
		score += n * interestPointsPerMatch
		reasons = append(reasons, fmt.Sprintf("interest match: channel aligns with %d of the business target interests", n))
	}

	if score < 0 {
		score = 0
	}
	return score, reasons
}

// scoreCategory awards at most one of {30, 20, 10} for category fit.
func scoreCategory(channel model.ChannelRecord, profile model.BusinessProfile) (int, string) {
	category := strings.ToLower(strings.TrimSpace(profile.Category))
	subcategory := strings.ToLower(strings.TrimSpace(profile.Subcategory))

	channelCats := make([]string, len(channel.PrimaryCategories))
	for i, c := range channel.PrimaryCategories {
		channelCats[i] = strings.ToLower(c)
	}

	contains := func(needle string) bool {
		for _, c := range channelCats {
			if c == needle {
				return true
			}
		}
		return false
	}

	if category != "" && contains(category) {
		return categoryExactPoints, fmt.Sprintf("strong category match: business category %q is primary for channel", profile.Category)
	}
	if subcategory != "" && contains(subcategory) {
		return subcategoryPoints, fmt.Sprintf("sub-category match: %q is relevant for channel", profile.Subcategory)
	}
	if category != "" {
		for _, token := range strings.Fields(category) {
			for _, c := range channelCats {
				if strings.Contains(c, token) {
					return categoryPartialPoints, fmt.Sprintf("partial category match for %q", profile.Category)
				}
			}
		}
	}
	return 0, ""
}

// scoreGeography applies the geographic gate. The third return value marks
// an outright rejection: no coverage overlap and a different city.
func scoreGeography(channel model.ChannelRecord, profile model.BusinessProfile, insights *model.AudienceInsights) (int, string, bool) {
	targetCodes := insights.TargetCodes()
	sameCity := strings.EqualFold(strings.TrimSpace(profile.City), strings.TrimSpace(channel.City))

	if len(targetCodes) == 0 {
		// No resolvable geo target: fall back to a direct city comparison.
		if sameCity {
			return cityNoTargetPoints, fmt.Sprintf("channel is in the business city %s (no target area resolved)", channel.City), false
		}
		return 0, "no geographic match: different city and no target area resolved", true
	}

	overlap := 0
	for _, code := range channel.CoverageCodes {
		if targetCodes[code] {
			overlap++
		}
	}

	if overlap > 0 {
		pts := geoOverlapMaxPoints * overlap / len(targetCodes)
		if pts > geoOverlapMaxPoints {
			pts = geoOverlapMaxPoints
		}
		pct := float64(overlap) / float64(len(targetCodes)) * 100
		return pts, fmt.Sprintf("geographic overlap: %d locations match the campaign target area (%.1f%% coverage)", overlap, pct), false
	}

	if sameCity {
		return cityFallbackPoints, fmt.Sprintf("channel is in the same city (%s) but has no coverage overlap with the target area", channel.City), false
	}
	return 0, "no geographic match with the campaign target area", true
}

// scoreBudget applies the budget tiers. ok is false when the cost range is
// unparseable, meaning the rule was skipped entirely.
func scoreBudget(channel model.ChannelRecord, campaign model.CampaignSpec) (int, string, bool) {
	if !channel.Cost.Parsed {
		return 0, "", false
	}

	budget := campaign.TotalBudget
	minCost := channel.Cost.MinCost()

	switch {
	case budget == 0:
		return budgetUnspecified, "no campaign budget specified", true
	case minCost == 0:
		return budgetFreeChannel, "budget-friendly: channel offers free posting options", true
	case budget >= minCost*5:
		return budgetComfortable, "good budget fit: campaign budget allows for multiple engagements", true
	case budget >= minCost:
		return budgetCovered, "budget fit: campaign budget covers the minimum channel cost", true
	default:
		return budgetShortfallPenalty, "potential budget mismatch: minimum channel cost may exceed the campaign budget", true
	}
}

// scoreAudience awards the size bonus and the engagement bonus; the two are
// cumulative within this rule group.
func scoreAudience(channel model.ChannelRecord) (int, string) {
	pts := 0
	if channel.AudienceSizeEstimate > audienceSizeThreshold {
		pts += audienceSizePoints
	}
	switch channel.EngagementLevel {
	case model.LevelHigh, model.LevelVeryHigh:
		pts += engagementHighPoints
	case model.LevelMedium:
		pts += engagementMediumPoints
	}
	if pts == 0 {
		return 0, ""
	}
	return pts, fmt.Sprintf("audience potential: size %d, engagement %q", channel.AudienceSizeEstimate, channel.EngagementLevel)
}

func insightMatches(insights *model.AudienceInsights) map[string]int {
	if insights == nil {
		return nil
	}
	return insights.MatchedInterests
}
