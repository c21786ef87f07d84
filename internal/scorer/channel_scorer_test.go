package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adscout/internal/model"
)

func testChannel() model.ChannelRecord {
	return model.ChannelRecord{
		ID:                "chan_test_01",
		Name:              "Mumbai Food Lovers",
		Type:              model.ChannelSocialMediaGroup,
		City:              "Mumbai",
		CoverageCodes:     []string{"400001", "400050"},
		PrimaryCategories: []string{"Food & Beverage", "Restaurant", "Cafe"},
		AudienceSizeEstimate: 50000,
		EngagementLevel:   model.LevelHigh,
		Cost:              model.ParseCostRange("500-2000 per post"),
	}
}

func mumbaiProfile() model.BusinessProfile {
	return model.BusinessProfile{
		ID: "smb_cafe_01", Category: "Restaurant", Subcategory: "Cafe", City: "Mumbai",
	}
}

func mumbaiInsights() *model.AudienceInsights {
	return &model.AudienceInsights{
		CoveredLocationCodes: []string{"400050", "400070"},
		MatchedInterests:     map[string]int{"coffee": 1, "foodie": 2},
	}
}

func TestScoreCategory_ExactMatchIs30(t *testing.T) {
	pts, reason := scoreCategory(testChannel(), mumbaiProfile())
	assert.Equal(t, 30, pts)
	assert.Contains(t, reason, "Restaurant")
}

func TestScoreCategory_SubcategoryIs20(t *testing.T) {
	profile := mumbaiProfile()
	profile.Category = "Hospitality" // not a channel category
	pts, _ := scoreCategory(testChannel(), profile)
	assert.Equal(t, 20, pts)
}

func TestScoreCategory_PartialTokenIs10(t *testing.T) {
	profile := model.BusinessProfile{Category: "Restaurant Supplies"}
	channel := testChannel()
	channel.PrimaryCategories = []string{"Restaurant Review"}
	pts, _ := scoreCategory(channel, profile)
	assert.Equal(t, 10, pts)
}

func TestScoreCategory_MutuallyExclusive(t *testing.T) {
	// Category, subcategory, and token all match; only the exact rule fires.
	pts, _ := scoreCategory(testChannel(), mumbaiProfile())
	assert.Equal(t, 30, pts)
}

func TestScoreCategory_NoMatch(t *testing.T) {
	profile := model.BusinessProfile{Category: "Plumbing"}
	pts, _ := scoreCategory(testChannel(), profile)
	assert.Zero(t, pts)
}

func TestScoreGeography_OverlapProportional(t *testing.T) {
	// 1 of 2 target codes covered: floor(50*1/2) = 25.
	pts, _, rejected := scoreGeography(testChannel(), mumbaiProfile(), mumbaiInsights())
	assert.False(t, rejected)
	assert.Equal(t, 25, pts)
}

func TestScoreGeography_FullOverlapCappedAt50(t *testing.T) {
	insights := &model.AudienceInsights{CoveredLocationCodes: []string{"400050"}}
	pts, _, rejected := scoreGeography(testChannel(), mumbaiProfile(), insights)
	assert.False(t, rejected)
	assert.Equal(t, 50, pts)
}

func TestScoreGeography_NoOverlapSameCityIs10(t *testing.T) {
	channel := testChannel()
	channel.CoverageCodes = []string{"411001"}
	pts, _, rejected := scoreGeography(channel, mumbaiProfile(), mumbaiInsights())
	assert.False(t, rejected)
	assert.Equal(t, 10, pts)
}

func TestScoreGeography_NoOverlapDifferentCityRejects(t *testing.T) {
	channel := testChannel()
	channel.CoverageCodes = []string{"411001"}
	channel.City = "Pune"
	_, _, rejected := scoreGeography(channel, mumbaiProfile(), mumbaiInsights())
	assert.True(t, rejected)
}

func TestScoreGeography_NoTargetSameCityIs25(t *testing.T) {
	pts, _, rejected := scoreGeography(testChannel(), mumbaiProfile(), nil)
	assert.False(t, rejected)
	assert.Equal(t, 25, pts)
}

func TestScoreGeography_NoTargetDifferentCityRejects(t *testing.T) {
	channel := testChannel()
	channel.City = "Pune"
	_, _, rejected := scoreGeography(channel, mumbaiProfile(), nil)
	assert.True(t, rejected)
}

func TestScoreGeography_CityComparisonCaseInsensitive(t *testing.T) {
	channel := testChannel()
	channel.City = "mumbai"
	pts, _, rejected := scoreGeography(channel, mumbaiProfile(), nil)
	assert.False(t, rejected)
	assert.Equal(t, 25, pts)
}

func TestScoreBudget_Tiers(t *testing.T) {
	channel := testChannel() // min cost 500

	cases := []struct {
		name   string
		budget float64
		want   int
	}{
		{"unspecified", 0, 5},
		{"comfortable", 10000, 10}, // >= 5x min (scenario C shape)
		{"covered", 600, 5},
		{"shortfall", 100, -10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pts, _, ok := scoreBudget(channel, model.CampaignSpec{TotalBudget: tc.budget})
			require.True(t, ok)
			assert.Equal(t, tc.want, pts)
		})
	}
}

func TestScoreBudget_FreeChannelIs15(t *testing.T) {
	channel := testChannel()
	channel.Cost = model.ParseCostRange("free")
	pts, _, ok := scoreBudget(channel, model.CampaignSpec{TotalBudget: 5000})
	require.True(t, ok)
	assert.Equal(t, 15, pts)
}

func TestScoreBudget_UnparseableSkips(t *testing.T) {
	channel := testChannel()
	channel.Cost = model.ParseCostRange("contact sales for pricing")
	_, _, ok := scoreBudget(channel, model.CampaignSpec{TotalBudget: 5000})
	assert.False(t, ok)
}

func TestScoreAudience_SizeAndEngagementCumulative(t *testing.T) {
	pts, _ := scoreAudience(testChannel()) // 50000 > 10000 and High
	assert.Equal(t, 15, pts)

	channel := testChannel()
	channel.AudienceSizeEstimate = 500
	channel.EngagementLevel = model.LevelMedium
	pts, _ = scoreAudience(channel)
	assert.Equal(t, 5, pts)

	channel.EngagementLevel = model.LevelLow
	pts, reason := scoreAudience(channel)
	assert.Zero(t, pts)
	assert.Empty(t, reason)
}

func TestScore_CategoryExactContributesExactly30(t *testing.T) {
	// Scenario: Restaurant business against a Restaurant-primary channel.
	base, _ := Score(testChannel(), mumbaiProfile(), model.CampaignSpec{TotalBudget: 10000}, mumbaiInsights())

	noCategory := mumbaiProfile()
	noCategory.Category = "Plumbing"
	noCategory.Subcategory = ""
	without, _ := Score(testChannel(), noCategory, model.CampaignSpec{TotalBudget: 10000}, mumbaiInsights())

	assert.Equal(t, 30, base-without)
}

func TestScore_BudgetRuleContributesExactly10(t *testing.T) {
	// Scenario: budget 10000 against min cost 2000 -> 10000 >= 5*2000.
	channel := testChannel()
	channel.Cost = model.ParseCostRange("2000-5000 per post")

	with, _ := Score(channel, mumbaiProfile(), model.CampaignSpec{TotalBudget: 10000}, mumbaiInsights())
	covered, _ := Score(channel, mumbaiProfile(), model.CampaignSpec{TotalBudget: 9999}, mumbaiInsights())
	assert.Equal(t, 10-5, with-covered) // comfortable tier vs covered tier
}

func TestScore_GeographyGateForcesZero(t *testing.T) {
	// A channel with no coverage overlap and a different city scores 0
	// no matter how well the other rules fit.
	channel := testChannel()
	channel.CoverageCodes = []string{"411001"}
	channel.City = "Pune"

	score, reasons := Score(channel, mumbaiProfile(), model.CampaignSpec{TotalBudget: 100000}, mumbaiInsights())
	assert.Zero(t, score)
	require.Len(t, reasons, 1)
	assert.Contains(t, reasons[0], "no geographic match")
}

func TestScore_NeverNegative(t *testing.T) {
	// Only the budget penalty fires negatively; total is floored at 0.
	channel := model.ChannelRecord{
		ID: "c", City: "Mumbai",
		CoverageCodes:   []string{"400050"},
		Cost:            model.ParseCostRange("50000-90000 per post"),
		EngagementLevel: model.LevelLow,
	}
	profile := model.BusinessProfile{Category: "Plumbing", City: "Mumbai"}
	insights := &model.AudienceInsights{CoveredLocationCodes: []string{"400050", "a", "b", "c", "d", "e"}}

	score, _ := Score(channel, profile, model.CampaignSpec{TotalBudget: 100}, insights)
	assert.GreaterOrEqual(t, score, 0)
}

func TestScore_InterestOverlapCountsDistinctTags(t *testing.T) {
	insights := mumbaiInsights() // 2 distinct matched tags, occurrences 1 and 2
	with, _ := Score(testChannel(), mumbaiProfile(), model.CampaignSpec{}, insights)

	insights.MatchedInterests = nil
	without, _ := Score(testChannel(), mumbaiProfile(), model.CampaignSpec{}, insights)

	assert.Equal(t, 4, with-without) // 2 tags x 2 points, not 3 occurrences
}

func TestScore_UnparseableCostAddsWarningReason(t *testing.T) {
	channel := testChannel()
	channel.Cost = model.ParseCostRange("contact sales for pricing")

	_, reasons := Score(channel, mumbaiProfile(), model.CampaignSpec{TotalBudget: 5000}, mumbaiInsights())
	found := false
	for _, r := range reasons {
		if r == "could not parse channel cost estimate; budget rule skipped" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestScore_ReasonsFollowRuleOrder(t *testing.T) {
	score, reasons := Score(testChannel(), mumbaiProfile(), model.CampaignSpec{TotalBudget: 10000}, mumbaiInsights())
	assert.Positive(t, score)
	require.Len(t, reasons, 5)
	assert.Contains(t, reasons[0], "category")
	assert.Contains(t, reasons[1], "overlap")
	assert.Contains(t, reasons[2], "budget")
	assert.Contains(t, reasons[3], "audience")
	assert.Contains(t, reasons[4], "interest")
}
