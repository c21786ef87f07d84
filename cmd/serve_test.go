package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/adscout/internal/config"
	"github.com/sells-group/adscout/internal/directory"
	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/scorer"
	"github.com/sells-group/adscout/internal/targeting"
)

func testEnv(t *testing.T) *cmdEnv {
	t.Helper()

	locations := directory.NewLocationDirectory([]model.LocationRecord{
		{Code: "400050", Latitude: 19.076, Longitude: 72.8777, City: "Mumbai", AreaName: "Bandra",
			PopulationDensity: model.LevelVeryHigh, AvgIncomeLevel: model.LevelVeryHigh,
			DominantAgeGroup: "25-40", InterestTags: []string{"foodie"}},
		{Code: "400070", Latitude: 19.0728, Longitude: 72.884, City: "Mumbai", AreaName: "Kurla",
			PopulationDensity: model.LevelHigh, AvgIncomeLevel: model.LevelMedium, DominantAgeGroup: "20-35"},
	})
	channels := directory.NewChannelDirectory([]model.ChannelRecord{
		{ID: "chan_food", Name: "Mumbai Food Lovers", City: "Mumbai",
			CoverageCodes:     []string{"400050", "400070"},
			PrimaryCategories: []string{"Restaurant"},
			AudienceSizeEstimate: 50000, EngagementLevel: model.LevelHigh,
			Cost: model.ParseCostRange("500-2000 per post")},
	})

	return &cmdEnv{
		Snapshot:  &directory.Snapshot{Locations: locations, Channels: channels},
		Engine:    targeting.NewEngine(locations, targeting.DefaultClusterPolicy(), 5, 1000),
		Suggester: scorer.NewSuggester(channels, 0),
	}
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(newRouter(testEnv(t), config.ServerConfig{}))
	t.Cleanup(srv.Close)
	return srv
}

func TestServe_Healthz(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}

func TestServe_Insights(t *testing.T) {
	srv := testServer(t)

	body := `{
		"business_profile": {"id": "smb_1", "category": "Restaurant", "city": "Mumbai", "home_location_code": "400050", "target_interests": ["foodie"]},
		"target_area": {"kind": "codes", "codes": ["400050"]},
		"radius_km": 2
	}`
	resp, err := http.Post(srv.URL+"/v1/insights", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServe_Insights_MissingProfile(t *testing.T) {
	srv := testServer(t)

	resp, err := http.Post(srv.URL+"/v1/insights", "application/json", strings.NewReader(`{"radius_km": 2}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServe_Insights_UnavailableIs422(t *testing.T) {
	srv := testServer(t)

	// Unknown codes and no home location: terminal unavailable result.
	body := `{
		"business_profile": {"id": "smb_1", "category": "Restaurant", "city": "Mumbai"},
		"target_area": {"kind": "codes", "codes": ["999999"]},
		"radius_km": 2
	}`
	resp, err := http.Post(srv.URL+"/v1/insights", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestServe_Suggest(t *testing.T) {
	srv := testServer(t)

	body := `{
		"business_profile": {"id": "smb_1", "category": "Restaurant", "city": "Mumbai", "home_location_code": "400050"},
		"campaign": {"total_budget": 10000},
		"target_area": {"kind": "codes", "codes": ["400050"]},
		"radius_km": 2,
		"top_n": 3
	}`
	resp, err := http.Post(srv.URL+"/v1/suggest", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServe_RateLimit(t *testing.T) {
	env := testEnv(t)
	srv := httptest.NewServer(newRouter(env, config.ServerConfig{RateLimitRPS: 1, RateBurst: 1}))
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestParseTarget(t *testing.T) {
	d, err := parseTarget(nil, "19.076,72.8777")
	require.NoError(t, err)
	assert.Equal(t, model.TargetAreaPoint, d.Kind)
	assert.InDelta(t, 19.076, d.Latitude, 0.001)

	d, err = parseTarget([]string{"400050"}, "")
	require.NoError(t, err)
	assert.Equal(t, model.TargetAreaCodes, d.Kind)

	d, err = parseTarget(nil, "")
	require.NoError(t, err)
	assert.Equal(t, model.TargetAreaUnspecified, d.Kind)

	_, err = parseTarget(nil, "not-a-point")
	require.Error(t, err)
}
