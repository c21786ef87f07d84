package targeting

import (
	"github.com/sells-group/adscout/internal/directory"
	"github.com/sells-group/adscout/internal/model"
)

// testLocations mirrors the seed directory used by the CLI fixtures.
func testLocations() *directory.LocationDirectory {
	return directory.NewLocationDirectory([]model.LocationRecord{
		{Code: "400001", Latitude: 18.94, Longitude: 72.8347, City: "Mumbai", AreaName: "Fort",
			PopulationDensity: model.LevelHigh, AvgIncomeLevel: model.LevelHigh, DominantAgeGroup: "30-45"},
		{Code: "400050", Latitude: 19.076, Longitude: 72.8777, City: "Mumbai", AreaName: "Bandra",
			PopulationDensity: model.LevelVeryHigh, AvgIncomeLevel: model.LevelVeryHigh, DominantAgeGroup: "25-40",
			InterestTags: []string{"fashion", "foodie", "nightlife", "startups"}},
		{Code: "400070", Latitude: 19.0728, Longitude: 72.884, City: "Mumbai", AreaName: "Kurla",
			PopulationDensity: model.LevelHigh, AvgIncomeLevel: model.LevelMedium, DominantAgeGroup: "20-35"},
		{Code: "110001", Latitude: 28.6358, Longitude: 77.2245, City: "Delhi", AreaName: "Connaught Place",
			PopulationDensity: model.LevelMedium, AvgIncomeLevel: model.LevelHigh, DominantAgeGroup: "28-50",
			InterestTags: []string{"shopping", "history", "government", "business"}},
		{Code: "110006", Latitude: 28.6562, Longitude: 77.241, City: "Delhi", AreaName: "Chandni Chowk",
			PopulationDensity: model.LevelVeryHigh, AvgIncomeLevel: model.LevelMedium, DominantAgeGroup: "22-45"},
		{Code: "560001", Latitude: 12.9716, Longitude: 77.5946, City: "Bangalore", AreaName: "MG Road",
			PopulationDensity: model.LevelHigh, AvgIncomeLevel: model.LevelHigh, DominantAgeGroup: "25-45",
			InterestTags: []string{"technology", "gadgets"}},
		{Code: "560038", Latitude: 12.9141, Longitude: 77.6369, City: "Bangalore", AreaName: "Indiranagar",
			PopulationDensity: model.LevelMedium, AvgIncomeLevel: model.LevelVeryHigh, DominantAgeGroup: "28-40",
			InterestTags: []string{"pubs", "IT", "luxury", "foodie"}},
	})
}
