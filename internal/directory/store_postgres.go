package directory

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/db"
	"github.com/sells-group/adscout/internal/model"
)

// LoadLocationsPG loads the full location directory from Postgres in a single
// bulk read, keeping the per-request scan in memory rather than scattering
// per-lookup queries.
func LoadLocationsPG(ctx context.Context, pool db.Pool) (*LocationDirectory, error) {
	query := `
		SELECT code, latitude, longitude,
		       COALESCE(city, ''), COALESCE(area_name, ''),
		       COALESCE(population_density, ''), COALESCE(avg_income_level, ''),
		       COALESCE(dominant_age_group, ''), COALESCE(interest_tags, '{}')
		FROM adscout.locations
		ORDER BY code`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "directory: query locations")
	}
	defer rows.Close()

	var records []model.LocationRecord
	for rows.Next() {
		var r model.LocationRecord
		if err := rows.Scan(
			&r.Code, &r.Latitude, &r.Longitude,
			&r.City, &r.AreaName,
			&r.PopulationDensity, &r.AvgIncomeLevel,
			&r.DominantAgeGroup, &r.InterestTags,
		); err != nil {
			return nil, eris.Wrap(err, "directory: scan location row")
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "directory: iterate location rows")
	}

	zap.L().Info("directory: locations loaded from postgres", zap.Int("count", len(records)))
	return NewLocationDirectory(records), nil
}

// LoadChannelsPG loads the full channel directory from Postgres in a single
// bulk read. Rows keep their SQL ordering, which becomes the ranking
// tie-break order.
func LoadChannelsPG(ctx context.Context, pool db.Pool) (*ChannelDirectory, error) {
	query := `
		SELECT id, name, type, COALESCE(platform, ''), COALESCE(city, ''),
		       COALESCE(coverage_codes, '{}'), COALESCE(primary_categories, '{}'),
		       COALESCE(audience_size_estimate, 0), COALESCE(engagement_level, ''),
		       COALESCE(cost_range, ''), COALESCE(url, ''), COALESCE(contact, ''),
		       COALESCE(notes, '')
		FROM adscout.channels
		ORDER BY id`

	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, eris.Wrap(err, "directory: query channels")
	}
	defer rows.Close()

	var channels []model.ChannelRecord
	for rows.Next() {
		var c model.ChannelRecord
		var costRaw string
		if err := rows.Scan(
			&c.ID, &c.Name, &c.Type, &c.Platform, &c.City,
			&c.CoverageCodes, &c.PrimaryCategories,
			&c.AudienceSizeEstimate, &c.EngagementLevel,
			&costRaw, &c.URL, &c.Contact, &c.Notes,
		); err != nil {
			return nil, eris.Wrap(err, "directory: scan channel row")
		}
		c.Cost = model.ParseCostRange(costRaw)
		channels = append(channels, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "directory: iterate channel rows")
	}

	zap.L().Info("directory: channels loaded from postgres", zap.Int("count", len(channels)))
	return NewChannelDirectory(channels), nil
}

var locationsUpsert = db.UpsertSpec{
	Table: "adscout.locations",
	Columns: []string{
		"code", "latitude", "longitude", "city", "area_name",
		"population_density", "avg_income_level", "dominant_age_group", "interest_tags",
	},
	ConflictKeys: []string{"code"},
}

var channelsUpsert = db.UpsertSpec{
	Table: "adscout.channels",
	Columns: []string{
		"id", "name", "type", "platform", "city", "coverage_codes",
		"primary_categories", "audience_size_estimate", "engagement_level",
		"cost_range", "url", "contact", "notes",
	},
	ConflictKeys: []string{"id"},
}

// SaveLocationsPG upserts location records into Postgres, keyed by code.
func SaveLocationsPG(ctx context.Context, pool db.Pool, records []model.LocationRecord) (int64, error) {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.Code, r.Latitude, r.Longitude, r.City, r.AreaName,
			string(r.PopulationDensity), string(r.AvgIncomeLevel),
			r.DominantAgeGroup, r.InterestTags,
		})
	}

	n, err := db.BulkUpsert(ctx, pool, locationsUpsert, rows)
	if err != nil {
		return 0, eris.Wrap(err, "directory: save locations")
	}
	zap.L().Info("directory: locations saved to postgres", zap.Int64("count", n))
	return n, nil
}

// SaveChannelsPG upserts channel records into Postgres, keyed by id. The cost
// range is stored in its raw text form and reparsed on load.
func SaveChannelsPG(ctx context.Context, pool db.Pool, channels []model.ChannelRecord) (int64, error) {
	rows := make([][]any, 0, len(channels))
	for _, c := range channels {
		rows = append(rows, []any{
			c.ID, c.Name, string(c.Type), c.Platform, c.City, c.CoverageCodes,
			c.PrimaryCategories, c.AudienceSizeEstimate, string(c.EngagementLevel),
			c.Cost.Raw, c.URL, c.Contact, c.Notes,
		})
	}

	n, err := db.BulkUpsert(ctx, pool, channelsUpsert, rows)
	if err != nil {
		return 0, eris.Wrap(err, "directory: save channels")
	}
	zap.L().Info("directory: channels saved to postgres", zap.Int64("count", n))
	return n, nil
}
