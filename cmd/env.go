package main

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/adscout/internal/directory"
	"github.com/sells-group/adscout/internal/model"
	"github.com/sells-group/adscout/internal/scorer"
	"github.com/sells-group/adscout/internal/targeting"
)

// cmdEnv bundles the directories and engines a command needs.
type cmdEnv struct {
	Snapshot  *directory.Snapshot
	Engine    *targeting.Engine
	Suggester *scorer.Suggester

	pool *pgxpool.Pool
}

// initEnv loads the directory snapshot per config and wires the engines.
func initEnv(ctx context.Context) (*cmdEnv, error) {
	env := &cmdEnv{}

	var locations *directory.LocationDirectory
	var channels *directory.ChannelDirectory
	var err error

	switch cfg.Directory.Driver {
	case "postgres":
		env.pool, err = pgxpool.New(ctx, cfg.Directory.DatabaseURL)
		if err != nil {
			return nil, eris.Wrap(err, "connect directory database")
		}
		locations, err = directory.LoadLocationsPG(ctx, env.pool)
		if err != nil {
			return nil, err
		}
		channels, err = directory.LoadChannelsPG(ctx, env.pool)
		if err != nil {
			return nil, err
		}
	case "fixture", "":
		locations, err = directory.LoadLocationsFromFile(cfg.Directory.LocationsPath)
		if err != nil {
			return nil, err
		}
		channels, err = directory.LoadChannelsFromFile(cfg.Directory.ChannelsPath)
		if err != nil {
			return nil, err
		}
	default:
		return nil, eris.Errorf("unknown directory driver %q", cfg.Directory.Driver)
	}

	env.Snapshot = &directory.Snapshot{Locations: locations, Channels: channels}

	policy := targeting.ClusterPolicy{
		Label:     cfg.Targeting.Cluster.Label,
		Interests: cfg.Targeting.Cluster.Interests,
	}
	if policy.Label == "" {
		policy = targeting.DefaultClusterPolicy()
	}

	env.Engine = targeting.NewEngine(locations, policy, cfg.Targeting.DefaultRadiusKM, cfg.Targeting.ReachMultiplier)
	env.Suggester = scorer.NewSuggester(channels, cfg.Suggest.Concurrency)

	zap.L().Info("directories loaded",
		zap.String("driver", cfg.Directory.Driver),
		zap.Int("locations", locations.Len()),
		zap.Int("channels", channels.Len()),
	)

	return env, nil
}

// Close releases pooled resources.
func (e *cmdEnv) Close() {
	if e.pool != nil {
		e.pool.Close()
	}
}

// loadProfile reads a business profile from a JSON file.
func loadProfile(path string) (*model.BusinessProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "read business profile")
	}
	var profile model.BusinessProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, eris.Wrap(err, "unmarshal business profile")
	}
	return &profile, nil
}

// parseTarget builds a descriptor from the --codes / --point flags.
// Both empty means unspecified.
func parseTarget(codes []string, point string) (model.TargetAreaDescriptor, error) {
	if point != "" {
		parts := strings.Split(point, ",")
		if len(parts) != 2 {
			return model.TargetAreaDescriptor{}, eris.Errorf("invalid --point %q, want lat,lon", point)
		}
		lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err1 != nil || err2 != nil {
			return model.TargetAreaDescriptor{}, eris.Errorf("invalid --point %q, want lat,lon", point)
		}
		return model.PointTarget(lat, lon, 0), nil
	}
	if len(codes) > 0 {
		return model.CodeListTarget(codes...), nil
	}
	return model.UnspecifiedTarget(), nil
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return eris.Wrap(err, "encode output")
	}
	return nil
}
