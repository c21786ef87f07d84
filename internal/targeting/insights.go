package targeting

import (
	"context"
	"sort"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/adscout/internal/directory"
	"github.com/sells-group/adscout/internal/model"
)

// ErrInsightsUnavailable marks the terminal failure of GetAudienceInsights:
// no business profile, or no central point resolvable by any variant or
// fallback. The returned insights still carry the accumulated warnings.
var ErrInsightsUnavailable = eris.New("targeting: audience insights unavailable")

const defaultReachMultiplier = 1000

// Engine computes audience insights over an immutable location directory.
type Engine struct {
	locations       *directory.LocationDirectory
	resolver        *Resolver
	policy          ClusterPolicy
	defaultRadiusKM float64
	reachMultiplier int
}

// NewEngine creates an Engine. defaultRadiusKM is used when the caller
// passes a non-positive radius; reachMultiplier <= 0 selects the stock
// 1000-per-location proxy.
func NewEngine(locations *directory.LocationDirectory, policy ClusterPolicy, defaultRadiusKM float64, reachMultiplier int) *Engine {
	if reachMultiplier <= 0 {
		reachMultiplier = defaultReachMultiplier
	}
	if defaultRadiusKM <= 0 {
		defaultRadiusKM = 5
	}
	return &Engine{
		locations:       locations,
		resolver:        NewResolver(locations),
		policy:          policy,
		defaultRadiusKM: defaultRadiusKM,
		reachMultiplier: reachMultiplier,
	}
}

// GetAudienceInsights resolves the target area into zones and aggregates
// demographics, interests, and customer clusters over the covered
// locations. Almost every anomaly degrades to a warning; the only terminal
// outcome is ErrInsightsUnavailable, returned alongside an insights value
// whose aggregates are empty and whose Warnings explain why.
func (e *Engine) GetAudienceInsights(ctx context.Context, profile *model.BusinessProfile, desc model.TargetAreaDescriptor, radiusKM float64) (*model.AudienceInsights, error) {
	insights := &model.AudienceInsights{}

	if profile == nil {
		insights.Unavailable = true
		insights.Warnings = append(insights.Warnings, "business profile not found")
		return insights, eris.Wrap(ErrInsightsUnavailable, "missing business profile")
	}

	if radiusKM <= 0 {
		insights.Warnings = append(insights.Warnings, "non-positive radius; using default")
		radiusKM = e.defaultRadiusKM
	}

	zones, warnings := e.resolver.Resolve(desc, *profile, radiusKM)
	insights.Warnings = append(insights.Warnings, warnings...)
	if len(zones) == 0 {
		insights.Unavailable = true
		return insights, eris.Wrapf(ErrInsightsUnavailable, "business %s: no resolvable target center", profile.ID)
	}
	insights.Zones = zones

	// Union across zones: a location inside two overlapping zones is
	// aggregated once.
	coveredSet := make(map[string]bool)
	for _, z := range zones {
		for _, entry := range z.Entries {
			coveredSet[entry.Code] = true
		}
	}
	codes := make([]string, 0, len(coveredSet))
	for code := range coveredSet {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	insights.CoveredLocationCodes = codes
	insights.EstimatedReach = len(codes) * e.reachMultiplier

	covered := make([]model.LocationRecord, 0, len(codes))
	for _, code := range codes {
		if loc, ok := e.locations.Lookup(code); ok {
			covered = append(covered, loc)
		}
	}

	// Aggregation and cluster detection are independent; run them
	// concurrently over the same immutable covered set.
	var agg Aggregation
	var clusters []model.ClusterResult

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		agg = Aggregate(covered, profile.TargetInterests)
		return nil
	})
	g.Go(func() error {
		clusters = e.detectClusters(zones, *profile)
		return nil
	})
	_ = g.Wait()

	insights.Demographics = agg.Demographics
	insights.InterestTotals = agg.InterestTotals
	insights.MatchedInterests = agg.MatchedInterests
	insights.Warnings = append(insights.Warnings, agg.Warnings...)
	insights.Clusters = clusters

	zap.L().Info("targeting: audience insights computed",
		zap.String("business_id", profile.ID),
		zap.Int("zones", len(zones)),
		zap.Int("covered_locations", len(codes)),
		zap.Int("estimated_reach", insights.EstimatedReach),
		zap.Int("clusters", len(clusters)),
		zap.Int("warnings", len(insights.Warnings)),
	)

	return insights, nil
}

// detectClusters runs the cluster predicate per zone, in zone order.
func (e *Engine) detectClusters(zones []model.TargetZone, profile model.BusinessProfile) []model.ClusterResult {
	var clusters []model.ClusterResult
	for _, z := range zones {
		members := make([]model.LocationRecord, 0, len(z.Entries))
		for _, entry := range z.Entries {
			if loc, ok := e.locations.Lookup(entry.Code); ok {
				members = append(members, loc)
			}
		}
		if result, ok := DetectCluster(z, members, profile, e.policy); ok {
			clusters = append(clusters, result)
		}
	}
	return clusters
}
