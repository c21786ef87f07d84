package targeting

import (
	"fmt"
	"sort"

	"github.com/sells-group/adscout/internal/directory"
	"github.com/sells-group/adscout/internal/model"
)

// Resolver turns a target-area descriptor into concrete zones over the
// location directory. Resolution fails softly: unresolvable input yields
// warnings and, where possible, a fallback zone.
type Resolver struct {
	locations *directory.LocationDirectory
}

// NewResolver creates a Resolver over the given directory.
func NewResolver(locations *directory.LocationDirectory) *Resolver {
	return &Resolver{locations: locations}
}

// centerPoint is one resolved zone center before the directory scan.
type centerPoint struct {
	lat, lon float64
	radiusKM float64
	source   string
	areaName string
}

// Resolve returns one TargetZone per resolvable center point plus any
// warnings gathered along the way. An empty zone slice means no center could
// be resolved by any variant or fallback.
func (r *Resolver) Resolve(desc model.TargetAreaDescriptor, profile model.BusinessProfile, radiusKM float64) ([]model.TargetZone, []string) {
	var warnings []string

	centers := r.resolveCenters(desc, radiusKM, &warnings)

	// A code list where nothing resolved degrades to the home-location
	// fallback, same as an unspecified descriptor.
	if len(centers) == 0 && desc.Kind != model.TargetAreaPoint {
		if home, ok := r.locations.Lookup(profile.HomeLocationCode); ok {
			if desc.Kind == model.TargetAreaCodes {
				warnings = append(warnings, "no listed location codes resolved; falling back to business home location")
			} else {
				warnings = append(warnings, "target area unspecified; using business home location")
			}
			centers = append(centers, centerPoint{
				lat:      home.Latitude,
				lon:      home.Longitude,
				radiusKM: radiusKM,
				source:   fmt.Sprintf("home_%s", home.Code),
				areaName: home.AreaName,
			})
		} else {
			warnings = append(warnings, "could not determine a central target point")
			return nil, warnings
		}
	}
	if len(centers) == 0 {
		warnings = append(warnings, "could not determine a central target point")
		return nil, warnings
	}

	zones := make([]model.TargetZone, 0, len(centers))
	for _, cp := range centers {
		zones = append(zones, r.scanZone(cp))
	}
	return zones, warnings
}

// resolveCenters maps the active descriptor variant to zone centers.
func (r *Resolver) resolveCenters(desc model.TargetAreaDescriptor, radiusKM float64, warnings *[]string) []centerPoint {
	var centers []centerPoint

	switch desc.Kind {
	case model.TargetAreaPoint:
		radius := radiusKM
		if desc.RadiusKM > 0 {
			radius = desc.RadiusKM
		}
		centers = append(centers, centerPoint{
			lat:      desc.Latitude,
			lon:      desc.Longitude,
			radiusKM: radius,
			source:   "point",
		})

	case model.TargetAreaCodes:
		for _, code := range desc.Codes {
			loc, ok := r.locations.Lookup(code)
			if !ok {
				*warnings = append(*warnings, fmt.Sprintf("location code %q not found in directory", code))
				continue
			}
			centers = append(centers, centerPoint{
				lat:      loc.Latitude,
				lon:      loc.Longitude,
				radiusKM: radiusKM,
				source:   fmt.Sprintf("location_%s", code),
				areaName: loc.AreaName,
			})
		}
	}

	return centers
}

// scanZone scans the full directory and keeps every location within the
// zone radius, ordered by ascending distance from the center. The center
// location itself always lands first at distance 0.
func (r *Resolver) scanZone(cp centerPoint) model.TargetZone {
	zone := model.TargetZone{
		CenterLat:   cp.lat,
		CenterLon:   cp.lon,
		RadiusKM:    cp.radiusKM,
		SourceLabel: cp.source,
		AreaName:    cp.areaName,
	}

	type candidate struct {
		entry model.ZoneEntry
		dist  float64
	}
	var inside []candidate

	for _, loc := range r.locations.All() {
		dist := HaversineKM(cp.lat, cp.lon, loc.Latitude, loc.Longitude)
		if dist <= cp.radiusKM {
			inside = append(inside, candidate{
				entry: model.ZoneEntry{Code: loc.Code, AreaName: loc.AreaName, DistanceKM: roundKM(dist)},
				dist:  dist,
			})
		}
	}

	sort.Slice(inside, func(i, j int) bool {
		if inside[i].dist != inside[j].dist {
			return inside[i].dist < inside[j].dist
		}
		return inside[i].entry.Code < inside[j].entry.Code
	})

	zone.Entries = make([]model.ZoneEntry, len(inside))
	for i, c := range inside {
		zone.Entries[i] = c.entry
	}
	return zone
}
