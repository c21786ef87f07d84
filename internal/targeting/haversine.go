// Package targeting resolves campaign target areas into covered location
// zones and aggregates audience insights over them.
package targeting

import "math"

// earthRadiusKM is the spherical-earth radius used for great-circle distances.
const earthRadiusKM = 6371.0

// HaversineKM returns the great-circle distance in kilometers between two
// points given in decimal degrees.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	lat1r := lat1 * math.Pi / 180
	lon1r := lon1 * math.Pi / 180
	lat2r := lat2 * math.Pi / 180
	lon2r := lon2 * math.Pi / 180

	dlat := lat2r - lat1r
	dlon := lon2r - lon1r

	a := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1r)*math.Cos(lat2r)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKM * c
}

// roundKM rounds a distance to 2 decimal places for reporting. Radius
// comparisons always use the unrounded value.
func roundKM(d float64) float64 {
	return math.Round(d*100) / 100
}
