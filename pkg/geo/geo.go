// Package geo holds the distance and midpoint helpers used for discovery
// radius filtering and venue recommendations.
package geo

import "math"

// EarthRadiusMiles is the mean Earth radius used by DistanceMiles.
const EarthRadiusMiles = 3959.0

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// DistanceMiles returns the great-circle distance between two points using
// the haversine formula.
func DistanceMiles(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// Distance is DistanceMiles over points.
func Distance(a, b Point) float64 {
	return DistanceMiles(a.Lat, a.Lng, b.Lat, b.Lng)
}

// Midpoint is the arithmetic mean of the two coordinates. It is only a good
// approximation over short, intra-city distances; venue service radii are
// tuned against it, so it must stay a flat average.
func Midpoint(lat1, lng1, lat2, lng2 float64) Point {
	return Point{
		Lat: (lat1 + lat2) / 2,
		Lng: (lng1 + lng2) / 2,
	}
}
