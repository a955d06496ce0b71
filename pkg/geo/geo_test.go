package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMiles_SamePointIsZero(t *testing.T) {
	points := []Point{{0, 0}, {40.7128, -74.0060}, {-33.8688, 151.2093}, {89.9, 179.9}}
	for _, p := range points {
		assert.Zero(t, DistanceMiles(p.Lat, p.Lng, p.Lat, p.Lng))
	}
}

func TestDistanceMiles_Symmetric(t *testing.T) {
	a := Point{40.7128, -74.0060}
	b := Point{34.0522, -118.2437}
	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistanceMiles_KnownDistances(t *testing.T) {
	// One degree of longitude on the equator.
	assert.InDelta(t, 69.09, DistanceMiles(0, 0, 0, 1), 0.01)
	// New York to Los Angeles.
	assert.InDelta(t, 2445, DistanceMiles(40.7128, -74.0060, 34.0522, -118.2437), 5)
}

func TestMidpoint_IsArithmeticMean(t *testing.T) {
	assert.Equal(t, Point{Lat: 0, Lng: 1}, Midpoint(0, 0, 0, 2))
	assert.Equal(t, Point{Lat: 45, Lng: -100}, Midpoint(40, -90, 50, -110))

	// A flat average, not a geodesic midpoint: across the antimeridian it
	// lands on the far side of the globe.
	assert.Equal(t, Point{Lat: 0, Lng: 0}, Midpoint(0, 179, 0, -179))
}
