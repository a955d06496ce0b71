package domain

import (
	"time"

	"github.com/gdugdh24/datepoint-backend/pkg/geo"
)

// Discovery ranking: closeness weighs 60, recent activity 40.
const (
	DiscoverDistanceWeight = 60
	DiscoverRecencyWeight  = 40
	DiscoverRecencyWindow  = 30 * 24 * time.Hour
)

// DiscoverQuery is the viewer side of a discovery page.
type DiscoverQuery struct {
	Viewer       *Profile
	DealBreakers *DealBreakers
	Now          time.Time
}

// MaxDistanceMiles is the distance at which closeness drops to zero, and the
// hard radius when the viewer set one.
func (q *DiscoverQuery) MaxDistanceMiles() float64 {
	if q.DealBreakers != nil && q.DealBreakers.MaxDistance != nil {
		return float64(*q.DealBreakers.MaxDistance)
	}
	return DefaultMaxDistanceMiles
}

// Evaluate applies every filter that depends on the viewer: mutual gender
// preference, deal breakers and the distance radius. The distance is nil
// when either side has no location.
func (q *DiscoverQuery) Evaluate(candidate *Profile) (distance *float64, ok bool) {
	viewer := q.Viewer
	if !viewer.Seeks(candidate.Gender) || !candidate.Seeks(viewer.Gender) {
		return nil, false
	}
	if !q.DealBreakers.Accepts(candidate, q.Now) {
		return nil, false
	}

	if viewer.HasLocation() && candidate.HasLocation() {
		d := geo.Distance(
			geo.Point{Lat: *viewer.LocationLat, Lng: *viewer.LocationLng},
			geo.Point{Lat: *candidate.LocationLat, Lng: *candidate.LocationLng},
		)
		if q.DealBreakers != nil && q.DealBreakers.MaxDistance != nil && d > q.MaxDistanceMiles() {
			return nil, false
		}
		distance = &d
	}
	return distance, true
}

// Score is a 0-100 ranking value. An unknown distance counts as half closeness.
func (q *DiscoverQuery) Score(distance *float64, lastActive time.Time) float64 {
	closeness := 0.5
	if distance != nil {
		closeness = clamp01(1 - *distance/q.MaxDistanceMiles())
	}
	recency := clamp01(1 - float64(q.Now.Sub(lastActive))/float64(DiscoverRecencyWindow))
	return closeness*DiscoverDistanceWeight + recency*DiscoverRecencyWeight
}

func clamp01(v float64) float64 {
	return min(max(v, 0), 1)
}

// LatestBirthDate returns the last birth date on which someone is at least
// age years old on now's calendar day.
func LatestBirthDate(now time.Time, age int) time.Time {
	y, m, d := now.Date()
	t := time.Date(y-age, m, d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d {
		// Feb 29 in a non-leap year
		t = time.Date(y-age, m+1, 0, 0, 0, 0, 0, time.UTC)
	}
	return t
}
