package venue

import (
	"sort"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/pkg/geo"
)

// RankedVenue is a venue with its distance from the pair's midpoint.
type RankedVenue struct {
	*domain.Venue
	DistanceMiles float64 `json:"distance_miles"`
}

// Rank keeps the venues that serve midpoint and orders them by partnership
// slot, then by distance. At most limit venues are returned.
func Rank(venues []*domain.Venue, midpoint geo.Point, limit int) []*RankedVenue {
	ranked := make([]*RankedVenue, 0, len(venues))
	for _, v := range venues {
		d := geo.Distance(midpoint, geo.Point{Lat: v.Lat, Lng: v.Lng})
		if d > v.ServiceRadiusMiles {
			continue
		}
		ranked = append(ranked, &RankedVenue{Venue: v, DistanceMiles: d})
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.PartnershipSlot != b.PartnershipSlot {
			return a.PartnershipSlot < b.PartnershipSlot
		}
		if a.DistanceMiles != b.DistanceMiles {
			return a.DistanceMiles < b.DistanceMiles
		}
		return a.ID < b.ID
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
