package postgres

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/pkg/geo"
	"github.com/lib/pq"
)

// haversineSQL mirrors geo.DistanceMiles; %[1]s and %[2]s are the viewer's
// latitude and longitude placeholders.
var haversineSQL = `2 * ` + strconv.FormatFloat(geo.EarthRadiusMiles, 'f', -1, 64) + ` * asin(sqrt(LEAST(1,
	power(sin(radians(p.location_lat - %[1]s) / 2), 2) +
	cos(radians(%[1]s)) * cos(radians(p.location_lat)) * power(sin(radians(p.location_lng - %[2]s) / 2), 2))))`

type sqlArgs []interface{}

func (a *sqlArgs) add(v interface{}) string {
	*a = append(*a, v)
	return "$" + strconv.Itoa(len(*a))
}

// discoverQuery renders domain.DiscoverQuery as SQL so LIMIT/OFFSET page
// over eligible profiles only.
func discoverQuery(q *domain.DiscoverQuery, limit, offset int) (string, []interface{}) {
	viewer := q.Viewer
	var args sqlArgs
	viewerID := args.add(viewer.ID)

	conds := []string{
		"p.id <> " + viewerID,
		"p.is_active",
		"NOT p.is_paused",
		"NOT p.is_deleted",
		"p.main_photo_url IS NOT NULL",
		"p.main_photo_url <> ''",
		"NOT EXISTS (SELECT 1 FROM swipes s WHERE s.swiper_id = " + viewerID + " AND s.swiped_id = p.id)",
		"NOT EXISTS (SELECT 1 FROM blocks b WHERE (b.blocker_id = " + viewerID + " AND b.blocked_id = p.id)" +
			" OR (b.blocker_id = p.id AND b.blocked_id = " + viewerID + "))",
	}

	// mutual gender preference, an empty list or "other" means everyone
	if len(viewer.LookingFor) > 0 && !slices.Contains(viewer.LookingFor, domain.GenderOther) {
		conds = append(conds, "p.gender = ANY("+args.add(pq.Array(viewer.LookingFor))+"::text[])")
	}
	conds = append(conds, fmt.Sprintf(
		"(cardinality(p.looking_for) = 0 OR %s = ANY(p.looking_for) OR %s = ANY(p.looking_for))",
		args.add(domain.GenderOther), args.add(viewer.Gender),
	))

	if d := q.DealBreakers; d != nil {
		if d.MinAge != nil {
			conds = append(conds, "p.birth_date <= "+args.add(domain.LatestBirthDate(q.Now, *d.MinAge).Format(time.DateOnly))+"::date")
		}
		if d.MaxAge != nil {
			conds = append(conds, "p.birth_date > "+args.add(domain.LatestBirthDate(q.Now, *d.MaxAge+1).Format(time.DateOnly))+"::date")
		}
		if d.MinHeight != nil {
			conds = append(conds, "p.height_cm >= "+args.add(*d.MinHeight))
		}
		if d.MaxHeight != nil {
			conds = append(conds, "p.height_cm <= "+args.add(*d.MaxHeight))
		}

		allowLists := []struct {
			column string
			values []string
		}{
			{"p.ethnicity", d.AcceptableEthnicities},
			{"p.religion", d.AcceptableReligions},
			{"p.offspring", d.AcceptableOffspring},
			{"p.smoker", d.AcceptableSmoker},
			{"p.alcohol", d.AcceptableAlcohol},
			{"p.drugs", d.AcceptableDrugs},
			{"p.diet", d.AcceptableDiets},
			{"COALESCE(p.income, '')", d.AcceptableIncome},
		}
		for _, l := range allowLists {
			if len(l.values) > 0 {
				conds = append(conds, l.column+" = ANY("+args.add(pq.Array(l.values))+"::text[])")
			}
		}
	}

	distance := "NULL::double precision"
	if viewer.HasLocation() {
		distance = fmt.Sprintf(haversineSQL, args.add(*viewer.LocationLat), args.add(*viewer.LocationLng))
	}
	maxDistance := args.add(q.MaxDistanceMiles())
	if q.DealBreakers != nil && q.DealBreakers.MaxDistance != nil {
		conds = append(conds, "(g.distance IS NULL OR g.distance <= "+maxDistance+"::double precision)")
	}

	score := fmt.Sprintf(`(CASE WHEN g.distance IS NULL THEN 0.5
			ELSE GREATEST(0, LEAST(1, 1 - g.distance / %[1]s::double precision)) END) * %[2]d
		+ GREATEST(0, LEAST(1, 1 - EXTRACT(EPOCH FROM (%[3]s::timestamptz - p.last_active))::double precision / %[4]d)) * %[5]d`,
		maxDistance, domain.DiscoverDistanceWeight,
		args.add(q.Now), int64(domain.DiscoverRecencyWindow/time.Second), domain.DiscoverRecencyWeight,
	)

	query := `
		SELECT ` + profileColumns + `
		FROM profiles p
		CROSS JOIN LATERAL (SELECT ` + distance + ` AS distance) g
		WHERE ` + strings.Join(conds, "\n\t\t  AND ") + `
		ORDER BY ` + score + ` DESC, p.id
		LIMIT ` + args.add(limit) + ` OFFSET ` + args.add(offset)
	return query, args
}
