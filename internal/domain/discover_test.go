package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLatestBirthDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(1999, 6, 15, 0, 0, 0, 0, time.UTC), LatestBirthDate(now, 25))

	leap := time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC), LatestBirthDate(leap, 1))

	// the cutoff agrees with Profile.Age on both sides
	cutoff := LatestBirthDate(now, 25)
	assert.Equal(t, 25, (&Profile{BirthDate: cutoff}).Age(now))
	assert.Equal(t, 24, (&Profile{BirthDate: cutoff.AddDate(0, 0, 1)}).Age(now))
}

func TestDiscoverQuery_Evaluate(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	lat, lng, farLng := 0.0, 0.0, 1.0
	maxDistance := 25

	viewer := &Profile{ID: "v", Gender: GenderMale, LookingFor: []string{GenderFemale}, LocationLat: &lat, LocationLng: &lng}
	q := &DiscoverQuery{Viewer: viewer, DealBreakers: &DealBreakers{MaxDistance: &maxDistance}, Now: now}

	near := &Profile{Gender: GenderFemale, LocationLat: &lat, LocationLng: &lng}
	d, ok := q.Evaluate(near)
	assert.True(t, ok)
	assert.NotNil(t, d)

	far := &Profile{Gender: GenderFemale, LocationLat: &lat, LocationLng: &farLng}
	_, ok = q.Evaluate(far)
	assert.False(t, ok)

	noLocation := &Profile{Gender: GenderFemale}
	d, ok = q.Evaluate(noLocation)
	assert.True(t, ok)
	assert.Nil(t, d)

	notSeekingViewer := &Profile{Gender: GenderFemale, LookingFor: []string{GenderFemale}}
	_, ok = q.Evaluate(notSeekingViewer)
	assert.False(t, ok)
}
