package feed

import (
	"context"
	"testing"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/gdugdh24/datepoint-backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	t            *testing.T
	store        *memory.Store
	profiles     repository.ProfileRepository
	dealBreakers repository.DealBreakersRepository
	swipes       repository.SwipeRepository
	blocks       repository.BlockRepository
	uc           *FeedUseCase
}

func newFixture(t *testing.T) *fixture {
	store := memory.NewStore()
	store.SetClock(func() time.Time { return now })

	f := &fixture{
		t:            t,
		store:        store,
		profiles:     memory.NewProfileRepository(store),
		dealBreakers: memory.NewDealBreakersRepository(store),
		swipes:       memory.NewSwipeRepository(store),
		blocks:       memory.NewBlockRepository(store),
	}
	f.uc = NewFeedUseCase(f.profiles, f.dealBreakers, 20, logger.Discard())
	f.uc.now = func() time.Time { return now }
	return f
}

// addProfile stores a discoverable profile aged 30 at the origin.
func (f *fixture) addProfile(mutate func(p *domain.Profile)) *domain.Profile {
	f.t.Helper()
	url := "https://cdn.example/main.jpg"
	lat, lng := 0.0, 0.0
	p := &domain.Profile{
		ID:           uuid.NewString(),
		FirstName:    "Sam",
		BirthDate:    now.AddDate(-30, 0, 0),
		Gender:       domain.GenderFemale,
		LookingFor:   []string{domain.GenderOther},
		HeightCm:     170,
		Ethnicity:    "white",
		Religion:     "agnostic",
		IsActive:     true,
		MainPhotoURL: &url,
		LocationLat:  &lat,
		LocationLng:  &lng,
	}
	if mutate != nil {
		mutate(p)
	}
	require.NoError(f.t, f.profiles.Create(context.Background(), p))
	return p
}

func ids(candidates []*Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.ID)
	}
	return out
}

func intPtr(v int) *int { return &v }

func TestDiscover_AgeRangeIsInclusive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.addProfile(nil)

	young := f.addProfile(func(p *domain.Profile) { p.BirthDate = now.AddDate(-24, 0, 0) })
	low := f.addProfile(func(p *domain.Profile) { p.BirthDate = now.AddDate(-25, 0, 0) })
	high := f.addProfile(func(p *domain.Profile) { p.BirthDate = now.AddDate(-35, 0, 0) })
	old := f.addProfile(func(p *domain.Profile) { p.BirthDate = now.AddDate(-36, 0, 0) })

	require.NoError(t, f.dealBreakers.Upsert(ctx, &domain.DealBreakers{UserID: viewer.ID, MinAge: intPtr(25), MaxAge: intPtr(35)}))

	got, err := f.uc.Discover(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{low.ID, high.ID}, ids(got))
	assert.NotContains(t, ids(got), young.ID)
	assert.NotContains(t, ids(got), old.ID)
}

func TestDiscover_AllowListsAndHeight(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.addProfile(nil)

	keep := f.addProfile(nil)
	f.addProfile(func(p *domain.Profile) { p.Religion = "catholic" })
	f.addProfile(func(p *domain.Profile) { p.HeightCm = 150 })

	require.NoError(t, f.dealBreakers.Upsert(ctx, &domain.DealBreakers{
		UserID:              viewer.ID,
		MinHeight:           intPtr(160),
		AcceptableReligions: []string{"agnostic", "atheist"},
		// empty list means no constraint
		AcceptableEthnicities: []string{},
	}))

	got, err := f.uc.Discover(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, ids(got))
}

func TestDiscover_ExcludesSwipedBlockedAndIneligible(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.addProfile(nil)

	keep := f.addProfile(nil)
	swiped := f.addProfile(nil)
	blockedByThem := f.addProfile(nil)
	blockedByMe := f.addProfile(nil)
	f.addProfile(func(p *domain.Profile) { p.IsPaused = true })
	f.addProfile(func(p *domain.Profile) { p.MainPhotoURL = nil })

	require.NoError(t, f.swipes.Create(ctx, &domain.Swipe{SwiperID: viewer.ID, SwipedID: swiped.ID, Liked: false}))
	require.NoError(t, f.blocks.Create(ctx, &domain.Block{BlockerID: blockedByThem.ID, BlockedID: viewer.ID}))
	require.NoError(t, f.blocks.Create(ctx, &domain.Block{BlockerID: viewer.ID, BlockedID: blockedByMe.ID}))

	got, err := f.uc.Discover(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, ids(got))
}

func TestDiscover_MutualGenderPreference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.addProfile(func(p *domain.Profile) {
		p.Gender = domain.GenderMale
		p.LookingFor = []string{domain.GenderFemale}
	})

	keep := f.addProfile(func(p *domain.Profile) { p.LookingFor = []string{domain.GenderMale} })
	f.addProfile(func(p *domain.Profile) { p.LookingFor = []string{domain.GenderFemale} })
	f.addProfile(func(p *domain.Profile) { p.Gender = domain.GenderMale })

	got, err := f.uc.Discover(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{keep.ID}, ids(got))
}

func TestDiscover_MaxDistanceAndRanking(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.addProfile(nil)

	// ~6.9 miles and ~13.8 miles east of the viewer
	near := f.addProfile(func(p *domain.Profile) { lng := 0.1; p.LocationLng = &lng })
	far := f.addProfile(func(p *domain.Profile) { lng := 0.2; p.LocationLng = &lng })
	f.addProfile(func(p *domain.Profile) { lng := 1.0; p.LocationLng = &lng })

	require.NoError(t, f.dealBreakers.Upsert(ctx, &domain.DealBreakers{UserID: viewer.ID, MaxDistance: intPtr(25)}))

	got, err := f.uc.Discover(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	require.Equal(t, []string{near.ID, far.ID}, ids(got))
	require.NotNil(t, got[0].DistanceMiles)
	assert.InDelta(t, 6.9, *got[0].DistanceMiles, 0.1)
	assert.Equal(t, 30, got[0].Age)
}

func TestDiscover_PagingAndLimit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.addProfile(nil)
	for i := 0; i < 5; i++ {
		f.addProfile(nil)
	}

	first, err := f.uc.Discover(ctx, viewer.ID, 2, 0)
	require.NoError(t, err)
	second, err := f.uc.Discover(ctx, viewer.ID, 2, 2)
	require.NoError(t, err)
	rest, err := f.uc.Discover(ctx, viewer.ID, 2, 4)
	require.NoError(t, err)
	empty, err := f.uc.Discover(ctx, viewer.ID, 2, 6)
	require.NoError(t, err)

	assert.Len(t, first, 2)
	assert.Len(t, second, 2)
	assert.Len(t, rest, 1)
	assert.Empty(t, empty)
	assert.NotEqual(t, ids(first), ids(second))
}

func TestDiscover_NoCandidatesIsEmpty(t *testing.T) {
	f := newFixture(t)
	viewer := f.addProfile(nil)

	got, err := f.uc.Discover(context.Background(), viewer.ID, 10, 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDiscover_Unauthenticated(t *testing.T) {
	_, err := newFixture(t).uc.Discover(context.Background(), "", 10, 0)
	assert.Equal(t, domain.KindUnauthenticated, domain.KindOf(err))
}

func TestDiscover_FindsCandidateBehindManyIneligibleProfiles(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.addProfile(nil)

	for i := 0; i < 1200; i++ {
		f.addProfile(func(p *domain.Profile) { p.HeightCm = 160 })
	}
	// ranked below every short profile
	tall := f.addProfile(func(p *domain.Profile) {
		lng := 0.3
		p.LocationLng = &lng
		p.HeightCm = 185
	})

	require.NoError(t, f.dealBreakers.Upsert(ctx, &domain.DealBreakers{UserID: viewer.ID, MinHeight: intPtr(175)}))

	got, err := f.uc.Discover(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{tall.ID}, ids(got))

	next, err := f.uc.Discover(ctx, viewer.ID, 10, 1)
	require.NoError(t, err)
	assert.Empty(t, next)
}

func TestDiscover_DoesNotTouchViewer(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	viewer := f.addProfile(nil)
	f.addProfile(nil)

	f.uc.now = func() time.Time { return now.Add(time.Hour) }
	_, err := f.uc.Discover(ctx, viewer.ID, 10, 0)
	require.NoError(t, err)

	stored, err := f.profiles.GetByID(ctx, viewer.ID)
	require.NoError(t, err)
	assert.True(t, stored.LastActive.Equal(now))
}

func TestDiscoverQuery_Score(t *testing.T) {
	q := &domain.DiscoverQuery{Viewer: &domain.Profile{}, Now: now}

	d := 0.0
	assert.InDelta(t, 100, q.Score(&d, now), 0.001)

	far := 25.0
	assert.InDelta(t, 40, q.Score(&far, now), 0.001)

	// unknown distance counts as half closeness, stale activity as zero
	assert.InDelta(t, 30, q.Score(nil, now.Add(-60*24*time.Hour)), 0.001)

	q.DealBreakers = &domain.DealBreakers{MaxDistance: intPtr(50)}
	assert.InDelta(t, 70, q.Score(&far, now), 0.001)
}
