package swipe

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/gdugdh24/datepoint-backend/internal/repository/memory"
	"github.com/gdugdh24/datepoint-backend/internal/usecase/match"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	t        *testing.T
	store    *memory.Store
	profiles repository.ProfileRepository
	swipes   repository.SwipeRepository
	matches  repository.MatchRepository
	blocks   repository.BlockRepository
	uc       *SwipeUseCase
}

func newFixture(t *testing.T, maxActive int) *fixture {
	store := memory.NewStore()
	f := &fixture{
		t:        t,
		store:    store,
		profiles: memory.NewProfileRepository(store),
		swipes:   memory.NewSwipeRepository(store),
		matches:  memory.NewMatchRepository(store),
		blocks:   memory.NewBlockRepository(store),
	}
	f.uc = NewSwipeUseCase(store, f.swipes, f.matches, f.profiles, f.blocks, maxActive, logger.Discard())
	return f
}

func (f *fixture) user() string {
	f.t.Helper()
	id := uuid.NewString()
	photo := "https://cdn.example/" + id + ".jpg"
	require.NoError(f.t, f.profiles.Create(context.Background(), &domain.Profile{ID: id, IsActive: true, MainPhotoURL: &photo}))
	return id
}

func (f *fixture) matchCount(id string) int {
	f.t.Helper()
	p, err := f.profiles.GetByID(context.Background(), id)
	require.NoError(f.t, err)
	return p.MatchCount
}

func TestSwipeRight_MutualLikeFormsOneMatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	a, b := f.user(), f.user()

	res, err := f.uc.SwipeRight(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, res.IsMatch)

	res, err = f.uc.SwipeRight(ctx, b, a)
	require.NoError(t, err)
	require.True(t, res.IsMatch)

	u1, u2 := domain.CanonicalPair(a, b)
	assert.Equal(t, u1, res.Match.User1ID)
	assert.Equal(t, u2, res.Match.User2ID)
	assert.Equal(t, domain.MatchStatusActive, res.Match.Status)
	assert.Zero(t, res.Match.TotalMessages)
	assert.False(t, res.Match.DateSuggested)

	assert.Equal(t, 1, f.matchCount(a))
	assert.Equal(t, 1, f.matchCount(b))
}

func TestSwipeRight_ConcurrentReciprocalLikes(t *testing.T) {
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		f := newFixture(t, 10)
		a, b := f.user(), f.user()

		var wg sync.WaitGroup
		results := make([]*SwipeResult, 2)
		for j, pair := range [][2]string{{a, b}, {b, a}} {
			wg.Add(1)
			go func(j int, from, to string) {
				defer wg.Done()
				res, err := f.uc.SwipeRight(ctx, from, to)
				assert.NoError(t, err)
				results[j] = res
			}(j, pair[0], pair[1])
		}
		wg.Wait()

		matched := 0
		for _, r := range results {
			if r != nil && r.IsMatch {
				matched++
			}
		}
		assert.Equal(t, 1, matched)

		n, err := f.matches.CountActive(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, f.matchCount(a))
		assert.Equal(t, 1, f.matchCount(b))
	}
}

func TestSwipeRight_CapRejectsWithoutSideEffects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 2)
	a := f.user()

	for i := 0; i < 2; i++ {
		other := f.user()
		_, err := f.uc.SwipeRight(ctx, other, a)
		require.NoError(t, err)
		res, err := f.uc.SwipeRight(ctx, a, other)
		require.NoError(t, err)
		require.True(t, res.IsMatch)
	}

	target := f.user()
	_, err := f.uc.SwipeRight(ctx, target, a)
	require.NoError(t, err)

	_, err = f.uc.SwipeRight(ctx, a, target)
	require.ErrorIs(t, err, domain.ErrMatchLimitReached)
	assert.Equal(t, domain.KindCapacityExceeded, domain.KindOf(err))

	_, err = f.swipes.GetByUsers(ctx, a, target)
	assert.ErrorIs(t, err, domain.ErrSwipeNotFound)
	_, err = f.matches.GetByUsers(ctx, a, target)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	// passing is still allowed at the cap
	_, err = f.uc.SwipeLeft(ctx, a, target)
	assert.NoError(t, err)
}

func TestSwipeRight_PassiveLikerAtCapStillMatches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	a, b, c := f.user(), f.user(), f.user()

	_, err := f.uc.SwipeRight(ctx, b, a)
	require.NoError(t, err)

	// b fills their only slot with c
	_, err = f.uc.SwipeRight(ctx, c, b)
	require.NoError(t, err)
	res, err := f.uc.SwipeRight(ctx, b, c)
	require.NoError(t, err)
	require.True(t, res.IsMatch)

	// only the swiper's count is checked
	res, err = f.uc.SwipeRight(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, res.IsMatch)
	assert.Equal(t, 2, f.matchCount(b))
}

func TestSwipeLeft_NeverMatches(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	a, b := f.user(), f.user()

	_, err := f.uc.SwipeRight(ctx, b, a)
	require.NoError(t, err)

	res, err := f.uc.SwipeLeft(ctx, a, b)
	require.NoError(t, err)
	assert.False(t, res.IsMatch)
	assert.False(t, res.Swipe.Liked)

	_, err = f.uc.SwipeRight(ctx, a, b)
	assert.ErrorIs(t, err, domain.ErrSwipeAlreadyExists)
}

func TestSwipe_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	a, b := f.user(), f.user()

	_, err := f.uc.SwipeRight(ctx, a, a)
	assert.ErrorIs(t, err, domain.ErrCannotSwipeSelf)

	_, err = f.uc.SwipeRight(ctx, a, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)

	_, err = f.uc.SwipeRight(ctx, "", b)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	require.NoError(t, f.blocks.Create(ctx, &domain.Block{BlockerID: b, BlockedID: a}))
	_, err = f.uc.SwipeRight(ctx, a, b)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestSwipe_UndiscoverableTargetIsNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	a, paused, deleted := f.user(), f.user(), f.user()

	require.NoError(t, f.profiles.SetPaused(ctx, paused, true))
	require.NoError(t, f.profiles.SoftDelete(ctx, deleted))

	for _, target := range []string{paused, deleted} {
		_, err := f.uc.SwipeRight(ctx, a, target)
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)

		_, err = f.swipes.GetByUsers(ctx, a, target)
		assert.ErrorIs(t, err, domain.ErrSwipeNotFound)
	}
}

// blockAfterCheck starts a block of the pair right after the swipe has
// looked for one, and gives it time to commit.
type blockAfterCheck struct {
	repository.BlockRepository
	once  sync.Once
	block func()
	done  chan struct{}
}

func (r *blockAfterCheck) IsBlocked(ctx context.Context, user1ID, user2ID string) (bool, error) {
	blocked, err := r.BlockRepository.IsBlocked(ctx, user1ID, user2ID)
	r.once.Do(func() {
		go func() {
			defer close(r.done)
			r.block()
		}()
		select {
		case <-r.done:
		case <-time.After(50 * time.Millisecond):
		}
	})
	return blocked, err
}

func TestSwipeRight_BlockDuringSwipeLeavesNoActiveMatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 10)
	a, b := f.user(), f.user()

	_, err := f.uc.SwipeRight(ctx, b, a)
	require.NoError(t, err)

	matches := match.NewMatchUseCase(f.store, f.matches, f.profiles, f.blocks, memory.NewReportRepository(f.store), logger.Discard())
	blocks := &blockAfterCheck{BlockRepository: f.blocks, done: make(chan struct{})}
	blocks.block = func() {
		assert.NoError(t, matches.Block(context.Background(), b, a))
	}
	uc := NewSwipeUseCase(f.store, f.swipes, f.matches, f.profiles, blocks, 10, logger.Discard())

	_, err = uc.SwipeRight(ctx, a, b)
	<-blocks.done
	if err != nil {
		assert.ErrorIs(t, err, domain.ErrProfileNotFound)
	}

	blocked, err := f.blocks.IsBlocked(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, blocked)

	n, err := f.matches.CountActive(ctx, a)
	require.NoError(t, err)
	assert.Zero(t, n)
	if m, err := f.matches.GetByUsers(ctx, a, b); err == nil {
		assert.Equal(t, domain.MatchStatusBlocked, m.Status)
	}
	assert.Zero(t, f.matchCount(a))
	assert.Zero(t, f.matchCount(b))
}

func TestSwipeRight_ConcurrentLikesBySwiperRespectCap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 1)
	a := f.user()

	others := []string{f.user(), f.user(), f.user()}
	for _, o := range others {
		_, err := f.uc.SwipeRight(ctx, o, a)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, o := range others {
		wg.Add(1)
		go func(target string) {
			defer wg.Done()
			_, err := f.uc.SwipeRight(ctx, a, target)
			if err != nil {
				assert.ErrorIs(t, err, domain.ErrMatchLimitReached)
			}
		}(o)
	}
	wg.Wait()

	n, err := f.matches.CountActive(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, f.matchCount(a))
}
