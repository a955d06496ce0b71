package match

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

type fixture struct {
	t        *testing.T
	store    *memory.Store
	profiles repository.ProfileRepository
	matches  repository.MatchRepository
	blocks   repository.BlockRepository
	uc       *MatchUseCase
}

func newFixture(t *testing.T) *fixture {
	store := memory.NewStore()
	f := &fixture{
		t:        t,
		store:    store,
		profiles: memory.NewProfileRepository(store),
		matches:  memory.NewMatchRepository(store),
		blocks:   memory.NewBlockRepository(store),
	}
	f.uc = NewMatchUseCase(store, f.matches, f.profiles, f.blocks, memory.NewReportRepository(store), logger.Discard())
	return f
}

func (f *fixture) user(name string) string {
	f.t.Helper()
	id := uuid.NewString()
	require.NoError(f.t, f.profiles.Create(context.Background(), &domain.Profile{
		ID:        id,
		FirstName: name,
		BirthDate: time.Now().AddDate(-28, 0, -1),
		IsActive:  true,
	}))
	return id
}

// matched creates an active match and bumps both counters like a mutual like would.
func (f *fixture) matched(a, b string) *domain.Match {
	f.t.Helper()
	ctx := context.Background()
	m := domain.NewMatch(a, b)
	created, err := f.matches.CreateIfAbsent(ctx, m)
	require.NoError(f.t, err)
	require.True(f.t, created)
	require.NoError(f.t, f.profiles.AddMatchCount(ctx, a, 1))
	require.NoError(f.t, f.profiles.AddMatchCount(ctx, b, 1))
	return m
}

func (f *fixture) matchCount(id string) int {
	f.t.Helper()
	p, err := f.profiles.GetByID(context.Background(), id)
	require.NoError(f.t, err)
	return p.MatchCount
}

func TestListMatches_IncludesOtherUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b, c := f.user("Ana"), f.user("Ben"), f.user("Cy")
	f.matched(a, b)
	second := f.matched(a, c)
	_, err := f.matches.RecordMessage(ctx, second.ID, c, "hello", time.Now())
	require.NoError(t, err)

	views, err := f.uc.ListMatches(ctx, a)
	require.NoError(t, err)
	require.Len(t, views, 2)

	// the match with a message comes first
	assert.Equal(t, c, views[0].OtherUserID)
	require.NotNil(t, views[0].OtherUser)
	assert.Equal(t, "Cy", views[0].OtherUser.FirstName)
	assert.Equal(t, 28, views[0].OtherUser.Age)
	assert.Equal(t, b, views[1].OtherUserID)

	convs, err := f.uc.ListConversations(ctx, a)
	require.NoError(t, err)
	require.Len(t, convs, 1)
	assert.Equal(t, second.ID, convs[0].ID)
}

func TestUnmatch(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b, stranger := f.user("Ana"), f.user("Ben"), f.user("Cy")
	m := f.matched(a, b)

	err := f.uc.Unmatch(ctx, stranger, m.ID)
	assert.ErrorIs(t, err, domain.ErrMatchNotFound)

	require.NoError(t, f.uc.Unmatch(ctx, a, m.ID))

	got, err := f.matches.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchStatusUnmatched, got.Status)
	assert.Zero(t, f.matchCount(a))
	assert.Zero(t, f.matchCount(b))

	// irreversible and not double counted
	err = f.uc.Unmatch(ctx, b, m.ID)
	assert.ErrorIs(t, err, domain.ErrMatchNotActive)
	assert.Zero(t, f.matchCount(b))

	err = f.uc.Unmatch(ctx, a, uuid.NewString())
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestBlock_ClosesMatchAndHidesBothWays(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user("Ana"), f.user("Ben")
	m := f.matched(a, b)

	require.NoError(t, f.uc.Block(ctx, b, a))

	got, err := f.matches.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchStatusBlocked, got.Status)
	assert.Zero(t, f.matchCount(a))
	assert.Zero(t, f.matchCount(b))

	blocked, err := f.blocks.IsBlocked(ctx, a, b)
	require.NoError(t, err)
	assert.True(t, blocked)

	// blocking again is a no-op
	require.NoError(t, f.uc.Block(ctx, b, a))
	assert.Zero(t, f.matchCount(a))
}

func TestBlock_AfterUnmatchKeepsCounters(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user("Ana"), f.user("Ben")
	m := f.matched(a, b)
	require.NoError(t, f.uc.Unmatch(ctx, a, m.ID))

	require.NoError(t, f.uc.Block(ctx, a, b))

	got, err := f.matches.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.MatchStatusBlocked, got.Status)
	assert.Zero(t, f.matchCount(a))
}

func TestBlock_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.user("Ana")

	assert.ErrorIs(t, f.uc.Block(ctx, a, a), domain.ErrCannotBlockSelf)
	assert.ErrorIs(t, f.uc.Block(ctx, a, uuid.NewString()), domain.ErrProfileNotFound)
}

func TestReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a, b := f.user("Ana"), f.user("Ben")

	desc := "  fake photos  "
	report, err := f.uc.Report(ctx, a, b, &ReportRequest{Reason: "fake_profile", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "pending", report.Status)
	assert.Equal(t, "fake photos", *report.Description)
	require.Len(t, f.store.Reports(), 1)

	_, err = f.uc.Report(ctx, a, b, &ReportRequest{Reason: "rude"})
	assert.ErrorIs(t, err, domain.ErrInvalidReason)

	_, err = f.uc.Report(ctx, a, a, &ReportRequest{Reason: "spam"})
	assert.ErrorIs(t, err, domain.ErrCannotReportSelf)
}
