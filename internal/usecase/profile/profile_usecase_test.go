package profile

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gdugdh24/datepoint-backend/internal/domain"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/logger"
	"github.com/gdugdh24/datepoint-backend/internal/infrastructure/storage"
	"github.com/gdugdh24/datepoint-backend/internal/repository"
	"github.com/gdugdh24/datepoint-backend/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type brokenStorage struct {
	storage.Storage
}

func (brokenStorage) Put(context.Context, string, io.Reader, string) (string, error) {
	return "", errors.New("bucket unavailable")
}

type fixture struct {
	t            *testing.T
	profiles     repository.ProfileRepository
	dealBreakers repository.DealBreakersRepository
	storage      *storage.LocalStorage
	uc           *ProfileUseCase
	clock        time.Time
}

func newFixture(t *testing.T) *fixture {
	store := memory.NewStore()
	local, err := storage.NewLocalStorage(t.TempDir(), "http://cdn.test/uploads")
	require.NoError(t, err)

	f := &fixture{
		t:            t,
		profiles:     memory.NewProfileRepository(store),
		dealBreakers: memory.NewDealBreakersRepository(store),
		storage:      local,
		clock:        time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC),
	}
	f.uc = NewProfileUseCase(store, f.profiles, f.dealBreakers, local, 30, logger.Discard())
	f.uc.now = func() time.Time { return f.clock }
	return f
}

func validRequest() *ProfileRequest {
	return &ProfileRequest{
		FirstName:  "  Ana ",
		BirthDate:  time.Date(1995, 3, 10, 0, 0, 0, 0, time.UTC),
		Gender:     domain.GenderFemale,
		LookingFor: []string{domain.GenderMale},
		HeightCm:   170,
		Smoker:     "never",
		Diet:       "vegan",
	}
}

func (f *fixture) created(id string) *domain.Profile {
	f.t.Helper()
	p, err := f.uc.CreateProfile(context.Background(), id, id+"@example.com", validRequest())
	require.NoError(f.t, err)
	return p
}

func (f *fixture) exists(url string) bool {
	key, ok := f.storage.KeyFromURL(url)
	require.True(f.t, ok)
	_, err := os.Stat(filepath.Join(f.storage.Root(), key))
	return err == nil
}

func TestCreateProfile_Defaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p := f.created("u1")
	assert.Equal(t, "Ana", p.FirstName)
	assert.True(t, p.IsActive)
	assert.False(t, p.IsPaused)
	assert.False(t, p.IsDeleted)
	assert.Zero(t, p.MatchCount)
	assert.Empty(t, p.PhotoURLs)

	d, err := f.dealBreakers.GetByUserID(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, d.MaxDistance)
	assert.Equal(t, 25, *d.MaxDistance)

	_, err = f.uc.CreateProfile(ctx, "u1", "", validRequest())
	assert.ErrorIs(t, err, domain.ErrProfileAlreadyExists)
}

func TestCreateProfile_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(r *ProfileRequest)
		field  string
	}{
		{"missing name", func(r *ProfileRequest) { r.FirstName = "   " }, "first_name"},
		{"unknown gender", func(r *ProfileRequest) { r.Gender = "robot" }, "gender"},
		{"unknown looking for", func(r *ProfileRequest) { r.LookingFor = []string{"robot"} }, "looking_for"},
		{"too short", func(r *ProfileRequest) { r.HeightCm = 90 }, "height_cm"},
		{"unknown diet", func(r *ProfileRequest) { r.Diet = "sunlight" }, "diet"},
		{"underage", func(r *ProfileRequest) { r.BirthDate = time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC) }, "18"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := f.uc.CreateProfile(context.Background(), "u1", "", req)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
			assert.Contains(t, err.Error(), tt.field)
		})
	}

	_, err := f.uc.CreateProfile(context.Background(), "", "", validRequest())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestUpdateProfileAndLocation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.created("u1")

	req := validRequest()
	req.FirstName = "Anna"
	bio := "hiking and coffee"
	req.Bio = &bio
	p, err := f.uc.UpdateProfile(ctx, "u1", req)
	require.NoError(t, err)
	assert.Equal(t, "Anna", p.FirstName)

	lat, lng, city := 40.7, -74.0, "New York"
	p, err = f.uc.UpdateLocation(ctx, "u1", &LocationRequest{Lat: &lat, Lng: &lng, City: &city})
	require.NoError(t, err)
	assert.True(t, p.HasLocation())
	assert.Equal(t, "New York", *p.LocationCity)
	assert.Equal(t, "hiking and coffee", *p.Bio)

	bad := 91.0
	_, err = f.uc.UpdateLocation(ctx, "u1", &LocationRequest{Lat: &bad, Lng: &lng})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.uc.UpdateLocation(ctx, "u1", &LocationRequest{Lng: &lng})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUpdateProfile_MarksActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.created("u1")

	f.clock = f.clock.Add(time.Hour)
	p, err := f.uc.UpdateProfile(ctx, "u1", validRequest())
	require.NoError(t, err)
	assert.True(t, p.LastActive.Equal(f.clock))

	stored, err := f.profiles.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, stored.LastActive.Equal(f.clock))
}

func TestMarkActive_WithoutProfile(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.uc.MarkActive(context.Background(), "nobody").Equal(f.clock))

	_, err := f.profiles.GetByID(context.Background(), "nobody")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestPauseAndDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.created("u1")

	p, err := f.uc.SetPaused(ctx, "u1", true)
	require.NoError(t, err)
	assert.True(t, p.IsPaused)

	p, err = f.uc.SetPaused(ctx, "u1", false)
	require.NoError(t, err)
	assert.False(t, p.IsPaused)

	require.NoError(t, f.uc.DeleteProfile(ctx, "u1"))
	p, err = f.uc.GetMyProfile(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, p.IsDeleted)
	assert.False(t, p.IsActive)

	_, err = f.uc.SetPaused(ctx, "ghost", true)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func intp(v int) *int { return &v }

func TestUpdateDealBreakers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.created("u1")

	d, err := f.uc.UpdateDealBreakers(ctx, "u1", &DealBreakersRequest{
		MinAge:          intp(25),
		MaxAge:          intp(35),
		MaxDistance:     intp(500),
		AcceptableDiets: []string{"vegan", "vegetarian"},
	})
	require.NoError(t, err)
	assert.Equal(t, 25, *d.MinAge)

	got, err := f.uc.GetDealBreakers(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"vegan", "vegetarian"}, got.AcceptableDiets)
	assert.Equal(t, 500, *got.MaxDistance)
}

func TestUpdateDealBreakers_Validation(t *testing.T) {
	f := newFixture(t)
	f.created("u1")

	tests := []struct {
		name string
		req  DealBreakersRequest
	}{
		{"age below 18", DealBreakersRequest{MinAge: intp(17)}},
		{"age above 99", DealBreakersRequest{MaxAge: intp(100)}},
		{"age range inverted", DealBreakersRequest{MinAge: intp(40), MaxAge: intp(30)}},
		{"height below range", DealBreakersRequest{MinHeight: intp(119)}},
		{"height range inverted", DealBreakersRequest{MinHeight: intp(200), MaxHeight: intp(150)}},
		{"zero distance", DealBreakersRequest{MaxDistance: intp(0)}},
		{"distance above 500", DealBreakersRequest{MaxDistance: intp(501)}},
		{"unknown religion", DealBreakersRequest{AcceptableReligions: []string{"pastafarian"}}},
		{"unknown frequency", DealBreakersRequest{AcceptableSmoker: []string{"constantly"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.UpdateDealBreakers(context.Background(), "u1", &tt.req)
			require.Error(t, err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestGetDealBreakers_DefaultsWhenMissing(t *testing.T) {
	f := newFixture(t)

	d, err := f.uc.GetDealBreakers(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxDistanceMiles, *d.MaxDistance)
	assert.Nil(t, d.MinAge)
}

func TestUploadMainPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.created("u1")

	p, err := f.uc.UploadMainPhoto(ctx, "u1", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)
	require.NotNil(t, p.MainPhotoURL)
	assert.Equal(t, "http://cdn.test/uploads/u1/main_"+strconv.FormatInt(f.clock.UnixNano(), 10)+".jpg", *p.MainPhotoURL)
	assert.Equal(t, f.clock.AddDate(0, 0, 30), *p.MainPhotoExpiresAt)
	assert.True(t, f.exists(*p.MainPhotoURL))

	first := *p.MainPhotoURL
	f.clock = f.clock.Add(time.Minute)
	p, err = f.uc.UploadMainPhoto(ctx, "u1", strings.NewReader("jpeg2"), "image/jpeg")
	require.NoError(t, err)
	assert.NotEqual(t, first, *p.MainPhotoURL)
	assert.False(t, f.exists(first))

	_, err = f.uc.UploadMainPhoto(ctx, "u1", strings.NewReader("%PDF"), "application/pdf")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestUploadMainPhoto_StorageFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.created("u1")
	f.uc.storage = brokenStorage{Storage: f.storage}

	_, err := f.uc.UploadMainPhoto(ctx, "u1", strings.NewReader("jpeg"), "image/jpeg")
	require.Error(t, err)
	assert.Equal(t, domain.KindDependency, domain.KindOf(err))
	assert.True(t, domain.Retryable(err))

	p, err := f.uc.GetMyProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, p.MainPhotoURL)
}

func TestGalleryPhotos(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.created("u1")

	upload := func(slot int) (*domain.Profile, error) {
		f.clock = f.clock.Add(time.Second)
		return f.uc.UploadGalleryPhoto(ctx, "u1", slot, strings.NewReader("img"), "image/png")
	}

	_, err := upload(0)
	require.NoError(t, err)
	p, err := upload(5)
	require.NoError(t, err)
	require.Len(t, p.PhotoURLs, 2)

	old := p.PhotoURLs[0]
	p, err = upload(0)
	require.NoError(t, err)
	require.Len(t, p.PhotoURLs, 2)
	assert.NotEqual(t, old, p.PhotoURLs[0])
	assert.False(t, f.exists(old))

	for _, slot := range []int{-1, 9} {
		_, err = upload(slot)
		assert.ErrorIs(t, err, domain.ErrInvalidPhotoSlot)
	}

	removed := p.PhotoURLs[0]
	p, err = f.uc.DeletePhoto(ctx, "u1", removed)
	require.NoError(t, err)
	assert.Len(t, p.PhotoURLs, 1)
	assert.False(t, f.exists(removed))

	_, err = f.uc.DeletePhoto(ctx, "u1", "http://cdn.test/uploads/someone/else.jpg")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestDeleteMainPhoto(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.created("u1")

	p, err := f.uc.UploadMainPhoto(ctx, "u1", strings.NewReader("jpeg"), "image/jpeg")
	require.NoError(t, err)

	p, err = f.uc.DeletePhoto(ctx, "u1", *p.MainPhotoURL)
	require.NoError(t, err)
	assert.Nil(t, p.MainPhotoURL)
	assert.Nil(t, p.MainPhotoExpiresAt)
}
