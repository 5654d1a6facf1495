package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"basketball-manager/internal/core/cache"
	"basketball-manager/internal/core/validate"
	"basketball-manager/internal/data"
	"basketball-manager/internal/data/datatest"
	"basketball-manager/internal/data/seeding"
	"basketball-manager/internal/domain"
	"basketball-manager/internal/repo"
	"basketball-manager/pkg/utils"
)

func openSeeded(t *testing.T, opts ...data.Option) *data.Context {
	t.Helper()
	c := datatest.Open(t, opts...)
	require.NoError(t, seeding.NewApplicationSeeder(nil).Seed(context.Background(), c.DB))
	return c
}

func newUser(t *testing.T, db *gorm.DB, name string) *domain.User {
	t.Helper()
	u := &domain.User{ID: utils.NewID(), UserName: name, NormalizedUserName: name}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestSettingsService(t *testing.T) {
	ctx := context.Background()
	c := openSeeded(t)
	mr := miniredis.RunT(t)
	rc := cache.New(cache.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rc.Close() })
	s := NewSettingsService(c.DB, rc, time.Minute, validate.New(), zap.NewNop())

	n, err := s.GetCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Setting1", all[0].Name)
	assert.True(t, mr.Exists(settingsCacheKey))

	// a row written behind the service's back is not seen until invalidation
	require.NoError(t, c.DB.Create(&domain.Setting{Name: "Hidden", Value: "x"}).Error)
	all, err = s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = s.Set(ctx, SetSettingInput{Name: "Setting1", Value: "value2"})
	require.NoError(t, err)
	assert.False(t, mr.Exists(settingsCacheKey))

	all, err = s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Hidden", all[0].Name)
	assert.Equal(t, "value2", all[1].Value)
	assert.NotNil(t, all[1].ModifiedOn)

	_, err = s.Set(ctx, SetSettingInput{Name: ""})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestSettingsServiceWithoutCache(t *testing.T) {
	c := openSeeded(t)
	s := NewSettingsService(c.DB, nil, 0, validate.New(), zap.NewNop())
	all, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAddAttributes(t *testing.T) {
	ctx := context.Background()
	start := time.Now().UTC().Add(-time.Second)
	c := openSeeded(t)
	s := NewAttributesService(c.DB, validate.New())

	a, err := s.AddAttributes(ctx, "Center", 5)
	require.NoError(t, err)
	assert.NotZero(t, a.ID)

	got, err := s.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Center", got.Position)
	assert.Equal(t, 5, got.Level)
	assert.Equal(t, 5, got.Shooting)
	assert.Equal(t, 5, got.Blocking)
	assert.False(t, got.IsDeleted)
	assert.WithinDuration(t, time.Now().UTC(), got.CreatedOn, 5*time.Second)
	assert.False(t, got.CreatedOn.Before(start))
	assert.Nil(t, got.ModifiedOn)

	_, err = s.AddAttributes(ctx, "", 5)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	var verrs validate.Errors
	assert.True(t, errors.As(err, &verrs))

	zero, err := s.AddAttributes(ctx, "Guard", 0)
	require.NoError(t, err)
	assert.Zero(t, zero.Shooting)

	_, err = s.Get(ctx, 9999)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestManagerLifecycle(t *testing.T) {
	ctx := context.Background()
	c := openSeeded(t)
	s := NewManagerService(c.DB, validate.New(), zap.NewNop())
	u := newUser(t, c.DB, "coach")

	in := CreateManagerInput{FirstName: "Phil", LastName: "Jackson", TeamName: "Bulls", TeamColour: 0xCE1141}
	m, err := s.Create(ctx, u.ID, in)
	require.NoError(t, err)
	assert.Equal(t, StartingCash, m.Cash)

	_, err = s.Create(ctx, u.ID, in)
	assert.True(t, errors.Is(err, ErrConflict))

	_, err = s.Create(ctx, "missing", in)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = s.Create(ctx, u.ID, CreateManagerInput{FirstName: "A name far too long", LastName: "x", TeamName: "t"})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	got, err := s.ByUser(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Team)
	assert.Equal(t, "Bulls", got.Team.Name)

	require.NoError(t, s.Delete(ctx, m.ID))
	_, err = s.ByUser(ctx, u.ID)
	assert.True(t, errors.Is(err, ErrNotFound))

	var teams int64
	require.NoError(t, c.DB.Model(&domain.Team{}).Count(&teams).Error)
	assert.Zero(t, teams, "team of a deleted manager is hidden")

	require.NoError(t, s.Purge(ctx, m.ID))
	require.NoError(t, c.DB.Unscoped().Model(&domain.Team{}).Count(&teams).Error)
	assert.Zero(t, teams, "team row removed with the manager")

	assert.True(t, errors.Is(s.Purge(ctx, m.ID), ErrNotFound))
}

func TestLeagues(t *testing.T) {
	ctx := context.Background()
	c := openSeeded(t)
	v := validate.New()
	managers := NewManagerService(c.DB, v, zap.NewNop())
	leagues := NewLeagueService(c.DB, v)

	mk := func(name string) *domain.Manager {
		u := newUser(t, c.DB, name)
		m, err := managers.Create(ctx, u.ID, CreateManagerInput{FirstName: name, LastName: "X", TeamName: name + "s"})
		require.NoError(t, err)
		return m
	}
	home, away, outsider := mk("home"), mk("away"), mk("out")

	l, err := leagues.Create(ctx, home.ID, CreateLeagueInput{Name: "NBA"})
	require.NoError(t, err)
	require.NoError(t, leagues.Join(ctx, l.ID, away.ID))
	assert.True(t, errors.Is(leagues.Join(ctx, l.ID, away.ID), ErrConflict))
	assert.True(t, errors.Is(leagues.Join(ctx, "nope", away.ID), ErrNotFound))

	date := time.Date(2024, 6, 1, 19, 30, 0, 0, time.UTC)
	match, err := leagues.ScheduleMatch(ctx, away.ID, l.ID, ScheduleMatchInput{HomeID: home.ID, AwayID: away.ID, Date: date})
	require.NoError(t, err)

	_, err = leagues.ScheduleMatch(ctx, home.ID, l.ID, ScheduleMatchInput{HomeID: home.ID, AwayID: outsider.ID, Date: date})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = leagues.ScheduleMatch(ctx, home.ID, l.ID, ScheduleMatchInput{HomeID: home.ID, AwayID: home.ID, Date: date})
	assert.True(t, errors.Is(err, ErrInvalidInput))
	_, err = leagues.ScheduleMatch(ctx, outsider.ID, l.ID, ScheduleMatchInput{HomeID: home.ID, AwayID: away.ID, Date: date})
	assert.True(t, errors.Is(err, ErrForbidden))

	_, err = leagues.RecordScore(ctx, outsider.ID, match.ID, 0, 99)
	assert.True(t, errors.Is(err, ErrForbidden))
	scored, err := leagues.RecordScore(ctx, away.ID, match.ID, 101, 99)
	require.NoError(t, err)
	require.NotNil(t, scored.ModifiedOn)

	got, err := leagues.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 2)
	require.Len(t, got.Matches, 1)
	assert.Equal(t, 101, got.Matches[0].Team1Score)

	// a deleted participant drops out of the league view
	require.NoError(t, managers.Delete(ctx, away.ID))
	got, err = leagues.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 1)

	// a manager referenced by a match cannot be removed
	err = managers.Purge(ctx, home.ID)
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestScheduleMatchNeedsVisibleLeagueAndManagers(t *testing.T) {
	ctx := context.Background()
	c := openSeeded(t)
	v := validate.New()
	managers := NewManagerService(c.DB, v, zap.NewNop())
	leagues := NewLeagueService(c.DB, v)

	mk := func(name string) *domain.Manager {
		u := newUser(t, c.DB, name)
		m, err := managers.Create(ctx, u.ID, CreateManagerInput{FirstName: name, LastName: "X", TeamName: name + "s"})
		require.NoError(t, err)
		return m
	}
	home, away, third := mk("home"), mk("away"), mk("third")
	date := time.Date(2024, 6, 1, 19, 30, 0, 0, time.UTC)

	l, err := leagues.Create(ctx, home.ID, CreateLeagueInput{Name: "West"})
	require.NoError(t, err)
	require.NoError(t, leagues.Join(ctx, l.ID, away.ID))
	require.NoError(t, leagues.Join(ctx, l.ID, third.ID))

	// the participant row survives the soft delete, the manager does not
	require.NoError(t, managers.Delete(ctx, away.ID))
	_, err = leagues.ScheduleMatch(ctx, home.ID, l.ID, ScheduleMatchInput{HomeID: home.ID, AwayID: away.ID, Date: date})
	assert.True(t, errors.Is(err, ErrNotFound))

	leagueRepo := repo.NewRepository[domain.League](c.DB)
	require.NoError(t, leagueRepo.Delete(ctx, l))
	_, err = leagues.ScheduleMatch(ctx, home.ID, l.ID, ScheduleMatchInput{HomeID: home.ID, AwayID: third.ID, Date: date})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, errors.Is(leagues.Join(ctx, l.ID, away.ID), ErrNotFound))

	var n int64
	require.NoError(t, c.DB.Unscoped().Model(&domain.Match{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRecordScoreByLeagueCreator(t *testing.T) {
	ctx := context.Background()
	c := openSeeded(t)
	v := validate.New()
	managers := NewManagerService(c.DB, v, zap.NewNop())
	leagues := NewLeagueService(c.DB, v)

	mk := func(name string) *domain.Manager {
		u := newUser(t, c.DB, name)
		m, err := managers.Create(ctx, u.ID, CreateManagerInput{FirstName: name, LastName: "X", TeamName: name + "s"})
		require.NoError(t, err)
		return m
	}
	owner, home, away := mk("owner"), mk("home"), mk("away")
	l, err := leagues.Create(ctx, owner.ID, CreateLeagueInput{Name: "East"})
	require.NoError(t, err)
	require.NoError(t, leagues.Join(ctx, l.ID, home.ID))
	require.NoError(t, leagues.Join(ctx, l.ID, away.ID))

	match, err := leagues.ScheduleMatch(ctx, owner.ID, l.ID, ScheduleMatchInput{
		HomeID: home.ID, AwayID: away.ID, Date: time.Date(2024, 7, 1, 20, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	scored, err := leagues.RecordScore(ctx, owner.ID, match.ID, 88, 90)
	require.NoError(t, err)
	assert.Equal(t, 90, scored.Team2Score)

	_, err = leagues.RecordScore(ctx, owner.ID, "missing", 1, 2)
	assert.True(t, errors.Is(err, ErrNotFound))
}
