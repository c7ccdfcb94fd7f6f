package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/jask/tripboard/internal/database"
	"github.com/jask/tripboard/internal/database/repository"
	"github.com/jask/tripboard/internal/errors"
)

func newTestStore(t *testing.T) (*Points, Repos) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := database.Prepare(ctx, filepath.Join(t.TempDir(), "trips.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repos := NewRepos(db)
	logger, _ := test.NewNullLogger()
	s, err := Load(ctx, repos, logrus.NewEntry(logger))
	require.NoError(t, err)
	return s, repos
}

func TestLoadOrdersPoints(t *testing.T) {
	s, _ := newTestStore(t)
	points := s.Points()
	require.Len(t, points, 4)
	for i := 1; i < len(points); i++ {
		require.False(t, points[i].DateFrom.Before(points[i-1].DateFrom))
	}
}

func TestLookups(t *testing.T) {
	s, _ := newTestStore(t)

	d, err := s.DestinationByID(database.DestinationID("Geneva"))
	require.NoError(t, err)
	require.Equal(t, "Geneva", d.Name)

	_, err = s.DestinationByID("gone")
	require.True(t, errors.Is(err, errors.ErrCodeStaleReference))

	luggage := database.OfferID(repository.TypeFlight, "Add luggage")
	offers, err := s.OffersByID(repository.TypeFlight, []string{luggage})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	require.Equal(t, int64(50), offers[0].Price)

	_, err = s.OffersByID(repository.TypeBus, []string{luggage})
	require.True(t, errors.Is(err, errors.ErrCodeStaleReference), "flight offer must not resolve for a bus")

	require.Len(t, s.OffersByType(repository.TypeFlight), 4)
	require.Empty(t, s.OffersByType("rocket"))
}

func TestResolveDestination(t *testing.T) {
	s, _ := newTestStore(t)

	d, err := s.ResolveDestination("  geneva ")
	require.NoError(t, err)
	require.Equal(t, "Geneva", d.Name)

	d, err = s.ResolveDestination("Chamonx")
	require.NoError(t, err)
	require.Equal(t, "Chamonix", d.Name)

	_, err = s.ResolveDestination("Reykjavik")
	require.True(t, errors.Is(err, errors.ErrCodeValidation))

	_, err = s.ResolveDestination("")
	require.True(t, errors.Is(err, errors.ErrCodeValidation))
}

func TestUpdatePointWritesThrough(t *testing.T) {
	ctx := context.Background()
	s, repos := newTestStore(t)

	p := s.Points()[0]
	p.IsFavorite = !p.IsFavorite
	p.BasePrice = 999
	stored, err := s.UpdatePoint(ctx, p)
	require.NoError(t, err)
	require.True(t, p.Equal(stored))

	got, err := repos.Points.Get(ctx, p.ID)
	require.NoError(t, err)
	require.True(t, p.Equal(*got))

	cached, ok := s.Point(p.ID)
	require.True(t, ok)
	require.True(t, p.Equal(cached))
}

func TestUpdatePointRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)
	orig := s.Points()[0]

	cases := map[string]func(p *repository.TripPoint){
		"end before start":    func(p *repository.TripPoint) { p.DateTo = p.DateFrom.Add(-time.Hour) },
		"negative price":      func(p *repository.TripPoint) { p.BasePrice = -1 },
		"unknown type":        func(p *repository.TripPoint) { p.Type = "rocket" },
		"unknown destination": func(p *repository.TripPoint) { p.DestinationID = "nowhere" },
		"foreign offer":       func(p *repository.TripPoint) { p.OfferIDs = []string{database.OfferID(repository.TypeBus, "Choose seats")} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			p := orig.Clone()
			mutate(&p)
			_, err := s.UpdatePoint(ctx, p)
			require.True(t, errors.Is(err, errors.ErrCodeValidation), "got %v", err)

			cached, _ := s.Point(orig.ID)
			require.True(t, orig.Equal(cached), "store must be unchanged after a rejection")
		})
	}

	_, err := s.UpdatePoint(ctx, repository.TripPoint{ID: "missing"})
	require.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestAddAndDeletePoint(t *testing.T) {
	ctx := context.Background()
	s, repos := newTestStore(t)

	from := time.Date(2030, 1, 1, 9, 0, 0, 0, time.UTC)
	added, err := s.AddPoint(ctx, repository.TripPoint{
		Type:          repository.TypeBus,
		DestinationID: database.DestinationID("Lyon"),
		DateFrom:      from,
		DateTo:        from.Add(2 * time.Hour),
		BasePrice:     20,
	})
	require.NoError(t, err)
	require.NotEmpty(t, added.ID)

	points := s.Points()
	require.Len(t, points, 5)
	require.Equal(t, added.ID, points[4].ID, "latest start sorts last")

	require.NoError(t, s.DeletePoint(ctx, added.ID))
	require.Len(t, s.Points(), 4)
	got, err := repos.Points.Get(ctx, added.ID)
	require.NoError(t, err)
	require.Nil(t, got)

	require.True(t, errors.Is(s.DeletePoint(ctx, added.ID), errors.ErrCodeNotFound))
}

func TestSummary(t *testing.T) {
	s, _ := newTestStore(t)
	sum := s.Summary()
	require.Equal(t, []string{"Amsterdam", "Amsterdam", "Geneva", "Chamonix"}, sum.Route)
	// base prices 160+600+110+90 plus luggage 50, breakfast 50, tickets 40
	require.Equal(t, int64(1100), sum.Total)
	require.True(t, sum.To.After(sum.From))
}
