package repository_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jask/tripboard/internal/database"
	"github.com/jask/tripboard/internal/database/repository"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, database.RunMigrations(dbPath))
	db, err := database.Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	dests := repository.NewDestinationRepo(db)
	require.NoError(t, dests.Upsert(ctx, repository.Destination{ID: "d-ams", Name: "Amsterdam"}))
	require.NoError(t, dests.Upsert(ctx, repository.Destination{ID: "d-gva", Name: "Geneva"}))
	offers := repository.NewOfferRepo(db)
	require.NoError(t, offers.Upsert(ctx, repository.Offer{ID: "o-lug", Type: repository.TypeFlight, Title: "Add luggage", Price: 50}))
	require.NoError(t, offers.Upsert(ctx, repository.Offer{ID: "o-meal", Type: repository.TypeFlight, Title: "Add meal", Price: 15}))
	return db
}

func TestPointRepoRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	repo := repository.NewPointRepo(openTestDB(t))

	from := time.Date(2026, 3, 18, 10, 30, 0, 0, time.UTC)
	p := repository.TripPoint{
		ID:            "p-1",
		Type:          repository.TypeFlight,
		DestinationID: "d-ams",
		DateFrom:      from,
		DateTo:        from.Add(95 * time.Minute),
		BasePrice:     160,
		OfferIDs:      []string{"o-meal", "o-lug"},
	}
	require.NoError(t, repo.Insert(ctx, p))

	got, err := repo.Get(ctx, "p-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.True(t, p.Equal(*got), "got %+v", *got)

	p.DestinationID = "d-gva"
	p.OfferIDs = []string{"o-lug"}
	p.IsFavorite = true
	require.NoError(t, repo.Update(ctx, p))

	got, err = repo.Get(ctx, "p-1")
	require.NoError(t, err)
	require.True(t, p.Equal(*got), "got %+v", *got)

	require.NoError(t, repo.Delete(ctx, "p-1"))
	got, err = repo.Get(ctx, "p-1")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPointRepoUnknownID(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPointRepo(openTestDB(t))

	err := repo.Update(ctx, repository.TripPoint{ID: "missing", Type: repository.TypeBus, DestinationID: "d-ams"})
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.ErrorIs(t, repo.Delete(ctx, "missing"), sql.ErrNoRows)
}

func TestPointRepoRejectsUnknownDestination(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewPointRepo(openTestDB(t))

	err := repo.Insert(ctx, repository.TripPoint{ID: "p-x", Type: repository.TypeBus, DestinationID: "nowhere"})
	require.Error(t, err, "foreign keys must be enforced")

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestTripPointCloneDoesNotAlias(t *testing.T) {
	p := repository.TripPoint{ID: "p", OfferIDs: []string{"a", "b"}}
	c := p.Clone()
	c.OfferIDs[0] = "z"
	require.Equal(t, "a", p.OfferIDs[0])
	require.False(t, p.Equal(c))
}
