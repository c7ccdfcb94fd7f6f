package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/jask/tripboard/internal/database/repository"
)

var defaultDestinations = []repository.Destination{
	{Name: "Amsterdam", Description: "Canals, museums and bicycles everywhere."},
	{Name: "Geneva", Description: "Lakeside city at the foot of the Alps."},
	{Name: "Chamonix", Description: "Mountain town under Mont Blanc."},
	{Name: "Milan", Description: "Fashion, the Duomo and long lunches."},
	{Name: "Lyon", Description: "Old town traboules and bouchons."},
	{Name: "Zurich", Description: "Old town lanes along the Limmat."},
}

var defaultOffers = map[string][]struct {
	title string
	price int64
}{
	repository.TypeTaxi:        {{"Upgrade to a business class", 120}, {"Choose the radio station", 5}},
	repository.TypeBus:         {{"Choose seats", 10}, {"Add luggage", 30}},
	repository.TypeTrain:       {{"Book a sleeping compartment", 80}, {"Add meal", 15}},
	repository.TypeShip:        {{"Choose cabin", 60}, {"Add luggage", 30}},
	repository.TypeDrive:       {{"Rent a car", 200}, {"Add child seat", 20}},
	repository.TypeFlight:      {{"Add luggage", 50}, {"Switch to comfort", 80}, {"Add meal", 15}, {"Choose seats", 5}},
	repository.TypeCheckIn:     {{"Add breakfast", 50}, {"Late check-out", 40}},
	repository.TypeSightseeing: {{"Book tickets", 40}, {"Lunch in city", 30}},
	repository.TypeRestaurant:  {{"Reserve a table", 10}},
}

// DestinationID is the stable id seeded for a destination name.
func DestinationID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("destination:"+name)).String()
}

// OfferID is the stable id seeded for an offer title within a point type.
func OfferID(pointType, title string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("offer:"+pointType+":"+title)).String()
}

// SeedDefaults ensures reference destinations and offers exist, and adds a
// sample itinerary to an empty points table. It is idempotent and safe to run
// on every startup.
func SeedDefaults(ctx context.Context, db *sql.DB) error {
	destRepo := repository.NewDestinationRepo(db)
	offerRepo := repository.NewOfferRepo(db)
	pointRepo := repository.NewPointRepo(db)

	for _, d := range defaultDestinations {
		d.ID = DestinationID(d.Name)
		if err := destRepo.Upsert(ctx, d); err != nil {
			return err
		}
	}
	for _, pointType := range repository.PointTypes {
		for _, o := range defaultOffers[pointType] {
			offer := repository.Offer{ID: OfferID(pointType, o.title), Type: pointType, Title: o.title, Price: o.price}
			if err := offerRepo.Upsert(ctx, offer); err != nil {
				return err
			}
		}
	}

	n, err := pointRepo.Count(ctx)
	if err != nil || n > 0 {
		return err
	}
	for _, p := range samplePoints(Now()) {
		if err := pointRepo.Insert(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func samplePoints(now time.Time) []repository.TripPoint {
	day := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
	at := func(d, h, m int) time.Time {
		return day.Add(time.Duration(d)*24*time.Hour + time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	}
	return []repository.TripPoint{
		{
			ID:            uuid.NewString(),
			Type:          repository.TypeFlight,
			DestinationID: DestinationID("Amsterdam"),
			DateFrom:      at(0, 10, 30),
			DateTo:        at(0, 12, 5),
			BasePrice:     160,
			OfferIDs:      []string{OfferID(repository.TypeFlight, "Add luggage")},
		},
		{
			ID:            uuid.NewString(),
			Type:          repository.TypeCheckIn,
			DestinationID: DestinationID("Amsterdam"),
			DateFrom:      at(0, 14, 0),
			DateTo:        at(2, 11, 0),
			BasePrice:     600,
			OfferIDs:      []string{OfferID(repository.TypeCheckIn, "Add breakfast")},
			IsFavorite:    true,
		},
		{
			ID:            uuid.NewString(),
			Type:          repository.TypeTrain,
			DestinationID: DestinationID("Geneva"),
			DateFrom:      at(2, 13, 0),
			DateTo:        at(2, 19, 40),
			BasePrice:     110,
		},
		{
			ID:            uuid.NewString(),
			Type:          repository.TypeSightseeing,
			DestinationID: DestinationID("Chamonix"),
			DateFrom:      at(3, 9, 0),
			DateTo:        at(3, 17, 0),
			BasePrice:     90,
			OfferIDs:      []string{OfferID(repository.TypeSightseeing, "Book tickets")},
		},
	}
}
