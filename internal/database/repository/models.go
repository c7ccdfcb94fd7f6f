package repository

import (
	"slices"
	"time"
)

// Point types, in the order the form cycles through them.
const (
	TypeTaxi        = "taxi"
	TypeBus         = "bus"
	TypeTrain       = "train"
	TypeShip        = "ship"
	TypeDrive       = "drive"
	TypeFlight      = "flight"
	TypeCheckIn     = "check-in"
	TypeSightseeing = "sightseeing"
	TypeRestaurant  = "restaurant"
)

// PointTypes lists every known point type.
var PointTypes = []string{
	TypeTaxi, TypeBus, TypeTrain, TypeShip, TypeDrive,
	TypeFlight, TypeCheckIn, TypeSightseeing, TypeRestaurant,
}

// Destination represents a destinations row.
type Destination struct {
	ID          string
	Name        string
	Description string
}

// Offer is an add-on available for one point type.
type Offer struct {
	ID    string
	Type  string
	Title string
	Price int64
}

// TripPoint represents one itinerary entry.
type TripPoint struct {
	ID            string
	Type          string
	DestinationID string
	DateFrom      time.Time
	DateTo        time.Time
	BasePrice     int64
	OfferIDs      []string
	IsFavorite    bool
}

// Clone returns a copy that shares no memory with p.
func (p TripPoint) Clone() TripPoint {
	p.OfferIDs = slices.Clone(p.OfferIDs)
	return p
}

// Equal reports whether two points hold the same values.
func (p TripPoint) Equal(o TripPoint) bool {
	return p.ID == o.ID &&
		p.Type == o.Type &&
		p.DestinationID == o.DestinationID &&
		p.DateFrom.Equal(o.DateFrom) &&
		p.DateTo.Equal(o.DateTo) &&
		p.BasePrice == o.BasePrice &&
		p.IsFavorite == o.IsFavorite &&
		slices.Equal(p.OfferIDs, o.OfferIDs)
}

// Duration is the length of the point's time window.
func (p TripPoint) Duration() time.Duration {
	return p.DateTo.Sub(p.DateFrom)
}
