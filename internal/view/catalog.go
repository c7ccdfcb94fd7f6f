package view

import "github.com/jask/tripboard/internal/database/repository"

// Catalog is the read-only reference data the views draw from.
type Catalog interface {
	DestinationByID(id string) (repository.Destination, error)
	OffersByID(pointType string, ids []string) ([]repository.Offer, error)
	OffersByType(pointType string) []repository.Offer
	Destinations() []repository.Destination
	ResolveDestination(name string) (repository.Destination, error)
	PointTypes() []string
}
