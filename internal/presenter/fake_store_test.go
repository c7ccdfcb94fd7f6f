package presenter

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/jask/tripboard/internal/database/repository"
	"github.com/jask/tripboard/internal/errors"
	"github.com/jask/tripboard/internal/view"
)

// memStore is an in-memory PointStore. reject, when set, refuses updates.
type memStore struct {
	points  []repository.TripPoint
	dests   []repository.Destination
	offers  []repository.Offer
	reject  error
	updates []repository.TripPoint
	nextID  int
}

func newMemStore(n int) *memStore {
	s := &memStore{
		dests: []repository.Destination{
			{ID: "d-ams", Name: "Amsterdam"},
			{ID: "d-gva", Name: "Geneva"},
			{ID: "d-cha", Name: "Chamonix"},
		},
		offers: []repository.Offer{
			{ID: "o-lug", Type: repository.TypeFlight, Title: "Add luggage", Price: 50},
			{ID: "o-meal", Type: repository.TypeFlight, Title: "Add meal", Price: 15},
			{ID: "o-seat", Type: repository.TypeBus, Title: "Choose seats", Price: 10},
		},
	}
	base := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		from := base.Add(time.Duration(i) * 3 * time.Hour)
		s.points = append(s.points, repository.TripPoint{
			ID:            "p-" + string(rune('a'+i)),
			Type:          repository.TypeFlight,
			DestinationID: s.dests[i%len(s.dests)].ID,
			DateFrom:      from,
			DateTo:        from.Add(90 * time.Minute),
			BasePrice:     int64(100 + i),
			OfferIDs:      []string{"o-lug"},
		})
	}
	return s
}

var _ PointStore = (*memStore)(nil)

func (s *memStore) Points() []repository.TripPoint {
	out := make([]repository.TripPoint, len(s.points))
	for i, p := range s.points {
		out[i] = p.Clone()
	}
	return out
}

func (s *memStore) index(id string) int {
	return slices.IndexFunc(s.points, func(p repository.TripPoint) bool { return p.ID == id })
}

func (s *memStore) UpdatePoint(_ context.Context, p repository.TripPoint) (repository.TripPoint, error) {
	s.updates = append(s.updates, p.Clone())
	if s.reject != nil {
		return repository.TripPoint{}, s.reject
	}
	i := s.index(p.ID)
	if i < 0 {
		return repository.TripPoint{}, errors.NotFound("point", p.ID)
	}
	s.points[i] = p.Clone()
	return p.Clone(), nil
}

func (s *memStore) AddPoint(_ context.Context, p repository.TripPoint) (repository.TripPoint, error) {
	s.nextID++
	p.ID = "new-" + string(rune('0'+s.nextID))
	s.points = append(s.points, p.Clone())
	return p.Clone(), nil
}

func (s *memStore) DeletePoint(_ context.Context, id string) error {
	i := s.index(id)
	if i < 0 {
		return errors.NotFound("point", id)
	}
	s.points = slices.Delete(s.points, i, i+1)
	return nil
}

func (s *memStore) DestinationByID(id string) (repository.Destination, error) {
	for _, d := range s.dests {
		if d.ID == id {
			return d, nil
		}
	}
	return repository.Destination{}, errors.StaleReference("destination", id)
}

func (s *memStore) OffersByID(pointType string, ids []string) ([]repository.Offer, error) {
	out := make([]repository.Offer, 0, len(ids))
	for _, id := range ids {
		i := slices.IndexFunc(s.offers, func(o repository.Offer) bool { return o.ID == id && o.Type == pointType })
		if i < 0 {
			return nil, errors.StaleReference("offer", id)
		}
		out = append(out, s.offers[i])
	}
	return out, nil
}

func (s *memStore) OffersByType(pointType string) []repository.Offer {
	var out []repository.Offer
	for _, o := range s.offers {
		if o.Type == pointType {
			out = append(out, o)
		}
	}
	return out
}

func (s *memStore) Destinations() []repository.Destination { return slices.Clone(s.dests) }

func (s *memStore) ResolveDestination(name string) (repository.Destination, error) {
	for _, d := range s.dests {
		if strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return repository.Destination{}, errors.Validation("destination", "unknown")
}

func (s *memStore) PointTypes() []string { return slices.Clone(repository.PointTypes) }

func testFormat() view.Format {
	return view.Format{DateLayout: "02/01/06 15:04", Currency: "€", Location: time.UTC}
}
