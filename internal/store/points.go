// Package store holds the itinerary and its reference data in memory and
// writes changes through to the repositories.
package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"slices"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/tripboard/internal/database/repository"
	"github.com/jask/tripboard/internal/errors"
)

// maxNameDistance bounds how far a typed destination name may be from a known
// one and still resolve to it.
const maxNameDistance = 3

// Repos bundles the repositories the store reads and writes.
type Repos struct {
	Points       *repository.PointRepo
	Destinations *repository.DestinationRepo
	Offers       *repository.OfferRepo
}

// NewRepos builds the repositories over one database handle.
func NewRepos(db *sql.DB) Repos {
	return Repos{
		Points:       repository.NewPointRepo(db),
		Destinations: repository.NewDestinationRepo(db),
		Offers:       repository.NewOfferRepo(db),
	}
}

// Points is the shared itinerary store. It is not safe for concurrent use;
// all calls come from the UI loop.
type Points struct {
	repos Repos
	log   *logrus.Entry

	points       []repository.TripPoint
	destinations []repository.Destination
	destByID     map[string]repository.Destination
	offersByType map[string][]repository.Offer
	offerByID    map[string]repository.Offer
}

// Load reads the itinerary and reference data.
func Load(ctx context.Context, repos Repos, log *logrus.Entry) (*Points, error) {
	s := &Points{repos: repos, log: log}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the cached state with what the repositories hold.
func (s *Points) Reload(ctx context.Context) error {
	dests, err := s.repos.Destinations.List(ctx)
	if err != nil {
		return errors.Internal("list destinations", err)
	}
	offers, err := s.repos.Offers.List(ctx)
	if err != nil {
		return errors.Internal("list offers", err)
	}
	points, err := s.repos.Points.List(ctx)
	if err != nil {
		return errors.Internal("list points", err)
	}

	s.destinations = dests
	s.destByID = make(map[string]repository.Destination, len(dests))
	for _, d := range dests {
		s.destByID[d.ID] = d
	}
	s.offersByType = make(map[string][]repository.Offer)
	s.offerByID = make(map[string]repository.Offer, len(offers))
	for _, o := range offers {
		s.offersByType[o.Type] = append(s.offersByType[o.Type], o)
		s.offerByID[o.ID] = o
	}
	s.points = points
	s.sortPoints()

	s.log.WithFields(logrus.Fields{
		"points":       len(points),
		"destinations": len(dests),
		"offers":       len(offers),
	}).Info("itinerary loaded")
	return nil
}

// Points returns copies of every point, ordered by start.
func (s *Points) Points() []repository.TripPoint {
	out := make([]repository.TripPoint, len(s.points))
	for i, p := range s.points {
		out[i] = p.Clone()
	}
	return out
}

// Point returns a copy of the point with the id.
func (s *Points) Point(id string) (repository.TripPoint, bool) {
	i := s.index(id)
	if i < 0 {
		return repository.TripPoint{}, false
	}
	return s.points[i].Clone(), true
}

// Destinations returns every destination ordered by name.
func (s *Points) Destinations() []repository.Destination {
	return slices.Clone(s.destinations)
}

// DestinationByID fails with a stale-reference error for unknown ids.
func (s *Points) DestinationByID(id string) (repository.Destination, error) {
	d, ok := s.destByID[id]
	if !ok {
		return repository.Destination{}, errors.StaleReference("destination", id)
	}
	return d, nil
}

// OffersByType returns the catalog for one point type.
func (s *Points) OffersByType(pointType string) []repository.Offer {
	return slices.Clone(s.offersByType[pointType])
}

// OffersByID resolves selected offer ids in the given order. Every id must
// exist and belong to pointType.
func (s *Points) OffersByID(pointType string, ids []string) ([]repository.Offer, error) {
	out := make([]repository.Offer, 0, len(ids))
	for _, id := range ids {
		o, ok := s.offerByID[id]
		if !ok || o.Type != pointType {
			return nil, errors.StaleReference("offer", id).WithDetail("type", pointType)
		}
		out = append(out, o)
	}
	return out, nil
}

// PointTypes lists the known point types.
func (s *Points) PointTypes() []string {
	return slices.Clone(repository.PointTypes)
}

// ResolveDestination maps a typed name to a destination. Exact matches
// (ignoring case) win; otherwise the closest name within a small edit
// distance is used.
func (s *Points) ResolveDestination(name string) (repository.Destination, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return repository.Destination{}, errors.Validation("destination", "is required")
	}
	best, bestDist := -1, maxNameDistance+1
	for i, d := range s.destinations {
		got := strings.ToLower(d.Name)
		if got == want {
			return d, nil
		}
		if dist := levenshtein.ComputeDistance(want, got); dist < bestDist {
			best, bestDist = i, dist
		}
	}
	if best < 0 {
		return repository.Destination{}, errors.Validation("destination", "unknown destination '"+strings.TrimSpace(name)+"'")
	}
	return s.destinations[best], nil
}

// UpdatePoint validates the candidate and replaces the stored point with it.
// On any error the store is unchanged.
func (s *Points) UpdatePoint(ctx context.Context, p repository.TripPoint) (repository.TripPoint, error) {
	i := s.index(p.ID)
	if i < 0 {
		return repository.TripPoint{}, errors.NotFound("point", p.ID)
	}
	if err := s.validate(p); err != nil {
		return repository.TripPoint{}, err
	}
	p = p.Clone()
	if err := s.repos.Points.Update(ctx, p); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return repository.TripPoint{}, errors.NotFound("point", p.ID)
		}
		return repository.TripPoint{}, errors.Internal("update point", err)
	}
	s.points[i] = p
	s.sortPoints()
	s.log.WithField("point", p.ID).Debug("point updated")
	return p.Clone(), nil
}

// AddPoint stores a new point. An empty ID is filled in.
func (s *Points) AddPoint(ctx context.Context, p repository.TripPoint) (repository.TripPoint, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if s.index(p.ID) >= 0 {
		return repository.TripPoint{}, errors.Validation("id", "point '"+p.ID+"' already exists")
	}
	if err := s.validate(p); err != nil {
		return repository.TripPoint{}, err
	}
	p = p.Clone()
	if err := s.repos.Points.Insert(ctx, p); err != nil {
		return repository.TripPoint{}, errors.Internal("insert point", err)
	}
	s.points = append(s.points, p)
	s.sortPoints()
	s.log.WithField("point", p.ID).Debug("point added")
	return p.Clone(), nil
}

// DeletePoint removes the point with the id.
func (s *Points) DeletePoint(ctx context.Context, id string) error {
	i := s.index(id)
	if i < 0 {
		return errors.NotFound("point", id)
	}
	if err := s.repos.Points.Delete(ctx, id); err != nil && !stderrors.Is(err, sql.ErrNoRows) {
		return errors.Internal("delete point", err)
	}
	s.points = slices.Delete(s.points, i, i+1)
	s.log.WithField("point", id).Debug("point deleted")
	return nil
}

func (s *Points) validate(p repository.TripPoint) error {
	if !slices.Contains(repository.PointTypes, p.Type) {
		return errors.Validation("type", "unknown type '"+p.Type+"'")
	}
	if _, ok := s.destByID[p.DestinationID]; !ok {
		return errors.Validation("destination", "unknown destination '"+p.DestinationID+"'")
	}
	if p.DateFrom.IsZero() || p.DateTo.IsZero() {
		return errors.Validation("dates", "start and end are required")
	}
	if p.DateTo.Before(p.DateFrom) {
		return errors.Validation("dates", "end must not be before start")
	}
	if p.BasePrice < 0 {
		return errors.Validation("price", "must not be negative")
	}
	seen := make(map[string]bool, len(p.OfferIDs))
	for _, id := range p.OfferIDs {
		o, ok := s.offerByID[id]
		if !ok || o.Type != p.Type {
			return errors.Validation("offers", "offer '"+id+"' is not available for "+p.Type)
		}
		if seen[id] {
			return errors.Validation("offers", "offer '"+id+"' selected twice")
		}
		seen[id] = true
	}
	return nil
}

func (s *Points) index(id string) int {
	return slices.IndexFunc(s.points, func(p repository.TripPoint) bool { return p.ID == id })
}

func (s *Points) sortPoints() {
	sort.SliceStable(s.points, func(i, j int) bool {
		return s.points[i].DateFrom.Before(s.points[j].DateFrom)
	})
}
