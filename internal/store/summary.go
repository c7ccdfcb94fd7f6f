package store

import "time"

// Summary is the trip-level view shown in the info banner.
type Summary struct {
	Route []string
	From  time.Time
	To    time.Time
	Total int64
}

// Summary collects route, date span and total cost. Offers count towards the
// total; references that no longer resolve are skipped.
func (s *Points) Summary() Summary {
	var sum Summary
	if len(s.points) == 0 {
		return sum
	}
	sum.From = s.points[0].DateFrom
	for _, p := range s.points {
		if d, ok := s.destByID[p.DestinationID]; ok {
			sum.Route = append(sum.Route, d.Name)
		}
		if p.DateTo.After(sum.To) {
			sum.To = p.DateTo
		}
		sum.Total += p.BasePrice
		for _, id := range p.OfferIDs {
			if o, ok := s.offerByID[id]; ok {
				sum.Total += o.Price
			}
		}
	}
	return sum
}
