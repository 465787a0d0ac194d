package routing

import (
	"math/rand"
	"time"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/location"
	"github.com/cargotracker/shipping/voyage"
)

// randomService proposes candidate itineraries by drawing random transit
// points from the location registry. It stands in for a real path-finding
// service, which is an external collaborator of this system.
type randomService struct {
	locations location.Repository
	voyages   voyage.Repository
}

// NewRandomService returns a routing service that generates random candidate
// itineraries between the specified origin and destination.
func NewRandomService(locations location.Repository, voyages voyage.Repository) Service {
	return &randomService{locations: locations, voyages: voyages}
}

func (s *randomService) FetchRoutesForSpecification(rs cargo.RouteSpecification) []cargo.Itinerary {
	candidates := 1 + rand.Intn(3)

	var itineraries []cargo.Itinerary
	for i := 0; i < candidates; i++ {
		legs := s.randomLegs(rs)
		if len(legs) == 0 {
			continue
		}
		itineraries = append(itineraries, cargo.Itinerary{Legs: legs})
	}
	return itineraries
}

func (s *randomService) randomLegs(rs cargo.RouteSpecification) []cargo.Leg {
	stops := s.randomTransitPoints(rs)
	voyages := s.voyages.FindAll()
	if len(voyages) == 0 {
		return nil
	}

	// each leg departs a day or two after the previous one arrives, and the
	// whole route has to fit inside the arrival deadline
	departure := time.Now().AddDate(0, 0, 1+rand.Intn(3))
	window := rs.ArrivalDeadline.Sub(departure)
	if window <= 0 {
		return nil
	}
	legDuration := window / time.Duration(len(stops)+1) / 2

	var legs []cargo.Leg
	from := rs.Origin
	for _, to := range append(stops, rs.Destination) {
		v := voyages[rand.Intn(len(voyages))]
		arrival := departure.Add(legDuration)
		legs = append(legs, cargo.NewLeg(v.Number, from, to, departure, arrival))
		from = to
		departure = arrival.Add(time.Duration(1+rand.Intn(48)) * time.Hour)
	}
	return legs
}

func (s *randomService) randomTransitPoints(rs cargo.RouteSpecification) []location.UNLcode {
	var pool []location.UNLcode
	for _, l := range s.locations.FindAll() {
		if l.UNLcode != rs.Origin && l.UNLcode != rs.Destination {
			pool = append(pool, l.UNLcode)
		}
	}
	rand.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	n := rand.Intn(3)
	if n > len(pool) {
		n = len(pool)
	}
	return pool[:n]
}
