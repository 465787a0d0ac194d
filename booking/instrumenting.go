package booking

import (
	"time"

	"github.com/go-kit/kit/metrics"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/location"
)

type instrumentingService struct {
	requestCount   metrics.Counter
	requestLatency metrics.Histogram
	Service
}

// NewInstrumentingService returns an instance of an instrumenting Service.
func NewInstrumentingService(counter metrics.Counter, latency metrics.Histogram, s Service) Service {
	return &instrumentingService{
		requestCount:   counter,
		requestLatency: latency,
		Service:        s,
	}
}

func (s *instrumentingService) instrument(method string, begin time.Time) {
	s.requestCount.With("method", method).Add(1)
	s.requestLatency.With("method", method).Observe(time.Since(begin).Seconds())
}

func (s *instrumentingService) BookNewCargo(origin, destination location.UNLcode, deadline time.Time) (cargo.TrackingID, error) {
	defer func(begin time.Time) { s.instrument("book", begin) }(time.Now())
	return s.Service.BookNewCargo(origin, destination, deadline)
}

func (s *instrumentingService) LoadCargo(id cargo.TrackingID) (Cargo, error) {
	defer func(begin time.Time) { s.instrument("load", begin) }(time.Now())
	return s.Service.LoadCargo(id)
}

func (s *instrumentingService) RequestPossibleRoutesForCargo(id cargo.TrackingID) []cargo.Itinerary {
	defer func(begin time.Time) { s.instrument("request_routes", begin) }(time.Now())
	return s.Service.RequestPossibleRoutesForCargo(id)
}

func (s *instrumentingService) AssignCargoToRoute(id cargo.TrackingID, itinerary cargo.Itinerary) error {
	defer func(begin time.Time) { s.instrument("assign_to_route", begin) }(time.Now())
	return s.Service.AssignCargoToRoute(id, itinerary)
}

func (s *instrumentingService) ChangeDestination(id cargo.TrackingID, destination location.UNLcode) error {
	defer func(begin time.Time) { s.instrument("change_destination", begin) }(time.Now())
	return s.Service.ChangeDestination(id, destination)
}

func (s *instrumentingService) ChangeArrivalDeadline(id cargo.TrackingID, deadline time.Time) error {
	defer func(begin time.Time) { s.instrument("change_arrival_deadline", begin) }(time.Now())
	return s.Service.ChangeArrivalDeadline(id, deadline)
}

func (s *instrumentingService) Cargos() []Cargo {
	defer func(begin time.Time) { s.instrument("list_cargos", begin) }(time.Now())
	return s.Service.Cargos()
}

func (s *instrumentingService) Locations() []Location {
	defer func(begin time.Time) { s.instrument("list_locations", begin) }(time.Now())
	return s.Service.Locations()
}
