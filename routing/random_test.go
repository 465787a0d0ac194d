package routing

import (
	"testing"
	"time"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/inmem"
	"github.com/cargotracker/shipping/location"
)

func TestFetchRoutesForSpecification(t *testing.T) {
	s := NewRandomService(inmem.NewLocationRepository(), inmem.NewVoyageRepository())

	rs := cargo.RouteSpecification{
		Origin:          location.CNHKG,
		Destination:     location.NLRTM,
		ArrivalDeadline: time.Now().AddDate(0, 2, 0),
	}

	itineraries := s.FetchRoutesForSpecification(rs)
	if len(itineraries) == 0 {
		t.Fatal("expected at least one candidate itinerary")
	}

	for _, itin := range itineraries {
		if itin.IsEmpty() {
			t.Error("candidate itinerary has no legs")
		}
		if got := itin.InitialDepartureLocation(); got != rs.Origin {
			t.Errorf("initial departure = %s, want %s", got, rs.Origin)
		}
		if got := itin.FinalArrivalLocation(); got != rs.Destination {
			t.Errorf("final arrival = %s, want %s", got, rs.Destination)
		}
	}
}

func TestFetchRoutesPastDeadline(t *testing.T) {
	s := NewRandomService(inmem.NewLocationRepository(), inmem.NewVoyageRepository())

	rs := cargo.RouteSpecification{
		Origin:          location.CNHKG,
		Destination:     location.NLRTM,
		ArrivalDeadline: time.Now().AddDate(0, 0, -1),
	}

	if got := s.FetchRoutesForSpecification(rs); len(got) != 0 {
		t.Errorf("got %d itineraries for an expired deadline, want 0", len(got))
	}
}
