package cargo

import (
	"errors"
	"time"

	"github.com/cargotracker/shipping/location"
)

// RouteSpecification describes where a cargo origin and destination is, and
// the arrival deadline. It is a pure value object.
type RouteSpecification struct {
	Origin          location.UNLcode
	Destination     location.UNLcode
	ArrivalDeadline time.Time
}

// ErrSameOriginAndDestination is used when a route specification is created
// with identical origin and destination.
var ErrSameOriginAndDestination = errors.New("origin and destination can't be the same")

// NewRouteSpecification creates a validated route specification.
func NewRouteSpecification(origin, destination location.UNLcode, arrivalDeadline time.Time) (RouteSpecification, error) {
	if origin == destination {
		return RouteSpecification{}, ErrSameOriginAndDestination
	}
	return RouteSpecification{
		Origin:          origin,
		Destination:     destination,
		ArrivalDeadline: arrivalDeadline,
	}, nil
}

// IsSatisfiedBy checks whether the itinerary satisfies this specification.
// The arrival deadline is compared on the calendar date only, with an
// exclusive boundary: arriving on the deadline date itself is too late.
func (s RouteSpecification) IsSatisfiedBy(itinerary Itinerary) bool {
	return !itinerary.IsEmpty() &&
		s.Origin == itinerary.InitialDepartureLocation() &&
		s.Destination == itinerary.FinalArrivalLocation() &&
		truncateToDay(s.ArrivalDeadline).After(truncateToDay(itinerary.FinalArrivalTime()))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// RoutingStatus describes the status of a cargo routing
type RoutingStatus int

// valid routing statuses
const (
	NotRouted RoutingStatus = iota
	MisRouted
	Routed
)

func (s RoutingStatus) String() string {
	switch s {
	case NotRouted:
		return "Not routed"
	case MisRouted:
		return "Misrouted"
	case Routed:
		return "Routed"
	}
	return ""
}

// TransportStatus describes the status of a cargo transportation
type TransportStatus int

// Valid transport statuses
const (
	NotReceived TransportStatus = iota
	InPort
	OnboardCarrier
	Claimed
	Unknown
)

func (s TransportStatus) String() string {
	switch s {
	case NotReceived:
		return "Not Received"
	case InPort:
		return "In Port"
	case OnboardCarrier:
		return "Onboard Carrier"
	case Claimed:
		return "Claimed"
	case Unknown:
		return "Unknown"
	}
	return ""
}
