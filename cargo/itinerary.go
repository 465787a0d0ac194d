package cargo

import (
	"errors"
	"fmt"
	"time"

	"github.com/cargotracker/shipping/location"
	"github.com/cargotracker/shipping/voyage"
)

// Leg describes the transportation between two locations on a voyage
type Leg struct {
	VoyageNumber   voyage.Number    `json:"voyage_number"`
	LoadLocation   location.UNLcode `json:"from"`
	UnLoadLocation location.UNLcode `json:"to"`
	LoadTime       time.Time        `json:"load_time"`
	UnLoadTime     time.Time        `json:"unload_time"`
}

// NewLeg creates a new itinerary leg
func NewLeg(voyageNumber voyage.Number, loadLocation, unloadLocation location.UNLcode, loadTime, unloadTime time.Time) Leg {
	return Leg{
		VoyageNumber:   voyageNumber,
		LoadLocation:   loadLocation,
		UnLoadLocation: unloadLocation,
		LoadTime:       loadTime,
		UnLoadTime:     unloadTime,
	}
}

// Itinerary specifies steps required to transport a cargo from its origin to
// destination. The zero value is the "not yet routed" sentinel.
type Itinerary struct {
	Legs []Leg `json:"legs"`
}

// ErrEmptyItinerary is used when an itinerary is created without legs.
var ErrEmptyItinerary = errors.New("itinerary must have at least one leg")

// NewItinerary creates an itinerary from an ordered, non-empty list of legs.
func NewItinerary(legs []Leg) (Itinerary, error) {
	if len(legs) == 0 {
		return Itinerary{}, ErrEmptyItinerary
	}
	return Itinerary{Legs: legs}, nil
}

// IsEmpty checks if the itinerary contains at least one leg
func (i Itinerary) IsEmpty() bool {
	return len(i.Legs) == 0
}

// InitialDepartureLocation returns the start of the itinerary
func (i Itinerary) InitialDepartureLocation() location.UNLcode {
	if i.IsEmpty() {
		return location.Unknown
	}
	return i.Legs[0].LoadLocation
}

// FinalArrivalLocation returns the end of the itinerary
func (i Itinerary) FinalArrivalLocation() location.UNLcode {
	if i.IsEmpty() {
		return location.Unknown
	}
	return i.lastLeg().UnLoadLocation
}

// FinalArrivalTime returns the expected arrival time at final destination.
// Zero for an empty itinerary.
func (i Itinerary) FinalArrivalTime() time.Time {
	if i.IsEmpty() {
		return time.Time{}
	}
	return i.lastLeg().UnLoadTime
}

func (i Itinerary) lastLeg() Leg {
	return i.Legs[len(i.Legs)-1]
}

// IsExpected checks if the given handling event is expected when executing
// this itinerary. An empty itinerary treats every event as expected; routing
// is checked upstream. Note that Load and Unload match against any leg with
// the right location and voyage, not specifically the next unvisited one, so
// re-handling at a previously visited port still counts as expected.
func (i Itinerary) IsExpected(event HandlingEvent) bool {
	if i.IsEmpty() {
		return true
	}
	switch event.Activity.Type {
	case Receive:
		return i.InitialDepartureLocation() == event.Activity.Location
	case Load:
		for _, l := range i.Legs {
			if l.LoadLocation == event.Activity.Location && l.VoyageNumber == event.Activity.VoyageNumber {
				return true
			}
		}
		return false
	case Unload:
		for _, l := range i.Legs {
			if l.UnLoadLocation == event.Activity.Location && l.VoyageNumber == event.Activity.VoyageNumber {
				return true
			}
		}
		return false
	case Claim:
		return i.FinalArrivalLocation() == event.Activity.Location
	case Customs:
		return true
	}
	panic(fmt.Sprintf("unhandled handling event type: %v", event.Activity.Type))
}
