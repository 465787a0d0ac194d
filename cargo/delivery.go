package cargo

import (
	"time"

	"github.com/cargotracker/shipping/location"
	"github.com/cargotracker/shipping/voyage"
)

// Delivery is the actual transportation of the cargo, as opposed to the
// customer requirement (RouteSpecification) and the plan (Itinerary). It is
// derived in full from the route specification, the itinerary and the
// handling history; no field is independently settable, and every change
// produces a new snapshot.
type Delivery struct {
	Itinerary               Itinerary
	RouteSpecification      RouteSpecification
	RoutingStatus           RoutingStatus
	TransportStatus         TransportStatus
	NextExpectedActivity    HandlingActivity
	LastEvent               HandlingEvent
	LastKnownLocation       location.UNLcode
	CurrentVoyage           voyage.Number
	ETA                     time.Time
	IsMisdirected           bool
	IsUnloadedAtDestination bool
	CalculatedAt            time.Time
}

// DeriveDeliveryFrom creates a new delivery snapshot based on the complete
// handling history of a cargo, as well as its route specification and
// itinerary.
func DeriveDeliveryFrom(rs RouteSpecification, itinerary Itinerary, history HandlingHistory) Delivery {
	lastEvent, _ := history.MostRecentlyCompletedEvent()
	return newDelivery(lastEvent, itinerary, rs)
}

// UpdateOnRouting creates a new delivery snapshot to reflect changes in
// routing, i.e. when the route specification or the itinerary has changed but
// no additional handling of the cargo has been performed. The last event is
// held fixed.
func (d Delivery) UpdateOnRouting(rs RouteSpecification, itinerary Itinerary) Delivery {
	return newDelivery(d.LastEvent, itinerary, rs)
}

// IsOnTrack reports whether the cargo is routed correctly and not
// misdirected. Only an on-track cargo has a trustworthy ETA and next expected
// activity.
func (d Delivery) IsOnTrack() bool {
	return d.RoutingStatus == Routed && !d.IsMisdirected
}

// newDelivery creates a delivery snapshot, intended to be used by the
// deriving/updating functions above. The zero-value event (type NotHandled)
// means no handling has been reported yet.
func newDelivery(lastEvent HandlingEvent, itinerary Itinerary, rs RouteSpecification) Delivery {
	var (
		routingStatus           = calculateRoutingStatus(itinerary, rs)
		transportStatus         = calculateTransportStatus(lastEvent)
		lastKnownLocation       = calculateLastKnownLocation(lastEvent)
		isMisdirected           = calculateMisdirectedStatus(lastEvent, itinerary)
		isUnloadedAtDestination = calculateUnloadedAtDestination(lastEvent, rs)
		currentVoyage           = calculateCurrentVoyage(transportStatus, lastEvent)
	)

	d := Delivery{
		LastEvent:               lastEvent,
		Itinerary:               itinerary,
		RouteSpecification:      rs,
		RoutingStatus:           routingStatus,
		TransportStatus:         transportStatus,
		LastKnownLocation:       lastKnownLocation,
		IsMisdirected:           isMisdirected,
		IsUnloadedAtDestination: isUnloadedAtDestination,
		CurrentVoyage:           currentVoyage,
		CalculatedAt:            time.Now(),
	}

	// ETA and the next expected activity are meaningless for a cargo that is
	// misrouted or misdirected.
	d.ETA = calculateETA(d)
	d.NextExpectedActivity = calculateNextExpectedActivity(d)

	return d
}

func calculateRoutingStatus(itinerary Itinerary, rs RouteSpecification) RoutingStatus {
	if itinerary.IsEmpty() {
		return NotRouted
	}
	if rs.IsSatisfiedBy(itinerary) {
		return Routed
	}
	return MisRouted
}

func calculateTransportStatus(event HandlingEvent) TransportStatus {
	switch event.Activity.Type {
	case NotHandled:
		return NotReceived
	case Load:
		return OnboardCarrier
	case Unload, Receive, Customs:
		return InPort
	case Claim:
		return Claimed
	}
	return Unknown
}

func calculateLastKnownLocation(event HandlingEvent) location.UNLcode {
	if event.Activity.Type == NotHandled {
		return location.Unknown
	}
	return event.Activity.Location
}

// calculateCurrentVoyage clears the voyage unless the cargo is onboard a
// carrier: an unload event references a voyage but the cargo has left it.
func calculateCurrentVoyage(transportStatus TransportStatus, event HandlingEvent) voyage.Number {
	if transportStatus == OnboardCarrier && event.Activity.Type != NotHandled {
		return event.Activity.VoyageNumber
	}
	return voyage.None
}

// calculateMisdirectedStatus checks if the cargo is misdirected. A cargo
// without handling events can not be misdirected.
func calculateMisdirectedStatus(event HandlingEvent, itinerary Itinerary) bool {
	if event.Activity.Type == NotHandled {
		return false
	}
	return !itinerary.IsExpected(event)
}

func calculateUnloadedAtDestination(event HandlingEvent, rs RouteSpecification) bool {
	return event.Activity.Type == Unload && rs.Destination == event.Activity.Location
}

func calculateETA(d Delivery) time.Time {
	if !d.IsOnTrack() {
		return time.Time{}
	}
	return d.Itinerary.FinalArrivalTime()
}

func calculateNextExpectedActivity(d Delivery) HandlingActivity {
	if !d.IsOnTrack() {
		return HandlingActivity{}
	}

	switch d.LastEvent.Activity.Type {
	case NotHandled:
		return HandlingActivity{Type: Receive, Location: d.RouteSpecification.Origin}
	case Receive:
		first := d.Itinerary.Legs[0]
		return HandlingActivity{Type: Load, Location: first.LoadLocation, VoyageNumber: first.VoyageNumber}
	case Load:
		for _, l := range d.Itinerary.Legs {
			if l.LoadLocation == d.LastEvent.Activity.Location {
				return HandlingActivity{Type: Unload, Location: l.UnLoadLocation, VoyageNumber: l.VoyageNumber}
			}
		}
	case Unload:
		for i, l := range d.Itinerary.Legs {
			if l.UnLoadLocation == d.LastEvent.Activity.Location {
				if i < len(d.Itinerary.Legs)-1 {
					next := d.Itinerary.Legs[i+1]
					return HandlingActivity{Type: Load, Location: next.LoadLocation, VoyageNumber: next.VoyageNumber}
				}
				return HandlingActivity{Type: Claim, Location: l.UnLoadLocation}
			}
		}
	}

	return HandlingActivity{}
}
