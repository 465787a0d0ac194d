package cargo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cargotracker/shipping/voyage"
)

func TestNewCargoIsUnrouted(t *testing.T) {
	rs := RouteSpecification{Origin: "CNSHA", Destination: "NLRTM", ArrivalDeadline: time.Now().AddDate(0, 1, 0)}
	c := New("CARGO1", rs)

	assert.Equal(t, NotRouted, c.Delivery.RoutingStatus)
	assert.Equal(t, NotReceived, c.Delivery.TransportStatus)
	assert.True(t, c.Itinerary.IsEmpty())
}

func TestAssignToRouteUpdatesDelivery(t *testing.T) {
	c := New("CARGO1", shanghaiToRotterdam)

	c.AssignToRoute(directItinerary)

	assert.Equal(t, Routed, c.Delivery.RoutingStatus)
	assert.Equal(t, HandlingActivity{Type: Receive, Location: "CNSHA"}, c.Delivery.NextExpectedActivity)
}

func TestSpecifyNewRouteKeepsLastEvent(t *testing.T) {
	c := New("CARGO1", shanghaiToRotterdam)
	c.AssignToRoute(directItinerary)

	t0 := time.Date(2025, time.October, 1, 12, 0, 0, 0, time.UTC)
	c.DeriveDeliveryProgress(HandlingHistory{[]HandlingEvent{
		event(Receive, "CNSHA", voyage.None, t0),
	}})
	assert.Equal(t, InPort, c.Delivery.TransportStatus)

	// changing the destination makes the current itinerary misrouted but must
	// not lose the handling progress
	newSpec := RouteSpecification{Origin: "CNSHA", Destination: "DEHAM", ArrivalDeadline: shanghaiToRotterdam.ArrivalDeadline}
	c.SpecifyNewRoute(newSpec)

	assert.Equal(t, MisRouted, c.Delivery.RoutingStatus)
	assert.Equal(t, InPort, c.Delivery.TransportStatus)
	assert.Equal(t, Receive, c.Delivery.LastEvent.Activity.Type)
}

func TestNextTrackingID(t *testing.T) {
	id := NextTrackingID()
	assert.NotEmpty(t, id)
	assert.NotEqual(t, id, NextTrackingID())
}
