package cargo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cargotracker/shipping/voyage"
)

func testItinerary() Itinerary {
	return Itinerary{Legs: []Leg{
		NewLeg("V1", "CNSHA", "JNTKO",
			time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC)),
		NewLeg("V2", "JNTKO", "NLRTM",
			time.Date(2025, time.October, 7, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)),
	}}
}

func TestNewItineraryRejectsEmpty(t *testing.T) {
	_, err := NewItinerary(nil)
	assert.Equal(t, ErrEmptyItinerary, err)

	_, err = NewItinerary([]Leg{})
	assert.Equal(t, ErrEmptyItinerary, err)
}

func TestItineraryRouteShape(t *testing.T) {
	i := testItinerary()

	assert.Equal(t, "CNSHA", string(i.InitialDepartureLocation()))
	assert.Equal(t, "NLRTM", string(i.FinalArrivalLocation()))
	assert.True(t, i.FinalArrivalTime().Equal(time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)))

	var empty Itinerary
	assert.True(t, empty.IsEmpty())
	assert.Equal(t, "", string(empty.InitialDepartureLocation()))
	assert.Equal(t, "", string(empty.FinalArrivalLocation()))
	assert.True(t, empty.FinalArrivalTime().IsZero())
}

func TestIsExpected(t *testing.T) {
	i := testItinerary()
	now := time.Now()

	for _, tc := range []struct {
		name     string
		event    HandlingEvent
		expected bool
	}{
		{"receive at origin", event(Receive, "CNSHA", voyage.None, now), true},
		{"receive elsewhere", event(Receive, "JNTKO", voyage.None, now), false},
		{"load on planned leg", event(Load, "CNSHA", "V1", now), true},
		{"load on any matching leg", event(Load, "JNTKO", "V2", now), true},
		{"load wrong voyage", event(Load, "CNSHA", "V2", now), false},
		{"load wrong port", event(Load, "DEHAM", "V1", now), false},
		{"unload on planned leg", event(Unload, "JNTKO", "V1", now), true},
		{"unload wrong voyage", event(Unload, "JNTKO", "V2", now), false},
		{"claim at destination", event(Claim, "NLRTM", voyage.None, now), true},
		{"claim elsewhere", event(Claim, "JNTKO", voyage.None, now), false},
		{"customs anywhere", event(Customs, "DEHAM", voyage.None, now), true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, i.IsExpected(tc.event))
		})
	}
}

func TestIsExpectedEmptyItineraryFailsOpen(t *testing.T) {
	var empty Itinerary
	assert.True(t, empty.IsExpected(event(Load, "DEHAM", "V9", time.Now())))
	assert.True(t, empty.IsExpected(event(Claim, "DEHAM", voyage.None, time.Now())))
}

func TestIsExpectedPanicsOnUnknownEventType(t *testing.T) {
	i := testItinerary()
	assert.Panics(t, func() {
		i.IsExpected(event(HandlingEventType(42), "CNSHA", voyage.None, time.Now()))
	})
}
