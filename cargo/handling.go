package cargo

import (
	"errors"
	"sort"
	"time"

	"github.com/cargotracker/shipping/location"
	"github.com/cargotracker/shipping/voyage"
)

// HandlingEventType describes the type of a handling event
type HandlingEventType int

// valid handling event types
const (
	NotHandled HandlingEventType = iota
	Load
	Unload
	Receive
	Claim
	Customs
)

func (t HandlingEventType) String() string {
	switch t {
	case NotHandled:
		return "Not Handled"
	case Load:
		return "Load"
	case Unload:
		return "Unload"
	case Receive:
		return "Receive"
	case Claim:
		return "Claim"
	case Customs:
		return "Customs"
	}
	return ""
}

// RequiresVoyage reports whether events of this type must reference a voyage.
func (t HandlingEventType) RequiresVoyage() bool {
	return t == Load || t == Unload
}

// ProhibitsVoyage reports whether events of this type must not reference a voyage.
func (t HandlingEventType) ProhibitsVoyage() bool {
	return !t.RequiresVoyage()
}

// HandlingActivity represents how and where a cargo can be handled, and can
// be used to express predictions about what is expected to happen to a cargo
// in the future.
type HandlingActivity struct {
	Type         HandlingEventType
	Location     location.UNLcode
	VoyageNumber voyage.Number
}

// HandlingEvent is used to register the event when, for instance, a cargo is
// unloaded from a carrier at a some location at a given time. Completed is
// the reported time the event actually happened; Registered is the time the
// report reached us, possibly much later.
type HandlingEvent struct {
	TrackingID TrackingID
	Activity   HandlingActivity
	Completed  time.Time
	Registered time.Time
}

// SameValueAs compares two events for equality, ignoring the registration
// time: the same real-world occurrence reported twice is still one event.
func (e HandlingEvent) SameValueAs(other HandlingEvent) bool {
	return e.TrackingID == other.TrackingID &&
		e.Activity == other.Activity &&
		e.Completed.Equal(other.Completed)
}

// HandlingHistory is the handling history of a cargo. The events are an
// unordered bag, possibly containing duplicate registrations.
type HandlingHistory struct {
	HandlingEvents []HandlingEvent
}

// DistinctEventsByCompletionTime returns the events without duplicate
// registrations, ordered ascending by completion time. Events completed at
// the same instant are ordered by registration time, stable beyond that, so
// the projection stays deterministic.
func (h HandlingHistory) DistinctEventsByCompletionTime() []HandlingEvent {
	var events []HandlingEvent
	for _, e := range h.HandlingEvents {
		duplicate := false
		for _, seen := range events {
			if e.SameValueAs(seen) {
				duplicate = true
				break
			}
		}
		if !duplicate {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Completed.Equal(events[j].Completed) {
			return events[i].Registered.Before(events[j].Registered)
		}
		return events[i].Completed.Before(events[j].Completed)
	})
	return events
}

// ErrEmptyHistory is used when a history holds no events.
var ErrEmptyHistory = errors.New("delivery history is empty")

// MostRecentlyCompletedEvent returns the most recently completed handling event
func (h HandlingHistory) MostRecentlyCompletedEvent() (HandlingEvent, error) {
	events := h.DistinctEventsByCompletionTime()
	if len(events) == 0 {
		return HandlingEvent{}, ErrEmptyHistory
	}
	return events[len(events)-1], nil
}

// HandlingEventRepository provides access to the handling event store
type HandlingEventRepository interface {
	Store(e HandlingEvent)
	QueryHandlingHistory(TrackingID) HandlingHistory
}

// handling event validation errors
var (
	ErrVoyageRequired   = errors.New("a voyage is required for this event type")
	ErrVoyageNotAllowed = errors.New("a voyage is not allowed with this event type")
)

// HandlingEventFactory creates handling events
type HandlingEventFactory struct {
	CargoRepository    Repository
	VoyageRepository   voyage.Repository
	LocationRepository location.Repository
}

// CreateHandlingEvent creates a validated handling event
func (f *HandlingEventFactory) CreateHandlingEvent(registered time.Time, completed time.Time, id TrackingID, voyageNumber voyage.Number, unlCode location.UNLcode, eventType HandlingEventType) (HandlingEvent, error) {
	if _, err := f.CargoRepository.Find(id); err != nil {
		return HandlingEvent{}, err
	}

	if eventType.RequiresVoyage() {
		if voyageNumber == voyage.None {
			return HandlingEvent{}, ErrVoyageRequired
		}
		if _, err := f.VoyageRepository.Find(voyageNumber); err != nil {
			return HandlingEvent{}, err
		}
	} else if voyageNumber != voyage.None {
		return HandlingEvent{}, ErrVoyageNotAllowed
	}

	if _, err := f.LocationRepository.Find(unlCode); err != nil {
		return HandlingEvent{}, err
	}

	return HandlingEvent{
		TrackingID: id,
		Activity: HandlingActivity{
			Type:         eventType,
			Location:     unlCode,
			VoyageNumber: voyageNumber,
		},
		Completed:  completed,
		Registered: registered,
	}, nil
}
