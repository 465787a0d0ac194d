// Package tracking provides the customer-facing view of a cargo: where it is,
// whether it is on track, and what is expected to happen to it next.
package tracking

import (
	"errors"
	"fmt"
	"time"

	"github.com/cargotracker/shipping/cargo"
)

// ErrInvalidArgument is returned when one or more arguments are invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// Service is the interface that provides the basic Track method.
type Service interface {
	// Track returns a cargo matching a tracking ID.
	Track(id string) (Cargo, error)
}

type service struct {
	cargos         cargo.Repository
	handlingEvents cargo.HandlingEventRepository
}

// NewService returns a new instance of the default Service.
func NewService(cargos cargo.Repository, events cargo.HandlingEventRepository) Service {
	return &service{cargos: cargos, handlingEvents: events}
}

func (s *service) Track(id string) (Cargo, error) {
	if id == "" {
		return Cargo{}, ErrInvalidArgument
	}
	c, err := s.cargos.Find(cargo.TrackingID(id))
	if err != nil {
		return Cargo{}, err
	}
	return assemble(c, s.handlingEvents), nil
}

// Cargo is a read model for tracking views. ETA is nil while the cargo has
// no trustworthy arrival estimate.
type Cargo struct {
	TrackingID           string     `json:"tracking_id"`
	StatusText           string     `json:"status_text"`
	Origin               string     `json:"origin"`
	Destination          string     `json:"destination"`
	ETA                  *time.Time `json:"eta,omitempty"`
	NextExpectedActivity string     `json:"next_expected_activity"`
	ArrivalDeadline      time.Time  `json:"arrival_deadline"`
	Misdirected          bool       `json:"misdirected"`
	Events               []Event    `json:"events"`
}

// Event is a read model for handling events.
type Event struct {
	Description string `json:"description"`
	Expected    bool   `json:"expected"`
}

func assemble(c *cargo.Cargo, events cargo.HandlingEventRepository) Cargo {
	var eta *time.Time
	if t := c.Delivery.ETA; !t.IsZero() {
		eta = &t
	}

	return Cargo{
		TrackingID:           string(c.TrackingID),
		StatusText:           assembleStatusText(c),
		Origin:               string(c.RouteSpecification.Origin),
		Destination:          string(c.RouteSpecification.Destination),
		ETA:                  eta,
		NextExpectedActivity: assembleNextExpectedActivity(c.Delivery.NextExpectedActivity),
		ArrivalDeadline:      c.RouteSpecification.ArrivalDeadline,
		Misdirected:          c.Delivery.IsMisdirected,
		Events:               assembleEvents(c, events),
	}
}

func assembleStatusText(c *cargo.Cargo) string {
	switch c.Delivery.TransportStatus {
	case cargo.NotReceived:
		return "Not received"
	case cargo.InPort:
		return fmt.Sprintf("In port %s", c.Delivery.LastKnownLocation)
	case cargo.OnboardCarrier:
		return fmt.Sprintf("Onboard voyage %s", c.Delivery.CurrentVoyage)
	case cargo.Claimed:
		return "Claimed"
	default:
		return "Unknown"
	}
}

func assembleNextExpectedActivity(a cargo.HandlingActivity) string {
	prefix := "Next expected activity is to"

	switch a.Type {
	case cargo.Load:
		return fmt.Sprintf("%s load cargo onto voyage %s in %s", prefix, a.VoyageNumber, a.Location)
	case cargo.Unload:
		return fmt.Sprintf("%s unload cargo off of voyage %s in %s", prefix, a.VoyageNumber, a.Location)
	case cargo.Receive:
		return fmt.Sprintf("%s receive cargo in %s", prefix, a.Location)
	case cargo.Claim:
		return fmt.Sprintf("%s claim cargo in %s", prefix, a.Location)
	}
	return ""
}

func assembleEvents(c *cargo.Cargo, repo cargo.HandlingEventRepository) []Event {
	history := repo.QueryHandlingHistory(c.TrackingID)

	var result []Event
	for _, e := range history.DistinctEventsByCompletionTime() {
		var description string

		switch e.Activity.Type {
		case cargo.NotHandled:
			description = "Cargo has not yet been handled"
		case cargo.Receive:
			description = fmt.Sprintf("Received in %s, at %s", e.Activity.Location, e.Completed.Format(time.RFC3339))
		case cargo.Load:
			description = fmt.Sprintf("Loaded onto voyage %s in %s, at %s", e.Activity.VoyageNumber, e.Activity.Location, e.Completed.Format(time.RFC3339))
		case cargo.Unload:
			description = fmt.Sprintf("Unloaded off voyage %s in %s, at %s", e.Activity.VoyageNumber, e.Activity.Location, e.Completed.Format(time.RFC3339))
		case cargo.Claim:
			description = fmt.Sprintf("Claimed in %s, at %s", e.Activity.Location, e.Completed.Format(time.RFC3339))
		case cargo.Customs:
			description = fmt.Sprintf("Cleared customs in %s, at %s", e.Activity.Location, e.Completed.Format(time.RFC3339))
		default:
			description = "Unknown event"
		}

		result = append(result, Event{
			Description: description,
			Expected:    c.Itinerary.IsExpected(e),
		})
	}

	return result
}
