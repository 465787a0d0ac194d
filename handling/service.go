// Package handling provides the use-case for registering incidents.
package handling

import (
	"context"
	"errors"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/inspection"
	"github.com/cargotracker/shipping/location"
	"github.com/cargotracker/shipping/voyage"
)

// ErrInvalidArgument is returned when one or more arguments are invalid.
var ErrInvalidArgument = errors.New("invalid argument")

// EventHandler provides a means of subscribing to registered handling events.
type EventHandler interface {
	CargoWasHandled(cargo.HandlingEvent)
}

// EventDeduplicator short-circuits exact duplicate handling reports before
// they hit the event store. The domain-level dedup in HandlingHistory remains
// authoritative; this is an optimization at the registration boundary.
type EventDeduplicator interface {
	IsDuplicate(ctx context.Context, id cargo.TrackingID, eventType cargo.HandlingEventType, completed time.Time) (bool, error)
	Mark(ctx context.Context, id cargo.TrackingID, eventType cargo.HandlingEventType, completed time.Time) error
}

// Service provides handling operations.
type Service interface {
	// RegisterHandlingEvent registers a handling event in the system, and
	// notifies interested parties that a cargo has been handled.
	RegisterHandlingEvent(completed time.Time, id cargo.TrackingID, voyageNumber voyage.Number,
		unLcode location.UNLcode, eventType cargo.HandlingEventType) error
}

type service struct {
	handlingEventRepository cargo.HandlingEventRepository
	handlingEventFactory    cargo.HandlingEventFactory
	handlingEventHandler    EventHandler
	dedup                   EventDeduplicator
	logger                  log.Logger
}

// NewService creates a handling event service with necessary dependencies.
// The deduplicator is optional; pass nil to rely on domain-level dedup only.
func NewService(r cargo.HandlingEventRepository, f cargo.HandlingEventFactory, h EventHandler, d EventDeduplicator, logger log.Logger) Service {
	return &service{
		handlingEventRepository: r,
		handlingEventFactory:    f,
		handlingEventHandler:    h,
		dedup:                   d,
		logger:                  logger,
	}
}

func (s *service) RegisterHandlingEvent(completed time.Time, id cargo.TrackingID, voyageNumber voyage.Number,
	unLcode location.UNLcode, eventType cargo.HandlingEventType) error {
	if completed.IsZero() || id == "" || unLcode == location.Unknown || eventType == cargo.NotHandled {
		return ErrInvalidArgument
	}

	if s.dedup != nil {
		ctx := context.Background()
		dup, err := s.dedup.IsDuplicate(ctx, id, eventType, completed)
		if err != nil {
			// availability wins over the pre-filter
			s.logger.Log("err", err, "tracking_id", id, "msg", "dedup check failed, proceeding")
		} else if dup {
			return nil
		}
	}

	e, err := s.handlingEventFactory.CreateHandlingEvent(time.Now(), completed, id, voyageNumber, unLcode, eventType)
	if err != nil {
		return err
	}

	s.handlingEventRepository.Store(e)
	s.handlingEventHandler.CargoWasHandled(e)

	if s.dedup != nil {
		if err := s.dedup.Mark(context.Background(), id, eventType, completed); err != nil {
			s.logger.Log("err", err, "tracking_id", id, "msg", "dedup mark failed")
		}
	}

	return nil
}

type eventHandler struct {
	InspectionService inspection.Service
}

// NewEventHandler returns an EventHandler that runs cargo inspection on every
// registered handling event.
func NewEventHandler(s inspection.Service) EventHandler {
	return &eventHandler{InspectionService: s}
}

func (h *eventHandler) CargoWasHandled(event cargo.HandlingEvent) {
	h.InspectionService.InspectCargo(event.TrackingID)
}
