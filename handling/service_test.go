package handling

import (
	"context"
	"testing"
	"time"

	"github.com/go-kit/kit/log"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/inmem"
	"github.com/cargotracker/shipping/voyage"
)

type stubEventHandler struct {
	handled []cargo.HandlingEvent
}

func (h *stubEventHandler) CargoWasHandled(e cargo.HandlingEvent) {
	h.handled = append(h.handled, e)
}

type stubDedup struct {
	dupResult bool
	marked    int
}

func (d *stubDedup) IsDuplicate(_ context.Context, _ cargo.TrackingID, _ cargo.HandlingEventType, _ time.Time) (bool, error) {
	return d.dupResult, nil
}

func (d *stubDedup) Mark(_ context.Context, _ cargo.TrackingID, _ cargo.HandlingEventType, _ time.Time) error {
	d.marked++
	return nil
}

func newTestService(dedup EventDeduplicator) (Service, *stubEventHandler, cargo.HandlingEventRepository, cargo.TrackingID) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()

	rs, _ := cargo.NewRouteSpecification("CNHKG", "NLRTM", time.Now().AddDate(0, 1, 0))
	c := cargo.New("CARGO1", rs)
	cargos.Store(c)

	f := cargo.HandlingEventFactory{
		CargoRepository:    cargos,
		VoyageRepository:   inmem.NewVoyageRepository(),
		LocationRepository: inmem.NewLocationRepository(),
	}

	handler := &stubEventHandler{}
	s := NewService(events, f, handler, dedup, log.NewNopLogger())
	return s, handler, events, c.TrackingID
}

func TestRegisterHandlingEvent(t *testing.T) {
	s, handler, events, id := newTestService(nil)

	completed := time.Now().Add(-time.Hour)
	if err := s.RegisterHandlingEvent(completed, id, voyage.None, "CNHKG", cargo.Receive); err != nil {
		t.Fatal(err)
	}

	if len(handler.handled) != 1 {
		t.Fatalf("got %d handled events, want 1", len(handler.handled))
	}
	history := events.QueryHandlingHistory(id)
	if len(history.HandlingEvents) != 1 {
		t.Fatalf("got %d stored events, want 1", len(history.HandlingEvents))
	}
}

func TestRegisterHandlingEventValidation(t *testing.T) {
	s, _, _, id := newTestService(nil)

	completed := time.Now().Add(-time.Hour)

	if err := s.RegisterHandlingEvent(time.Time{}, id, voyage.None, "CNHKG", cargo.Receive); err != ErrInvalidArgument {
		t.Errorf("zero completion time: err = %v, want %v", err, ErrInvalidArgument)
	}
	if err := s.RegisterHandlingEvent(completed, "", voyage.None, "CNHKG", cargo.Receive); err != ErrInvalidArgument {
		t.Errorf("empty id: err = %v, want %v", err, ErrInvalidArgument)
	}
	if err := s.RegisterHandlingEvent(completed, id, voyage.None, "CNHKG", cargo.Load); err != cargo.ErrVoyageRequired {
		t.Errorf("load without voyage: err = %v, want %v", err, cargo.ErrVoyageRequired)
	}
	if err := s.RegisterHandlingEvent(completed, "NOSUCH", voyage.None, "CNHKG", cargo.Receive); err != cargo.ErrUnknown {
		t.Errorf("unknown cargo: err = %v, want %v", err, cargo.ErrUnknown)
	}
}

func TestRegisterHandlingEventDeduplicated(t *testing.T) {
	dedup := &stubDedup{dupResult: true}
	s, handler, events, id := newTestService(dedup)

	if err := s.RegisterHandlingEvent(time.Now(), id, voyage.None, "CNHKG", cargo.Receive); err != nil {
		t.Fatal(err)
	}

	// a duplicate report is dropped silently
	if len(handler.handled) != 0 {
		t.Errorf("got %d handled events, want 0", len(handler.handled))
	}
	if history := events.QueryHandlingHistory(id); len(history.HandlingEvents) != 0 {
		t.Errorf("got %d stored events, want 0", len(history.HandlingEvents))
	}
}

func TestRegisterHandlingEventMarksDedup(t *testing.T) {
	dedup := &stubDedup{}
	s, _, _, id := newTestService(dedup)

	if err := s.RegisterHandlingEvent(time.Now(), id, voyage.None, "CNHKG", cargo.Receive); err != nil {
		t.Fatal(err)
	}
	if dedup.marked != 1 {
		t.Errorf("marked = %d, want 1", dedup.marked)
	}
}
