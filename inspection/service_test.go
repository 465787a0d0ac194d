package inspection

import (
	"testing"
	"time"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/inmem"
	"github.com/cargotracker/shipping/voyage"
)

type stubEventHandler struct {
	misdirected []*cargo.Cargo
	arrived     []*cargo.Cargo
}

func (h *stubEventHandler) CargoWasMisdirected(c *cargo.Cargo) { h.misdirected = append(h.misdirected, c) }
func (h *stubEventHandler) CargoHasArrived(c *cargo.Cargo)     { h.arrived = append(h.arrived, c) }

func routedCargo() *cargo.Cargo {
	rs, _ := cargo.NewRouteSpecification("CNHKG", "NLRTM", time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
	c := cargo.New("CARGO1", rs)
	c.AssignToRoute(cargo.Itinerary{Legs: []cargo.Leg{
		cargo.NewLeg("V100", "CNHKG", "NLRTM",
			time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)),
	}})
	return c
}

func TestInspectCargoUpdatesDelivery(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()
	handler := &stubEventHandler{}
	s := NewService(cargos, events, handler)

	c := routedCargo()
	cargos.Store(c)
	events.Store(cargo.HandlingEvent{
		TrackingID: c.TrackingID,
		Activity:   cargo.HandlingActivity{Type: cargo.Receive, Location: "CNHKG"},
		Completed:  time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		Registered: time.Now(),
	})

	s.InspectCargo(c.TrackingID)

	stored, _ := cargos.Find(c.TrackingID)
	if stored.Delivery.TransportStatus != cargo.InPort {
		t.Errorf("transport status = %v, want %v", stored.Delivery.TransportStatus, cargo.InPort)
	}
	if len(handler.misdirected) != 0 || len(handler.arrived) != 0 {
		t.Error("no notifications expected")
	}
}

func TestInspectCargoNotifiesMisdirection(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()
	handler := &stubEventHandler{}
	s := NewService(cargos, events, handler)

	c := routedCargo()
	cargos.Store(c)
	events.Store(cargo.HandlingEvent{
		TrackingID: c.TrackingID,
		Activity:   cargo.HandlingActivity{Type: cargo.Load, Location: "JNTKO", VoyageNumber: voyage.V100},
		Completed:  time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC),
		Registered: time.Now(),
	})

	s.InspectCargo(c.TrackingID)

	if len(handler.misdirected) != 1 {
		t.Fatalf("got %d misdirection notifications, want 1", len(handler.misdirected))
	}
}

func TestInspectCargoNotifiesArrival(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()
	handler := &stubEventHandler{}
	s := NewService(cargos, events, handler)

	c := routedCargo()
	cargos.Store(c)
	events.Store(cargo.HandlingEvent{
		TrackingID: c.TrackingID,
		Activity:   cargo.HandlingActivity{Type: cargo.Unload, Location: "NLRTM", VoyageNumber: "V100"},
		Completed:  time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC),
		Registered: time.Now(),
	})

	s.InspectCargo(c.TrackingID)

	if len(handler.arrived) != 1 {
		t.Fatalf("got %d arrival notifications, want 1", len(handler.arrived))
	}
}

func TestInspectUnknownCargoIsNoop(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()
	handler := &stubEventHandler{}
	s := NewService(cargos, events, handler)

	s.InspectCargo("NOSUCH")

	if len(handler.misdirected) != 0 || len(handler.arrived) != 0 {
		t.Error("no notifications expected for unknown cargo")
	}
}
