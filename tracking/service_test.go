package tracking

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/inmem"
)

func TestTrack(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()
	s := NewService(cargos, events)

	rs, _ := cargo.NewRouteSpecification("CNHKG", "NLRTM", time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
	c := cargo.New("CARGO1", rs)
	c.AssignToRoute(cargo.Itinerary{Legs: []cargo.Leg{
		cargo.NewLeg("V100", "CNHKG", "NLRTM",
			time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)),
	}})
	cargos.Store(c)

	v, err := s.Track("CARGO1")
	if err != nil {
		t.Fatal(err)
	}

	if v.StatusText != "Not received" {
		t.Errorf("status = %q, want %q", v.StatusText, "Not received")
	}
	if want := "receive cargo in CNHKG"; !strings.Contains(v.NextExpectedActivity, want) {
		t.Errorf("next activity = %q, want it to mention %q", v.NextExpectedActivity, want)
	}
	if v.ETA == nil || !v.ETA.Equal(time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("eta = %v, want the itinerary's final arrival time", v.ETA)
	}
	if len(v.Events) != 0 {
		t.Errorf("got %d events, want 0", len(v.Events))
	}
}

func TestTrackWithHistory(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()
	s := NewService(cargos, events)

	rs, _ := cargo.NewRouteSpecification("CNHKG", "NLRTM", time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
	c := cargo.New("CARGO1", rs)
	c.AssignToRoute(cargo.Itinerary{Legs: []cargo.Leg{
		cargo.NewLeg("V100", "CNHKG", "NLRTM",
			time.Date(2025, time.October, 2, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)),
	}})

	received := cargo.HandlingEvent{
		TrackingID: "CARGO1",
		Activity:   cargo.HandlingActivity{Type: cargo.Receive, Location: "CNHKG"},
		Completed:  time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC),
		Registered: time.Now(),
	}
	loadedOffRoute := cargo.HandlingEvent{
		TrackingID: "CARGO1",
		Activity:   cargo.HandlingActivity{Type: cargo.Load, Location: "JNTKO", VoyageNumber: "V100"},
		Completed:  time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC),
		Registered: time.Now(),
	}
	events.Store(received)
	events.Store(loadedOffRoute)
	c.DeriveDeliveryProgress(events.QueryHandlingHistory("CARGO1"))
	cargos.Store(c)

	v, err := s.Track("CARGO1")
	if err != nil {
		t.Fatal(err)
	}

	if !v.Misdirected {
		t.Error("expected cargo to be misdirected")
	}
	if v.StatusText != "Onboard voyage V100" {
		t.Errorf("status = %q, want %q", v.StatusText, "Onboard voyage V100")
	}
	if len(v.Events) != 2 {
		t.Fatalf("got %d events, want 2", len(v.Events))
	}
	if !v.Events[0].Expected {
		t.Error("receive at origin should be expected")
	}
	if v.Events[1].Expected {
		t.Error("load off route should be unexpected")
	}
	if v.NextExpectedActivity != "" {
		t.Errorf("next activity = %q, want empty for misdirected cargo", v.NextExpectedActivity)
	}
	if v.ETA != nil {
		t.Errorf("eta = %v, want nil for misdirected cargo", v.ETA)
	}
}

// The unknown-ETA sentinel must disappear from the serialized view instead of
// rendering as the zero timestamp.
func TestTrackOmitsUnknownETA(t *testing.T) {
	cargos := inmem.NewCargoRepository()
	events := inmem.NewHandlingEventRepository()
	s := NewService(cargos, events)

	rs, _ := cargo.NewRouteSpecification("CNHKG", "NLRTM", time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC))
	cargos.Store(cargo.New("CARGO1", rs))

	v, err := s.Track("CARGO1")
	if err != nil {
		t.Fatal(err)
	}

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(b), "eta") {
		t.Errorf("serialized view %s should not contain an eta field", b)
	}
}

func TestTrackUnknown(t *testing.T) {
	s := NewService(inmem.NewCargoRepository(), inmem.NewHandlingEventRepository())

	if _, err := s.Track(""); err != ErrInvalidArgument {
		t.Errorf("err = %v, want %v", err, ErrInvalidArgument)
	}
	if _, err := s.Track("NOSUCH"); err != cargo.ErrUnknown {
		t.Errorf("err = %v, want %v", err, cargo.ErrUnknown)
	}
}
