package inmem

import (
	"testing"
	"time"

	"github.com/cargotracker/shipping/cargo"
	"github.com/cargotracker/shipping/location"
	"github.com/cargotracker/shipping/voyage"
)

func TestCargoRepository(t *testing.T) {
	r := NewCargoRepository()

	if _, err := r.Find("NOSUCH"); err != cargo.ErrUnknown {
		t.Errorf("err = %v, want %v", err, cargo.ErrUnknown)
	}

	rs, _ := cargo.NewRouteSpecification("CNHKG", "NLRTM", time.Now().AddDate(0, 1, 0))
	c := cargo.New("CARGO1", rs)
	if err := r.Store(c); err != nil {
		t.Fatal(err)
	}

	found, err := r.Find("CARGO1")
	if err != nil {
		t.Fatal(err)
	}
	if found.TrackingID != "CARGO1" {
		t.Errorf("tracking id = %s, want CARGO1", found.TrackingID)
	}
	if got := len(r.FindAll()); got != 1 {
		t.Errorf("got %d cargos, want 1", got)
	}
}

func TestLocationRepositorySeededWithSamples(t *testing.T) {
	r := NewLocationRepository()

	l, err := r.Find(location.SESTO)
	if err != nil {
		t.Fatal(err)
	}
	if l.Name != "Stockholm" {
		t.Errorf("name = %s, want Stockholm", l.Name)
	}

	if _, err := r.Find("XXXXX"); err != location.ErrUnknown {
		t.Errorf("err = %v, want %v", err, location.ErrUnknown)
	}
	if got := len(r.FindAll()); got != 9 {
		t.Errorf("got %d locations, want 9", got)
	}
}

func TestVoyageRepositorySeededWithSamples(t *testing.T) {
	r := NewVoyageRepository()

	if _, err := r.Find(voyage.V100); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Find("NOSUCH"); err != voyage.ErrUnknown {
		t.Errorf("err = %v, want %v", err, voyage.ErrUnknown)
	}
}

func TestHandlingEventRepository(t *testing.T) {
	r := NewHandlingEventRepository()

	if got := len(r.QueryHandlingHistory("CARGO1").HandlingEvents); got != 0 {
		t.Errorf("got %d events, want 0", got)
	}

	e := cargo.HandlingEvent{
		TrackingID: "CARGO1",
		Activity:   cargo.HandlingActivity{Type: cargo.Receive, Location: location.CNHKG},
		Completed:  time.Now(),
		Registered: time.Now(),
	}
	r.Store(e)
	r.Store(e)

	if got := len(r.QueryHandlingHistory("CARGO1").HandlingEvents); got != 2 {
		t.Errorf("got %d events, want 2", got)
	}
}
