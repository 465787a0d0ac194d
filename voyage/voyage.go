package voyage

import (
	"errors"
	"time"

	"github.com/cargotracker/shipping/location"
)

// Number uniquely identifies a voyage
type Number string

// None is the sentinel for "not currently on a voyage".
const None Number = ""

// Voyage is a uniquely identifiable series of carrier movements
type Voyage struct {
	Number   Number
	Schedule Schedule
}

// New creates a new instance of a voyage
func New(n Number, s Schedule) *Voyage {
	return &Voyage{Number: n, Schedule: s}
}

// Schedule describes a voyage schedule
type Schedule struct {
	CarrierMovements []CarrierMovement
}

// NewSchedule creates a schedule from an ordered, non-empty list of movements.
func NewSchedule(movements []CarrierMovement) (Schedule, error) {
	if len(movements) == 0 {
		return Schedule{}, ErrEmptySchedule
	}
	return Schedule{CarrierMovements: movements}, nil
}

// CarrierMovement is a vessel voyage from one location to another
type CarrierMovement struct {
	DepartureLocation location.UNLcode
	ArrivalLocation   location.UNLcode
	DepartureTime     time.Time
	ArrivalTime       time.Time
}

// ErrUnknown is used when a voyage can't be found
var ErrUnknown = errors.New("unknown voyage")

// ErrEmptySchedule is used when a schedule is created without movements.
var ErrEmptySchedule = errors.New("schedule must have at least one carrier movement")

// Repository provides access to a voyage store
type Repository interface {
	Find(Number) (*Voyage, error)
	FindAll() []*Voyage
}
