package voyage

import (
	"time"

	"github.com/cargotracker/shipping/location"
)

// Sample voyage numbers.
var (
	V100 Number = "V100"
	V300 Number = "V300"
	V400 Number = "V400"
)

// Sample voyages, mirroring the sample locations.
var (
	SampleV100 = New(V100, Schedule{
		[]CarrierMovement{
			{DepartureLocation: location.CNHKG, ArrivalLocation: location.JNTKO,
				DepartureTime: ts(2025, time.October, 1), ArrivalTime: ts(2025, time.October, 3)},
			{DepartureLocation: location.JNTKO, ArrivalLocation: location.USNYC,
				DepartureTime: ts(2025, time.October, 3), ArrivalTime: ts(2025, time.October, 6)},
		},
	})

	SampleV300 = New(V300, Schedule{
		[]CarrierMovement{
			{DepartureLocation: location.JNTKO, ArrivalLocation: location.NLRTM,
				DepartureTime: ts(2025, time.October, 8), ArrivalTime: ts(2025, time.October, 11)},
			{DepartureLocation: location.NLRTM, ArrivalLocation: location.DEHAM,
				DepartureTime: ts(2025, time.October, 11), ArrivalTime: ts(2025, time.October, 12)},
			{DepartureLocation: location.DEHAM, ArrivalLocation: location.AUMEL,
				DepartureTime: ts(2025, time.October, 14), ArrivalTime: ts(2025, time.October, 18)},
		},
	})

	SampleV400 = New(V400, Schedule{
		[]CarrierMovement{
			{DepartureLocation: location.DEHAM, ArrivalLocation: location.SESTO,
				DepartureTime: ts(2025, time.October, 14), ArrivalTime: ts(2025, time.October, 15)},
			{DepartureLocation: location.SESTO, ArrivalLocation: location.FIHEL,
				DepartureTime: ts(2025, time.October, 15), ArrivalTime: ts(2025, time.October, 16)},
		},
	})
)

func ts(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
