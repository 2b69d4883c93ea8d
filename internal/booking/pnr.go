package booking

import (
	"strings"

	"github.com/Simplextsd/grow-aura-engage/internal/backend"
	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

// mergePNR overwrites the passenger and flight rows of d with a PNR lookup.
// Both collections come back with exactly model.DefaultRows rows.  Every
// flight row, padding included, takes the returned PNR as its ref; when
// the lookup echoes no PNR the one that was requested is used.
func mergePNR(d *model.BookingDraft, res backend.PNRResult, requested string) {
	ref := strings.TrimSpace(res.PNR)
	if ref == "" {
		ref = requested
	} else {
		d.FlightBookingRef = res.PNR
	}

	passengers := make([]model.PassengerRow, model.DefaultRows)
	for i := range passengers {
		p := model.BlankPassenger()
		if i < len(res.Passengers) {
			p = passengerFromDTO(res.Passengers[i])
		}
		passengers[i] = p
	}

	flights := make([]model.FlightRow, model.DefaultRows)
	for i := range flights {
		var f model.FlightRow
		if i < len(res.Flights) {
			f = flightFromDTO(res.Flights[i])
		}
		f.Ref = ref
		flights[i] = f
	}

	d.Passengers = passengers
	d.Flights = flights
}

func passengerFromDTO(p backend.PassengerDTO) model.PassengerRow {
	row := model.BlankPassenger()
	row.FirstName = p.FirstName
	row.LastName = p.LastName
	row.Phone = p.Phone
	row.Email = p.Email
	row.DOB = p.DOB
	if validGender(p.Gender) {
		row.Gender = p.Gender
	}
	return row
}

func flightFromDTO(f backend.FlightDTO) model.FlightRow {
	return model.FlightRow{
		Date:     f.Date,
		Airline:  f.Airline,
		Dep:      f.Dep,
		Arr:      f.Arr,
		DepTime:  f.DepTime,
		ArrTime:  f.ArrTime,
		Supplier: f.Supplier,
		Baggage:  f.Baggage,
	}
}
