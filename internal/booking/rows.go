package booking

import (
	"fmt"
	"strings"

	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

// RowEdit is a single-field change to one row.  Each concrete type is
// bound to one row collection, so field names are checked at compile time
// for callers that build edits directly.
type RowEdit interface {
	Kind() model.RowKind
	apply(d *model.BookingDraft, index int) error
}

// PassengerEdit changes one field of a passenger row.
type PassengerEdit struct {
	Field model.PassengerField
	Value string
}

func (PassengerEdit) Kind() model.RowKind { return model.RowPassengers }

func (e PassengerEdit) apply(d *model.BookingDraft, i int) error {
	if i < 0 || i >= len(d.Passengers) {
		return rowIndexError(model.RowPassengers, i, len(d.Passengers))
	}
	if e.Field == model.PassengerGender && !validGender(e.Value) {
		return &ValidationError{Field: string(e.Field), Message: "gender must be Male, Female or Other"}
	}
	row, ok := d.Passengers[i].With(e.Field, e.Value)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, model.RowPassengers, e.Field)
	}
	d.Passengers = replaceAt(d.Passengers, i, row)
	return nil
}

// FlightEdit changes one field of a flight row.  Setting FlightRef makes
// that row's ref sticky against later header ref changes.
type FlightEdit struct {
	Field model.FlightField
	Value string
}

func (FlightEdit) Kind() model.RowKind { return model.RowFlights }

func (e FlightEdit) apply(d *model.BookingDraft, i int) error {
	if i < 0 || i >= len(d.Flights) {
		return rowIndexError(model.RowFlights, i, len(d.Flights))
	}
	row, ok := d.Flights[i].With(e.Field, e.Value)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, model.RowFlights, e.Field)
	}
	d.Flights = replaceAt(d.Flights, i, row)
	return nil
}

// HotelEdit changes one field of a hotel row.
type HotelEdit struct {
	Field model.HotelField
	Value string
}

func (HotelEdit) Kind() model.RowKind { return model.RowHotels }

func (e HotelEdit) apply(d *model.BookingDraft, i int) error {
	if i < 0 || i >= len(d.Hotels) {
		return rowIndexError(model.RowHotels, i, len(d.Hotels))
	}
	row, ok := d.Hotels[i].With(e.Field, e.Value)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, model.RowHotels, e.Field)
	}
	d.Hotels = replaceAt(d.Hotels, i, row)
	return nil
}

// TransportEdit changes one field of a transport row.
type TransportEdit struct {
	Field model.TransportField
	Value string
}

func (TransportEdit) Kind() model.RowKind { return model.RowTransport }

func (e TransportEdit) apply(d *model.BookingDraft, i int) error {
	if i < 0 || i >= len(d.Transport) {
		return rowIndexError(model.RowTransport, i, len(d.Transport))
	}
	row, ok := d.Transport[i].With(e.Field, e.Value)
	if !ok {
		return fmt.Errorf("%w: %s.%s", ErrUnknownField, model.RowTransport, e.Field)
	}
	d.Transport = replaceAt(d.Transport, i, row)
	return nil
}

// NewRowEdit builds the edit for kind from untyped input, as received over
// HTTP.  Unknown field names surface when the edit is applied.
func NewRowEdit(kind model.RowKind, field, value string) (RowEdit, error) {
	switch kind {
	case model.RowPassengers:
		return PassengerEdit{Field: model.PassengerField(field), Value: value}, nil
	case model.RowFlights:
		return FlightEdit{Field: model.FlightField(field), Value: value}, nil
	case model.RowHotels:
		return HotelEdit{Field: model.HotelField(field), Value: value}, nil
	case model.RowTransport:
		return TransportEdit{Field: model.TransportField(field), Value: value}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownRowKind, kind)
}

// addRow appends a blank row.  New flight rows start with the header ref.
func addRow(d *model.BookingDraft, kind model.RowKind) error {
	switch kind {
	case model.RowPassengers:
		d.Passengers = appendRow(d.Passengers, model.BlankPassenger())
	case model.RowFlights:
		d.Flights = appendRow(d.Flights, model.BlankFlight(d.FlightBookingRef))
	case model.RowHotels:
		d.Hotels = appendRow(d.Hotels, model.HotelRow{})
	case model.RowTransport:
		d.Transport = appendRow(d.Transport, model.TransportRow{})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRowKind, kind)
	}
	return nil
}

// deleteRow removes the row at index; later rows shift up.  Collections may
// shrink to zero rows.
func deleteRow(d *model.BookingDraft, kind model.RowKind, i int) error {
	var n int
	switch kind {
	case model.RowPassengers:
		n = len(d.Passengers)
	case model.RowFlights:
		n = len(d.Flights)
	case model.RowHotels:
		n = len(d.Hotels)
	case model.RowTransport:
		n = len(d.Transport)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRowKind, kind)
	}
	if i < 0 || i >= n {
		return rowIndexError(kind, i, n)
	}
	switch kind {
	case model.RowPassengers:
		d.Passengers = removeAt(d.Passengers, i)
	case model.RowFlights:
		d.Flights = removeAt(d.Flights, i)
	case model.RowHotels:
		d.Hotels = removeAt(d.Hotels, i)
	case model.RowTransport:
		d.Transport = removeAt(d.Transport, i)
	}
	return nil
}

// setHeaderFlightRef stores the header ref and copies it into every flight
// row whose ref is blank.  Rows with a ref of their own keep it.
func setHeaderFlightRef(d *model.BookingDraft, v string) {
	d.FlightBookingRef = v
	next := make([]model.FlightRow, len(d.Flights))
	for i, r := range d.Flights {
		if strings.TrimSpace(r.Ref) == "" {
			r.Ref = v
		}
		next[i] = r
	}
	d.Flights = next
}

func validGender(v string) bool {
	switch v {
	case model.GenderMale, model.GenderFemale, model.GenderOther:
		return true
	}
	return false
}

// The helpers below always return fresh backing arrays so that a row slice
// handed out in a snapshot never observes later edits.

func replaceAt[T any](rows []T, i int, v T) []T {
	next := make([]T, len(rows))
	copy(next, rows)
	next[i] = v
	return next
}

func removeAt[T any](rows []T, i int) []T {
	next := make([]T, 0, len(rows)-1)
	next = append(next, rows[:i]...)
	return append(next, rows[i+1:]...)
}

func appendRow[T any](rows []T, v T) []T {
	next := make([]T, len(rows), len(rows)+1)
	copy(next, rows)
	return append(next, v)
}
