package booking

import (
	"errors"
	"testing"

	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

func newTestForm(api Backend) *Form {
	r := NewRegistry(api)
	return r.Open("agent-1")
}

func TestForm_HeaderFlightRef(t *testing.T) {
	t.Parallel()

	f := newTestForm(&fakeBackend{})
	if err := f.SetFlightRef(1, "MANUAL"); err != nil {
		t.Fatalf("set flight ref: %v", err)
	}
	if err := f.SetFlightRef(2, "   "); err != nil {
		t.Fatalf("set flight ref: %v", err)
	}

	for _, v := range []string{"PNR1", "PNR2"} {
		if err := f.SetFlightBookingRef(v); err != nil {
			t.Fatalf("set header ref: %v", err)
		}
		d := f.View().Draft
		if d.FlightBookingRef != v {
			t.Fatalf("expected header %q, got %q", v, d.FlightBookingRef)
		}
		if d.Flights[1].Ref != "MANUAL" {
			t.Fatalf("expected sticky manual ref, got %q", d.Flights[1].Ref)
		}
	}

	d := f.View().Draft
	// Rows filled by the first header change are no longer blank.
	for _, i := range []int{0, 2, 3} {
		if d.Flights[i].Ref != "PNR1" {
			t.Fatalf("row %d: expected PNR1, got %q", i, d.Flights[i].Ref)
		}
	}

	if err := f.AddRow(model.RowFlights); err != nil {
		t.Fatalf("add row: %v", err)
	}
	d = f.View().Draft
	if len(d.Flights) != 5 || d.Flights[4].Ref != "PNR2" {
		t.Fatalf("expected new flight row seeded with PNR2, got %+v", d.Flights)
	}
}

func TestForm_DeleteThenUpdate(t *testing.T) {
	t.Parallel()

	f := newTestForm(&fakeBackend{})
	for i, name := range []string{"A", "B", "C", "D"} {
		if err := f.UpdateField(i, FlightEdit{Field: model.FlightSupplier, Value: name}); err != nil {
			t.Fatalf("seed row %d: %v", i, err)
		}
	}
	if err := f.DeleteRow(model.RowFlights, 1); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := f.UpdateField(1, FlightEdit{Field: model.FlightAirline, Value: "X"}); err != nil {
		t.Fatalf("update: %v", err)
	}

	rows := f.View().Draft.Flights
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	want := []model.FlightRow{
		{Supplier: "A"},
		{Supplier: "C", Airline: "X"},
		{Supplier: "D"},
	}
	for i := range want {
		if rows[i] != want[i] {
			t.Fatalf("row %d: expected %+v, got %+v", i, want[i], rows[i])
		}
	}
}

func TestForm_RowEditing(t *testing.T) {
	t.Parallel()

	t.Run("every collection grows and shrinks", func(t *testing.T) {
		f := newTestForm(&fakeBackend{})
		for _, kind := range []model.RowKind{model.RowPassengers, model.RowFlights, model.RowHotels, model.RowTransport} {
			if err := f.AddRow(kind); err != nil {
				t.Fatalf("%s add: %v", kind, err)
			}
			for i := 0; i < 5; i++ {
				if err := f.DeleteRow(kind, 0); err != nil {
					t.Fatalf("%s delete %d: %v", kind, i, err)
				}
			}
			if err := f.DeleteRow(kind, 0); !errors.Is(err, ErrRowIndex) {
				t.Fatalf("%s: expected ErrRowIndex on empty collection, got %v", kind, err)
			}
		}
		d := f.View().Draft
		if len(d.Passengers)+len(d.Flights)+len(d.Hotels)+len(d.Transport) != 0 {
			t.Fatalf("expected all collections empty, got %+v", d)
		}
	})

	t.Run("new passenger rows default to Male", func(t *testing.T) {
		f := newTestForm(&fakeBackend{})
		if err := f.AddRow(model.RowPassengers); err != nil {
			t.Fatalf("add: %v", err)
		}
		if g := f.View().Draft.Passengers[4].Gender; g != model.GenderMale {
			t.Fatalf("expected Male, got %q", g)
		}
	})

	t.Run("out of range and unknown inputs change nothing", func(t *testing.T) {
		f := newTestForm(&fakeBackend{})
		before := f.View().Draft

		cases := []struct {
			name string
			err  error
			run  func() error
		}{
			{"index past end", ErrRowIndex, func() error {
				return f.UpdateField(4, HotelEdit{Field: model.HotelName, Value: "x"})
			}},
			{"negative index", ErrRowIndex, func() error {
				return f.UpdateField(-1, TransportEdit{Field: model.TransportPax, Value: "2"})
			}},
			{"unknown field", ErrUnknownField, func() error {
				return f.UpdateField(0, PassengerEdit{Field: "shoeSize", Value: "9"})
			}},
			{"unknown kind", ErrUnknownRowKind, func() error {
				return f.AddRow("cruises")
			}},
		}
		for _, tc := range cases {
			if err := tc.run(); !errors.Is(err, tc.err) {
				t.Fatalf("%s: expected %v, got %v", tc.name, tc.err, err)
			}
		}

		var ve *ValidationError
		if err := f.UpdateField(0, PassengerEdit{Field: model.PassengerGender, Value: "Robot"}); !errors.As(err, &ve) {
			t.Fatalf("expected validation error for gender, got %v", err)
		}

		after := f.View().Draft
		if len(after.Hotels) != len(before.Hotels) || after.Passengers[0] != before.Passengers[0] {
			t.Fatalf("expected draft unchanged")
		}
	})

	t.Run("snapshots are not aliased", func(t *testing.T) {
		f := newTestForm(&fakeBackend{})
		snap := f.View().Draft
		if err := f.UpdateField(0, HotelEdit{Field: model.HotelName, Value: "Hilton"}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if snap.Hotels[0].Name != "" {
			t.Fatalf("snapshot observed later edit: %+v", snap.Hotels[0])
		}
		if got := f.View().Draft.Hotels[0].Name; got != "Hilton" {
			t.Fatalf("expected Hilton, got %q", got)
		}
	})
}

func TestNewRowEdit(t *testing.T) {
	t.Parallel()

	e, err := NewRowEdit(model.RowTransport, "vehicle", "GMC")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if e.Kind() != model.RowTransport {
		t.Fatalf("expected transport edit, got %s", e.Kind())
	}
	if _, err := NewRowEdit("boats", "x", "y"); !errors.Is(err, ErrUnknownRowKind) {
		t.Fatalf("expected ErrUnknownRowKind, got %v", err)
	}
}
