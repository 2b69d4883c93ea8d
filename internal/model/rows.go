package model

// RowKind names one of the four row collections held by a draft.  The
// string values double as the path segment used by the HTTP API.
type RowKind string

const (
    RowPassengers RowKind = "passengers"
    RowFlights    RowKind = "flights"
    RowHotels     RowKind = "hotels"
    RowTransport  RowKind = "transport"
)

// Valid reports whether k is one of the known row collections.
func (k RowKind) Valid() bool {
    switch k {
    case RowPassengers, RowFlights, RowHotels, RowTransport:
        return true
    }
    return false
}

// Gender values offered by the passenger grid.
const (
    GenderMale   = "Male"
    GenderFemale = "Female"
    GenderOther  = "Other"
)

// PassengerRow is one line of the passenger grid.  Rows have no identity
// beyond their position in BookingDraft.Passengers.
type PassengerRow struct {
    FirstName string `json:"firstName"`
    LastName  string `json:"lastName"`
    Phone     string `json:"phone"`
    Email     string `json:"email"`
    DOB       string `json:"dob"` // YYYY-MM-DD
    Gender    string `json:"gender"`
}

// PassengerField selects a single PassengerRow field for an edit.
type PassengerField string

const (
    PassengerFirstName PassengerField = "firstName"
    PassengerLastName  PassengerField = "lastName"
    PassengerPhone     PassengerField = "phone"
    PassengerEmail     PassengerField = "email"
    PassengerDOB       PassengerField = "dob"
    PassengerGender    PassengerField = "gender"
)

// BlankPassenger returns the default passenger row.
func BlankPassenger() PassengerRow { return PassengerRow{Gender: GenderMale} }

// With returns a copy of r with field f set to v.  The boolean is false
// when f is not a passenger field, in which case r is returned unchanged.
func (r PassengerRow) With(f PassengerField, v string) (PassengerRow, bool) {
    switch f {
    case PassengerFirstName:
        r.FirstName = v
    case PassengerLastName:
        r.LastName = v
    case PassengerPhone:
        r.Phone = v
    case PassengerEmail:
        r.Email = v
    case PassengerDOB:
        r.DOB = v
    case PassengerGender:
        r.Gender = v
    default:
        return r, false
    }
    return r, true
}

// FlightRow is one flight segment.  Ref is the airline booking reference;
// it is back-filled from the draft's header reference while empty.
type FlightRow struct {
    Date     string `json:"date"`
    Airline  string `json:"airline"`
    Dep      string `json:"dep"`
    Arr      string `json:"arr"`
    DepTime  string `json:"depT"`
    ArrTime  string `json:"arrT"`
    Ref      string `json:"ref"`
    Supplier string `json:"supplier"`
    Baggage  string `json:"baggage"`
}

// FlightField selects a single FlightRow field for an edit.
type FlightField string

const (
    FlightDate     FlightField = "date"
    FlightAirline  FlightField = "airline"
    FlightDep      FlightField = "dep"
    FlightArr      FlightField = "arr"
    FlightDepTime  FlightField = "depT"
    FlightArrTime  FlightField = "arrT"
    FlightRef      FlightField = "ref"
    FlightSupplier FlightField = "supplier"
    FlightBaggage  FlightField = "baggage"
)

// BlankFlight returns an empty flight row carrying the given booking ref.
func BlankFlight(ref string) FlightRow { return FlightRow{Ref: ref} }

// With returns a copy of r with field f set to v.
func (r FlightRow) With(f FlightField, v string) (FlightRow, bool) {
    switch f {
    case FlightDate:
        r.Date = v
    case FlightAirline:
        r.Airline = v
    case FlightDep:
        r.Dep = v
    case FlightArr:
        r.Arr = v
    case FlightDepTime:
        r.DepTime = v
    case FlightArrTime:
        r.ArrTime = v
    case FlightRef:
        r.Ref = v
    case FlightSupplier:
        r.Supplier = v
    case FlightBaggage:
        r.Baggage = v
    default:
        return r, false
    }
    return r, true
}

// HotelRow is one accommodation line.
type HotelRow struct {
    Name     string `json:"name"`
    Meal     string `json:"meal"`
    Room     string `json:"room"`
    CheckIn  string `json:"in"`
    CheckOut string `json:"out"`
    Ref      string `json:"ref"`
    Supplier string `json:"supplier"`
    Price    string `json:"price"`
    Guests   string `json:"guests"`
}

// HotelField selects a single HotelRow field for an edit.
type HotelField string

const (
    HotelName     HotelField = "name"
    HotelMeal     HotelField = "meal"
    HotelRoom     HotelField = "room"
    HotelCheckIn  HotelField = "in"
    HotelCheckOut HotelField = "out"
    HotelRef      HotelField = "ref"
    HotelSupplier HotelField = "supplier"
    HotelPrice    HotelField = "price"
    HotelGuests   HotelField = "guests"
)

// With returns a copy of r with field f set to v.
func (r HotelRow) With(f HotelField, v string) (HotelRow, bool) {
    switch f {
    case HotelName:
        r.Name = v
    case HotelMeal:
        r.Meal = v
    case HotelRoom:
        r.Room = v
    case HotelCheckIn:
        r.CheckIn = v
    case HotelCheckOut:
        r.CheckOut = v
    case HotelRef:
        r.Ref = v
    case HotelSupplier:
        r.Supplier = v
    case HotelPrice:
        r.Price = v
    case HotelGuests:
        r.Guests = v
    default:
        return r, false
    }
    return r, true
}

// TransportRow is one ground transfer.
type TransportRow struct {
    Date     string `json:"date"`
    Vehicle  string `json:"vehicle"`
    Pickup   string `json:"pickup"`
    Dropoff  string `json:"dropoff"`
    Contact  string `json:"contact"`
    Supplier string `json:"supplier"`
    Pax      string `json:"pax"`
    Cost     string `json:"cost"`
}

// TransportField selects a single TransportRow field for an edit.
type TransportField string

const (
    TransportDate     TransportField = "date"
    TransportVehicle  TransportField = "vehicle"
    TransportPickup   TransportField = "pickup"
    TransportDropoff  TransportField = "dropoff"
    TransportContact  TransportField = "contact"
    TransportSupplier TransportField = "supplier"
    TransportPax      TransportField = "pax"
    TransportCost     TransportField = "cost"
)

// With returns a copy of r with field f set to v.
func (r TransportRow) With(f TransportField, v string) (TransportRow, bool) {
    switch f {
    case TransportDate:
        r.Date = v
    case TransportVehicle:
        r.Vehicle = v
    case TransportPickup:
        r.Pickup = v
    case TransportDropoff:
        r.Dropoff = v
    case TransportContact:
        r.Contact = v
    case TransportSupplier:
        r.Supplier = v
    case TransportPax:
        r.Pax = v
    case TransportCost:
        r.Cost = v
    default:
        return r, false
    }
    return r, true
}
