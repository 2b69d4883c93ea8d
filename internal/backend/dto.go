package backend

import (
    "encoding/json"
    "fmt"
)

// ID is an identifier assigned by the backend.  The backend emits it either
// as a JSON number or as a string; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(b []byte) error {
    if string(b) == "null" {
        *id = ""
        return nil
    }
    var s string
    if err := json.Unmarshal(b, &s); err == nil {
        *id = ID(s)
        return nil
    }
    var n json.Number
    if err := json.Unmarshal(b, &n); err != nil {
        return fmt.Errorf("backend: decode id %s: %w", b, err)
    }
    *id = ID(n.String())
    return nil
}

// CreateBookingRequest is the body of POST /api/bookings.  Money fields are
// sent as JSON numbers rendered from exact decimals.
type CreateBookingRequest struct {
    CustomerName       string      `json:"customer_name"`
    TotalAmount        json.Number `json:"total_amount"`
    Currency           string      `json:"currency"`
    ExchangeRate       json.Number `json:"exchange_rate"`
    TotalSellingUSD    json.Number `json:"total_selling_usd"`
    TotalSellingCAD    json.Number `json:"total_selling_cad"`
    PaidAmount         json.Number `json:"paid_amount"`
    BalanceAmount      json.Number `json:"balance_amount"`
    Status             string      `json:"status"`
    PaymentMethod      string      `json:"payment_method"`
    GenerateStripeLink bool        `json:"generate_stripe_link"`
    DueDate            *string     `json:"due_date"`
    Notes              string      `json:"notes"`
    ItemsJSON          string      `json:"items_json"`
}

// CreateBookingResult is the success body of POST /api/bookings.
type CreateBookingResult struct {
    ID        ID     `json:"id"`
    StripeURL string `json:"stripe_url"`
}

// PassengerDTO is a passenger as returned by the PNR lookup.
type PassengerDTO struct {
    FirstName string `json:"firstName"`
    LastName  string `json:"lastName"`
    Phone     string `json:"phone"`
    Email     string `json:"email"`
    DOB       string `json:"dob"`
    Gender    string `json:"gender"`
}

// FlightDTO is a flight segment as returned by the PNR lookup.
type FlightDTO struct {
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

// PNRResult is the success body of GET /api/pnr/fetch.
type PNRResult struct {
    PNR        string         `json:"pnr"`
    Passengers []PassengerDTO `json:"passengers"`
    Flights    []FlightDTO    `json:"flights"`
}

// errorBody captures the error message shapes used by the backend.
type errorBody struct {
    Message string `json:"message"`
    Error   string `json:"error"`
}
