package model

import "github.com/shopspring/decimal"

// Currency is the selling currency of a booking.  Exactly one of the two
// selling price fields is authoritative at any time, chosen by Currency.
type Currency string

const (
    CurrencyUSD Currency = "USD"
    CurrencyCAD Currency = "CAD"
)

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool { return c == CurrencyUSD || c == CurrencyCAD }

// InvoiceStatus is the payment status sent along with the booking.
type InvoiceStatus string

const (
    StatusSent InvoiceStatus = "sent"
    StatusPaid InvoiceStatus = "paid"
)

// Valid reports whether s is a known status.
func (s InvoiceStatus) Valid() bool { return s == StatusSent || s == StatusPaid }

// DefaultRows is the number of blank rows every collection starts with.
const DefaultRows = 4

// OtherServices holds the free-text visa/ziarat section of the form.
type OtherServices struct {
    Description    string `json:"description"`
    VisaRequired   bool   `json:"visa"`
    ZiaratRequired bool   `json:"ziarat"`
}

// BookingDraft is the composite booking being edited in one entry session.
// It lives only in memory; it is created when the form opens and dropped
// when the form is closed.
//
// Fields:
//  CustomerName       – required before submit.
//  DueDate            – YYYY-MM-DD or empty.
//  Status             – sent | paid.
//  PaymentMethod      – payment channel label, "Stripe" by default.
//  GenerateStripeLink – ask the backend to issue a payment link.
//  Currency           – selects which selling price is authoritative.
//  ExchangeRate       – CAD per USD.
//  SellingPriceUSD    – kept consistent with SellingPriceCAD via ExchangeRate.
//  SellingPriceCAD    – see SellingPriceUSD.
//  PaymentReceived    – amount already paid, in the selected currency.
//  FlightBookingRef   – header booking ref that back-fills empty flight refs.
//  Locked             – set after a successful submit; the draft is read-only.
//  BookingID          – identifier assigned by the backend on submit.
type BookingDraft struct {
    CustomerName       string          `json:"customer_name"`
    DueDate            string          `json:"due_date"`
    Status             InvoiceStatus   `json:"status"`
    PaymentMethod      string          `json:"payment_method"`
    GenerateStripeLink bool            `json:"generate_stripe_link"`
    Currency           Currency        `json:"currency"`
    ExchangeRate       decimal.Decimal `json:"exchange_rate"`
    SellingPriceUSD    decimal.Decimal `json:"total_selling_usd"`
    SellingPriceCAD    decimal.Decimal `json:"total_selling_cad"`
    PaymentReceived    decimal.Decimal `json:"payment_received"`
    Passengers         []PassengerRow  `json:"passengers"`
    Flights            []FlightRow     `json:"flights"`
    Hotels             []HotelRow      `json:"hotels"`
    Transport          []TransportRow  `json:"transport"`
    FlightBookingRef   string          `json:"flight_booking_ref"`
    OtherServices      OtherServices   `json:"other_services"`
    Notes              string          `json:"notes"`
    Locked             bool            `json:"locked"`
    BookingID          string          `json:"booking_id,omitempty"`
}

// NewBookingDraft returns a draft with every collection seeded to
// DefaultRows blank rows and the given exchange rate.
func NewBookingDraft(rate decimal.Decimal) BookingDraft {
    d := BookingDraft{
        Status:             StatusSent,
        PaymentMethod:      "Stripe",
        GenerateStripeLink: true,
        Currency:           CurrencyUSD,
        ExchangeRate:       rate,
        Passengers:         make([]PassengerRow, DefaultRows),
        Flights:            make([]FlightRow, DefaultRows),
        Hotels:             make([]HotelRow, DefaultRows),
        Transport:          make([]TransportRow, DefaultRows),
    }
    for i := range d.Passengers {
        d.Passengers[i] = BlankPassenger()
    }
    return d
}

// Clone returns a copy of d that shares no slice storage with d.
func (d BookingDraft) Clone() BookingDraft {
    d.Passengers = append([]PassengerRow(nil), d.Passengers...)
    d.Flights = append([]FlightRow(nil), d.Flights...)
    d.Hotels = append([]HotelRow(nil), d.Hotels...)
    d.Transport = append([]TransportRow(nil), d.Transport...)
    return d
}

// GrandTotal is the selling price in the selected currency.
func (d BookingDraft) GrandTotal() decimal.Decimal {
    if d.Currency == CurrencyCAD {
        return d.SellingPriceCAD
    }
    return d.SellingPriceUSD
}

// BalanceDue is GrandTotal minus PaymentReceived.  It is negative when the
// customer has overpaid.
func (d BookingDraft) BalanceDue() decimal.Decimal {
    return d.GrandTotal().Sub(d.PaymentReceived)
}
