package booking

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplextsd/grow-aura-engage/internal/backend"
	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

// itemsBundle is serialized into the items_json field of a booking.
type itemsBundle struct {
	Passengers       []model.PassengerRow `json:"passengers"`
	Flights          []model.FlightRow    `json:"flights"`
	Hotels           []model.HotelRow     `json:"hotels"`
	Transport        []model.TransportRow `json:"transport"`
	FlightBookingRef string               `json:"flight_booking_ref"`
	OtherServices    model.OtherServices  `json:"other_services"`
}

// BuildCreateRequest turns a draft into the backend booking payload.
func BuildCreateRequest(d model.BookingDraft) (backend.CreateBookingRequest, error) {
	items, err := json.Marshal(itemsBundle{
		Passengers:       orEmpty(d.Passengers),
		Flights:          orEmpty(d.Flights),
		Hotels:           orEmpty(d.Hotels),
		Transport:        orEmpty(d.Transport),
		FlightBookingRef: d.FlightBookingRef,
		OtherServices:    d.OtherServices,
	})
	if err != nil {
		return backend.CreateBookingRequest{}, fmt.Errorf("encode items: %w", err)
	}

	var due *string
	if d.DueDate != "" {
		v := d.DueDate
		due = &v
	}

	return backend.CreateBookingRequest{
		CustomerName:       d.CustomerName,
		TotalAmount:        number(d.GrandTotal()),
		Currency:           string(d.Currency),
		ExchangeRate:       number(EffectiveRate(d.ExchangeRate)),
		TotalSellingUSD:    number(d.SellingPriceUSD),
		TotalSellingCAD:    number(d.SellingPriceCAD),
		PaidAmount:         number(d.PaymentReceived),
		BalanceAmount:      number(d.BalanceDue()),
		Status:             string(d.Status),
		PaymentMethod:      d.PaymentMethod,
		GenerateStripeLink: d.GenerateStripeLink,
		DueDate:            due,
		Notes:              d.Notes,
		ItemsJSON:          string(items),
	}, nil
}

func number(v decimal.Decimal) json.Number { return json.Number(v.String()) }

func orEmpty[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
