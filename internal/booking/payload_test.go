package booking

import (
	"encoding/json"
	"testing"

	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

func TestBuildCreateRequest(t *testing.T) {
	t.Parallel()

	d := model.NewBookingDraft(dec("1.25"))
	d.CustomerName = "Zara"
	d.Currency = model.CurrencyCAD
	d.SellingPriceCAD = dec("250")
	d.PaymentReceived = dec("50")
	d.FlightBookingRef = "PNR9"
	d.OtherServices = model.OtherServices{Description: "umrah visa", VisaRequired: true}
	d.Hotels = nil
	d = Reconcile(d)

	req, err := BuildCreateRequest(d)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.TotalAmount != "250" || req.BalanceAmount != "200" || req.PaidAmount != "50" {
		t.Fatalf("unexpected money fields %+v", req)
	}
	if req.TotalSellingUSD != "200" || req.Currency != "CAD" || req.ExchangeRate != "1.25" {
		t.Fatalf("unexpected currency fields %+v", req)
	}
	if req.DueDate != nil {
		t.Fatalf("expected null due date, got %q", *req.DueDate)
	}
	if req.Status != "sent" || req.PaymentMethod != "Stripe" || !req.GenerateStripeLink {
		t.Fatalf("unexpected defaults %+v", req)
	}

	var items map[string]json.RawMessage
	if err := json.Unmarshal([]byte(req.ItemsJSON), &items); err != nil {
		t.Fatalf("items_json is not JSON: %v", err)
	}
	for _, key := range []string{"passengers", "flights", "hotels", "transport", "flight_booking_ref", "other_services"} {
		if _, ok := items[key]; !ok {
			t.Fatalf("items_json missing %q: %s", key, req.ItemsJSON)
		}
	}
	if string(items["hotels"]) != "[]" {
		t.Fatalf("expected empty hotel list, got %s", items["hotels"])
	}
	var other map[string]any
	_ = json.Unmarshal(items["other_services"], &other)
	if other["visa"] != true || other["description"] != "umrah visa" {
		t.Fatalf("unexpected other services %v", other)
	}

	body, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	var raw map[string]any
	_ = json.Unmarshal(body, &raw)
	if v, ok := raw["total_amount"].(float64); !ok || v != 250 {
		t.Fatalf("expected numeric total_amount, got %v", raw["total_amount"])
	}
	if raw["due_date"] != nil {
		t.Fatalf("expected due_date null, got %v", raw["due_date"])
	}
}
