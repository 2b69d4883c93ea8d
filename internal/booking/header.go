package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

// HeaderPatch carries the non-row fields of a draft.  Nil fields are left
// alone.  A patch is validated as a whole and applied all at once.
type HeaderPatch struct {
	CustomerName       *string
	DueDate            *string
	Status             *model.InvoiceStatus
	PaymentMethod      *string
	GenerateStripeLink *bool
	Currency           *model.Currency
	ExchangeRate       *decimal.Decimal
	SellingPriceUSD    *decimal.Decimal
	SellingPriceCAD    *decimal.Decimal
	SellingPrice       *decimal.Decimal // goes to the currency selected after this patch
	PaymentReceived    *decimal.Decimal
	OtherServices      *model.OtherServices
	Notes              *string
}

func (p HeaderPatch) apply(d *model.BookingDraft) error {
	if p.DueDate != nil && *p.DueDate != "" {
		if _, err := time.Parse("2006-01-02", *p.DueDate); err != nil {
			return &ValidationError{Field: "due_date", Message: "due date must be YYYY-MM-DD"}
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return &ValidationError{Field: "status", Message: "status must be sent or paid"}
	}
	if p.Currency != nil && !p.Currency.Valid() {
		return &ValidationError{Field: "currency", Message: "currency must be USD or CAD"}
	}
	for field, v := range map[string]*decimal.Decimal{
		"total_selling_usd": p.SellingPriceUSD,
		"total_selling_cad": p.SellingPriceCAD,
		"payment_received":  p.PaymentReceived,
		"selling_price":     p.SellingPrice,
	} {
		if v != nil && v.IsNegative() {
			return &ValidationError{Field: field, Message: field + " must not be negative"}
		}
	}

	if p.CustomerName != nil {
		d.CustomerName = *p.CustomerName
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.PaymentMethod != nil {
		d.PaymentMethod = *p.PaymentMethod
	}
	if p.GenerateStripeLink != nil {
		d.GenerateStripeLink = *p.GenerateStripeLink
	}
	if p.Currency != nil {
		d.Currency = *p.Currency
	}
	if p.ExchangeRate != nil {
		d.ExchangeRate = EffectiveRate(*p.ExchangeRate)
	}
	if p.SellingPriceUSD != nil {
		d.SellingPriceUSD = *p.SellingPriceUSD
	}
	if p.SellingPriceCAD != nil {
		d.SellingPriceCAD = *p.SellingPriceCAD
	}
	if p.SellingPrice != nil {
		if d.Currency == model.CurrencyCAD {
			d.SellingPriceCAD = *p.SellingPrice
		} else {
			d.SellingPriceUSD = *p.SellingPrice
		}
	}
	if p.PaymentReceived != nil {
		d.PaymentReceived = *p.PaymentReceived
	}
	if p.OtherServices != nil {
		d.OtherServices = *p.OtherServices
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	return nil
}
