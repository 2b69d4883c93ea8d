package booking

import (
	"github.com/shopspring/decimal"

	"github.com/Simplextsd/grow-aura-engage/internal/model"
)

// reconcileEpsilon is the smallest change worth writing back to the
// derived selling price.
var reconcileEpsilon = decimal.New(1, -4)

// EffectiveRate returns rate, or 1 when rate is not positive.
func EffectiveRate(rate decimal.Decimal) decimal.Decimal {
	if !rate.IsPositive() {
		return decimal.NewFromInt(1)
	}
	return rate
}

// Reconcile recomputes the selling price of the currency that is not
// selected from the one that is.  It is called once after every edit and
// never touches the selected currency's price.
func Reconcile(d model.BookingDraft) model.BookingDraft {
	rate := EffectiveRate(d.ExchangeRate)
	if d.Currency == model.CurrencyCAD {
		usd := d.SellingPriceCAD.Div(rate)
		if usd.Sub(d.SellingPriceUSD).Abs().GreaterThanOrEqual(reconcileEpsilon) {
			d.SellingPriceUSD = usd
		}
		return d
	}
	cad := d.SellingPriceUSD.Mul(rate)
	if cad.Sub(d.SellingPriceCAD).Abs().GreaterThanOrEqual(reconcileEpsilon) {
		d.SellingPriceCAD = cad
	}
	return d
}
