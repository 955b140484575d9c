// Package money centralizes order amount arithmetic. All amounts are
// decimals rounded to two places; the service fee is a fixed 10% of the
// order subtotal.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Precision is the number of fractional digits kept on every stored amount.
const Precision = 2

// ServiceFeeRate is the fixed surcharge applied to the cart subtotal at checkout.
var ServiceFeeRate = decimal.NewFromFloat(0.10)

var printer = message.NewPrinter(language.English)

// LineSubtotal returns unit price multiplied by quantity.
func LineSubtotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity))).Round(Precision)
}

// ServiceFee returns the rounded 10% fee for a subtotal.
func ServiceFee(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Mul(ServiceFeeRate).Round(Precision)
}

// Total returns subtotal plus its service fee.
func Total(subtotal, fee decimal.Decimal) decimal.Decimal {
	return subtotal.Add(fee).Round(Precision)
}

// Format renders an amount for display, e.g. "₱1,250.00".
func Format(amount decimal.Decimal) string {
	f, _ := amount.Round(Precision).Float64()
	return printer.Sprintf("₱%v",
		number.Decimal(f, number.MinFractionDigits(Precision), number.MaxFractionDigits(Precision)))
}
