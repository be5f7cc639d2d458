package pricing

import (
	"github.com/shopspring/decimal"
)

// VATRate is the fixed VAT rate applied to every document (20%).
var VATRate = decimal.NewFromFloat(0.20)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// NetUnitPrice computes the discounted unit price: listPrice * (1 - discount/100).
// The result is NOT rounded; rounding happens once at the document level.
func NetUnitPrice(listPrice, discountPct decimal.Decimal) decimal.Decimal {
	return listPrice.Mul(one.Sub(discountPct.Div(hundred)))
}

// LineTotal computes quantity * net unit price for a detailed-mode line.
func LineTotal(quantity int, listPrice, discountPct decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(NetUnitPrice(listPrice, discountPct))
}

// OverridePayable computes the payable amount in grand-total-override mode:
// a single pre-agreed total reduced by an optional flat discount percent.
func OverridePayable(total, discountPct decimal.Decimal) decimal.Decimal {
	return total.Mul(one.Sub(discountPct.Div(hundred)))
}

// Totals holds the document-level amounts after the VAT step.
type Totals struct {
	Subtotal   decimal.Decimal
	VAT        decimal.Decimal
	GrandTotal decimal.Decimal
}

// ComputeTotals applies the VAT step shared by both pricing modes.
// VAT and the grand total are rounded half-away-from-zero at 2 decimals;
// per-line amounts are never rounded individually.
func ComputeTotals(subtotal decimal.Decimal) Totals {
	vat := subtotal.Mul(VATRate).Round(2)
	return Totals{
		Subtotal:   subtotal.Round(2),
		VAT:        vat,
		GrandTotal: subtotal.Add(vat).Round(2),
	}
}

// Subtotal sums detailed-mode line totals.
func Subtotal(lineTotals []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range lineTotals {
		sum = sum.Add(t)
	}
	return sum
}

// CurrencySymbol maps a 3-letter currency code to its display symbol.
// Unknown codes fall back to "$".
func CurrencySymbol(code string) string {
	switch code {
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "TRY":
		return "₺"
	default:
		return "$"
	}
}

// FormatCurrency renders an amount as a symbol-prefixed, 2-decimal string.
func FormatCurrency(code string, amount decimal.Decimal) string {
	return CurrencySymbol(code) + amount.StringFixed(2)
}
