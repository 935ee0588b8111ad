package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var inr = accounting.Accounting{Symbol: "₹", Precision: 0, Thousand: ","}

// FormatPrice renders a decimal amount as a display price in the
// storefront's currency.
func FormatPrice(amount decimal.Decimal) string {
	return inr.FormatMoneyDecimal(amount)
}
