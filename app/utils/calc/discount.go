package calc

import (
	"github.com/riiqx/storefront/app/models"
	"github.com/shopspring/decimal"
)

// CalculateDiscount maps (subtotal, promo) to a discount amount. It is
// pure: same inputs, same output, inputs untouched. The result is
// never negative and never exceeds the subtotal.
//
// A nil promo, an unknown kind, or a subtotal below the promo's
// minimum-spend threshold all yield zero.
func CalculateDiscount(subtotal decimal.Decimal, promo *models.PromoCode) decimal.Decimal {
	if promo == nil {
		return decimal.Zero
	}
	if subtotal.IsNegative() || subtotal.IsZero() {
		return decimal.Zero
	}
	if promo.MinSubtotal.IsPositive() && subtotal.LessThan(promo.MinSubtotal) {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch promo.Kind {
	case models.PromoKindPercentage:
		amount = subtotal.Mul(promo.Value).Div(decimal.NewFromInt(100))
	case models.PromoKindFixed:
		amount = promo.Value
	default:
		return decimal.Zero
	}

	if amount.IsNegative() {
		return decimal.Zero
	}
	if amount.GreaterThan(subtotal) {
		return subtotal
	}
	return amount
}

// CalculateFinalTotal is subtotal minus discount, clamped at zero.
func CalculateFinalTotal(subtotal, discountAmount decimal.Decimal) decimal.Decimal {
	final := subtotal.Sub(discountAmount)
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}
