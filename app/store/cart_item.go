package store

import (
	"github.com/shopspring/decimal"
)

// CartItem is one line item in a cart. Title, Price and Image are
// denormalized copies taken from the catalog at add time and are not
// re-synced if the catalog changes afterwards.
type CartItem struct {
	ProductID string          `json:"id"`
	VariantID string          `json:"variantId,omitempty"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Quantity  int             `json:"quantity"`
	Color     string          `json:"color,omitempty"`
	Size      string          `json:"size,omitempty"`
}

// sameIdentity reports whether two line items are the same for merge
// purposes. Identity is (ProductID, VariantID); color and size are
// display attributes and deliberately not part of the key.
func (ci CartItem) sameIdentity(productID, variantID string) bool {
	return ci.ProductID == productID && ci.VariantID == variantID
}

// Subtotal is price × quantity for this line.
func (ci CartItem) Subtotal() decimal.Decimal {
	return ci.Price.Mul(decimal.NewFromInt(int64(ci.Quantity)))
}
