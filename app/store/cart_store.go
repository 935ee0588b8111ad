package store

import (
	"log"

	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/utils/calc"
	"github.com/shopspring/decimal"
)

// CartStore holds one shopper's in-progress selection: an ordered list
// of line items plus an optional applied promo. Mutations run
// synchronously on the caller's goroutine; every mutation is mirrored
// to the persister, and a persistence failure is logged and otherwise
// ignored because the in-memory state stays authoritative for the
// session.
//
// A store is constructed per cart namespace and is not safe for
// concurrent use.
type CartStore struct {
	items     []CartItem
	discount  *models.PromoCode
	isOpen    bool
	persister Persister
}

// New builds an empty store, or rehydrates one from the persister's
// snapshot when it has one. A corrupt or unreadable snapshot falls
// back to an empty cart rather than failing.
func New(p Persister) *CartStore {
	if p == nil {
		p = NopPersister{}
	}
	s := &CartStore{persister: p}

	snap, ok, err := p.Load()
	if err != nil {
		log.Printf("cart store: failed to load snapshot, starting empty: %v", err)
		return s
	}
	if ok {
		s.items = snap.Items
		s.discount = snap.Discount
	}
	return s
}

// AddItem adds a line item and opens the cart. When an item with the
// same (product, variant) identity already exists, its quantity is
// incremented by exactly one unit, whatever quantity the incoming item
// carries. Fields are taken as given; validation happens upstream.
func (s *CartStore) AddItem(item CartItem) {
	if idx := s.indexOf(item.ProductID, item.VariantID); idx >= 0 {
		s.items[idx].Quantity++
	} else {
		s.items = append(s.items, item)
	}
	s.isOpen = true
	s.persist()
}

// AddItems is the batch form of AddItem, used by bulk flows such as
// moving a wishlist into the cart. On merge the existing quantity is
// incremented by the incoming item's quantity, because batch items
// arrive with explicit counts.
func (s *CartStore) AddItems(items []CartItem) {
	for _, item := range items {
		if idx := s.indexOf(item.ProductID, item.VariantID); idx >= 0 {
			s.items[idx].Quantity += item.Quantity
		} else {
			s.items = append(s.items, item)
		}
	}
	s.isOpen = true
	s.persist()
}

// RemoveItem deletes every line matching the identity key. Removing an
// absent item is a no-op.
func (s *CartStore) RemoveItem(productID, variantID string) {
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.sameIdentity(productID, variantID) {
			kept = append(kept, it)
		}
	}
	s.items = kept
	s.persist()
}

// UpdateQuantity sets the matching line's quantity to exactly qty. A
// non-positive qty removes the line; the store never holds an item
// with quantity below one.
func (s *CartStore) UpdateQuantity(productID, variantID string, qty int) {
	if qty <= 0 {
		s.RemoveItem(productID, variantID)
		return
	}
	if idx := s.indexOf(productID, variantID); idx >= 0 {
		s.items[idx].Quantity = qty
	}
	s.persist()
}

// ClearCart empties the items and drops any applied discount.
func (s *CartStore) ClearCart() {
	s.items = nil
	s.discount = nil
	s.persist()
}

// ApplyDiscount stores the promo for total calculations. Eligibility
// is not re-checked here; checkout revalidates before payment.
func (s *CartStore) ApplyDiscount(promo *models.PromoCode) {
	s.discount = promo
	s.persist()
}

func (s *CartStore) RemoveDiscount() {
	s.discount = nil
	s.persist()
}

func (s *CartStore) Discount() *models.PromoCode {
	return s.discount
}

// ToggleCart and SetCartOpen manage the cart drawer's visibility.
// Presentation state only; never persisted.
func (s *CartStore) ToggleCart() {
	s.isOpen = !s.isOpen
}

func (s *CartStore) SetCartOpen(open bool) {
	s.isOpen = open
}

func (s *CartStore) IsOpen() bool {
	return s.isOpen
}

// Items returns a copy of the line items in insertion order.
func (s *CartStore) Items() []CartItem {
	out := make([]CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// CartTotal is the subtotal: Σ price × quantity. Recomputed on every
// call; the state is small enough that caching would buy nothing.
func (s *CartStore) CartTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range s.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// DiscountAmount is zero without an applied promo, otherwise whatever
// the promo calculator yields for the current subtotal.
func (s *CartStore) DiscountAmount() decimal.Decimal {
	if s.discount == nil {
		return decimal.Zero
	}
	return calc.CalculateDiscount(s.CartTotal(), s.discount)
}

// FinalTotal is the subtotal minus the discount, clamped at zero so a
// discount can never drive the total negative.
func (s *CartStore) FinalTotal() decimal.Decimal {
	final := s.CartTotal().Sub(s.DiscountAmount())
	if final.IsNegative() {
		return decimal.Zero
	}
	return final
}

// ItemCount is the total number of units across all lines.
func (s *CartStore) ItemCount() int {
	count := 0
	for _, it := range s.items {
		count += it.Quantity
	}
	return count
}

func (s *CartStore) indexOf(productID, variantID string) int {
	for i, it := range s.items {
		if it.sameIdentity(productID, variantID) {
			return i
		}
	}
	return -1
}

func (s *CartStore) snapshot() Snapshot {
	items := make([]CartItem, len(s.items))
	copy(items, s.items)
	return Snapshot{Items: items, Discount: s.discount}
}

func (s *CartStore) persist() {
	if err := s.persister.Save(s.snapshot()); err != nil {
		log.Printf("cart store: failed to persist snapshot: %v", err)
	}
}
