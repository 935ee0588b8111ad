package store_test

import (
	"errors"
	"testing"

	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPersister records snapshots in memory and can be told to fail.
type memPersister struct {
	snap     *store.Snapshot
	saves    int
	failSave bool
}

func (m *memPersister) Save(snap store.Snapshot) error {
	m.saves++
	if m.failSave {
		return errors.New("storage unavailable")
	}
	m.snap = &snap
	return nil
}

func (m *memPersister) Load() (store.Snapshot, bool, error) {
	if m.snap == nil {
		return store.Snapshot{}, false, nil
	}
	return *m.snap, true, nil
}

func item(productID, variantID string, price float64, qty int) store.CartItem {
	return store.CartItem{
		ProductID: productID,
		VariantID: variantID,
		Title:     "Test Product",
		Price:     decimal.NewFromFloat(price),
		Image:     "/images/test.jpg",
		Quantity:  qty,
	}
}

func TestAddItemMergesByIdentity(t *testing.T) {
	cart := store.New(nil)

	for i := 0; i < 3; i++ {
		cart.AddItem(item("p1", "v1", 10, 1))
	}

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestAddItemMergeAlwaysAddsOneUnit(t *testing.T) {
	cart := store.New(nil)

	cart.AddItem(item("p1", "v1", 10, 1))
	// A merge ignores the incoming quantity and adds a single unit.
	cart.AddItem(item("p1", "v1", 10, 5))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestAddItemKeepsDistinctVariantsSeparate(t *testing.T) {
	cart := store.New(nil)

	cart.AddItem(item("p1", "v1", 10, 1))
	cart.AddItem(item("p1", "v2", 10, 1))

	assert.Len(t, cart.Items(), 2)
}

func TestAddItemOpensCart(t *testing.T) {
	cart := store.New(nil)
	require.False(t, cart.IsOpen())

	cart.AddItem(item("p1", "", 10, 1))
	assert.True(t, cart.IsOpen())
}

func TestAddItemsMergesIncomingQuantity(t *testing.T) {
	cart := store.New(nil)
	cart.AddItem(item("p1", "v1", 10, 1))

	cart.AddItems([]store.CartItem{
		item("p1", "v1", 10, 4),
		item("p2", "", 5, 2),
	})

	items := cart.Items()
	require.Len(t, items, 2)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, 2, items[1].Quantity)
	assert.True(t, cart.IsOpen())
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	cart := store.New(nil)
	cart.AddItem(item("p1", "v1", 10, 1))

	cart.RemoveItem("p2", "v9")
	assert.Len(t, cart.Items(), 1)

	cart.RemoveItem("p1", "v1")
	assert.Empty(t, cart.Items())

	cart.RemoveItem("p1", "v1")
	assert.Empty(t, cart.Items())
}

func TestUpdateQuantitySetsAbsoluteValue(t *testing.T) {
	cart := store.New(nil)
	cart.AddItem(item("p1", "v1", 10, 1))

	cart.UpdateQuantity("p1", "v1", 7)

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestUpdateQuantityFloorRemovesItem(t *testing.T) {
	for _, qty := range []int{0, -5} {
		cart := store.New(nil)
		cart.AddItem(item("p1", "v1", 10, 1))

		cart.UpdateQuantity("p1", "v1", qty)
		assert.Empty(t, cart.Items(), "qty %d should remove the item", qty)
	}
}

func TestCartTotal(t *testing.T) {
	cart := store.New(nil)
	cart.AddItems([]store.CartItem{
		item("p1", "", 10, 2),
		item("p2", "", 5, 3),
	})

	assert.True(t, cart.CartTotal().Equal(decimal.NewFromInt(35)),
		"expected 35, got %s", cart.CartTotal())
	assert.Equal(t, 5, cart.ItemCount())
}

func TestFinalTotalNeverNegative(t *testing.T) {
	cart := store.New(nil)
	cart.AddItem(item("p1", "", 20, 1))

	cart.ApplyDiscount(&models.PromoCode{
		Code:  "BIG",
		Kind:  models.PromoKindFixed,
		Value: decimal.NewFromInt(30),
	})

	assert.True(t, cart.FinalTotal().Equal(decimal.Zero),
		"expected 0, got %s", cart.FinalTotal())
}

func TestDiscountAmountZeroWithoutPromo(t *testing.T) {
	cart := store.New(nil)
	cart.AddItem(item("p1", "", 20, 1))

	assert.True(t, cart.DiscountAmount().Equal(decimal.Zero))
	assert.True(t, cart.FinalTotal().Equal(decimal.NewFromInt(20)))
}

func TestPercentageDiscountOnSubtotal(t *testing.T) {
	cart := store.New(nil)
	cart.AddItems([]store.CartItem{
		item("p1", "", 100, 2),
	})
	cart.ApplyDiscount(&models.PromoCode{
		Code:  "DROP10",
		Kind:  models.PromoKindPercentage,
		Value: decimal.NewFromInt(10),
	})

	assert.True(t, cart.DiscountAmount().Equal(decimal.NewFromInt(20)))
	assert.True(t, cart.FinalTotal().Equal(decimal.NewFromInt(180)))
}

func TestClearCartResetsItemsAndDiscount(t *testing.T) {
	cart := store.New(nil)
	cart.AddItem(item("p1", "v1", 10, 1))
	cart.ApplyDiscount(&models.PromoCode{Code: "X", Kind: models.PromoKindFixed, Value: decimal.NewFromInt(5)})

	cart.ClearCart()

	assert.Empty(t, cart.Items())
	assert.Nil(t, cart.Discount())
	assert.True(t, cart.FinalTotal().Equal(decimal.Zero))
}

func TestToggleAndSetOpen(t *testing.T) {
	cart := store.New(nil)

	cart.ToggleCart()
	assert.True(t, cart.IsOpen())
	cart.ToggleCart()
	assert.False(t, cart.IsOpen())
	cart.SetCartOpen(true)
	assert.True(t, cart.IsOpen())
}

func TestMutationsWriteThroughToPersister(t *testing.T) {
	p := &memPersister{}
	cart := store.New(p)

	cart.AddItem(item("p1", "v1", 10, 1))
	cart.UpdateQuantity("p1", "v1", 3)
	cart.RemoveItem("p1", "v1")

	assert.Equal(t, 3, p.saves)
}

func TestToggleDoesNotPersist(t *testing.T) {
	p := &memPersister{}
	cart := store.New(p)

	cart.ToggleCart()
	cart.SetCartOpen(false)

	assert.Zero(t, p.saves)
}

func TestRehydratesFromSnapshot(t *testing.T) {
	p := &memPersister{}

	first := store.New(p)
	first.AddItem(item("p1", "v1", 10, 2))
	first.ApplyDiscount(&models.PromoCode{Code: "DROP10", Kind: models.PromoKindPercentage, Value: decimal.NewFromInt(10)})
	first.SetCartOpen(true)

	second := store.New(p)
	items := second.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	require.NotNil(t, second.Discount())
	assert.Equal(t, "DROP10", second.Discount().Code)

	// The open flag is transient and never part of the snapshot.
	assert.False(t, second.IsOpen())
}

func TestPersistFailureDoesNotAffectState(t *testing.T) {
	p := &memPersister{failSave: true}
	cart := store.New(p)

	cart.AddItem(item("p1", "v1", 10, 1))

	items := cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestItemsReturnsCopy(t *testing.T) {
	cart := store.New(nil)
	cart.AddItem(item("p1", "v1", 10, 1))

	items := cart.Items()
	items[0].Quantity = 99

	assert.Equal(t, 1, cart.Items()[0].Quantity)
}
