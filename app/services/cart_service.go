package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/riiqx/storefront/app/store"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrVariantNotFound = errors.New("product variant not found")
	ErrPromoNotFound   = errors.New("promo code not found")
	ErrPromoNotUsable  = errors.New("promo code is not usable")
)

// CartService binds session cart namespaces to cart stores and
// resolves catalog products into the denormalized line items the store
// holds. Each request loads the namespace's store fresh from its
// snapshot; the store itself mirrors every mutation back.
type CartService struct {
	snapshotDB  store.SnapshotDB
	productRepo repositories.ProductRepositoryImpl
	promoRepo   repositories.PromoRepositoryImpl
}

func NewCartService(
	snapshotDB store.SnapshotDB,
	productRepo repositories.ProductRepositoryImpl,
	promoRepo repositories.PromoRepositoryImpl,
) *CartService {
	return &CartService{
		snapshotDB:  snapshotDB,
		productRepo: productRepo,
		promoRepo:   promoRepo,
	}
}

// LoadStore rehydrates the namespace's cart from its snapshot, or
// starts an empty one.
func (s *CartService) LoadStore(namespace string) *store.CartStore {
	return store.New(store.NewDBPersister(s.snapshotDB, namespace))
}

// BuildItem turns a catalog product (and optional variant) into a cart
// line item, copying title, price and image at add time. The copy is
// never re-synced with the catalog afterwards.
func (s *CartService) BuildItem(ctx context.Context, productID, variantID string, qty int) (store.CartItem, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return store.CartItem{}, ErrProductNotFound
		}
		return store.CartItem{}, fmt.Errorf("failed to load product %s: %w", productID, err)
	}

	var variant *models.ProductVariant
	if variantID != "" {
		variant = product.FindVariant(variantID)
		if variant == nil {
			return store.CartItem{}, ErrVariantNotFound
		}
	}

	item := store.CartItem{
		ProductID: product.ID,
		VariantID: variantID,
		Title:     product.Name,
		Price:     product.UnitPrice(variant),
		Image:     product.MainImage(),
		Quantity:  qty,
	}
	if variant != nil {
		item.Color = variant.Color
		item.Size = variant.Size
	}
	return item, nil
}

// AddProduct resolves the product and adds it to the namespace's cart.
// Merging follows the store's single-unit rule: an already present
// line gains exactly one unit.
func (s *CartService) AddProduct(ctx context.Context, namespace, productID, variantID string, qty int) (*store.CartStore, error) {
	item, err := s.BuildItem(ctx, productID, variantID, qty)
	if err != nil {
		return nil, err
	}

	cart := s.LoadStore(namespace)
	cart.AddItem(item)
	return cart, nil
}

// AddProducts is the bulk entry point (wishlist moves, re-orders).
// Each incoming line keeps its explicit quantity on merge.
func (s *CartService) AddProducts(ctx context.Context, namespace string, items []store.CartItem) *store.CartStore {
	cart := s.LoadStore(namespace)
	cart.AddItems(items)
	return cart
}

func (s *CartService) UpdateQuantity(namespace, productID, variantID string, qty int) *store.CartStore {
	cart := s.LoadStore(namespace)
	cart.UpdateQuantity(productID, variantID, qty)
	return cart
}

func (s *CartService) RemoveItem(namespace, productID, variantID string) *store.CartStore {
	cart := s.LoadStore(namespace)
	cart.RemoveItem(productID, variantID)
	return cart
}

func (s *CartService) ClearCart(namespace string) *store.CartStore {
	cart := s.LoadStore(namespace)
	cart.ClearCart()
	return cart
}

// ApplyPromo attaches a live promo code to the cart. Only existence
// and the active window are checked here; spend thresholds are left to
// the calculator and final eligibility to checkout.
func (s *CartService) ApplyPromo(ctx context.Context, namespace, code string) (*store.CartStore, error) {
	promo, err := s.promoRepo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to look up promo code: %w", err)
	}
	if !promo.Usable(time.Now()) {
		return nil, ErrPromoNotUsable
	}

	cart := s.LoadStore(namespace)
	cart.ApplyDiscount(promo)
	return cart, nil
}

func (s *CartService) RemovePromo(namespace string) *store.CartStore {
	cart := s.LoadStore(namespace)
	cart.RemoveDiscount()
	return cart
}
