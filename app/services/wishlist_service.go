package services

import (
	"context"
	"fmt"
	"log"

	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/repositories"
	"github.com/riiqx/storefront/app/store"
)

type WishlistService struct {
	wishlistRepo repositories.WishlistRepositoryImpl
	cartSvc      *CartService
}

func NewWishlistService(wishlistRepo repositories.WishlistRepositoryImpl, cartSvc *CartService) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		cartSvc:      cartSvc,
	}
}

func (s *WishlistService) List(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	items, err := s.wishlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}
	return items, nil
}

func (s *WishlistService) Add(ctx context.Context, userID, productID, variantID string) error {
	item := &models.WishlistItem{
		UserID:    userID,
		ProductID: productID,
		VariantID: variantID,
	}
	if err := s.wishlistRepo.Add(ctx, item); err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

func (s *WishlistService) Remove(ctx context.Context, userID, productID, variantID string) error {
	if err := s.wishlistRepo.Remove(ctx, userID, productID, variantID); err != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return nil
}

// MoveToCart bulk-adds every wishlist entry into the cart (one unit
// each, merged with the batch arithmetic) and then empties the
// wishlist. Entries whose product vanished from the catalog are
// skipped.
func (s *WishlistService) MoveToCart(ctx context.Context, userID, namespace string) (*store.CartStore, error) {
	entries, err := s.wishlistRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	items := make([]store.CartItem, 0, len(entries))
	for _, entry := range entries {
		item, err := s.cartSvc.BuildItem(ctx, entry.ProductID, entry.VariantID, 1)
		if err != nil {
			log.Printf("MoveToCart: skipping wishlist entry %s: %v", entry.ID, err)
			continue
		}
		items = append(items, item)
	}

	cart := s.cartSvc.AddProducts(ctx, namespace, items)

	if err := s.wishlistRepo.Clear(ctx, userID); err != nil {
		log.Printf("MoveToCart: failed to clear wishlist for user %s: %v", userID, err)
	}
	return cart, nil
}
