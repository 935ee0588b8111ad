package repositories

import (
	"context"

	"github.com/riiqx/storefront/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepositoryImpl interface {
	GetByUserID(ctx context.Context, userID string) ([]models.WishlistItem, error)
	Add(ctx context.Context, item *models.WishlistItem) error
	Remove(ctx context.Context, userID, productID, variantID string) error
	Clear(ctx context.Context, userID string) error
}

type wishlistRepository struct {
	db *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) WishlistRepositoryImpl {
	return &wishlistRepository{db}
}

func (r *wishlistRepository) GetByUserID(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.db.WithContext(ctx).
		Preload("Product.ProductImages").
		Preload("Product.Variants").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// Add is idempotent: re-saving the same product+variant for a user is
// swallowed by the unique identity index.
func (r *wishlistRepository) Add(ctx context.Context, item *models.WishlistItem) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(item).Error
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, productID, variantID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND variant_id = ?", userID, productID, variantID).
		Delete(&models.WishlistItem{}).Error
}

func (r *wishlistRepository) Clear(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.WishlistItem{}).Error
}
