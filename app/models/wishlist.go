package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WishlistItem is a saved product+variant reference for a user. Unlike
// cart items it carries no denormalized copy; display data is loaded
// from the catalog when listed.
type WishlistItem struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID    string  `gorm:"size:36;index:idx_wishlist_identity,unique;not null" json:"-"`
	ProductID string  `gorm:"size:36;index:idx_wishlist_identity,unique;not null" json:"productId"`
	VariantID string  `gorm:"size:36;index:idx_wishlist_identity,unique" json:"variantId,omitempty"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w *WishlistItem) BeforeCreate(tx *gorm.DB) (err error) {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	return
}
