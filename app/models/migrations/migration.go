package migrations

import (
	"github.com/riiqx/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Category{},
		&models.PromoCode{},
		&models.Order{},
		&models.OrderItem{},
		&models.WishlistItem{},
		&models.ReferralClaim{},
		&models.CartSnapshotRecord{},
	)
}
