package seeders

import (
	"log"

	"github.com/riiqx/storefront/app/db/fakers"
	"github.com/riiqx/storefront/app/models"
	"gorm.io/gorm"
)

func DBSeed(db *gorm.DB) error {
	categoryNames := []string{"Hoodies", "Tees", "Outerwear", "Accessories"}

	for _, name := range categoryNames {
		category := fakers.CategoryFaker(name)
		if err := db.FirstOrCreate(category, models.Category{Name: name}).Error; err != nil {
			return err
		}

		for i := 0; i < 6; i++ {
			product := fakers.ProductFaker(category)
			if err := db.Create(product).Error; err != nil {
				return err
			}
		}
		log.Printf("Seeded category %s", name)
	}

	promos := []*models.PromoCode{
		fakers.PromoFaker("DROP10", models.PromoKindPercentage, 10, 0),
		fakers.PromoFaker("RIIQX500", models.PromoKindFixed, 500, 2500),
	}
	for _, promo := range promos {
		if err := db.FirstOrCreate(promo, models.PromoCode{Code: promo.Code}).Error; err != nil {
			return err
		}
	}

	return nil
}
