package fakers

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/riiqx/storefront/app/models"
	"github.com/shopspring/decimal"
)

var colors = []string{"Obsidian", "Bone", "Crimson", "Ash", "Olive"}
var sizes = []string{"S", "M", "L", "XL"}

func ProductFaker(category *models.Category) *models.Product {
	name := fmt.Sprintf("%s %s", faker.Word(), faker.Word())

	productID := uuid.New().String()
	slugText := slug.Make(name + "-" + uuid.NewString()[:6])

	numImages := rand.Intn(3) + 1
	productImages := make([]models.ProductImage, numImages)
	for i := 0; i < numImages; i++ {
		img := fmt.Sprintf("/images/products/%s.jpg", uuid.NewString()[:8])
		productImages[i] = models.ProductImage{
			ID:         uuid.New().String(),
			ProductID:  productID,
			Path:       img,
			ExtraLarge: img,
			Large:      img,
			Medium:     img,
			Small:      img,
			CreatedAt:  time.Now(),
			UpdatedAt:  time.Now(),
		}
	}

	basePrice := decimal.NewFromInt(int64(999 + rand.Intn(4000)))

	numVariants := rand.Intn(4) + 1
	variants := make([]models.ProductVariant, numVariants)
	for i := 0; i < numVariants; i++ {
		color := colors[rand.Intn(len(colors))]
		size := sizes[rand.Intn(len(sizes))]
		variants[i] = models.ProductVariant{
			ID:        uuid.New().String(),
			ProductID: productID,
			Sku:       slug.Make(fmt.Sprintf("%s-%s-%s-%d", name, color, size, i)),
			Color:     color,
			Size:      size,
			Stock:     rand.Intn(50) + 1,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}

	product := &models.Product{
		ID:            productID,
		Sku:           slug.Make(name),
		Name:          name,
		Slug:          slugText,
		Description:   faker.Paragraph(),
		Price:         basePrice,
		Stock:         rand.Intn(100) + 10,
		Featured:      rand.Intn(4) == 0,
		Variants:      variants,
		ProductImages: productImages,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if category != nil {
		product.Categories = []models.Category{*category}
	}

	return product
}

func CategoryFaker(name string) *models.Category {
	return &models.Category{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      slug.Make(name),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

func PromoFaker(code, kind string, value, minSubtotal int64) *models.PromoCode {
	return &models.PromoCode{
		ID:          uuid.New().String(),
		Code:        code,
		Kind:        kind,
		Value:       decimal.NewFromInt(value),
		MinSubtotal: decimal.NewFromInt(minSubtotal),
		Description: faker.Sentence(),
		Active:      true,
	}
}
