package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name          string          `gorm:"size:255;not null"`
	Slug          string          `gorm:"size:255;not null;uniqueIndex"`
	Description   string          `gorm:"type:text"`
	Sku           string          `gorm:"size:100;uniqueIndex"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Stock         int             `gorm:"not null"`
	Featured      bool            `gorm:"default:false"`
	Categories    []Category      `gorm:"many2many:product_categories;"`
	Variants      []ProductVariant
	ProductImages []ProductImage
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// ProductVariant is a purchasable configuration of a product (a
// color+size combination). Price overrides the product price when
// non-zero; stock is tracked per variant.
type ProductVariant struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string          `gorm:"size:36;index;not null"`
	Sku       string          `gorm:"size:100;uniqueIndex"`
	Color     string          `gorm:"size:50"`
	Size      string          `gorm:"size:20"`
	Price     decimal.Decimal `gorm:"type:decimal(16,2)"`
	Stock     int             `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductCategory struct {
	ProductID  string `gorm:"size:36;primaryKey"`
	CategoryID string `gorm:"size:36;primaryKey"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (v *ProductVariant) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}

// UnitPrice is the effective unit price for a variant of this product:
// the variant price when set, the base product price otherwise.
func (p *Product) UnitPrice(variant *ProductVariant) decimal.Decimal {
	if variant != nil && !variant.Price.IsZero() {
		return variant.Price
	}
	return p.Price
}

func (p *Product) FindVariant(variantID string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].ID == variantID {
			return &p.Variants[i]
		}
	}
	return nil
}

func (p *Product) MainImage() string {
	if len(p.ProductImages) == 0 {
		return ""
	}
	return p.ProductImages[0].Path
}
