package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riiqx/storefront/app/models"
	"gorm.io/gorm"
)

// ErrInsufficientStock is returned by DecrementStock when the guarded
// update matches no row, meaning the remaining stock cannot cover the
// requested quantity.
var ErrInsufficientStock = errors.New("insufficient product stock")

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error)
	GetByCategorySlugPaginated(ctx context.Context, slug string, limit, offset int) ([]models.Product, int64, error)
	GetBySlug(ctx context.Context, slug string) (*models.Product, error)
	GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error)
	SearchProductsPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	DecrementStock(ctx context.Context, tx *gorm.DB, productID, variantID string, qty int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.db.WithContext(ctx).Model(&models.Product{}).Preload("ProductImages").Limit(20).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Categories").
		Preload("Variants").
		Preload("ProductImages").
		Where("id = ?", id).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	var product models.Product
	if err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("Categories").
		Preload("Variants").
		Preload("ProductImages").
		Where("slug = ?", slug).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (p *productRepository) GetPaginated(ctx context.Context, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	if err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("ProductImages").
		Preload("Variants").
		Limit(limit).
		Offset(offset).
		Order("created_at DESC").
		Find(&products).Error
	return products, total, err
}

func (p *productRepository) GetByCategorySlugPaginated(ctx context.Context, slug string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	base := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Joins("JOIN product_categories pc ON pc.product_id = products.id").
		Joins("JOIN categories c ON c.id = pc.category_id").
		Where("c.slug = ?", slug)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("ProductImages").
		Preload("Variants").
		Limit(limit).
		Offset(offset).
		Order("products.created_at DESC").
		Find(&products).Error
	return products, total, err
}

func (p *productRepository) GetFeaturedProducts(ctx context.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Preload("ProductImages").
		Where("featured = ?", true).
		Limit(limit).
		Find(&products).Error
	return products, err
}

func (p *productRepository) SearchProductsPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	pattern := "%" + strings.ToLower(keyword) + "%"
	base := p.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := base.
		Preload("ProductImages").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, total, err
}

func (p *productRepository) DecrementStock(ctx context.Context, tx *gorm.DB, productID, variantID string, qty int) error {
	db := tx
	if db == nil {
		db = p.db
	}

	query := db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty)
	if variantID != "" {
		query = db.WithContext(ctx).
			Model(&models.ProductVariant{}).
			Where("id = ? AND product_id = ? AND stock >= ?", variantID, productID, qty)
	}

	res := query.UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	// The stock guard in the WHERE clause turns an oversell into a
	// zero-row update; surface it so the enclosing transaction aborts.
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", ErrInsufficientStock, productID)
	}
	return nil
}
