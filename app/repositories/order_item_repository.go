package repositories

import (
	"context"

	"github.com/riiqx/storefront/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	Add(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error
	GetByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db}
}

func (r *orderItemRepository) Add(ctx context.Context, tx *gorm.DB, item *models.OrderItem) error {
	db := tx
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx).Create(item).Error
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error
	return items, err
}
