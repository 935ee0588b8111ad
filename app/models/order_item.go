package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID          string          `gorm:"primaryKey;type:varchar(255);not null;uniqueIndex" json:"id"`
	OrderID     string          `gorm:"type:varchar(255);not null;index" json:"order_id"`
	Order       Order           `gorm:"foreignKey:OrderID;references:ID"`
	ProductID   string          `gorm:"type:varchar(255);not null;index" json:"product_id"`
	VariantID   string          `gorm:"type:varchar(255);index" json:"variant_id"`
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Color       string          `gorm:"size:50" json:"color"`
	Size        string          `gorm:"size:20" json:"size"`
	Qty         int             `gorm:"not null" json:"qty"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	BaseTotal   decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"base_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}
