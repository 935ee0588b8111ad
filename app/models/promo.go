package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount kinds supported by the promo calculator.
const (
	PromoKindPercentage = "percentage"
	PromoKindFixed      = "fixed"
)

// PromoCode describes a reduction applied to a cart subtotal. Value is
// a percent for percentage promos and a flat amount for fixed promos.
// MinSubtotal is the spend threshold below which the promo yields no
// discount; zero means no threshold.
type PromoCode struct {
	ID          string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"-"`
	Code        string          `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Kind        string          `gorm:"size:20;not null" json:"kind"`
	Value       decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"value"`
	MinSubtotal decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"minSubtotal"`
	Description string          `gorm:"size:255" json:"description"`
	Active      bool            `gorm:"default:true" json:"-"`
	StartsAt    *time.Time      `json:"-"`
	EndsAt      *time.Time      `json:"-"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

func (p *PromoCode) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

// Usable reports whether the promo can be applied at the given time.
func (p *PromoCode) Usable(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.EndsAt != nil && now.After(*p.EndsAt) {
		return false
	}
	return true
}
