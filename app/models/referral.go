package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ReferralStatusPending  = "pending"
	ReferralStatusApproved = "approved"
	ReferralStatusRejected = "rejected"
)

// ReferralClaim is an Instagram-cashback request: a customer posts
// about a completed order and submits their handle to get a percentage
// of the order total credited back.
type ReferralClaim struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	UserID          string          `gorm:"size:36;index;not null" json:"-"`
	User            User            `gorm:"foreignKey:UserID" json:"-"`
	OrderID         string          `gorm:"size:36;uniqueIndex;not null" json:"orderId"`
	Order           Order           `gorm:"foreignKey:OrderID" json:"-"`
	InstagramHandle string          `gorm:"size:100;not null" json:"instagramHandle"`
	PostURL         string          `gorm:"type:text" json:"postUrl"`
	Status          string          `gorm:"size:20;default:'pending'" json:"status"`
	CashbackAmount  decimal.Decimal `gorm:"type:decimal(16,2);default:0.00" json:"cashbackAmount"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"-"`
}

func (rc *ReferralClaim) BeforeCreate(tx *gorm.DB) (err error) {
	if rc.ID == "" {
		rc.ID = uuid.New().String()
	}
	return
}
