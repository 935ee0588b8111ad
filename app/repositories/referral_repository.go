package repositories

import (
	"context"
	"errors"

	"github.com/riiqx/storefront/app/models"
	"gorm.io/gorm"
)

type ReferralRepositoryImpl interface {
	Create(ctx context.Context, claim *models.ReferralClaim) error
	GetByID(ctx context.Context, id string) (*models.ReferralClaim, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.ReferralClaim, error)
	GetByUserID(ctx context.Context, userID string) ([]models.ReferralClaim, error)
	Update(ctx context.Context, claim *models.ReferralClaim) error
}

type referralRepository struct {
	db *gorm.DB
}

func NewReferralRepository(db *gorm.DB) ReferralRepositoryImpl {
	return &referralRepository{db}
}

func (r *referralRepository) Create(ctx context.Context, claim *models.ReferralClaim) error {
	return r.db.WithContext(ctx).Create(claim).Error
}

func (r *referralRepository) GetByID(ctx context.Context, id string) (*models.ReferralClaim, error) {
	var claim models.ReferralClaim
	err := r.db.WithContext(ctx).Preload("Order").Where("id = ?", id).First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

func (r *referralRepository) GetByOrderID(ctx context.Context, orderID string) (*models.ReferralClaim, error) {
	var claim models.ReferralClaim
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&claim).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &claim, nil
}

func (r *referralRepository) GetByUserID(ctx context.Context, userID string) ([]models.ReferralClaim, error) {
	var claims []models.ReferralClaim
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&claims).Error
	return claims, err
}

func (r *referralRepository) Update(ctx context.Context, claim *models.ReferralClaim) error {
	return r.db.WithContext(ctx).Save(claim).Error
}
