package repositories

import (
	"context"
	"strings"

	"github.com/riiqx/storefront/app/models"
	"gorm.io/gorm"
)

type PromoRepositoryImpl interface {
	FindByCode(ctx context.Context, code string) (*models.PromoCode, error)
	Create(ctx context.Context, promo *models.PromoCode) error
}

type promoRepository struct {
	db *gorm.DB
}

func NewPromoRepository(db *gorm.DB) PromoRepositoryImpl {
	return &promoRepository{db}
}

// FindByCode looks a promo up case-insensitively; codes are stored
// upper-cased by the seeder and normalized here on the way in.
func (r *promoRepository) FindByCode(ctx context.Context, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&promo).Error; err != nil {
		return nil, err
	}
	return &promo, nil
}

func (r *promoRepository) Create(ctx context.Context, promo *models.PromoCode) error {
	promo.Code = strings.ToUpper(strings.TrimSpace(promo.Code))
	return r.db.WithContext(ctx).Create(promo).Error
}
