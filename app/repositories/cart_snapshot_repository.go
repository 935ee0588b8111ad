package repositories

import (
	"context"
	"errors"

	"github.com/riiqx/storefront/app/models"
	"github.com/riiqx/storefront/app/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshotRepository implements store.SnapshotDB on top of the
// cart_snapshots table. One row per cart namespace, last write wins.
type CartSnapshotRepository struct {
	DB *gorm.DB
}

func NewCartSnapshotRepository(db *gorm.DB) *CartSnapshotRepository {
	return &CartSnapshotRepository{db}
}

func (r *CartSnapshotRepository) PutSnapshot(ctx context.Context, namespace string, data []byte) error {
	record := models.CartSnapshotRecord{Namespace: namespace, Data: data}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "namespace"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&record).Error
}

func (r *CartSnapshotRepository) GetSnapshot(ctx context.Context, namespace string) ([]byte, error) {
	var record models.CartSnapshotRecord
	err := r.DB.WithContext(ctx).Where("namespace = ?", namespace).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.ErrNoSnapshot
		}
		return nil, err
	}
	return record.Data, nil
}

func (r *CartSnapshotRepository) DeleteSnapshot(ctx context.Context, namespace string) error {
	return r.DB.WithContext(ctx).
		Where("namespace = ?", namespace).
		Delete(&models.CartSnapshotRecord{}).Error
}
