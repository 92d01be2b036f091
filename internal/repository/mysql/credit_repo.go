package mysql

import (
	"context"

	"sclusiv/internal/model"

	"gorm.io/gorm"
)

type CreditRepository struct {
	DB *gorm.DB
}

func NewCreditRepository() *CreditRepository {
	return &CreditRepository{DB: DB}
}

func (r *CreditRepository) AppendEntry(ctx context.Context, entry *model.CreditEntry) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *CreditRepository) ListByUser(ctx context.Context, userID uint64, limit int) ([]model.CreditEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var list []model.CreditEntry
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
