package mysql

import (
	"context"

	"gorm.io/gorm"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/repository"
)

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) repository.FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) Save(ctx context.Context, fb *domain.Feedback) error {
	return conn(ctx, r.db).Create(fb).Error
}

func (r *feedbackRepo) ExistsForOrder(ctx context.Context, username string, orderID uint64) (bool, error) {
	var count int64
	err := conn(ctx, r.db).
		Model(&domain.Feedback{}).
		Where("username = ? AND order_id = ?", username, orderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
