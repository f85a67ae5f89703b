package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/repository"
)

type cartRepo struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepo{db: db}
}

func (r *cartRepo) FindLine(ctx context.Context, username string, productID uint64) (*domain.CartLine, error) {
	var line domain.CartLine
	err := conn(ctx, r.db).
		Where("username = ? AND product_id = ?", username, productID).
		First(&line).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &line, nil
}

func (r *cartRepo) Save(ctx context.Context, line *domain.CartLine) error {
	return conn(ctx, r.db).Save(line).Error
}

func (r *cartRepo) DeleteLine(ctx context.Context, username string, lineID uint64) (bool, error) {
	res := conn(ctx, r.db).
		Where("id = ? AND username = ?", lineID, username).
		Delete(&domain.CartLine{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *cartRepo) ListByUser(ctx context.Context, username string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := conn(ctx, r.db).
		Where("username = ?", username).
		Order("id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *cartRepo) ListByUserForUpdate(ctx context.Context, username string) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := conn(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("username = ?", username).
		Order("id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *cartRepo) ClearByUser(ctx context.Context, username string) error {
	return conn(ctx, r.db).
		Where("username = ?", username).
		Delete(&domain.CartLine{}).Error
}
