package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/repository"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

func (r *orderRepo) Create(ctx context.Context, order *domain.Order) error {
	if err := conn(ctx, r.db).Omit("Items").Create(order).Error; err != nil {
		return err
	}
	if order.ID == 0 {
		return errors.New("order insert did not assign an id")
	}
	return nil
}

func (r *orderRepo) CreateItems(ctx context.Context, items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(&items).Error
}

func (r *orderRepo) FindByID(ctx context.Context, id uint64) (*domain.Order, error) {
	return r.findByID(conn(ctx, r.db), id)
}

func (r *orderRepo) FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Order, error) {
	return r.findByID(conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *orderRepo) findByID(db *gorm.DB, id uint64) (*domain.Order, error) {
	var o domain.Order
	if err := db.First(&o, "order_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) FindByIDWithItems(ctx context.Context, id uint64) (*domain.Order, error) {
	var o domain.Order
	err := conn(ctx, r.db).
		Preload("Items").
		First(&o, "order_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) ListByUser(ctx context.Context, username string) ([]domain.Order, error) {
	var out []domain.Order
	err := conn(ctx, r.db).
		Preload("Items").
		Where("username = ?", username).
		Order("order_date DESC").
		Find(&out).Error
	return out, err
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error {
	return conn(ctx, r.db).
		Model(&domain.Order{}).
		Where("order_id = ?", id).
		Update("status", status).Error
}
