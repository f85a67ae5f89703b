package services

import (
	"context"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/repository"
)

// OrderQueryService serves the customer's order history views.
type OrderQueryService struct {
	orders repository.OrderRepository
}

func NewOrderQueryService(orders repository.OrderRepository) *OrderQueryService {
	return &OrderQueryService{orders: orders}
}

func (s *OrderQueryService) ListOrders(ctx context.Context, username string) ([]domain.Order, error) {
	out, err := s.orders.ListByUser(ctx, username)
	if err != nil {
		return nil, wrapStorageErr("list orders", err)
	}
	return out, nil
}

func (s *OrderQueryService) GetOrder(ctx context.Context, username string, orderID uint64) (*domain.Order, error) {
	order, err := s.orders.FindByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, wrapStorageErr("get order", err)
	}
	if order == nil || order.Username != username {
		return nil, domain.NotFoundf("order %d not found", orderID)
	}
	return order, nil
}
