package services

import (
	"context"
	"log"
	"time"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/infra/rabbitmq"
	"storefront-order-service/internal/repository"
)

// StatusService is the order lifecycle state machine. It is the only writer
// of Order.Status after creation.
type StatusService struct {
	tx        repository.TxManager
	orders    repository.OrderRepository
	publisher rabbitmq.PublisherInterface
}

func NewStatusService(tx repository.TxManager, orders repository.OrderRepository, publisher rabbitmq.PublisherInterface) *StatusService {
	return &StatusService{tx: tx, orders: orders, publisher: publisher}
}

// SetStatus advances an order to next. The row is read FOR UPDATE so a
// request racing a transition into a terminal state observes that terminal
// status and is rejected. Re-setting the current non-terminal status is a
// no-op reported as (false, nil).
func (s *StatusService) SetStatus(ctx context.Context, orderID uint64, next domain.OrderStatus) (bool, error) {
	if !next.Valid() || next == domain.StatusFailed {
		return false, domain.Validationf("invalid target status %q", next)
	}

	var old domain.OrderStatus
	changed := false
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFoundf("order %d not found", orderID)
		}
		if order.Status.Terminal() {
			return &domain.TerminalStateError{From: order.Status, To: next}
		}
		if order.Status == next {
			return nil
		}
		if !order.Status.CanTransitionTo(next) {
			return &domain.TerminalStateError{From: order.Status, To: next}
		}

		old = order.Status
		if err := s.orders.UpdateStatus(ctx, orderID, next); err != nil {
			return err
		}
		changed = true
		return nil
	})
	if err != nil {
		return false, wrapStorageErr("set status", err)
	}

	if changed {
		go s.publishStatusChanged(context.Background(), orderID, old, next)
	}
	return changed, nil
}

func (s *StatusService) publishStatusChanged(ctx context.Context, orderID uint64, old, next domain.OrderStatus) {
	evt := domain.OrderStatusChangedEvent{
		OrderID:   orderID,
		OldStatus: old,
		NewStatus: next,
		ChangedAt: time.Now(),
	}
	if err := s.publisher.Publish(ctx, "order.status_changed", evt); err != nil {
		log.Printf("Failed to publish order.status_changed for order %d: %v", orderID, err)
	}
}
