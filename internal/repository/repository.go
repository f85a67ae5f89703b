package repository

import (
	"context"

	"storefront-order-service/internal/domain"
)

// TxManager runs fn inside one storage transaction. Repository calls made
// with the ctx passed to fn join that transaction; the scope commits on nil
// and rolls back on error or panic, on every exit path.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CartRepository interface {
	FindLine(ctx context.Context, username string, productID uint64) (*domain.CartLine, error)
	Save(ctx context.Context, line *domain.CartLine) error
	DeleteLine(ctx context.Context, username string, lineID uint64) (bool, error)
	ListByUser(ctx context.Context, username string) ([]domain.CartLine, error)
	// ListByUserForUpdate locks the user's lines for the enclosing
	// transaction so concurrent checkouts of the same cart serialize.
	ListByUserForUpdate(ctx context.Context, username string) ([]domain.CartLine, error)
	ClearByUser(ctx context.Context, username string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateItems(ctx context.Context, items []domain.OrderItem) error
	FindByID(ctx context.Context, id uint64) (*domain.Order, error)
	FindByIDForUpdate(ctx context.Context, id uint64) (*domain.Order, error)
	FindByIDWithItems(ctx context.Context, id uint64) (*domain.Order, error)
	ListByUser(ctx context.Context, username string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id uint64, status domain.OrderStatus) error
}

type FeedbackRepository interface {
	Save(ctx context.Context, fb *domain.Feedback) error
	ExistsForOrder(ctx context.Context, username string, orderID uint64) (bool, error)
}
