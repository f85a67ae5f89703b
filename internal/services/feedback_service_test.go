package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/mocks"
)

func deliveredOrderWithItems() *domain.Order {
	o := CreateMockOrder(TestOrderID, TestUser, domain.StatusDelivered, 377.50)
	o.Items = []domain.OrderItem{
		{OrderID: TestOrderID, ProductID: 10, Quantity: 2, PriceAtPurchase: 100},
		{OrderID: TestOrderID, ProductID: 11, Quantity: 1, PriceAtPurchase: 50},
	}
	return o
}

func TestFeedbackService_IsEligible(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(*mocks.MockOrderRepository, *mocks.MockFeedbackRepository)
		eligible   bool
	}{
		{
			name: "delivered order without feedback",
			setupMocks: func(orders *mocks.MockOrderRepository, fb *mocks.MockFeedbackRepository) {
				orders.On("FindByID", mock.Anything, TestOrderID).
					Return(CreateMockOrder(TestOrderID, TestUser, domain.StatusDelivered, 100), nil)
				fb.On("ExistsForOrder", mock.Anything, TestUser, TestOrderID).Return(false, nil)
			},
			eligible: true,
		},
		{
			name: "order not delivered yet",
			setupMocks: func(orders *mocks.MockOrderRepository, fb *mocks.MockFeedbackRepository) {
				orders.On("FindByID", mock.Anything, TestOrderID).
					Return(CreateMockOrder(TestOrderID, TestUser, domain.StatusShipped, 100), nil)
			},
		},
		{
			name: "feedback already exists",
			setupMocks: func(orders *mocks.MockOrderRepository, fb *mocks.MockFeedbackRepository) {
				orders.On("FindByID", mock.Anything, TestOrderID).
					Return(CreateMockOrder(TestOrderID, TestUser, domain.StatusDelivered, 100), nil)
				fb.On("ExistsForOrder", mock.Anything, TestUser, TestOrderID).Return(true, nil)
			},
		},
		{
			name: "order belongs to someone else",
			setupMocks: func(orders *mocks.MockOrderRepository, fb *mocks.MockFeedbackRepository) {
				orders.On("FindByID", mock.Anything, TestOrderID).
					Return(CreateMockOrder(TestOrderID, "mallory", domain.StatusDelivered, 100), nil)
			},
		},
		{
			name: "order does not exist",
			setupMocks: func(orders *mocks.MockOrderRepository, fb *mocks.MockFeedbackRepository) {
				orders.On("FindByID", mock.Anything, TestOrderID).Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orders := new(mocks.MockOrderRepository)
			fb := new(mocks.MockFeedbackRepository)
			tt.setupMocks(orders, fb)

			svc := NewFeedbackService(new(mocks.MockTxManager), orders, fb)
			eligible, err := svc.IsEligible(context.Background(), TestUser, TestOrderID)

			assert.NoError(t, err)
			assert.Equal(t, tt.eligible, eligible)
			orders.AssertExpectations(t)
			fb.AssertExpectations(t)
		})
	}
}

func TestFeedbackService_SubmitFeedback(t *testing.T) {
	newMocks := func() (*mocks.MockTxManager, *mocks.MockOrderRepository, *mocks.MockFeedbackRepository) {
		tx := new(mocks.MockTxManager)
		tx.On("WithinTransaction", mock.Anything, mock.Anything).Return(nil).Maybe()
		return tx, new(mocks.MockOrderRepository), new(mocks.MockFeedbackRepository)
	}

	t.Run("success records the chosen product", func(t *testing.T) {
		tx, orders, fbRepo := newMocks()
		orders.On("FindByIDWithItems", mock.Anything, TestOrderID).Return(deliveredOrderWithItems(), nil)
		fbRepo.On("ExistsForOrder", mock.Anything, TestUser, TestOrderID).Return(false, nil)
		fbRepo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Feedback")).Return(nil)

		svc := NewFeedbackService(tx, orders, fbRepo)
		fb, err := svc.SubmitFeedback(context.Background(), TestUser, TestOrderID, 11, 4, "arrived on time")

		require.NoError(t, err)
		assert.Equal(t, uint64(11), fb.ProductID)
		assert.Equal(t, 4, fb.Rating)
		fbRepo.AssertExpectations(t)
	})

	t.Run("second submission is a duplicate regardless of product", func(t *testing.T) {
		tx, orders, fbRepo := newMocks()
		orders.On("FindByIDWithItems", mock.Anything, TestOrderID).Return(deliveredOrderWithItems(), nil)
		fbRepo.On("ExistsForOrder", mock.Anything, TestUser, TestOrderID).Return(true, nil)

		svc := NewFeedbackService(tx, orders, fbRepo)
		fb, err := svc.SubmitFeedback(context.Background(), TestUser, TestOrderID, 10, 5, "second try")

		assert.Nil(t, fb)
		assert.True(t, isErrKind(err, "duplicate"), "got %v", err)
		fbRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("rating out of range fails before any lookup", func(t *testing.T) {
		tx, orders, fbRepo := newMocks()

		svc := NewFeedbackService(tx, orders, fbRepo)
		for _, rating := range []int{0, 6, -1} {
			fb, err := svc.SubmitFeedback(context.Background(), TestUser, TestOrderID, 10, rating, "")
			assert.Nil(t, fb)
			assert.True(t, isErrKind(err, "validation"), "rating %d: got %v", rating, err)
		}
		orders.AssertNotCalled(t, "FindByIDWithItems", mock.Anything, mock.Anything)
	})

	t.Run("order owned by another user is not found", func(t *testing.T) {
		tx, orders, fbRepo := newMocks()
		other := deliveredOrderWithItems()
		other.Username = "mallory"
		orders.On("FindByIDWithItems", mock.Anything, TestOrderID).Return(other, nil)

		svc := NewFeedbackService(tx, orders, fbRepo)
		_, err := svc.SubmitFeedback(context.Background(), TestUser, TestOrderID, 10, 3, "")

		assert.True(t, isErrKind(err, "notfound"), "got %v", err)
	})

	t.Run("undelivered order is rejected", func(t *testing.T) {
		tx, orders, fbRepo := newMocks()
		o := deliveredOrderWithItems()
		o.Status = domain.StatusShipped
		orders.On("FindByIDWithItems", mock.Anything, TestOrderID).Return(o, nil)

		svc := NewFeedbackService(tx, orders, fbRepo)
		_, err := svc.SubmitFeedback(context.Background(), TestUser, TestOrderID, 10, 3, "")

		assert.True(t, isErrKind(err, "validation"), "got %v", err)
	})

	t.Run("product outside the order is rejected", func(t *testing.T) {
		tx, orders, fbRepo := newMocks()
		orders.On("FindByIDWithItems", mock.Anything, TestOrderID).Return(deliveredOrderWithItems(), nil)

		svc := NewFeedbackService(tx, orders, fbRepo)
		_, err := svc.SubmitFeedback(context.Background(), TestUser, TestOrderID, 999, 3, "")

		assert.True(t, isErrKind(err, "validation"), "got %v", err)
		fbRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
