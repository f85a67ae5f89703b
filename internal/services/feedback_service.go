package services

import (
	"context"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/repository"
)

// FeedbackService gates feedback submission: one entry per (user, order),
// delivered orders only. Submitting for any product of a multi-item order
// closes eligibility for the whole order.
type FeedbackService struct {
	tx       repository.TxManager
	orders   repository.OrderRepository
	feedback repository.FeedbackRepository
}

func NewFeedbackService(tx repository.TxManager, orders repository.OrderRepository, feedback repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{tx: tx, orders: orders, feedback: feedback}
}

func (s *FeedbackService) IsEligible(ctx context.Context, username string, orderID uint64) (bool, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return false, wrapStorageErr("feedback eligibility", err)
	}
	if order == nil || order.Username != username {
		return false, nil
	}
	if order.Status != domain.StatusDelivered {
		return false, nil
	}

	exists, err := s.feedback.ExistsForOrder(ctx, username, orderID)
	if err != nil {
		return false, wrapStorageErr("feedback eligibility", err)
	}
	return !exists, nil
}

func (s *FeedbackService) SubmitFeedback(ctx context.Context, username string, orderID, productID uint64, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.Validationf("rating must be between 1 and 5")
	}

	var fb *domain.Feedback
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := s.orders.FindByIDWithItems(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.Username != username {
			return domain.NotFoundf("order %d not found", orderID)
		}
		if order.Status != domain.StatusDelivered {
			return domain.Validationf("feedback is only accepted for delivered orders")
		}

		found := false
		for _, item := range order.Items {
			if item.ProductID == productID {
				found = true
				break
			}
		}
		if !found {
			return domain.Validationf("product %d is not part of order %d", productID, orderID)
		}

		exists, err := s.feedback.ExistsForOrder(ctx, username, orderID)
		if err != nil {
			return err
		}
		if exists {
			return &domain.DuplicateFeedbackError{OrderID: orderID}
		}

		fb = &domain.Feedback{
			OrderID:   orderID,
			Username:  username,
			ProductID: productID,
			Rating:    rating,
			Comment:   comment,
		}
		return s.feedback.Save(ctx, fb)
	})
	if err != nil {
		return nil, wrapStorageErr("submit feedback", err)
	}
	return fb, nil
}
