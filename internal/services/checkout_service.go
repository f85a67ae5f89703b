package services

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/infra"
	"storefront-order-service/internal/infra/rabbitmq"
	"storefront-order-service/internal/repository"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	cardCVVRe    = regexp.MustCompile(`^\d{3}$`)
	cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

type CardDetails struct {
	Number string
	CVV    string
	Expiry string
}

type PlaceOrderResult struct {
	OrderID    uint64
	GrandTotal float64
	Status     domain.OrderStatus
}

// CheckoutService converts a cart into an order. Header insert, item inserts
// and cart clearing commit as one transaction; a failure anywhere leaves the
// cart untouched and no order behind.
type CheckoutService struct {
	tx        repository.TxManager
	carts     repository.CartRepository
	orders    repository.OrderRepository
	catalog   infra.CatalogClientInterface
	publisher rabbitmq.PublisherInterface
	pricing   PricingConfig
}

func NewCheckoutService(
	tx repository.TxManager,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	catalog infra.CatalogClientInterface,
	publisher rabbitmq.PublisherInterface,
	pricing PricingConfig,
) *CheckoutService {
	return &CheckoutService{
		tx:        tx,
		carts:     carts,
		orders:    orders,
		catalog:   catalog,
		publisher: publisher,
		pricing:   pricing,
	}
}

// PlaceOrder validates input, then atomically: locks and reads the cart,
// re-resolves each product's current catalog price (the authoritative
// price-at-purchase), writes the order header and items, and clears the
// cart. A concurrent checkout of the same cart serializes behind the row
// locks and finds the cart empty.
func (s *CheckoutService) PlaceOrder(ctx context.Context, username string, shipping domain.ShippingDetails, payment domain.PaymentMethod, card *CardDetails) (*PlaceOrderResult, error) {
	if err := validateShipping(shipping); err != nil {
		return nil, err
	}

	status := domain.StatusProcessing
	switch payment {
	case domain.PaymentCOD:
	case domain.PaymentCard:
		if err := validateCard(card); err != nil {
			return nil, err
		}
		status = domain.StatusPaid
	default:
		return nil, domain.Validationf("unsupported payment method %q", payment)
	}

	var order *domain.Order
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.carts.ListByUserForUpdate(ctx, username)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.Validationf("cart is empty")
		}

		priced := make([]PricedLine, 0, len(lines))
		for _, line := range lines {
			prod, err := s.catalog.GetProductById(ctx, line.ProductID)
			if err != nil {
				return err
			}
			if prod == nil {
				return domain.Validationf("product %d is no longer available", line.ProductID)
			}
			priced = append(priced, PricedLine{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				UnitPrice: prod.Price,
			})
		}

		totals := ComputeTotals(priced, s.pricing)

		order = &domain.Order{
			Username:      username,
			TotalAmount:   totals.GrandTotal,
			PaymentMethod: payment,
			Status:        status,
			Shipping:      shipping,
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}

		items := make([]domain.OrderItem, 0, len(priced))
		for _, p := range priced {
			items = append(items, domain.OrderItem{
				OrderID:         order.ID,
				ProductID:       p.ProductID,
				Quantity:        p.Quantity,
				PriceAtPurchase: p.UnitPrice,
			})
		}
		if err := s.orders.CreateItems(ctx, items); err != nil {
			return err
		}
		order.Items = items

		return s.carts.ClearByUser(ctx, username)
	})
	if err != nil {
		return nil, wrapStorageErr("place order", err)
	}

	go s.publishOrderCreated(context.Background(), order)

	return &PlaceOrderResult{
		OrderID:    order.ID,
		GrandTotal: order.TotalAmount,
		Status:     order.Status,
	}, nil
}

func (s *CheckoutService) publishOrderCreated(ctx context.Context, order *domain.Order) {
	evt := domain.OrderCreatedEvent{
		OrderID:       order.ID,
		Username:      order.Username,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Status:        order.Status,
		ItemCount:     len(order.Items),
		CreatedAt:     order.OrderDate,
	}
	if err := s.publisher.Publish(ctx, "order.created", evt); err != nil {
		log.Printf("Failed to publish order.created for order %d: %v", order.ID, err)
	}
}

func validateShipping(s domain.ShippingDetails) error {
	fields := map[string]string{
		"name":    s.Name,
		"address": s.Address,
		"city":    s.City,
		"state":   s.State,
		"zip":     s.Zip,
	}
	for name, v := range fields {
		if strings.TrimSpace(v) == "" {
			return domain.Validationf("shipping %s is required", name)
		}
	}
	return nil
}

func validateCard(card *CardDetails) error {
	if card == nil {
		return domain.Validationf("card details are required for card payment")
	}
	if !cardNumberRe.MatchString(card.Number) {
		return domain.Validationf("card number must be exactly 16 digits")
	}
	if !cardCVVRe.MatchString(card.CVV) {
		return domain.Validationf("CVV must be exactly 3 digits")
	}
	if !cardExpiryRe.MatchString(card.Expiry) {
		return domain.Validationf("expiry must be in MM/YY format")
	}
	return nil
}

// wrapStorageErr passes typed domain errors through and wraps anything else
// as a TransactionError so raw storage errors never reach callers.
func wrapStorageErr(op string, err error) error {
	var (
		ve *domain.ValidationError
		ne *domain.NotFoundError
		te *domain.TerminalStateError
		de *domain.DuplicateFeedbackError
		xe *domain.TransactionError
	)
	if errors.As(err, &ve) || errors.As(err, &ne) || errors.As(err, &te) ||
		errors.As(err, &de) || errors.As(err, &xe) {
		return err
	}
	return &domain.TransactionError{Op: op, Err: err}
}
