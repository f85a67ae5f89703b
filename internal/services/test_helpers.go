package services

import (
	"errors"
	"time"

	"storefront-order-service/internal/domain"
	"storefront-order-service/internal/infra"
)

// isErrKind reports whether err belongs to the named bucket of the service
// error taxonomy.
func isErrKind(err error, kind string) bool {
	switch kind {
	case "validation":
		var e *domain.ValidationError
		return errors.As(err, &e)
	case "notfound":
		var e *domain.NotFoundError
		return errors.As(err, &e)
	case "terminal":
		var e *domain.TerminalStateError
		return errors.As(err, &e)
	case "duplicate":
		var e *domain.DuplicateFeedbackError
		return errors.As(err, &e)
	case "transaction":
		var e *domain.TransactionError
		return errors.As(err, &e)
	}
	return false
}

func CreateMockOrder(id uint64, username string, status domain.OrderStatus, total float64) *domain.Order {
	return &domain.Order{
		ID:            id,
		Username:      username,
		TotalAmount:   total,
		PaymentMethod: domain.PaymentCOD,
		Status:        status,
		Shipping: domain.ShippingDetails{
			Name:    "Test Customer",
			Address: "1 Test Street",
			City:    "Testville",
			State:   "TS",
			Zip:     "560001",
		},
		OrderDate: time.Now(),
	}
}

func CreateMockCartLine(id uint64, username string, productID uint64, qty int, displayPrice float64) domain.CartLine {
	return domain.CartLine{
		ID:           id,
		Username:     username,
		ProductID:    productID,
		Quantity:     qty,
		DisplayPrice: displayPrice,
		AddedAt:      time.Now(),
	}
}

func CreateMockProduct(id uint64, name string, price float64, inStock bool) *infra.ProductInfo {
	return &infra.ProductInfo{
		ID:      id,
		Name:    name,
		Price:   price,
		InStock: inStock,
	}
}

const (
	TestUser    = "alice"
	TestOrderID = uint64(1)

	TestPlatformFee = 15.00
	TestDeliveryFee = 100.00
	TestTaxRate     = 0.05
)

func testPricing() PricingConfig {
	return PricingConfig{
		PlatformFee: TestPlatformFee,
		DeliveryFee: TestDeliveryFee,
		TaxRate:     TestTaxRate,
	}
}

func testShipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		Name:    "Test Customer",
		Address: "1 Test Street",
		City:    "Testville",
		State:   "TS",
		Zip:     "560001",
	}
}
