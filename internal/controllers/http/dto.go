package http

import "storefront-order-service/internal/domain"

type AddCartLineRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type ShippingRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Zip     string `json:"zip" binding:"required"`
}

type CardRequest struct {
	Number string `json:"number" binding:"required"`
	CVV    string `json:"cvv" binding:"required"`
	Expiry string `json:"expiry" binding:"required"`
}

type CheckoutRequest struct {
	Shipping      ShippingRequest      `json:"shipping" binding:"required"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=COD Card"`
	Card          *CardRequest         `json:"card"`
}

type CheckoutResponse struct {
	OrderID    uint64             `json:"orderId"`
	GrandTotal float64            `json:"grandTotal"`
	Status     domain.OrderStatus `json:"status"`
}

type SetStatusRequest struct {
	Status domain.OrderStatus `json:"status" binding:"required"`
}

type SetStatusResponse struct {
	Updated bool               `json:"updated"`
	Status  domain.OrderStatus `json:"status"`
}

type EligibilityResponse struct {
	Eligible bool `json:"eligible"`
}

type SubmitFeedbackRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}
