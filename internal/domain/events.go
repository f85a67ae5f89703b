package domain

import "time"

type OrderCreatedEvent struct {
	OrderID       uint64        `json:"orderId"`
	Username      string        `json:"username"`
	TotalAmount   float64       `json:"totalAmount"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
	Status        OrderStatus   `json:"status"`
	ItemCount     int           `json:"itemCount"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type OrderStatusChangedEvent struct {
	OrderID   uint64      `json:"orderId"`
	OldStatus OrderStatus `json:"oldStatus"`
	NewStatus OrderStatus `json:"newStatus"`
	ChangedAt time.Time   `json:"changedAt"`
}
