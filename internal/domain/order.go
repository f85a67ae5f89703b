package domain

import "time"

type OrderStatus string

const (
	StatusProcessing OrderStatus = "Processing"
	StatusPaid       OrderStatus = "Paid"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusFailed     OrderStatus = "Failed"
)

// Terminal statuses accept no further transition.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusFailed
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled, StatusFailed:
		return true
	}
	return false
}

// statusEdges is the legal transition graph. Paid is the card-payment
// counterpart of Processing and shares its outgoing edges. Failed is only
// written by checkout reconciliation, never through SetStatus.
var statusEdges = map[OrderStatus][]OrderStatus{
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusPaid:       {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, t := range statusEdges[s] {
		if t == next {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCOD  PaymentMethod = "COD"
	PaymentCard PaymentMethod = "Card"
)

// ShippingDetails is captured once at checkout and never revised afterwards.
type ShippingDetails struct {
	Name    string `json:"name" gorm:"column:shipping_name;not null"`
	Address string `json:"address" gorm:"column:shipping_address;not null"`
	City    string `json:"city" gorm:"column:shipping_city;not null"`
	State   string `json:"state" gorm:"column:shipping_state;not null"`
	Zip     string `json:"zip" gorm:"column:shipping_zip;not null"`
}

type Order struct {
	ID            uint64          `json:"orderId" gorm:"column:order_id;primaryKey;autoIncrement"`
	Username      string          `json:"username" gorm:"not null;index"`
	TotalAmount   float64         `json:"totalAmount" gorm:"not null"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" gorm:"type:varchar(16);not null"`
	Status        OrderStatus     `json:"status" gorm:"type:varchar(16);not null;index"`
	Shipping      ShippingDetails `json:"shipping" gorm:"embedded"`
	OrderDate     time.Time       `json:"orderDate" gorm:"autoCreateTime"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is immutable once written. PriceAtPurchase is the catalog price
// resolved at checkout time, not the display price cached on the cart line.
type OrderItem struct {
	ID              uint64  `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID         uint64  `json:"orderId" gorm:"not null;index"`
	ProductID       uint64  `json:"productId" gorm:"not null"`
	Quantity        int     `json:"quantity" gorm:"not null"`
	PriceAtPurchase float64 `json:"priceAtPurchase" gorm:"not null"`
}

func (OrderItem) TableName() string { return "orderitems" }
