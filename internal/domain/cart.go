package domain

import "time"

// CartLine is an uncommitted purchase intent. One line per (username,
// product); adding the same product again merges quantity instead of
// inserting a duplicate. Lines are deleted when checkout folds them into an
// order.
type CartLine struct {
	ID           uint64    `json:"lineId" gorm:"primaryKey;autoIncrement"`
	Username     string    `json:"username" gorm:"not null;uniqueIndex:ux_cart_user_product"`
	ProductID    uint64    `json:"productId" gorm:"not null;uniqueIndex:ux_cart_user_product"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	DisplayPrice float64   `json:"displayPrice" gorm:"not null"`
	AddedAt      time.Time `json:"addedAt" gorm:"autoCreateTime"`
}

func (CartLine) TableName() string { return "cart" }
