package domain

import "time"

// Feedback is written at most once per (username, order). The customer picks
// one product of the order to comment on, but submitting for any product
// closes eligibility for the whole order.
type Feedback struct {
	ID             uint64    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID        uint64    `json:"orderId" gorm:"not null;uniqueIndex:ux_feedback_user_order"`
	Username       string    `json:"username" gorm:"not null;uniqueIndex:ux_feedback_user_order"`
	ProductID      uint64    `json:"productId" gorm:"not null"`
	Rating         int       `json:"rating" gorm:"not null"`
	Comment        string    `json:"comment" gorm:"type:text"`
	SubmissionDate time.Time `json:"submissionDate" gorm:"autoCreateTime"`
}

func (Feedback) TableName() string { return "feedback" }
