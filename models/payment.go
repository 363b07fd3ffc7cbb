package models

import "time"

// Payment is a transaction record linked to one order. Amount is fixed
// at creation and the status mutates at most once, pending -> resolved.
type Payment struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	UserID      uint          `gorm:"index;not null" json:"userId"`
	OrderID     uint          `gorm:"index;not null" json:"orderId"`
	Amount      float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method      PaymentMethod `gorm:"type:varchar(20);not null;default:'card'" json:"method"`
	Status      PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	ReferenceID string        `gorm:"type:varchar(64);uniqueIndex" json:"referenceId"`
	PaymentDate *time.Time    `json:"paymentDate,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Resolved reports whether the payment has already reached a terminal
// state and must not be completed again.
func (p *Payment) Resolved() bool {
	return p.Status != PaymentPending
}
