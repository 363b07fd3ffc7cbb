package models

import "time"

// OrderItem is a value snapshot of a cart line, frozen at checkout.
// It never references the live menu item.
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	OrderID    uint    `gorm:"index;not null" json:"-"`
	MenuItemID uint    `gorm:"not null" json:"menuItemId"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Image      string  `gorm:"type:varchar(512)" json:"image"`
}

type Order struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	UserID     uint        `gorm:"index;not null" json:"userId"`
	User       User        `gorm:"foreignKey:UserID" json:"-"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice float64     `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	TotalItems int         `gorm:"not null" json:"totalItems"`
	Status     OrderStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentID  *uint       `gorm:"index" json:"paymentId,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// SnapshotCartItems deep-copies cart lines into order lines.
func SnapshotCartItems(items []CartItem) []OrderItem {
	snapshot := make([]OrderItem, 0, len(items))
	for _, it := range items {
		snapshot = append(snapshot, OrderItem{
			MenuItemID: it.MenuItemID,
			Name:       it.Name,
			Price:      it.Price,
			Quantity:   it.Quantity,
			Image:      it.Image,
		})
	}
	return snapshot
}
