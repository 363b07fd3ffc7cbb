package models

import (
	"time"

	"gorm.io/gorm"
)

type CartItem struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	CartID     uint    `gorm:"index;not null" json:"-"`
	MenuItemID uint    `gorm:"not null" json:"menuItemId"`
	Name       string  `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int     `gorm:"not null" json:"quantity"`
	Image      string  `gorm:"type:varchar(512)" json:"image"`
}

type Cart struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	UserID     uint       `gorm:"uniqueIndex;not null" json:"userId"`
	Items      []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice float64    `gorm:"type:decimal(10,2);not null;default:0" json:"totalPrice"`
	TotalItems int        `gorm:"not null;default:0" json:"totalItems"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// CartTotals derives the quantity and price totals from an item list.
// The stored totals are a cache of this function, never authoritative.
func CartTotals(items []CartItem) (totalItems int, totalPrice float64) {
	for _, it := range items {
		totalItems += it.Quantity
		totalPrice += it.Price * float64(it.Quantity)
	}
	return totalItems, totalPrice
}

// SetItems replaces the item list and recomputes both totals. All cart
// mutations go through here so the cached totals cannot drift.
func (ct *Cart) SetItems(items []CartItem) {
	ct.Items = items
	ct.TotalItems, ct.TotalPrice = CartTotals(items)
}

// BeforeSave recomputes totals on every persist.
func (ct *Cart) BeforeSave(tx *gorm.DB) error {
	ct.TotalItems, ct.TotalPrice = CartTotals(ct.Items)
	return nil
}
