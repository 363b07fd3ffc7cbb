package models

import "time"

// Review carries denormalized snapshots of the author's name and the
// menu item's title/image taken at submission time, so the displayed
// review survives later edits to either.
type Review struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	UserID       uint         `gorm:"index;not null" json:"userId"`
	MenuItemID   uint         `gorm:"index;not null" json:"menuItemId"`
	Rating       int          `gorm:"not null" json:"rating"`
	Comment      string       `gorm:"type:varchar(1000)" json:"comment"`
	Status       ReviewStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	UserName     string       `gorm:"type:varchar(255)" json:"userName"`
	UserEmail    string       `gorm:"type:varchar(255)" json:"userEmail"`
	ItemTitle    string       `gorm:"type:varchar(255)" json:"itemTitle"`
	ItemImageURL string       `gorm:"type:varchar(512)" json:"itemImageURL"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
