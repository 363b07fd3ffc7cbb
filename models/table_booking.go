package models

import "time"

// TableBooking reserves a slot. The composite unique index on
// (date, time) is the only guard against double booking: first writer
// wins, the loser surfaces as a duplicate-key error.
type TableBooking struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    *uint  `gorm:"index" json:"userId,omitempty"`
	UserEmail string `gorm:"type:varchar(255);index" json:"userEmail"`
	Name      string `gorm:"type:varchar(255);not null" json:"name"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	Phone     string `gorm:"type:varchar(50);not null" json:"phone"`
	Date      string `gorm:"type:varchar(20);not null;uniqueIndex:idx_booking_slot" json:"date"`
	Time      string `gorm:"type:varchar(20);not null;uniqueIndex:idx_booking_slot" json:"time"`
	Guests    int    `gorm:"not null" json:"guests"`
	Message   string `gorm:"type:text" json:"message"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OwnedBy reports whether the given principal may cancel this booking.
func (b *TableBooking) OwnedBy(userID uint, email string) bool {
	if b.UserID != nil && *b.UserID == userID {
		return true
	}
	return email != "" && (b.Email == email || b.UserEmail == email)
}
