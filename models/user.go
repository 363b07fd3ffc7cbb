package models

import "time"

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	FirstName    string `gorm:"type:varchar(255);not null" json:"firstName"`
	LastName     string `gorm:"type:varchar(255);not null" json:"lastName"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password     string `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	RefreshToken string `gorm:"type:varchar(512)" json:"-"` // reserved, no refresh flow yet
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sanitized returns the fields safe to put on the wire.
func (u *User) Sanitized() map[string]interface{} {
	return map[string]interface{}{
		"id":        u.ID,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"email":     u.Email,
		"role":      u.Role,
		"createdAt": u.CreatedAt,
		"updatedAt": u.UpdatedAt,
	}
}

// DisplayName is the denormalized name stored on reviews.
func (u *User) DisplayName() string {
	name := u.FirstName
	if u.LastName != "" {
		if name != "" {
			name += " "
		}
		name += u.LastName
	}
	if name == "" {
		name = u.Email
	}
	return name
}
