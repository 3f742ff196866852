package model

import "time"

// User is upserted by email from the identity provider's profile.
// UserID is the stable public identity; the numeric ID stays internal.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	UserID    string    `gorm:"size:64;not null;uniqueIndex" json:"user_id"`
	Email     string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Picture   string    `gorm:"size:512" json:"picture"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
