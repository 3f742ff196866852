package model

import "time"

// Session maps an opaque provider-issued token to a user. A user may hold
// any number of concurrent sessions.
type Session struct {
	ID           uint      `gorm:"primaryKey" json:"-"`
	SessionToken string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	UserID       string    `gorm:"size:64;not null;index" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null" json:"expires_at"`
}
