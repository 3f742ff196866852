package model

import "time"

type ContactSubmission struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:128;not null" json:"name"`
	Email            string    `gorm:"size:128;not null;index" json:"email"`
	Organization     string    `gorm:"size:128" json:"organization"`
	Message          string    `gorm:"type:text;not null" json:"message"`
	SubmittedAt      time.Time `gorm:"not null" json:"submitted_at"`
	NotificationSent bool      `gorm:"default:false" json:"notification_sent"`
}
