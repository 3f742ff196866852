package model

import "time"

// ChatTurn records one user message and the assistant reply it produced.
// Turns are append-only.
type ChatTurn struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	UserID           string    `gorm:"size:64;not null;index" json:"user_id"`
	UserMessage      string    `gorm:"type:text;not null" json:"user_message"`
	AssistantMessage string    `gorm:"type:text;not null" json:"assistant_message"`
	Model            string    `gorm:"size:64;not null" json:"model"`
	CreatedAt        time.Time `json:"timestamp"`
}
