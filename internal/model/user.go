package model

import "time"

// User owns tasks. TelegramChatID is optional; when set, the user receives
// the daily reminder digest in that chat.
type User struct {
	ID             uint   `gorm:"primaryKey"`
	Name           string `gorm:"size:255;not null"`
	Email          string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash   string `gorm:"not null"`
	TelegramChatID int64  `gorm:"index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
