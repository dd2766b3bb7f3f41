package model

import "time"

// DateLayout is the wire and storage format for task dates.
const DateLayout = "2006-01-02"

// Task represents a single calendar entry. Money fields (Amount, Recipient)
// are optional and turn a task into a debt/payment reminder.
type Task struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index;not null"`
	Text      string `gorm:"size:255;not null"`
	Date      string `gorm:"type:date;index;not null"` // Gregorian, YYYY-MM-DD
	Completed bool   `gorm:"default:false"`

	Amount    *float64 `gorm:"type:decimal(10,2)"`
	Recipient *string  `gorm:"size:255"`

	// IsRecurring marks the originating request of a monthly series.
	// Materialized future instances carry false and stand on their own.
	IsRecurring          bool `gorm:"default:false"`
	RecurrenceMonths     *int
	RemainingOccurrences *int

	CreatedAt time.Time
	UpdatedAt time.Time

	// Association only declared for the cascade; never preloaded.
	User User `gorm:"constraint:OnDelete:CASCADE"`
}
